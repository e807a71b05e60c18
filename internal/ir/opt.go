package ir

// RunPasses implements Builder.RunPasses.
func (b *builder) RunPasses() {
	for _, pass := range defaultPasses {
		pass(b)
	}
	b.donePasses = true
}

type pass func(*builder)

// defaultPasses are run in order: the dead block elimination guarantees that the dominator
// calculation only sees reachable blocks, and the dominator calculation is a prerequisite of
// the code placement.
var defaultPasses = []pass{
	passDeadBlockElimination,
	passCalculateImmediateDominators,
	passCodePlacement,
}

// passDeadBlockElimination searches the unreachable blocks, and sets the
// basicBlock.invalid flag true if so.
func passDeadBlockElimination(b *builder) {
	entryBlk := b.entryBlk()
	b.clearBlkVisited()
	b.blkStack = append(b.blkStack, entryBlk)
	for len(b.blkStack) > 0 {
		reachableBlk := b.blkStack[len(b.blkStack)-1]
		b.blkStack = b.blkStack[:len(b.blkStack)-1]
		b.blkVisited[reachableBlk] = 0 // the value won't be used in this pass.

		for _, successor := range reachableBlk.success {
			if _, ok := b.blkVisited[successor]; ok {
				continue
			}
			b.blkStack = append(b.blkStack, successor)
			b.blkVisited[successor] = 0 // the value won't be used in this pass.
		}
	}

	for i := 0; i < b.basicBlocksPool.Allocated(); i++ {
		blk := b.basicBlocksPool.View(i)
		if _, ok := b.blkVisited[blk]; !ok {
			blk.invalid = true
		}
	}
}
