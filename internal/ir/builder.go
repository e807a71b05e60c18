// Package ir constructs and transforms functions in SSA form. By nature this is free of
// source-language and target-ISA specific things.
package ir

import (
	"strings"

	"github.com/Infarh/ILGPU/internal/irapi"
)

// Builder is used to build an SSA function consisting of basic blocks, and is the exclusive
// mutation path of the function for its whole lifetime.
type Builder interface {
	// Reset must be called to reuse this builder for the next function.
	Reset()

	// AllocateBasicBlock creates a basic block in the SSA function.
	AllocateBasicBlock() BasicBlock

	// CurrentBlock returns the currently handled BasicBlock which is set by the latest call
	// to SetCurrentBlock.
	CurrentBlock() BasicBlock

	// SetCurrentBlock sets the value insertion target to the BasicBlock `b`.
	SetCurrentBlock(b BasicBlock)

	// EntryBlock returns the entry block of the function.
	EntryBlock() BasicBlock

	// AllocateValue returns a new Value. The value must be initialized with one of the
	// As* methods and then passed to InsertValue.
	AllocateValue() *Value

	// InsertValue inserts the value into the tail of the current basic block, and registers
	// it as a use-site of each of its operands. Terminator values become the block's
	// terminator instead of joining the value list.
	InsertValue(v *Value)

	// RunPasses runs the optimization and placement passes on the constructed function.
	RunPasses()

	// Format returns the debugging string of the SSA function.
	Format() string

	// BlockIteratorBegin initializes the state to iterate over all the valid BasicBlock(s).
	// Combined with BlockIteratorNext, we can use this like:
	//
	// 	for blk := builder.BlockIteratorBegin(); blk != nil; blk = builder.BlockIteratorNext() {
	// 		// ...
	//	}
	//
	// The returned blocks are ordered in the order of AllocateBasicBlock being called.
	BlockIteratorBegin() BasicBlock

	// BlockIteratorNext advances the state for iteration initialized by BlockIteratorBegin.
	// Returns nil if there's no unseen BasicBlock.
	BlockIteratorNext() BasicBlock

	// BlockIteratorReversePostOrderBegin is almost the same as BlockIteratorBegin except it
	// returns the BasicBlock(s) in the reverse post-order. This is available after RunPasses.
	BlockIteratorReversePostOrderBegin() BasicBlock

	// BlockIteratorReversePostOrderNext advances the state for iteration initialized by
	// BlockIteratorReversePostOrderBegin.
	BlockIteratorReversePostOrderNext() BasicBlock
}

// NewBuilder returns a new Builder implementation.
func NewBuilder() Builder {
	return &builder{
		basicBlocksPool: irapi.NewPool[basicBlock](),
		valuesPool:      irapi.NewPool[Value](),
		blkVisited:      make(map[*basicBlock]int),
	}
}

// builder implements the Builder interface.
type builder struct {
	basicBlocksPool irapi.Pool[basicBlock]
	valuesPool      irapi.Pool[Value]

	currentBB   *basicBlock
	nextValueID ValueID

	// reversePostOrderedBasicBlocks are the BasicBlock(s) ordered in the reverse post-order
	// after passCalculateImmediateDominators.
	reversePostOrderedBasicBlocks []*basicBlock

	// dominators stores the immediate dominator of each BasicBlock.
	// The index is the blockID of the BasicBlock.
	dominators []*basicBlock

	// The followings are reused by the passes.
	blkStack   []*basicBlock
	blkVisited map[*basicBlock]int

	// The followings belong to passCodePlacement (see pass_placement.go).
	blockSnapshots  []blockSnapshot
	phiValues       []*Value
	placementStates []placementState
	placementQueue  []placementQueueEntry

	// blockIterCur is used to implement blockIteratorBegin and blockIteratorNext.
	blockIterCur int

	// donePasses is true if RunPasses was called.
	donePasses bool
}

// Reset implements Builder.Reset.
func (b *builder) Reset() {
	for i := 0; i < b.basicBlocksPool.Allocated(); i++ {
		blk := b.basicBlocksPool.View(i)
		blk.reset()
		delete(b.blkVisited, blk)
	}
	b.basicBlocksPool.Reset()
	b.valuesPool.Reset()

	b.currentBB = nil
	b.nextValueID = 0
	b.reversePostOrderedBasicBlocks = b.reversePostOrderedBasicBlocks[:0]
	b.dominators = b.dominators[:0]
	b.blkStack = b.blkStack[:0]
	b.phiValues = b.phiValues[:0]
	b.donePasses = false
}

// AllocateBasicBlock implements Builder.AllocateBasicBlock.
func (b *builder) AllocateBasicBlock() BasicBlock {
	return b.allocateBasicBlock()
}

func (b *builder) allocateBasicBlock() *basicBlock {
	id := basicBlockID(b.basicBlocksPool.Allocated())
	blk := b.basicBlocksPool.Allocate()
	blk.id = id
	return blk
}

// AllocateValue implements Builder.AllocateValue.
func (b *builder) AllocateValue() *Value {
	v := b.valuesPool.Allocate()
	v.id = b.nextValueID
	v.fn = b
	b.nextValueID++
	return v
}

// InsertValue implements Builder.InsertValue.
func (b *builder) InsertValue(v *Value) {
	if v.fn != b {
		panic("BUG: trying to insert a value allocated for another function: " + v.String())
	}
	if v.opcode == opcodeInvalid {
		panic("BUG: trying to insert an uninitialized value: " + v.String())
	}

	for _, arg := range v.args {
		arg.uses = append(arg.uses, v)
	}

	if v.Kind() == ValueKindTerminator {
		if b.currentBB.terminator != nil {
			panic("BUG: trying to add a second terminator to " + b.currentBB.Name())
		}
		b.currentBB.terminator = v
		v.blk = b.currentBB
		return
	}
	b.currentBB.insertValue(v)
}

// SetCurrentBlock implements Builder.SetCurrentBlock.
func (b *builder) SetCurrentBlock(bb BasicBlock) {
	b.currentBB = bb.(*basicBlock)
}

// CurrentBlock implements Builder.CurrentBlock.
func (b *builder) CurrentBlock() BasicBlock {
	return b.currentBB
}

// EntryBlock implements Builder.EntryBlock.
func (b *builder) EntryBlock() BasicBlock {
	return b.entryBlk()
}

// entryBlk returns the entry block of the function.
func (b *builder) entryBlk() *basicBlock {
	return b.basicBlocksPool.View(0)
}

// isDominatedBy returns true if the given block `n` is dominated by the given block `d`.
// Before calling this, the builder must pass by passCalculateImmediateDominators.
func (b *builder) isDominatedBy(n *basicBlock, d *basicBlock) bool {
	if len(b.dominators) == 0 {
		panic("BUG: passCalculateImmediateDominators must be called before calling isDominatedBy")
	}
	ent := b.entryBlk()
	doms := b.dominators
	for n != d && n != ent {
		n = doms[n.id]
	}
	return n == d
}

// commonDominator returns the lowest block which dominates both blk1 and blk2.
func (b *builder) commonDominator(blk1, blk2 *basicBlock) *basicBlock {
	return intersect(b.dominators, blk1, blk2)
}

// clearBlkVisited clears the blkVisited map so that we can reuse it for the next iteration.
func (b *builder) clearBlkVisited() {
	for key := range b.blkVisited {
		delete(b.blkVisited, key)
	}
}

// Format implements Builder.Format.
func (b *builder) Format() string {
	str := strings.Builder{}
	for bb := b.blockIteratorBegin(); bb != nil; bb = b.blockIteratorNext() {
		str.WriteByte('\n')
		str.WriteString(bb.String())
		str.WriteByte('\n')
		for _, v := range bb.values {
			str.WriteByte('\t')
			str.WriteString(v.Format())
			str.WriteByte('\n')
		}
		if t := bb.terminator; t != nil {
			str.WriteByte('\t')
			str.WriteString(t.Format())
			str.WriteByte('\n')
		}
	}
	return str.String()
}

// BlockIteratorBegin implements Builder.BlockIteratorBegin.
func (b *builder) BlockIteratorBegin() BasicBlock {
	if blk := b.blockIteratorBegin(); blk != nil {
		return blk
	}
	return nil // BasicBlock((*basicBlock)(nil)) != BasicBlock(nil)
}

// BlockIteratorNext implements Builder.BlockIteratorNext.
func (b *builder) BlockIteratorNext() BasicBlock {
	if blk := b.blockIteratorNext(); blk != nil {
		return blk
	}
	return nil // BasicBlock((*basicBlock)(nil)) != BasicBlock(nil)
}

// BlockIteratorReversePostOrderBegin implements Builder.BlockIteratorReversePostOrderBegin.
func (b *builder) BlockIteratorReversePostOrderBegin() BasicBlock {
	if blk := b.blockIteratorReversePostOrderBegin(); blk != nil {
		return blk
	}
	return nil // BasicBlock((*basicBlock)(nil)) != BasicBlock(nil)
}

// BlockIteratorReversePostOrderNext implements Builder.BlockIteratorReversePostOrderNext.
func (b *builder) BlockIteratorReversePostOrderNext() BasicBlock {
	if blk := b.blockIteratorReversePostOrderNext(); blk != nil {
		return blk
	}
	return nil // BasicBlock((*basicBlock)(nil)) != BasicBlock(nil)
}

func (b *builder) blockIteratorReversePostOrderBegin() *basicBlock {
	if !b.donePasses {
		panic("BUG: reverse post-order block iteration is available only after RunPasses")
	}
	b.blockIterCur = 0
	return b.blockIteratorReversePostOrderNext()
}

func (b *builder) blockIteratorReversePostOrderNext() *basicBlock {
	if b.blockIterCur >= len(b.reversePostOrderedBasicBlocks) {
		return nil
	}
	ret := b.reversePostOrderedBasicBlocks[b.blockIterCur]
	b.blockIterCur++
	return ret
}

func (b *builder) blockIteratorBegin() *basicBlock {
	b.blockIterCur = 0
	return b.blockIteratorNext()
}

func (b *builder) blockIteratorNext() *basicBlock {
	index := b.blockIterCur
	for {
		if index == b.basicBlocksPool.Allocated() {
			return nil
		}
		ret := b.basicBlocksPool.View(index)
		index++
		if !ret.invalid {
			b.blockIterCur = index
			return ret
		}
	}
}
