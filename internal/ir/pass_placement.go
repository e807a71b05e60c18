package ir

import "github.com/Infarh/ILGPU/internal/irapi"

// placementState tracks the progress of a value through passCodePlacement.
// The transitions are monotonic: unplaced -> enqueued -> placed, and placed is terminal.
type placementState byte

const (
	placementUnplaced placementState = iota
	placementEnqueued
	placementPlaced
)

// blockSnapshot records the contents of a basic block at the beginning of passCodePlacement,
// taken before the block's value list is cleared for rebuilding.
type blockSnapshot struct {
	// values are the block's non-terminator values in reverse definition order. Values
	// defined late in a block are the likely anchors from which the recursive placement
	// descends, so they have to be processed first.
	values []*Value
	// numPhis is the number of phi values the block contained.
	numPhis int
}

// placementQueueEntry is a pending placement attempt.
type placementQueueEntry struct {
	v *Value
	// candidate is the placement block of the consumer which caused v to be enqueued.
	candidate *basicBlock
}

// insertionMode selects where within the target block a placed value is inserted.
type insertionMode byte

const (
	// insertAtBlockStart appends into the cleared block. Only used while re-establishing phi
	// values, which preserves their original relative order because nothing else has been
	// placed yet.
	insertAtBlockStart insertionMode = iota
	// insertAfterPhis splices at the index right past the block's snapshot phi count.
	// Operands are placed after their consumers and land in front of them, so a block's
	// rebuilt value list ends up in dependency order.
	insertAfterPhis
)

// passCodePlacement moves every movable value into the lowest block which still dominates
// all of its uses, minimizing live ranges across basic blocks. This is a sinking placement,
// the complement of hoisting done by a loop-invariant code motion pass.
//
// The pass empties each block's value list, then rebuilds all of them: phi values go back to
// their original position first, and afterwards the blocks are processed in post-order,
// force-placing the anchors of each block (its terminator and every unmovable value). Each
// anchor pulls in its movable operand subtree through the placement queue.
//
// This pass must run after passCalculateImmediateDominators.
func passCodePlacement(b *builder) {
	b.snapshotBlockContents()

	// Phi values keep their block and their relative order; they must be back in place
	// before anything else is placed because the dominator queries below observe the final
	// positions of all uses.
	for _, phi := range b.phiValues {
		b.placeValueDirect(phi, phi.blk, insertAtBlockStart)
	}

	for i := len(b.reversePostOrderedBasicBlocks) - 1; i >= 0; i-- {
		blk := b.reversePostOrderedBasicBlocks[i]
		b.placeValueRecursive(blk.terminator)
		for _, v := range b.blockSnapshots[blk.id].values {
			if b.placementStates[v.id] == placementPlaced || b.canMoveValue(v) {
				// Movable values are placed on demand when a consumer pulls them in; a
				// movable value nobody pulled in is dead and simply stays out of the
				// function.
				continue
			}
			b.placeValueRecursive(v)
		}
	}

	if irapi.PlacementVerificationEnabled {
		b.verifyPlacement()
	}
}

// canMoveValue reports whether v may be relocated out of its current block.
func (b *builder) canMoveValue(v *Value) bool {
	// Values defined in another function never move, e.g. constants shared across functions.
	if v.fn != b {
		return false
	}
	switch v.Kind() {
	case ValueKindParam, ValueKindMemory, ValueKindCall, ValueKindPhi, ValueKindTerminator:
		return false
	case ValueKindOrdinary:
	}
	// A consumer registered by another function freezes the value: its placement state and
	// block belong to that function's tables, not to this one. A phi's use conceptually
	// happens at the end of one specific predecessor block, which the common dominator query
	// cannot express. Freeze the definition in both cases.
	for _, use := range v.uses {
		if use.fn != b || use.opcode == OpcodePhi {
			return false
		}
	}
	return true
}

// snapshotBlockContents records, for every valid block, its values in reverse definition
// order plus its phi count, collects all phi values into b.phiValues, and clears the block's
// value list so the placement can rebuild it incrementally.
func (b *builder) snapshotBlockContents() {
	if n := b.basicBlocksPool.Allocated(); len(b.blockSnapshots) < n {
		b.blockSnapshots = append(b.blockSnapshots, make([]blockSnapshot, n-len(b.blockSnapshots))...)
	}
	if n := int(b.nextValueID); len(b.placementStates) < n {
		b.placementStates = append(b.placementStates, make([]placementState, n-len(b.placementStates))...)
	}
	for i := range b.placementStates {
		b.placementStates[i] = placementUnplaced
	}

	b.phiValues = b.phiValues[:0]
	for blk := b.blockIteratorBegin(); blk != nil; blk = b.blockIteratorNext() {
		if blk.terminator == nil {
			panic("BUG: " + blk.Name() + " has no terminator")
		}
		snapshot := &b.blockSnapshots[blk.id]
		snapshot.values = snapshot.values[:0]
		snapshot.numPhis = 0

		vs := blk.values
		for i := len(vs) - 1; i >= 0; i-- {
			snapshot.values = append(snapshot.values, vs[i])
		}
		for _, v := range vs {
			if v.opcode == OpcodePhi {
				snapshot.numPhis++
				b.phiValues = append(b.phiValues, v)
			}
		}
		blk.values = blk.values[:0]
	}
}

// placeValueRecursive force-places the anchor `root` into its own block and then drains the
// placement queue, sinking root's movable operand subtree as far towards its uses as
// legality allows.
//
// The queue keeps the stack use constant regardless of the operand fan-out; only the
// descent from a value to its direct operands is expressed through it.
func (b *builder) placeValueRecursive(root *Value) {
	if b.placementStates[root.id] != placementPlaced {
		if b.canMoveValue(root) {
			panic("BUG: force-placing the movable value " + root.String())
		}
		b.placeValueDirect(root, root.blk, insertAfterPhis)
	}

	queue := b.enqueueOperands(b.placementQueue[:0], root, root.blk)
	for head := 0; head < len(queue); head++ {
		entry := queue[head]
		if b.placementStates[entry.v.id] == placementPlaced {
			// The value was reachable from multiple consumers and an earlier attempt won.
			continue
		}
		if target := b.tryPlaceValue(entry.v, entry.candidate); target != nil {
			queue = b.enqueueOperands(queue, entry.v, target)
		}
		// A failed attempt is dropped without retrying. This is sound because the anchors
		// are processed in post-order and within a block in reverse definition order: by the
		// time a movable value is dequeued for the last time, all of its uses have been
		// placed. verifyPlacement guards this ordering invariant.
	}
	b.placementQueue = queue[:0]
}

// enqueueOperands appends a placement attempt for each operand of v, in reverse operand
// order, with `candidate` as the block the consumer was placed into.
func (b *builder) enqueueOperands(queue []placementQueueEntry, v *Value, candidate *basicBlock) []placementQueueEntry {
	for i := len(v.args) - 1; i >= 0; i-- {
		arg := v.args[i]
		// Values of other functions have no placement state here and can never be placed.
		if arg.fn != b || b.placementStates[arg.id] == placementPlaced {
			continue
		}
		b.placementStates[arg.id] = placementEnqueued
		queue = append(queue, placementQueueEntry{v: arg, candidate: candidate})
	}
	return queue
}

// tryPlaceValue attempts to sink v into the lowest block which dominates `candidate` and
// every use of v, and returns that block. Returns nil if v is not movable or some use has
// not been placed yet.
func (b *builder) tryPlaceValue(v *Value, candidate *basicBlock) *basicBlock {
	if !b.canMoveValue(v) {
		return nil
	}
	for _, use := range v.uses {
		// Phi uses are exempt: phi operand positions were fixed before the general
		// placement began.
		if b.placementStates[use.id] != placementPlaced && use.opcode != OpcodePhi {
			return nil
		}
	}

	target := candidate
	for _, use := range v.uses {
		target = b.commonDominator(target, use.blk)
	}
	b.placeValueDirect(v, target, insertAfterPhis)
	return target
}

// placeValueDirect marks v placed and inserts it into blk at the position dictated by the
// insertion mode. Terminators only record the state: they are part of the block structure
// and are not reinserted.
func (b *builder) placeValueDirect(v *Value, blk *basicBlock, mode insertionMode) {
	if b.placementStates[v.id] == placementPlaced {
		panic("BUG: " + v.String() + " is already placed")
	}
	b.placementStates[v.id] = placementPlaced

	if v.Kind() == ValueKindTerminator {
		return
	}
	switch mode {
	case insertAtBlockStart:
		blk.insertValueAt(len(blk.values), v)
	case insertAfterPhis:
		blk.insertValueAt(b.blockSnapshots[blk.id].numPhis, v)
	}
}

// verifyPlacement checks that every block kept its phi values leading, and that every value
// recorded in the snapshot ended up placed. A value
// may legitimately remain unplaced only when it is dead; an unplaced value with a placed
// use-site means either an upstream pass produced an inconsistent graph or the processing
// order of this pass broke.
func (b *builder) verifyPlacement() {
	for blk := b.blockIteratorBegin(); blk != nil; blk = b.blockIteratorNext() {
		if blk.numPhis() != b.blockSnapshots[blk.id].numPhis {
			panic("BUG: the phi values of " + blk.Name() + " did not stay leading")
		}
		for _, v := range b.blockSnapshots[blk.id].values {
			if b.placementStates[v.id] == placementPlaced {
				continue
			}
			for _, use := range v.uses {
				if use.fn == b && b.placementStates[use.id] == placementPlaced {
					panic("BUG: " + v.String() + " was never placed but is used by the placed " + use.String())
				}
			}
		}
	}
}
