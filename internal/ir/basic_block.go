package ir

import (
	"fmt"
	"strings"
)

// BasicBlock represents the basic block of an SSA function.
type BasicBlock interface {
	fmt.Stringer

	// Name returns the unique string ID of this block, e.g. blk0.
	Name() string

	// AddPred appends `block` as a predecessor to this BB.
	// `branch` is the branch value in `block` used to reach this block.
	AddPred(block BasicBlock, branch *Value)

	// Values returns the non-terminator values of this block in order.
	// The returned slice must not be modified.
	Values() []*Value

	// Terminator returns the terminator value of this block, or nil if the block
	// is still under construction.
	Terminator() *Value

	// Valid returns false if this block was proven unreachable by passDeadBlockElimination.
	Valid() bool
}

type (
	// basicBlock is a basic block in an SSA-transformed function.
	basicBlock struct {
		id basicBlockID
		// values are the phi and ordinary values in definition order, phis leading.
		// The terminator is held separately so passes can clear and rebuild this list
		// without touching the block structure.
		values     []*Value
		terminator *Value
		preds      []basicBlockPredecessorInfo
		success    []*basicBlock
		// reversePostOrder is the index of this block in the reverse post-order,
		// assigned by passCalculateImmediateDominators.
		reversePostOrder int
		// invalid is true if this block is unreachable from the entry block.
		invalid bool
		// loopHeader is true if this block is the target of a back edge.
		loopHeader bool
	}
	basicBlockID uint32

	// basicBlockPredecessorInfo is the information of a predecessor of a basicBlock.
	basicBlockPredecessorInfo struct {
		blk    *basicBlock
		branch *Value
	}
)

// Name implements BasicBlock.Name.
func (bb *basicBlock) Name() string {
	return fmt.Sprintf("blk%d", bb.id)
}

// AddPred implements BasicBlock.AddPred.
func (bb *basicBlock) AddPred(blk BasicBlock, branch *Value) {
	pred := blk.(*basicBlock)
	bb.preds = append(bb.preds, basicBlockPredecessorInfo{blk: pred, branch: branch})
	pred.success = append(pred.success, bb)
}

// Values implements BasicBlock.Values.
func (bb *basicBlock) Values() []*Value {
	return bb.values
}

// Terminator implements BasicBlock.Terminator.
func (bb *basicBlock) Terminator() *Value {
	return bb.terminator
}

// Valid implements BasicBlock.Valid.
func (bb *basicBlock) Valid() bool {
	return !bb.invalid
}

// insertValue appends `v` to the tail of this block and takes ownership of it.
func (bb *basicBlock) insertValue(v *Value) {
	bb.values = append(bb.values, v)
	v.blk = bb
}

// insertValueAt inserts `v` at the intra-block position `i` and takes ownership of it.
func (bb *basicBlock) insertValueAt(i int, v *Value) {
	bb.values = append(bb.values, nil)
	copy(bb.values[i+1:], bb.values[i:])
	bb.values[i] = v
	v.blk = bb
}

// numPhis returns the number of leading phi values in this block.
func (bb *basicBlock) numPhis() (n int) {
	for _, v := range bb.values {
		if v.opcode != OpcodePhi {
			break
		}
		n++
	}
	return
}

func (bb *basicBlock) reset() {
	bb.values = bb.values[:0]
	bb.terminator = nil
	bb.preds = bb.preds[:0]
	bb.success = bb.success[:0]
	bb.reversePostOrder = 0
	bb.invalid, bb.loopHeader = false, false
}

// String implements fmt.Stringer. Only used for debugging.
func (bb *basicBlock) String() string {
	if len(bb.preds) == 0 {
		return bb.Name() + ":"
	}
	preds := make([]string, len(bb.preds))
	for i := range bb.preds {
		preds[i] = bb.preds[i].blk.Name()
	}
	return fmt.Sprintf("%s: <-- (%s)", bb.Name(), strings.Join(preds, ","))
}
