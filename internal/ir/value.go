package ir

import "fmt"

// ValueID is the unique identifier of a Value within the function it was allocated for.
// It is dense, so passes can use it to index side tables.
type ValueID uint32

// ValueKind classifies a Value by its role in the SSA graph. The kind decides whether the
// code placement pass may relocate the value: everything but ValueKindOrdinary is an anchor
// pinned to its block.
type ValueKind byte

const (
	// ValueKindOrdinary is a pure computation without control or memory dependencies.
	ValueKindOrdinary ValueKind = iota
	// ValueKindParam is a function parameter, pinned to the entry block.
	ValueKindParam
	// ValueKindMemory is a memory-effecting operation.
	ValueKindMemory
	// ValueKindCall is a function call.
	ValueKindCall
	// ValueKindPhi is a merge point whose i-th operand corresponds to the i-th predecessor
	// edge of its block. Its position is part of its semantics.
	ValueKindPhi
	// ValueKindTerminator ends a basic block.
	ValueKindTerminator
)

// String implements fmt.Stringer.
func (k ValueKind) String() string {
	switch k {
	case ValueKindOrdinary:
		return "ordinary"
	case ValueKindParam:
		return "param"
	case ValueKindMemory:
		return "memory"
	case ValueKindCall:
		return "call"
	case ValueKindPhi:
		return "phi"
	case ValueKindTerminator:
		return "terminator"
	default:
		panic("invalid value kind")
	}
}

// Value is a node in the SSA graph: one operation, defined exactly once, owned by exactly
// one basic block. Since Go doesn't have union type, we use this flattened type for all
// operations, and therefore each field has different meaning depending on Opcode.
type Value struct {
	id     ValueID
	opcode Opcode
	typ    Type

	// args are the operand values in order. For OpcodePhi, args[i] is the value incoming
	// over the i-th predecessor edge of the owning block.
	args []*Value
	// uses are the consumer values. Builder.InsertValue registers the inserted value as a
	// use-site of each of its operands.
	uses []*Value

	// blk is the owning basic block.
	blk *basicBlock
	// target and targetElse are the destination blocks of branch opcodes.
	target, targetElse *basicBlock

	// u64 is an auxiliary payload whose meaning depends on opcode
	// (constant bits, parameter index, load/store offset, callee reference).
	u64  uint64
	cond IntegerCmpCond

	// fn is the builder this value was allocated from. Values from another function never
	// move and are never inserted here.
	fn *builder
}

// ID returns the identifier of this value.
func (v *Value) ID() ValueID {
	return v.id
}

// Opcode returns the opcode of this value.
func (v *Value) Opcode() Opcode {
	return v.opcode
}

// Kind returns the ValueKind of this value, derived from its opcode.
func (v *Value) Kind() ValueKind {
	return v.opcode.kind()
}

// Type returns the result type of this value. The zero Type means the value
// produces no result.
func (v *Value) Type() Type {
	return v.typ
}

// Args returns the operands of this value. The returned slice must not be modified.
func (v *Value) Args() []*Value {
	return v.args
}

// Uses returns the use-sites of this value. The returned slice must not be modified.
func (v *Value) Uses() []*Value {
	return v.uses
}

// Block returns the basic block currently owning this value.
func (v *Value) Block() BasicBlock {
	if v.blk == nil {
		return nil
	}
	return v.blk
}

// String implements fmt.Stringer.
func (v *Value) String() string {
	return fmt.Sprintf("v%d", v.id)
}
