package ir

import (
	"fmt"
	"math"
	"strings"
)

// Opcode represents an SSA operation.
type Opcode uint32

const (
	opcodeInvalid Opcode = iota

	// OpcodeJump unconditionally jumps to the target block: `Jump blk`.
	OpcodeJump

	// OpcodeBrz branches into the first target block if the value `c` equals zero,
	// otherwise into the second: `Brz c, blkZero, blkNonZero`.
	OpcodeBrz

	// OpcodeBrnz branches into the first target block if the value `c` is not zero,
	// otherwise into the second: `Brnz c, blkNonZero, blkZero`.
	OpcodeBrnz

	// OpcodeReturn returns from the function: `Return rvalues`.
	OpcodeReturn

	// OpcodeParam represents the n-th parameter of the function, pinned to the entry block.
	OpcodeParam

	// OpcodePhi merges the incoming values at a control-flow join:
	// `v = Phi x, y, ...` where the i-th operand arrives over the i-th predecessor edge.
	OpcodePhi

	// OpcodeCall calls the function specified by FuncRef: `v = Call FN, args...`.
	OpcodeCall

	// OpcodeLoad loads a value from the address `p` at the given offset: `v = Load p, Offset`.
	OpcodeLoad

	// OpcodeStore stores the value `x` to the address `p` at the given offset:
	// `Store x, p, Offset`.
	OpcodeStore

	// OpcodeIconst represents an integer constant.
	OpcodeIconst

	// OpcodeF32const represents a 32-bit float constant: `v = F32const N`.
	OpcodeF32const

	// OpcodeF64const represents a 64-bit float constant: `v = F64const N`.
	OpcodeF64const

	// OpcodeIadd performs integer addition: `v = Iadd x, y`.
	OpcodeIadd

	// OpcodeIsub performs integer subtraction: `v = Isub x, y`.
	OpcodeIsub

	// OpcodeImul performs integer multiplication: `v = Imul x, y`.
	OpcodeImul

	// OpcodeBand performs bitwise and: `v = Band x, y`.
	OpcodeBand

	// OpcodeBor performs bitwise or: `v = Bor x, y`.
	OpcodeBor

	// OpcodeBxor performs bitwise xor: `v = Bxor x, y`.
	OpcodeBxor

	// OpcodeIshl performs integer shift left: `v = Ishl x, y`.
	OpcodeIshl

	// OpcodeIcmp compares two integers: `v = Icmp Cond, x, y`.
	OpcodeIcmp

	// OpcodeFadd performs float addition: `v = Fadd x, y`.
	OpcodeFadd

	// OpcodeFmul performs float multiplication: `v = Fmul x, y`.
	OpcodeFmul

	// OpcodeSelect chooses between two values based on a condition:
	// `v = Select c, x, y`.
	OpcodeSelect

	opcodeEnd
)

// kind returns the ValueKind for this opcode. The switch is exhaustive over all opcodes so
// that adding an opcode without classifying it fails loudly.
func (o Opcode) kind() ValueKind {
	switch o {
	case OpcodeJump, OpcodeBrz, OpcodeBrnz, OpcodeReturn:
		return ValueKindTerminator
	case OpcodeParam:
		return ValueKindParam
	case OpcodePhi:
		return ValueKindPhi
	case OpcodeCall:
		return ValueKindCall
	case OpcodeLoad, OpcodeStore:
		return ValueKindMemory
	case OpcodeIconst, OpcodeF32const, OpcodeF64const,
		OpcodeIadd, OpcodeIsub, OpcodeImul,
		OpcodeBand, OpcodeBor, OpcodeBxor, OpcodeIshl,
		OpcodeIcmp, OpcodeFadd, OpcodeFmul, OpcodeSelect:
		return ValueKindOrdinary
	}
	panic(fmt.Sprintf("BUG: unknown opcode %d", o))
}

// FuncRef is a reference to a function which can be the callee of OpcodeCall.
type FuncRef uint32

// String implements fmt.Stringer.
func (r FuncRef) String() string {
	return fmt.Sprintf("f%d", r)
}

func (v *Value) AsJump(target BasicBlock) {
	v.opcode = OpcodeJump
	v.target = target.(*basicBlock)
}

func (v *Value) AsBrz(c *Value, blkZero, blkNonZero BasicBlock) {
	v.opcode = OpcodeBrz
	v.args = append(v.args, c)
	v.target = blkZero.(*basicBlock)
	v.targetElse = blkNonZero.(*basicBlock)
}

func (v *Value) AsBrnz(c *Value, blkNonZero, blkZero BasicBlock) {
	v.opcode = OpcodeBrnz
	v.args = append(v.args, c)
	v.target = blkNonZero.(*basicBlock)
	v.targetElse = blkZero.(*basicBlock)
}

func (v *Value) AsReturn(rvalues ...*Value) {
	v.opcode = OpcodeReturn
	v.args = append(v.args, rvalues...)
}

func (v *Value) AsParam(n uint32, typ Type) {
	v.opcode = OpcodeParam
	v.typ = typ
	v.u64 = uint64(n)
}

// AsPhi makes this value a phi. The number of arguments must equal the number of
// predecessor edges of the block the phi is inserted into, in matching order.
func (v *Value) AsPhi(typ Type, args ...*Value) {
	v.opcode = OpcodePhi
	v.typ = typ
	v.args = append(v.args, args...)
}

// AsCall makes this value a call to `ref`. `typ` is the result type; pass the zero Type for
// a call which produces no result.
func (v *Value) AsCall(ref FuncRef, typ Type, args ...*Value) {
	v.opcode = OpcodeCall
	v.typ = typ
	v.u64 = uint64(ref)
	v.args = append(v.args, args...)
}

func (v *Value) AsLoad(ptr *Value, offset uint32, typ Type) {
	v.opcode = OpcodeLoad
	v.typ = typ
	v.args = append(v.args, ptr)
	v.u64 = uint64(offset)
}

func (v *Value) AsStore(value, ptr *Value, offset uint32) {
	v.opcode = OpcodeStore
	v.args = append(v.args, value, ptr)
	v.u64 = uint64(offset)
}

func (v *Value) AsIconst64(val uint64) {
	v.opcode = OpcodeIconst
	v.typ = TypeI64
	v.u64 = val
}

func (v *Value) AsIconst32(val uint32) {
	v.opcode = OpcodeIconst
	v.typ = TypeI32
	v.u64 = uint64(val)
}

func (v *Value) AsF32const(f float32) {
	v.opcode = OpcodeF32const
	v.typ = TypeF32
	v.u64 = uint64(math.Float32bits(f))
}

func (v *Value) AsF64const(f float64) {
	v.opcode = OpcodeF64const
	v.typ = TypeF64
	v.u64 = math.Float64bits(f)
}

func (v *Value) AsIadd(x, y *Value) {
	v.asBinary(OpcodeIadd, x, y)
}

func (v *Value) AsIsub(x, y *Value) {
	v.asBinary(OpcodeIsub, x, y)
}

func (v *Value) AsImul(x, y *Value) {
	v.asBinary(OpcodeImul, x, y)
}

func (v *Value) AsBand(x, y *Value) {
	v.asBinary(OpcodeBand, x, y)
}

func (v *Value) AsBor(x, y *Value) {
	v.asBinary(OpcodeBor, x, y)
}

func (v *Value) AsBxor(x, y *Value) {
	v.asBinary(OpcodeBxor, x, y)
}

func (v *Value) AsIshl(x, y *Value) {
	v.asBinary(OpcodeIshl, x, y)
}

func (v *Value) AsFadd(x, y *Value) {
	v.asBinary(OpcodeFadd, x, y)
}

func (v *Value) AsFmul(x, y *Value) {
	v.asBinary(OpcodeFmul, x, y)
}

func (v *Value) asBinary(opcode Opcode, x, y *Value) {
	v.opcode = opcode
	v.typ = x.typ
	v.args = append(v.args, x, y)
}

func (v *Value) AsIcmp(c IntegerCmpCond, x, y *Value) {
	v.opcode = OpcodeIcmp
	v.typ = TypeI32
	v.cond = c
	v.args = append(v.args, x, y)
}

func (v *Value) AsSelect(c, x, y *Value) {
	v.opcode = OpcodeSelect
	v.typ = x.typ
	v.args = append(v.args, c, x, y)
}

// Format returns the debug string of this value.
func (v *Value) Format() string {
	var instSuffix string
	switch v.opcode {
	case OpcodeJump:
		instSuffix = " " + v.target.Name()
	case OpcodeBrz, OpcodeBrnz:
		instSuffix = fmt.Sprintf(" %s, %s, %s", v.args[0], v.target.Name(), v.targetElse.Name())
	case OpcodeReturn:
		if len(v.args) > 0 {
			instSuffix = " " + joinValues(v.args)
		}
	case OpcodeParam:
		instSuffix = fmt.Sprintf(" %d", v.u64)
	case OpcodePhi:
		instSuffix = " " + joinValues(v.args)
	case OpcodeCall:
		instSuffix = fmt.Sprintf(" %s, %s", FuncRef(v.u64), joinValues(v.args))
		if len(v.args) == 0 {
			instSuffix = " " + FuncRef(v.u64).String()
		}
	case OpcodeLoad:
		instSuffix = fmt.Sprintf(" %s, %#x", v.args[0], v.u64)
	case OpcodeStore:
		instSuffix = fmt.Sprintf(" %s, %s, %#x", v.args[0], v.args[1], v.u64)
	case OpcodeIconst:
		switch v.typ {
		case TypeI32:
			instSuffix = fmt.Sprintf("_32 %#x", uint32(v.u64))
		case TypeI64:
			instSuffix = fmt.Sprintf("_64 %#x", v.u64)
		}
	case OpcodeF32const:
		instSuffix = fmt.Sprintf(" %f", math.Float32frombits(uint32(v.u64)))
	case OpcodeF64const:
		instSuffix = fmt.Sprintf(" %f", math.Float64frombits(v.u64))
	case OpcodeIcmp:
		instSuffix = fmt.Sprintf(" %s, %s, %s", v.cond, v.args[0], v.args[1])
	case OpcodeIadd, OpcodeIsub, OpcodeImul, OpcodeBand, OpcodeBor, OpcodeBxor,
		OpcodeIshl, OpcodeFadd, OpcodeFmul, OpcodeSelect:
		instSuffix = " " + joinValues(v.args)
	default:
		panic(fmt.Sprintf("TODO: format for %s", v.opcode))
	}

	instr := v.opcode.String() + instSuffix
	if v.typ.invalid() {
		return instr
	}
	return fmt.Sprintf("%s:%s = %s", v, v.typ, instr)
}

func joinValues(vs []*Value) string {
	strs := make([]string, len(vs))
	for i, v := range vs {
		strs[i] = v.String()
	}
	return strings.Join(strs, ", ")
}

// String implements fmt.Stringer.
func (o Opcode) String() (ret string) {
	switch o {
	case OpcodeJump:
		return "Jump"
	case OpcodeBrz:
		return "Brz"
	case OpcodeBrnz:
		return "Brnz"
	case OpcodeReturn:
		return "Return"
	case OpcodeParam:
		return "Param"
	case OpcodePhi:
		return "Phi"
	case OpcodeCall:
		return "Call"
	case OpcodeLoad:
		return "Load"
	case OpcodeStore:
		return "Store"
	case OpcodeIconst:
		return "Iconst"
	case OpcodeF32const:
		return "F32const"
	case OpcodeF64const:
		return "F64const"
	case OpcodeIadd:
		return "Iadd"
	case OpcodeIsub:
		return "Isub"
	case OpcodeImul:
		return "Imul"
	case OpcodeBand:
		return "Band"
	case OpcodeBor:
		return "Bor"
	case OpcodeBxor:
		return "Bxor"
	case OpcodeIshl:
		return "Ishl"
	case OpcodeIcmp:
		return "Icmp"
	case OpcodeFadd:
		return "Fadd"
	case OpcodeFmul:
		return "Fmul"
	case OpcodeSelect:
		return "Select"
	}
	panic(fmt.Sprintf("unknown opcode %d", o))
}
