package ir

import (
	"testing"

	"github.com/Infarh/ILGPU/internal/testing/require"
)

func TestOpcode_kind(t *testing.T) {
	for opcode, exp := range map[Opcode]ValueKind{
		OpcodeJump:     ValueKindTerminator,
		OpcodeBrz:      ValueKindTerminator,
		OpcodeBrnz:     ValueKindTerminator,
		OpcodeReturn:   ValueKindTerminator,
		OpcodeParam:    ValueKindParam,
		OpcodePhi:      ValueKindPhi,
		OpcodeCall:     ValueKindCall,
		OpcodeLoad:     ValueKindMemory,
		OpcodeStore:    ValueKindMemory,
		OpcodeIconst:   ValueKindOrdinary,
		OpcodeF32const: ValueKindOrdinary,
		OpcodeF64const: ValueKindOrdinary,
		OpcodeIadd:     ValueKindOrdinary,
		OpcodeIsub:     ValueKindOrdinary,
		OpcodeImul:     ValueKindOrdinary,
		OpcodeBand:     ValueKindOrdinary,
		OpcodeBor:      ValueKindOrdinary,
		OpcodeBxor:     ValueKindOrdinary,
		OpcodeIshl:     ValueKindOrdinary,
		OpcodeIcmp:     ValueKindOrdinary,
		OpcodeFadd:     ValueKindOrdinary,
		OpcodeFmul:     ValueKindOrdinary,
		OpcodeSelect:   ValueKindOrdinary,
	} {
		require.Equal(t, exp, opcode.kind(), "opcode %s", opcode)
	}

	// Every opcode must be classified and printable.
	for o := opcodeInvalid + 1; o < opcodeEnd; o++ {
		require.True(t, o.String() != "")
		o.kind() // must not panic.
	}
}

func TestValue_Format(t *testing.T) {
	b := NewBuilder()
	blk0, blk1 := b.AllocateBasicBlock(), b.AllocateBasicBlock()
	b.SetCurrentBlock(blk0)

	p0 := b.AllocateValue() // v0
	p0.AsParam(0, TypeI64)
	b.InsertValue(p0)

	i64c := b.AllocateValue() // v1
	i64c.AsIconst64(0xff)
	b.InsertValue(i64c)

	f32c := b.AllocateValue() // v2
	f32c.AsF32const(1.5)
	b.InsertValue(f32c)

	f64c := b.AllocateValue() // v3
	f64c.AsF64const(-0.25)
	b.InsertValue(f64c)

	callNoResult := b.AllocateValue() // v4
	callNoResult.AsCall(FuncRef(5), typeInvalid)
	b.InsertValue(callNoResult)

	call := b.AllocateValue() // v5
	call.AsCall(FuncRef(1), TypeI32, p0, i64c)
	b.InsertValue(call)

	icmp := b.AllocateValue() // v6
	icmp.AsIcmp(IntegerCmpCondUnsignedGreaterThan, i64c, p0)
	b.InsertValue(icmp)

	sel := b.AllocateValue() // v7
	sel.AsSelect(icmp, call, call)
	b.InsertValue(sel)

	xor := b.AllocateValue() // v8
	xor.AsBxor(i64c, p0)
	b.InsertValue(xor)

	shl := b.AllocateValue() // v9
	shl.AsIshl(xor, i64c)
	b.InsertValue(shl)

	brnz := b.AllocateValue() // v10
	brnz.AsBrnz(icmp, blk1, blk0)
	b.InsertValue(brnz)

	for _, tc := range []struct {
		v   *Value
		exp string
	}{
		{v: p0, exp: "v0:i64 = Param 0"},
		{v: i64c, exp: "v1:i64 = Iconst_64 0xff"},
		{v: f32c, exp: "v2:f32 = F32const 1.500000"},
		{v: f64c, exp: "v3:f64 = F64const -0.250000"},
		{v: callNoResult, exp: "Call f5"},
		{v: call, exp: "v5:i32 = Call f1, v0, v1"},
		{v: icmp, exp: "v6:i32 = Icmp gt_u, v1, v0"},
		{v: sel, exp: "v7:i32 = Select v6, v5, v5"},
		{v: xor, exp: "v8:i64 = Bxor v1, v0"},
		{v: shl, exp: "v9:i64 = Ishl v8, v1"},
		{v: brnz, exp: "Brnz v6, blk1, blk0"},
	} {
		require.Equal(t, tc.exp, tc.v.Format())
	}
}

func TestType_String(t *testing.T) {
	for typ, exp := range map[Type]string{
		typeInvalid: "",
		TypeI32:     "i32",
		TypeI64:     "i64",
		TypeF32:     "f32",
		TypeF64:     "f64",
	} {
		require.Equal(t, exp, typ.String())
	}
}

func TestIntegerCmpCond_String(t *testing.T) {
	for cond, exp := range map[IntegerCmpCond]string{
		IntegerCmpCondEqual:                      "eq",
		IntegerCmpCondNotEqual:                   "neq",
		IntegerCmpCondSignedLessThan:             "lt_s",
		IntegerCmpCondSignedGreaterThanOrEqual:   "ge_s",
		IntegerCmpCondSignedGreaterThan:          "gt_s",
		IntegerCmpCondSignedLessThanOrEqual:      "le_s",
		IntegerCmpCondUnsignedLessThan:           "lt_u",
		IntegerCmpCondUnsignedGreaterThanOrEqual: "ge_u",
		IntegerCmpCondUnsignedGreaterThan:        "gt_u",
		IntegerCmpCondUnsignedLessThanOrEqual:    "le_u",
	} {
		require.Equal(t, exp, cond.String())
	}

	require.Panics(t, func() { _ = integerCmpCondEnd.String() })
}
