package ir

import (
	"testing"

	"github.com/Infarh/ILGPU/internal/testing/require"
)

func TestBasicBlock_numPhis(t *testing.T) {
	b := NewBuilder().(*builder)
	blk0, blk1 := b.allocateBasicBlock(), b.allocateBasicBlock()

	b.SetCurrentBlock(blk0)
	c := b.AllocateValue()
	c.AsIconst32(1)
	b.InsertValue(c)
	jmp := b.AllocateValue()
	jmp.AsJump(blk1)
	b.InsertValue(jmp)

	b.SetCurrentBlock(blk1)
	phi := b.AllocateValue()
	phi.AsPhi(TypeI32, c)
	b.InsertValue(phi)
	phi2 := b.AllocateValue()
	phi2.AsPhi(TypeI32, c)
	b.InsertValue(phi2)
	add := b.AllocateValue()
	add.AsIadd(phi, phi2)
	b.InsertValue(add)
	blk1.AddPred(blk0, jmp)

	require.Equal(t, 0, blk0.numPhis())
	require.Equal(t, 2, blk1.numPhis())
}

func TestBasicBlock_String(t *testing.T) {
	b := NewBuilder().(*builder)
	blk0, blk1, blk2 := b.allocateBasicBlock(), b.allocateBasicBlock(), b.allocateBasicBlock()
	blk2.AddPred(blk0, &Value{})
	blk2.AddPred(blk1, &Value{})

	require.Equal(t, "blk0:", blk0.String())
	require.Equal(t, "blk2: <-- (blk0,blk1)", blk2.String())
}
