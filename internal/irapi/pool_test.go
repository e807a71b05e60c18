package irapi

import (
	"testing"

	"github.com/Infarh/ILGPU/internal/testing/require"
)

func TestPool(t *testing.T) {
	p := NewPool[int]()
	require.Equal(t, 0, p.Allocated())

	const n = poolPageSize*2 + 5
	for i := 0; i < n; i++ {
		v := p.Allocate()
		*v = i
	}
	require.Equal(t, n, p.Allocated())
	for i := 0; i < n; i++ {
		require.Equal(t, i, *p.View(i))
	}

	p.Reset()
	require.Equal(t, 0, p.Allocated())

	// The pages must be cleared for the next use.
	v := p.Allocate()
	require.Equal(t, 0, *v)
}
