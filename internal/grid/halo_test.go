package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaloFillsFromNeighborWhenPresent(t *testing.T) {
	spec := newTestSpec(8)
	f := NewField(spec, [3]int{8, 8, 8})
	for pos := 0; pos < spec.Size(); pos++ {
		f.Array(pos).Fill(float64(pos))
	}

	pos := 0
	nb, ok := f.NeighborAt(pos, 2, 1)
	require.True(t, ok)

	dst := NewArray(f.Array(pos).Extent())
	h := UpdateAsync(dst, f, pos, Zero)
	h.Wait()

	ext := dst.Extent()
	got := dst.Get(0, 0, ext[2])
	assert.Equal(t, float64(nb), got)
}

func TestHaloFillsFromBoundaryAtDomainEdge(t *testing.T) {
	spec := newTestSpec(8)
	f := NewField(spec, [3]int{8, 8, 8})
	for pos := 0; pos < spec.Size(); pos++ {
		f.Array(pos).Fill(-1)
	}

	// the unit at coordinate {0,0,0} has no negative neighbor on any axis.
	pos := spec.PositionOf([3]int{0, 0, 0})
	dst := NewArray(f.Array(pos).Extent())
	called := false
	boundary := func(g [3]int) float64 {
		called = true
		return 42
	}
	h := UpdateAsync(dst, f, pos, boundary)
	h.Wait()

	assert.True(t, called)
	assert.Equal(t, 42.0, dst.Get(-1, 0, 0))
}

// Zero is a trivial BoundaryFunc usable from tests in this package
// without importing internal/boundary (which would create an import
// cycle back into grid).
func Zero(global [3]int) float64 { return 0 }
