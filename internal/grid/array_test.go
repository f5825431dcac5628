package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayGetSetGhostInclusive(t *testing.T) {
	a := NewArray([3]int{2, 2, 2})
	a.Set(-1, 0, 0, 7)
	a.Set(2, 1, 1, 9)
	assert.Equal(t, 7.0, a.Get(-1, 0, 0))
	assert.Equal(t, 9.0, a.Get(2, 1, 1))
}

func TestArrayOwnedRoundTrip(t *testing.T) {
	a := NewArray([3]int{3, 3, 3})
	a.SetOwned(1, 2, 0, 42)
	assert.Equal(t, 42.0, a.Owned(1, 2, 0))
	assert.Equal(t, 42.0, a.Get(1, 2, 0))
}

func TestArrayFillOnlyTouchesOwnedCells(t *testing.T) {
	a := NewArray([3]int{2, 2, 2})
	a.Set(-1, 0, 0, -99)
	a.Fill(5)

	for z := 0; z < 2; z++ {
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				require.Equal(t, 5.0, a.Owned(z, y, x))
			}
		}
	}
	assert.Equal(t, -99.0, a.Get(-1, 0, 0))
}

func TestArrayCopyOwnedFrom(t *testing.T) {
	src := NewArray([3]int{2, 2, 2})
	src.Fill(3)
	dst := NewArray([3]int{2, 2, 2})
	dst.CopyOwnedFrom(src)

	for z := 0; z < 2; z++ {
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				assert.Equal(t, 3.0, dst.Owned(z, y, x))
			}
		}
	}
}
