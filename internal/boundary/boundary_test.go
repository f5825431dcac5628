package boundary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroIsAlwaysZero(t *testing.T) {
	assert.Equal(t, 0.0, Zero([3]int{-1, 3, 3}))
	assert.Equal(t, 0.0, Zero([3]int{7, 0, 0}))
}

func TestHotDiskFiresOnlyOnTheTopAndBottomZFaces(t *testing.T) {
	dim := [3]int{8, 8, 8}
	f := HotDisk(dim)

	// centre of the top (z == -1) and bottom (z == dim[0]) faces sits
	// well inside the disk radius, so both should read fully hot (9.0).
	top := f([3]int{-1, dim[1] / 2, dim[2] / 2})
	bottom := f([3]int{dim[0], dim[1] / 2, dim[2] / 2})
	assert.InDelta(t, hotDiskHigh, top, 1e-9)
	assert.InDelta(t, hotDiskHigh, bottom, 1e-9)

	// a corner of the same faces sits outside the disk radius, fully cold (2.0).
	topCorner := f([3]int{-1, 0, 0})
	bottomCorner := f([3]int{dim[0], 0, 0})
	assert.InDelta(t, hotDiskLow, topCorner, 1e-9)
	assert.InDelta(t, hotDiskLow, bottomCorner, 1e-9)
	assert.Less(t, topCorner, top)
	assert.Less(t, bottomCorner, bottom)
}

func TestHotDiskFallsBackToOneAwayFromZFaces(t *testing.T) {
	dim := [3]int{8, 8, 8}
	f := HotDisk(dim)

	// any coordinate whose z component is a genuine in-domain or
	// y/x-face ghost value (never -1 or dim[0]) must take the uniform
	// fallback, including a z == 0 coordinate that happens to share the
	// face-index value of an x/y ghost cell.
	assert.Equal(t, 1.0, f([3]int{0, -1, 3}))
	assert.Equal(t, 1.0, f([3]int{3, dim[1], 3}))
	assert.Equal(t, 1.0, f([3]int{dim[0] - 1, 0, -1}))
}
