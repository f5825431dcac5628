package mg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProlongAddsConstantCoarseCorrectionEverywhere(t *testing.T) {
	tm := newSingleUnitTeam()
	fine := NewFinest(tm, [3]int{5, 5, 5}, unitCube([3]int{5, 5, 5}))
	coarse := NewCoarser(fine)

	coarse.Current().Fill(5.0)
	fine.Current().Fill(0.0)

	Prolong(coarse, fine)

	ext := fine.Current().Extent()
	for z := 0; z < ext[0]; z++ {
		for y := 0; y < ext[1]; y++ {
			for x := 0; x < ext[2]; x++ {
				assert.InDeltaf(t, 5.0, fine.Current().Owned(z, y, x), 1e-12,
					"cell %d,%d,%d: a constant coarse field interpolates to the same constant everywhere", z, y, x)
			}
		}
	}
}

func TestProlongClampsAtCoarseDomainEdge(t *testing.T) {
	tm := newSingleUnitTeam()
	fine := NewFinest(tm, [3]int{5, 5, 5}, unitCube([3]int{5, 5, 5}))
	coarse := NewCoarser(fine)

	// Non-constant coarse field so the clamp at the far edge is
	// observable: without clamping, the last fine row would try to read
	// one past coarse's last owned row.
	coarseExt := coarse.Current().Extent()
	for z := 0; z < coarseExt[0]; z++ {
		for y := 0; y < coarseExt[1]; y++ {
			for x := 0; x < coarseExt[2]; x++ {
				coarse.Current().SetOwned(z, y, x, float64(z))
			}
		}
	}
	fine.Current().Fill(0.0)

	assert.NotPanics(t, func() { Prolong(coarse, fine) })

	fineExt := fine.Current().Extent()
	last := fine.Current().Owned(fineExt[0]-1, 0, 0)
	assert.InDelta(t, float64(coarseExt[0]-1), last, 1e-12,
		"the last fine row has no higher coarse neighbor, so it clamps to the last coarse row's value")
}
