package mg

// Prolong adds a tri-linearly interpolated correction from
// coarse.Current() into fine.Current(), the defect-correction step
// that follows a coarse-grid solve in a V-cycle (scaleup in
// original_source/multigrid3d.cpp). It gathers from coarse rather than
// scattering into fine: for every owned fine cell, up to 8 surrounding
// coarse cells are blended by how close the fine cell sits to each of
// them along every axis.
//
// When a fine cell's higher-index coarse neighbor along some axis
// would fall outside that axis's coarse extent — the coarsest row of
// an odd-sized fine domain, or a partition boundary between
// differently sized BLOCKED coarse chunks — the neighbor index is
// clamped back to the last valid coarse cell instead of interpolating
// past the domain, the same partition-boundary dedup
// original_source/multigrid3d.cpp's scaleup performs via its `sub[d]`
// adjustment.
func Prolong(coarse, fine *Level) {
	fineArray := fine.Current()
	ext := fineArray.Extent()
	origin := fine.CurrentField().GlobalOrigin(fine.Pos())
	coarseField := coarse.CurrentField()
	coarseDim := coarse.Dim()

	for z := 0; z < ext[0]; z++ {
		for y := 0; y < ext[1]; y++ {
			for x := 0; x < ext[2]; x++ {
				fg := [3]int{origin[0] + z, origin[1] + y, origin[2] + x}
				correction := interpolate(coarseField, coarseDim, fg)
				fineArray.SetOwned(z, y, x, fineArray.Owned(z, y, x)+correction)
			}
		}
	}
}

// interpolate evaluates the tri-linear blend of the coarse field at
// fine global coordinate fg (which lies on a grid twice as fine as
// coarse's). This mirrors Restrict's coarse-point-at-g-maps-to-fine-
// point-at-2g+1 convention exactly: a fine index that is odd sits
// exactly on a coarse point (fg-1)/2, so it takes that point's value
// outright (frac 0); a fine index that is even sits exactly halfway
// between coarse points fg/2-1 and fg/2, so it blends them evenly
// (frac 0.5).
func interpolate(coarseField interface {
	GlobalGet(g [3]int) float64
}, coarseDim, fg [3]int) float64 {
	var lo, hi [3]int
	var frac [3]float64
	for d := 0; d < 3; d++ {
		if fg[d]%2 != 0 {
			lo[d] = (fg[d] - 1) / 2
			hi[d] = lo[d]
			frac[d] = 0
		} else {
			lo[d] = fg[d]/2 - 1
			hi[d] = fg[d] / 2
			frac[d] = 0.5
		}
		if lo[d] < 0 {
			lo[d] = 0 // sub[d] dedup: clamp at the domain/partition edge
		}
		if hi[d] >= coarseDim[d] {
			hi[d] = coarseDim[d] - 1
		}
		if hi[d] < lo[d] {
			hi[d] = lo[d]
		}
	}

	sum := 0.0
	for dz := 0; dz < 2; dz++ {
		for dy := 0; dy < 2; dy++ {
			for dx := 0; dx < 2; dx++ {
				g := [3]int{pick(lo[0], hi[0], dz), pick(lo[1], hi[1], dy), pick(lo[2], hi[2], dx)}
				w := axisWeight(frac[0], dz) * axisWeight(frac[1], dy) * axisWeight(frac[2], dx)
				if w == 0 {
					continue
				}
				sum += coarseField.GlobalGet(g) * w
			}
		}
	}
	return sum
}

func pick(lo, hi, which int) int {
	if which == 0 {
		return lo
	}
	return hi
}

func axisWeight(frac float64, which int) float64 {
	if which == 0 {
		return 1 - frac
	}
	return frac
}
