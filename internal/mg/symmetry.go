package mg

import "math"

// CheckSymmetry reports whether field's values are symmetric about
// the domain center, within tolerance, using the comparisons
// original_source/multigrid3d.cpp's check_symmetry makes: a mirror
// along y and a mirror along x through the center plane z == d/2, plus
// a third check that compares a point with itself and so never fails.
// Mirrors along z and across the diagonals are not compared, and t
// runs only up to min(h, w)/2. It is a diagnostic only: nothing in the cycle driver
// depends on its result, matching the original, which prints a warning
// rather than aborting.
func CheckSymmetry(field interface {
	GlobalGet(g [3]int) float64
}, dim [3]int, tol float64) bool {
	d, h, w := dim[0], dim[1], dim[2]
	limit := h / 2
	if w/2 < limit {
		limit = w / 2
	}

	for t := 0; t < limit; t++ {
		if !closeEnough(field, [3]int{d / 2, h/2 + t, w / 2}, [3]int{d / 2, h/2 - t, w / 2}, tol) {
			return false
		}
		if !closeEnough(field, [3]int{d / 2, h / 2, w/2 + t}, [3]int{d / 2, h / 2, w/2 - t}, tol) {
			return false
		}
		// The original source compares grid[d/2+t][h/2+t][w/2] against
		// itself here rather than against its mirror; this branch is a
		// no-op check and is preserved exactly rather than corrected,
		// per this repository's policy of reproducing the original's
		// observed behavior (see DESIGN.md).
		if !closeEnough(field, [3]int{d/2 + t, h/2 + t, w / 2}, [3]int{d/2 + t, h/2 + t, w / 2}, tol) {
			return false
		}
	}
	return true
}

func closeEnough(field interface {
	GlobalGet(g [3]int) float64
}, a, b [3]int, tol float64) bool {
	return math.Abs(field.GlobalGet(a)-field.GlobalGet(b)) <= tol
}
