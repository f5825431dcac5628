package boundary

// ScaledDown restricts a boundary function from a fine grid to a
// coarse grid half its size along every axis, by averaging the 2x2x2
// block of fine cells starting at twice each coarse coordinate — the
// boundary-side counterpart to internal/mg's scaledown interior
// restriction. It corresponds to original_source/multigrid3d.cpp's
// scaledownboundary, which the original leaves commented out at its
// one call site: every coarse level in this repository uses Zero
// instead, matching the original's observed behavior, and
// ScaledDown is kept implemented but unreferenced by internal/mg and
// has no unit test (see DESIGN.md, open question 3).
func ScaledDown(fine func(global [3]int) float64) func(global [3]int) float64 {
	return func(coarse [3]int) float64 {
		sum := 0.0
		for dz := 0; dz < 2; dz++ {
			for dy := 0; dy < 2; dy++ {
				for dx := 0; dx < 2; dx++ {
					g := [3]int{
						coarse[0]*2 + dz,
						coarse[1]*2 + dy,
						coarse[2]*2 + dx,
					}
					sum += fine(g)
				}
			}
		}
		return sum / 8
	}
}
