// Package boundary provides the Dirichlet boundary functions the
// finest level's Halo fills ghost cells with at the domain's outer
// face, ported from original_source/multigrid3d.cpp's initboundary
// lambda.
package boundary

// Zero is the trivial boundary condition used by every coarse level
// (the original source never assigns a hot-disk boundary below the
// finest grid).
func Zero(global [3]int) float64 { return 0 }

// hotDiskRadius, hotDiskLow and hotDiskHigh are
// original_source/multigrid3d.cpp's initboundary constants: a disk of
// radius 0.4 (in unit-square coordinates) at 9.0 degrees, everything
// else on the z face at 2.0 degrees.
const (
	hotDiskRadius = 0.4
	hotDiskLow    = 2.0
	hotDiskHigh   = 9.0
	hotDiskM      = 3 // original source hardcodes m=3 (see HotDisk's sampling comment)
)

// HotDisk returns the finest level's boundary function: on the
// z==-1/z==dim[0] faces, a hot disk of value 9.0 centered on the face
// blended against a cold background of 2.0, anti-aliased by averaging
// a (2*hotDiskM-1)x(2*hotDiskM-1) star of sample offsets ix/hotDiskM
// (ix ranging over -hotDiskM+1..hotDiskM-1, so hotDiskM=3 yields 5x5=25
// samples, not hotDiskM*hotDiskM=9) centered on the cell, exactly
// original_source/multigrid3d.cpp's initboundary lambda. Every other
// ghost cell — including every ghost cell on the x/y faces — falls
// through to a uniform 1.0, matching that lambda's default return
// value (despite an inline comment in that source claiming the
// default is 0.0; the behavior, not the comment, is preserved here,
// see DESIGN.md).
//
// A Halo only ever calls a BoundaryFunc with a genuinely out-of-domain
// global coordinate, so the real z faces are global[0] == -1 (top) and
// global[0] == dim[0] (bottom) — never 0, which is simply the first
// in-domain row (internal/grid/halo.go, internal/grid/partition.go).
func HotDisk(dim [3]int) func(global [3]int) float64 {
	r2 := hotDiskRadius * hotDiskRadius
	gh := float64(dim[1])
	gw := float64(dim[2])

	return func(global [3]int) float64 {
		if global[0] != -1 && global[0] != dim[0] {
			return 1.0
		}
		y, x := float64(global[1]), float64(global[2])

		sum, weight := 0.0, 0.0
		for iy := -hotDiskM + 1; iy < hotDiskM; iy++ {
			for ix := -hotDiskM + 1; ix < hotDiskM; ix++ {
				sx := (x + float64(ix)/hotDiskM) / (gw - 1)
				sy := (y + float64(iy)/hotDiskM) / (gh - 1)
				d2 := (sx-0.5)*(sx-0.5) + (sy-0.5)*(sy-0.5)
				if d2 <= r2 {
					sum += hotDiskHigh
				} else {
					sum += hotDiskLow
				}
				weight++
			}
		}
		return sum / weight
	}
}
