package mg

import "github.com/mephisto-hpc/multigrid3d/internal/grid"

// TeamTransfer copies both src's current field and its right-hand
// side into dst's corresponding fields, cell by cell over global
// coordinates, when src and dst are distributed over teams of
// different sizes (elastic mode's team-shrink step) and therefore have
// different BLOCKED partition boundaries — a plain per-unit Array copy
// would miss or duplicate cells. It mirrors
// original_source/multigrid3d.cpp's transfertofewer/transfertomore,
// both of which reduce to the same global-coordinate contiguous-row
// copy regardless of direction, applied to every field the subteam
// needs to keep solving against (spec.md §4.6) — dst built via
// Level.WithTeam otherwise starts with an all-zero rhs, which would
// silently discard the residual a parent level had already restricted
// into it.
//
// dst's own unit (dstPos) copies only the rows it owns; callers invoke
// TeamTransfer once per surviving unit, each with its own dst level
// cursor.
func TeamTransfer(src, dst *Level) {
	transferField(src.CurrentField(), dst.Current(), dst.CurrentField(), dst.Pos())
	transferField(src.RHS(), dst.RHS().Array(dst.Pos()), dst.RHS(), dst.Pos())
}

func transferField(srcField interface {
	GlobalGet(g [3]int) float64
}, dstArray *grid.Array, dstField interface {
	GlobalOrigin(pos int) [3]int
}, dstPos int) {
	ext := dstArray.Extent()
	origin := dstField.GlobalOrigin(dstPos)

	for z := 0; z < ext[0]; z++ {
		for y := 0; y < ext[1]; y++ {
			row := make([]float64, ext[2])
			for x := 0; x < ext[2]; x++ {
				g := [3]int{origin[0] + z, origin[1] + y, origin[2] + x}
				row[x] = srcField.GlobalGet(g)
			}
			for x, v := range row {
				dstArray.SetOwned(z, y, x, v)
			}
		}
	}
}
