package mg

// restrictionFactor scales the coarse right-hand side computed by
// Restrict. The textbook value for this residual-injection scheme is
// 1/8 (see spec.md §9), but original_source/multigrid3d.cpp found
// that value didn't converge and uses 4.0 instead; this repository
// preserves that value verbatim rather than "fixing" it to the
// textbook normalization (see DESIGN.md, open question 1).
const restrictionFactor = 4.0

// Restrict computes coarse's right-hand side as the residual of
// fine's current solution — rhs_coarse = K*(ff*rhs_fine - A*u_fine),
// straight-injected from the fine point coincident with each coarse
// point — and zeroes coarse's current field so the coarse solve starts
// its correction from zero, mirroring
// original_source/multigrid3d.cpp's scaledown.
//
// Every coarse point at local coordinate (z,y,x) maps to the fine
// point at global coordinate (2g+1) per axis (spec.md §4.4's
// precondition that coarse corners sit on even fine corners). Because
// the coarse grid satisfies (nC+1)*2 = nF+1, that mapped fine point's
// six face neighbors always lie within the fine domain's own inner
// extent, so no boundary/ghost access is ever required here — only
// Field.GlobalGet, which reads across team-member boundaries directly
// (not through a Halo): restriction runs after every unit has finished
// smoothing and no writer is active on fine's current field, so
// unsynchronized cross-unit reads are safe, the same way the original
// source's scaledown walks fine's DASH global iterator without a
// separate halo round.
func Restrict(fine, coarse *Level) {
	ax, ay, az, ac, _, ff := fine.Coefficients()
	fineField := fine.CurrentField()
	fineRHS := fine.RHS()

	coarseRHSArray := coarse.RHS().Array(coarse.Pos())
	coarseCurArray := coarse.Current()
	ext := coarseRHSArray.Extent()
	origin := coarse.RHS().GlobalOrigin(coarse.Pos())

	for z := 0; z < ext[0]; z++ {
		for y := 0; y < ext[1]; y++ {
			for x := 0; x < ext[2]; x++ {
				g := [3]int{origin[0] + z, origin[1] + y, origin[2] + x}
				fp := [3]int{2*g[0] + 1, 2*g[1] + 1, 2*g[2] + 1}

				u := fineField.GlobalGet(fp)
				au := ax*(fineField.GlobalGet([3]int{fp[0], fp[1], fp[2] - 1})+fineField.GlobalGet([3]int{fp[0], fp[1], fp[2] + 1})) +
					ay*(fineField.GlobalGet([3]int{fp[0], fp[1] - 1, fp[2]})+fineField.GlobalGet([3]int{fp[0], fp[1] + 1, fp[2]})) +
					az*(fineField.GlobalGet([3]int{fp[0] - 1, fp[1], fp[2]})+fineField.GlobalGet([3]int{fp[0] + 1, fp[1], fp[2]})) +
					ac*u
				residual := ff*fineRHS.GlobalGet(fp) - au

				coarseRHSArray.SetOwned(z, y, x, restrictionFactor*residual)
				coarseCurArray.SetOwned(z, y, x, 0)
			}
		}
	}
}
