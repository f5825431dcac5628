package mg

import "github.com/mephisto-hpc/multigrid3d/internal/grid"

// unrollThreshold is the minimum inner-cell count along the longest
// axis before a sweep switches to the manually unrolled 2-wide inner
// loop. Below it the unrolling overhead isn't worth it; this mirrors
// the original source keeping both update_inner_dash and
// update_inner_acc and picking one at compile time, except here the
// choice is made per call based on level size rather than a build
// flag.
const unrollThreshold = 8

// Sweep performs one weighted Jacobi relaxation step with relaxation
// coefficient 1.0, the multigrid path's fixed value (spec.md §4.2).
func Sweep(l *Level) float64 { return SweepRelaxed(l, 1.0) }

// SweepRelaxed performs one step of
// `u_new = u + c * m * (ff*rhs - A*u)`, writing the result into
// l.Next() while l.Current() still holds the previous iterate, and
// returns the largest absolute change seen across the unit's owned
// cells (this unit's contribution to the global residual; the caller
// stages it into l.Reducer() and decides when to Wait on the team's
// result). c is 1.0 in the multigrid path and variable in the
// time-simulation mode (spec.md §4.2).
//
// Inner cells (whose 6-point neighbors are all within this unit's own
// owned block) are updated before the halo exchange completes;
// boundary cells (whose neighbors reach into the ghost shell) are
// updated only after Wait returns. This overlap is the reason the
// halo update is asynchronous at all.
func SweepRelaxed(l *Level, c float64) float64 {
	l.Team().Wait()

	cur := l.Current()
	next := l.Next()
	rhs := l.RHS().Array(l.Pos())
	ax, ay, az, ac, m, ff := l.Coefficients()

	halo := grid.UpdateAsync(cur, l.CurrentField(), l.Pos(), l.Boundary())

	op := grid.NewStencilOp(cur.Extent())
	maxDiff := 0.0

	updateInner := updateInnerPlain
	if cur.Extent()[2] >= unrollThreshold {
		updateInner = updateInnerUnrolled
	}
	updateInner(op, cur, next, rhs, ax, ay, az, ac, m, ff, c, &maxDiff)

	halo.Wait()

	// Fold the previous sweep's staged residuals before touching the
	// boundary cells: this starts the background reduction over the
	// round the last call to Set deposited, not the one this call is
	// about to compute (spec.md §4.2 steps 5-8). The caller reads that
	// prior-round result via Reducer().Wait/Get only after this sweep
	// returns, once every unit has had the same chance to collect it.
	l.Reducer().CollectAndSpread(l.Pos(), l.Team())

	op.ForEachBoundary(func(z, y, x int) {
		diff := jacobiUpdate(cur, next, rhs, ax, ay, az, ac, m, ff, c, z, y, x)
		if diff > maxDiff {
			maxDiff = diff
		}
	})

	// maxDiff is this sweep's own residual. The caller must not deposit
	// it via Reducer().Set until after it has read the prior round's
	// result through Reducer().Wait/Get (spec.md §4.2 steps 7-8):
	// depositing it here, before this sweep's own call returns, would
	// let the very next CollectAndSpread promote it immediately and
	// collapse the one-sweep pipeline delay to zero.
	return maxDiff
}

// jacobiUpdate computes one cell's new value from the cached operator
// coefficients and the right-hand side, writes it into next, and
// returns the absolute change from the previous iterate. A*u is
// ax*(u[x-1]+u[x+1]) + ay*(u[y-1]+u[y+1]) + az*(u[z-1]+u[z+1]) + ac*u,
// exactly spec.md §4.2's operator.
func jacobiUpdate(cur, next, rhs *grid.Array, ax, ay, az, ac, m, ff, c float64, z, y, x int) float64 {
	old := cur.Owned(z, y, x)
	au := ax*(cur.Get(z, y, x-1)+cur.Get(z, y, x+1)) +
		ay*(cur.Get(z, y-1, x)+cur.Get(z, y+1, x)) +
		az*(cur.Get(z-1, y, x)+cur.Get(z+1, y, x)) +
		ac*old
	val := old + c*m*(ff*rhs.Owned(z, y, x)-au)
	next.SetOwned(z, y, x, val)
	d := val - old
	if d < 0 {
		d = -d
	}
	return d
}

func updateInnerPlain(op grid.StencilOp, cur, next, rhs *grid.Array, ax, ay, az, ac, m, ff, c float64, maxDiff *float64) {
	op.ForEachInner(func(z, y, x int) {
		d := jacobiUpdate(cur, next, rhs, ax, ay, az, ac, m, ff, c, z, y, x)
		if d > *maxDiff {
			*maxDiff = d
		}
	})
}

// updateInnerUnrolled is the same computation as updateInnerPlain,
// manually unrolled two cells at a time along x — the
// vectorization-friendly variant the original source keeps alongside
// its DASH-iterator inner update (update_inner_acc beside
// update_inner_dash).
func updateInnerUnrolled(op grid.StencilOp, cur, next, rhs *grid.Array, ax, ay, az, ac, m, ff, c float64, maxDiff *float64) {
	ext := cur.Extent()
	for z := 1; z < ext[0]-1; z++ {
		for y := 1; y < ext[1]-1; y++ {
			x := 1
			for ; x+1 < ext[2]-1; x += 2 {
				d0 := jacobiUpdate(cur, next, rhs, ax, ay, az, ac, m, ff, c, z, y, x)
				d1 := jacobiUpdate(cur, next, rhs, ax, ay, az, ac, m, ff, c, z, y, x+1)
				if d0 > *maxDiff {
					*maxDiff = d0
				}
				if d1 > *maxDiff {
					*maxDiff = d1
				}
			}
			for ; x < ext[2]-1; x++ {
				d := jacobiUpdate(cur, next, rhs, ax, ay, az, ac, m, ff, c, z, y, x)
				if d > *maxDiff {
					*maxDiff = d
				}
			}
		}
	}
}
