package mg

import "math"

// Uncapped is the sweep-count ceiling Smooth treats as "no cap":
// the coarsest level's exact solve and the driver's final smoothing
// pass both run until the residual drops to eps, never on a count,
// mirroring original_source/multigrid3d.cpp's smoothen_final and its
// coarsest-level exact solve.
const Uncapped = math.MaxInt32

// Smooth runs up to maxSweeps Jacobi sweeps on level, resetting the
// team's pipelined allreduce once before the first sweep and stopping
// early the first time the resulting global max-residual drops to eps
// or below. The allreduce is pipelined one sweep behind (spec.md §4.2
// steps 7-8, §4.3): Reset is called exactly once, not between sweeps,
// and within each iteration the prior round is read via
// Reducer().Wait/Get *before* this sweep's own residual is deposited
// via Reducer().Set — matching spec.md §4.2's "wait, read prior
// residual, then deposit new localres" ordering — so the round each
// sweep's internal CollectAndSpread folds is always the one the
// previous sweep deposited, never its own. It returns the last
// observed residual and how many sweeps ran. Every unit of
// level.Team() must call Smooth with the same maxSweeps and eps in
// lock-step, the same ordering constraint spec.md §5 places on every
// cycle-level operation.
func Smooth(level *Level, maxSweeps int, eps float64) (residual float64, sweeps int) {
	level.Reducer().Reset(level.Team())
	residual = math.MaxFloat64
	for sweeps = 0; sweeps < maxSweeps && residual > eps; sweeps++ {
		maxDiff := Sweep(level)

		level.Reducer().Wait(level.Pos(), level.Team())
		residual = level.Reducer().Get()

		level.Reducer().Set(level.Pos(), maxDiff)
		level.Swap()
		level.Team().Wait()
	}
	return residual, sweeps
}

// VCycle performs one recursive multigrid cycle starting at
// levels[idx], spec.md §4.7's "normal level" and "coarsest reached"
// cases: pre-smooth up to beta sweeps (early exit on residual <= eps);
// restrict the residual to the next coarser level; recurse gamma times
// (gamma=1 is a V-cycle, gamma=2 a W-cycle); prolong the correction
// back; post-smooth up to beta sweeps. When idx is the last entry in
// levels (the coarsest grid), it instead smooths without a sweep cap
// until the residual reaches eps, standing in for an exact solve.
//
// The original source's other two recursive_cycle cases — a
// passive/dummy unit pairing Alice/Bob barriers while its team waits
// out a level it has no data for, and the team-shrink-and-transfer
// case that rebuilds levels on a subteam — only arise in elastic mode
// and are orchestrated by internal/app's elastic driver, which calls
// VCycle on whichever contiguous run of levels currently shares one
// team rather than folding team-topology changes into this function.
func VCycle(levels []*Level, idx, beta, gamma int, eps float64) {
	if idx == len(levels)-1 {
		Smooth(levels[idx], Uncapped, eps)
		return
	}

	Smooth(levels[idx], beta, eps)

	Restrict(levels[idx], levels[idx+1])
	for i := 0; i < gamma; i++ {
		VCycle(levels, idx+1, beta, gamma, eps)
	}
	Prolong(levels[idx+1], levels[idx])

	Smooth(levels[idx], beta, eps)
}

// CycleDriver runs one full multigrid cycle from the finest level down
// through the coarsest and back, then finishes convergence with
// smoothen_final: uncapped plain Jacobi sweeps on the finest level
// alone. This mirrors original_source/multigrid3d.cpp's
// do_multigrid_iteration, whose only termination device beyond the
// single recursive_cycle call is that final eps loop — spec.md §7
// notes the driver "has no outer cap beyond the final smoother's eps
// loop (infinite in principle; finite in practice because W-cycle
// converges geometrically for this operator)". Every unit in
// levels[0].Team() must call CycleDriver with the same levels, beta,
// gamma and eps.
func CycleDriver(levels []*Level, beta, gamma int, eps float64) (sweeps int, residual float64) {
	VCycle(levels, 0, beta, gamma, eps)
	residual, sweeps = Smooth(levels[0], Uncapped, eps)
	return sweeps, residual
}
