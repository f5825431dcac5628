package app

import (
	"context"

	"github.com/mephisto-hpc/multigrid3d/internal/config"
	"github.com/mephisto-hpc/multigrid3d/internal/logging"
	"github.com/mephisto-hpc/multigrid3d/internal/mg"
	"github.com/mephisto-hpc/multigrid3d/internal/telemetry"
)

// flatSweepCap is the hard iteration cap original_source/multigrid3d.cpp's
// do_flat_iteration enforces so a non-converging flat (single-level)
// Jacobi relaxation still terminates.
const flatSweepCap = 100000

// RunFlat relaxes only the finest level with plain Jacobi sweeps, no
// multigrid recursion at all, mirroring do_flat_iteration. It exists
// mainly as the baseline the multigrid mode is compared against: a
// single level converges far slower than a V-cycle on the same
// problem.
func RunFlat(cfg config.Config, log logging.Logger, mon *telemetry.Monitor) (Result, error) {
	t := newTeam()
	finest := mg.NewFinest(t, cfg.GridDim(), cfg.Dim)

	stop := mon.Start(context.Background(), "flat")
	results := make([]Result, t.Size())
	spawnUnits(t.Size(), func(pos int) {
		results[pos] = runFlatUnit(finest.ForUnit(pos), cfg.Eps)
	})
	stop(int64(t.Size()))

	r := results[0]
	log.Info("flat iteration complete",
		"sweeps", r.Iterations, "residual", r.Residual, "converged", r.Converged)
	return r, nil
}

func runFlatUnit(level *mg.Level, eps float64) Result {
	residual, sweeps := mg.Smooth(level, flatSweepCap, eps)
	return Result{Iterations: sweeps, Residual: residual, Converged: residual < eps}
}
