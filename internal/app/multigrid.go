package app

import (
	"context"

	"github.com/samber/lo"

	"github.com/mephisto-hpc/multigrid3d/internal/config"
	"github.com/mephisto-hpc/multigrid3d/internal/logging"
	"github.com/mephisto-hpc/multigrid3d/internal/mg"
	"github.com/mephisto-hpc/multigrid3d/internal/telemetry"
)

// Result is what one run mode reports back to the CLI: how many
// cycles or sweeps it took to converge, the residual it stopped at,
// and whether convergence was actually reached before the iteration
// cap.
type Result struct {
	Iterations int
	Residual   float64
	Converged  bool
}

// RunMultigrid runs the standard (non-elastic) recursive cycle to
// convergence (a V-cycle for cfg.Gamma == 1, a W-cycle for 2), one
// goroutine per unit of a freshly built team, mirroring
// do_multigrid_iteration.
func RunMultigrid(cfg config.Config, log logging.Logger, mon *telemetry.Monitor) (Result, error) {
	t := newTeam()
	levels := buildLevelChain(t, cfg.GridDim(), cfg.Dim, cfg.Levels)
	dims := lo.Map(levels, func(l *mg.Level, _ int) [3]int { return l.Dim() })
	log.Debug("level chain built", "count", len(levels), "dims", dims)

	stop := mon.Start(context.Background(), "multigrid")
	results := make([]Result, t.Size())
	spawnUnits(t.Size(), func(pos int) {
		iters, residual := mg.CycleDriver(levelsForUnit(levels, pos), cfg.Beta, cfg.Gamma, cfg.Eps)
		results[pos] = Result{Iterations: iters, Residual: residual, Converged: residual < cfg.Eps}
	})
	stop(int64(t.Size()))

	r := results[0]
	log.Info("multigrid run complete",
		"iterations", r.Iterations, "residual", r.Residual, "units", t.Size())
	return r, nil
}
