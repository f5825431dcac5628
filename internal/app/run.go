package app

import (
	"fmt"

	"github.com/mephisto-hpc/multigrid3d/internal/config"
	"github.com/mephisto-hpc/multigrid3d/internal/logging"
	"github.com/mephisto-hpc/multigrid3d/internal/telemetry"
)

// Run dispatches to the mode driver cfg.Mode names.
func Run(cfg config.Config, log logging.Logger, mon *telemetry.Monitor) (Result, error) {
	switch cfg.Mode {
	case config.ModeMultigrid:
		return RunMultigrid(cfg, log, mon)
	case config.ModeFlat:
		return RunFlat(cfg, log, mon)
	case config.ModeElastic:
		return RunElastic(cfg, log, mon)
	case config.ModeSim:
		return RunSim(cfg, log, mon)
	default:
		return Result{}, fmt.Errorf("app: unknown mode %q", cfg.Mode)
	}
}
