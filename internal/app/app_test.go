package app

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mephisto-hpc/multigrid3d/internal/config"
	"github.com/mephisto-hpc/multigrid3d/internal/logging"
	"github.com/mephisto-hpc/multigrid3d/internal/telemetry"
)

func testLogger() logging.Logger {
	return logging.NewDefaultLogger(os.Stderr, logging.LevelError)
}

func smallConfig(mode config.Mode) config.Config {
	c := config.Defaults()
	c.Mode = mode
	c.Levels = 4
	c.Eps = 1e-6
	return c
}

func TestRunMultigridConvergesOnSmallGrid(t *testing.T) {
	cfg := smallConfig(config.ModeMultigrid)
	result, err := RunMultigrid(cfg, testLogger(), telemetry.NewMonitor())
	require.NoError(t, err)
	assert.True(t, result.Converged, "residual %v should have dropped below eps %v", result.Residual, cfg.Eps)
	assert.Less(t, result.Residual, cfg.Eps)
}

func TestRunFlatEventuallyConvergesOnSmallGrid(t *testing.T) {
	cfg := smallConfig(config.ModeFlat)
	result, err := RunFlat(cfg, testLogger(), telemetry.NewMonitor())
	require.NoError(t, err)
	assert.True(t, result.Converged)
}

func TestRunSimAdvancesThroughEveryCheckpoint(t *testing.T) {
	cfg := smallConfig(config.ModeSim)
	cfg.SimTimeRange = 2 * cfg.SimTimeStep
	result, err := RunSim(cfg, testLogger(), telemetry.NewMonitor())
	require.NoError(t, err)
	assert.Greater(t, result.Iterations, 0)
}

func TestRunElasticConvergesOnSmallGrid(t *testing.T) {
	cfg := smallConfig(config.ModeElastic)
	cfg.ElasticSplit = 2
	result, err := RunElastic(cfg, testLogger(), telemetry.NewMonitor())
	require.NoError(t, err)
	assert.True(t, result.Converged)
}

func TestRunDispatchesOnMode(t *testing.T) {
	cfg := smallConfig(config.ModeMultigrid)
	_, err := Run(cfg, testLogger(), telemetry.NewMonitor())
	require.NoError(t, err)

	cfg.Mode = "bogus"
	_, err = Run(cfg, testLogger(), telemetry.NewMonitor())
	assert.Error(t, err)
}
