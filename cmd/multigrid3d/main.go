// Command multigrid3d runs a distributed geometric multigrid solver
// for the 3D Poisson/heat equation over a block-distributed Cartesian
// grid, simulated as one goroutine per BSP unit.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mephisto-hpc/multigrid3d/internal/app"
	"github.com/mephisto-hpc/multigrid3d/internal/config"
	"github.com/mephisto-hpc/multigrid3d/internal/logging"
	"github.com/mephisto-hpc/multigrid3d/internal/telemetry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	flatFlag     bool
	elasticFlag  int
	simTimeRange float64
	simTimeStep  float64
	simFlag      bool
	epsFlag      float64
	dimFlag      []float64
	betaFlag     int
	gammaFlag    int
	verboseFlag  bool

	log      logging.Logger
	monitor  *telemetry.Monitor
	shutdown telemetry.ShutdownFunc
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "multigrid3d [levels]",
		Short: "Distributed geometric multigrid solver for the 3D Poisson/heat equation",
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sd, err := telemetry.Init(ctx)
			if err != nil {
				return fmt.Errorf("telemetry init: %w", err)
			}
			shutdown = sd
			monitor = telemetry.NewMonitor()

			level := logging.LevelInfo
			if verboseFlag {
				level = logging.LevelDebug
			}
			log = logging.NewDefaultLogger(os.Stdout, level)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			monitor.Summary(os.Stdout)
			return shutdown(context.Background())
		},
		RunE: runRoot,
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&flatFlag, "flat", "f", false, "relax only the finest level (no multigrid recursion)")
	flags.IntVarP(&elasticFlag, "elastic", "e", 0, "run elastic mode, splitting the team every S levels")
	flags.Lookup("elastic").NoOptDefVal = "3"
	flags.BoolVar(&simFlag, "sim", false, "run the time-stepped simulation mode")
	flags.Float64Var(&simTimeRange, "sim-timerange", 10, "total simulated time for --sim")
	flags.Float64Var(&simTimeStep, "sim-timestep", 1.0/25.0, "checkpoint interval for --sim")
	flags.Float64Var(&epsFlag, "eps", 1e-3, "convergence threshold")
	flags.Float64SliceVarP(&dimFlag, "dim", "d", []float64{10, 10, 10}, "physical domain extent in meters as lz,ly,lx")
	flags.IntVar(&betaFlag, "beta", 20, "pre/post smoothing sweep cap per level")
	flags.IntVar(&gammaFlag, "gamma", 1, "cycle shape: 1 for V-cycle, 2 for W-cycle")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")

	return root
}

func runRoot(cmd *cobra.Command, args []string) error {
	v, err := config.Load()
	if err != nil {
		return err
	}

	levels := config.Defaults().Levels
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("levels: %w", err)
		}
		levels = n
	}
	v.Set("levels", levels)
	v.Set("eps", epsFlag)
	if len(dimFlag) == 3 {
		v.Set("dim", dimFlag)
	}
	v.Set("beta", betaFlag)
	v.Set("gamma", gammaFlag)

	mode := config.ModeMultigrid
	switch {
	case flatFlag:
		mode = config.ModeFlat
	case cmd.PersistentFlags().Changed("elastic"):
		mode = config.ModeElastic
	case simFlag:
		mode = config.ModeSim
	}
	v.Set("mode", string(mode))
	v.Set("elastic_split", elasticFlag)
	v.Set("sim_time_range", simTimeRange)
	v.Set("sim_time_step", simTimeStep)

	cfg, err := config.Unmarshal(v)
	if err != nil {
		return err
	}

	result, err := app.Run(cfg, log, monitor)
	if err != nil {
		return err
	}

	if !result.Converged {
		log.Warn("did not converge within iteration cap", "residual", result.Residual)
	}
	return nil
}
