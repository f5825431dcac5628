// Package config loads and validates the solver's runtime
// configuration: compiled-in defaults, overridable by a
// multigrid3d.yaml file and then MULTIGRID3D_* environment variables
// (in that order of increasing priority), using viper the way
// junjiewwang-perf-analysis/pkg/config does. cmd/multigrid3d then sets
// every key that has a CLI flag from that flag, given or not (see
// Load).
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Mode selects which of the four original run modes the CLI invokes.
type Mode string

const (
	ModeMultigrid Mode = "multigrid"
	ModeFlat      Mode = "flat"
	ModeElastic   Mode = "elastic"
	ModeSim       Mode = "sim"
)

// Config is the full set of knobs the original source read from argv,
// plus the ambient stack's own settings.
type Config struct {
	Mode Mode `mapstructure:"mode"`

	Levels int       `mapstructure:"levels"`
	Eps    float64   `mapstructure:"eps"`
	Dim    [3]float64 `mapstructure:"dim"`

	// Beta is the pre/post smoothing sweep cap per level (spec.md §3's
	// β, default 20). Gamma selects V-cycle (1) vs W-cycle (2): how
	// many times the driver recurses into the next coarser level per
	// visit.
	Beta  int `mapstructure:"beta"`
	Gamma int `mapstructure:"gamma"`

	ElasticSplit int `mapstructure:"elastic_split"`

	SimTimeRange float64 `mapstructure:"sim_time_range"`
	SimTimeStep  float64 `mapstructure:"sim_time_step"`

	LogLevel string `mapstructure:"log_level"`
}

// Defaults returns the compiled-in defaults, matching
// original_source/multigrid3d.cpp's hard-coded constants.
func Defaults() Config {
	return Config{
		Mode:         ModeMultigrid,
		Levels:       5,
		Eps:          1e-3,
		Dim:          [3]float64{10, 10, 10},
		Beta:         20,
		Gamma:        1,
		ElasticSplit: 3,
		SimTimeRange: 10,
		SimTimeStep:  1.0 / 25.0,
		LogLevel:     "info",
	}
}

// GridDim returns the finest level's inner point count per axis:
// 2^Levels - 1, identical along every axis since this solver's
// coarsening ratio is cubic (spec.md §6, §1 non-goals).
func (c Config) GridDim() [3]int {
	n := (1 << uint(c.Levels)) - 1
	return [3]int{n, n, n}
}

// Load builds a viper instance seeded with Defaults, overridden by an
// optional multigrid3d.yaml config file and MULTIGRID3D_* environment
// variables, so env > file > default holds for the returned instance.
// It does not read CLI flags; cmd/multigrid3d calls Set on the returned
// instance for every flag-backed key (levels, eps, dim, beta, gamma,
// mode, elastic_split, sim_time_range, sim_time_step) whether or not
// the flag was given, so in the CLI those keys take the flag's value
// or its default, and a file or environment value for them has no
// effect.
func Load() (*viper.Viper, error) {
	v := viper.New()
	d := Defaults()
	v.SetDefault("mode", string(d.Mode))
	v.SetDefault("levels", d.Levels)
	v.SetDefault("eps", d.Eps)
	v.SetDefault("dim", []float64{d.Dim[0], d.Dim[1], d.Dim[2]})
	v.SetDefault("beta", d.Beta)
	v.SetDefault("gamma", d.Gamma)
	v.SetDefault("elastic_split", d.ElasticSplit)
	v.SetDefault("sim_time_range", d.SimTimeRange)
	v.SetDefault("sim_time_step", d.SimTimeStep)
	v.SetDefault("log_level", d.LogLevel)

	v.SetConfigName("multigrid3d")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: reading multigrid3d.yaml: %w", err)
		}
	}

	v.SetEnvPrefix("MULTIGRID3D")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// Unmarshal decodes v into a Config and validates it.
func Unmarshal(v *viper.Viper) (Config, error) {
	var c Config
	c.Dim = Defaults().Dim
	if floats, ok := toFloat3(v.Get("dim")); ok {
		c.Dim = floats
	}
	c.Mode = Mode(v.GetString("mode"))
	c.Levels = v.GetInt("levels")
	c.Eps = v.GetFloat64("eps")
	c.Beta = v.GetInt("beta")
	c.Gamma = v.GetInt("gamma")
	c.ElasticSplit = v.GetInt("elastic_split")
	c.SimTimeRange = v.GetFloat64("sim_time_range")
	c.SimTimeStep = v.GetFloat64("sim_time_step")
	c.LogLevel = v.GetString("log_level")

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// toFloat3 converts a viper-decoded slice (of float64, int, or
// interface{} elements — the shape varies by source: env/CLI give
// strings or ints, a YAML file gives float64) into a [3]float64,
// reporting false if raw isn't a 3-element slice.
func toFloat3(raw interface{}) ([3]float64, bool) {
	var out [3]float64
	switch v := raw.(type) {
	case []interface{}:
		if len(v) != 3 {
			return out, false
		}
		for i, e := range v {
			f, ok := toFloat(e)
			if !ok {
				return out, false
			}
			out[i] = f
		}
		return out, true
	case []float64:
		if len(v) != 3 {
			return out, false
		}
		return [3]float64{v[0], v[1], v[2]}, true
	case []int:
		if len(v) != 3 {
			return out, false
		}
		return [3]float64{float64(v[0]), float64(v[1]), float64(v[2])}, true
	default:
		return out, false
	}
}

func toFloat(e interface{}) (float64, bool) {
	switch n := e.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		var f float64
		if _, err := fmt.Sscanf(n, "%g", &f); err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Validate checks the invariants the original source enforces via
// assertions on its argv-derived settings.
func (c Config) Validate() error {
	if c.Levels <= 2 || c.Levels > 16 {
		return fmt.Errorf("config: levels must satisfy 2 < levels <= 16, got %d", c.Levels)
	}
	if c.Eps <= 0 {
		return fmt.Errorf("config: eps must be positive, got %v", c.Eps)
	}
	for axis, d := range c.Dim {
		if d <= 0 {
			return fmt.Errorf("config: dim[%d] must be positive, got %v", axis, d)
		}
	}
	if c.Beta <= 0 {
		return fmt.Errorf("config: beta must be positive, got %d", c.Beta)
	}
	if c.Gamma != 1 && c.Gamma != 2 {
		return fmt.Errorf("config: gamma must be 1 (V-cycle) or 2 (W-cycle), got %d", c.Gamma)
	}
	if c.Mode == ModeElastic && c.ElasticSplit <= 1 {
		return fmt.Errorf("config: elastic_split must be > 1, got %d", c.ElasticSplit)
	}
	if c.Mode == ModeSim {
		if c.SimTimeRange <= 0 {
			return fmt.Errorf("config: sim_time_range must be positive, got %v", c.SimTimeRange)
		}
		if c.SimTimeStep <= 0 || c.SimTimeStep > c.SimTimeRange {
			return fmt.Errorf("config: sim_time_step must be positive and <= sim_time_range, got %v", c.SimTimeStep)
		}
	}
	return nil
}
