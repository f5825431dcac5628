// Package app provides the four run modes the CLI dispatches to
// (multigrid, flat, elastic, sim), each spawning one goroutine per
// simulated unit and joining on completion, mirroring
// original_source/multigrid3d.cpp's do_multigrid_iteration,
// do_flat_iteration, do_multigrid_elastic and do_simulation.
package app

import (
	"runtime"

	"github.com/mephisto-hpc/multigrid3d/internal/mg"
	"github.com/mephisto-hpc/multigrid3d/internal/team"
)

// unitCount picks how many goroutines simulate BSP units. The
// original source's unit count is the number of MPI processes the
// operator launches it under, a quantity this single-process Go
// program has no equivalent of; GOMAXPROCS is used instead so the
// simulated team scales with the machine it runs on, matching this
// repository's choice to model "one process per unit" as "one
// goroutine per unit in one process" (see SPEC_FULL.md section 5).
func unitCount() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		n = 1
	}
	return n
}

// newTeam builds a balanced team sized by unitCount.
func newTeam() *team.Team {
	spec := team.NewTeamSpec(unitCount())
	spec.BalanceExtents()
	return team.New(spec)
}

// buildLevelChain builds the finest level over t plus totalLevels-1
// successively coarser levels below it, the level list every cycle
// driver in this package walks from index 0 (finest) to
// len(levels)-1 (coarsest). Every entry is a cursor scoped to unit 0;
// other units must call levelsForUnit before using this chain, since a
// Level cursor is per-unit state (see internal/mg/level.go).
func buildLevelChain(t *team.Team, dim [3]int, phys [3]float64, totalLevels int) []*mg.Level {
	levels := make([]*mg.Level, 0, totalLevels)
	levels = append(levels, mg.NewFinest(t, dim, phys))
	for i := 1; i < totalLevels; i++ {
		levels = append(levels, mg.NewCoarser(levels[i-1]))
	}
	return levels
}

// levelsForUnit returns a chain of cursors over the same shared
// storage as levels, each scoped to pos instead of whichever unit
// built the template chain.
func levelsForUnit(levels []*mg.Level, pos int) []*mg.Level {
	out := make([]*mg.Level, len(levels))
	for i, l := range levels {
		out[i] = l.ForUnit(pos)
	}
	return out
}
