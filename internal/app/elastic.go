package app

import (
	"github.com/mephisto-hpc/multigrid3d/internal/config"
	"github.com/mephisto-hpc/multigrid3d/internal/logging"
	"github.com/mephisto-hpc/multigrid3d/internal/mg"
	"github.com/mephisto-hpc/multigrid3d/internal/team"
	"github.com/mephisto-hpc/multigrid3d/internal/telemetry"
)

// elasticShrinkFactor is the fixed team-shrink ratio
// original_source/multigrid3d.cpp's do_multigrid_elastic applies every
// cfg.ElasticSplit levels (`previousteam.split(8)`); the
// configurable elastic parameter controls the level-depth interval
// between shrinks, not the shrink ratio itself.
const elasticShrinkFactor = 8

// elasticStage is one contiguous run of levels sharing a single team.
// subTeam is the team the next stage runs on, or nil if this stage
// runs all the way to the coarsest level. joinBarrier rendezvous every
// member of this stage's team — active (continuing into subTeam) and
// passive (excluded by the shrink) alike — after the subteam below
// has finished solving and before the passive units read the
// transferred-back correction.
type elasticStage struct {
	chain       []*mg.Level
	teamSize    int
	subTeam     *team.Team
	joinBarrier *team.Barrier
}

// buildElasticStages lays out the full team-splitting topology once,
// before any unit goroutine is spawned, so every goroutine shares the
// same stage objects rather than racing to build subteams on the fly.
func buildElasticStages(t *team.Team, dim [3]int, phys [3]float64, totalLevels, split int) []elasticStage {
	var stages []elasticStage

	cur := t
	chain := []*mg.Level{mg.NewFinest(cur, dim, phys)}
	sinceSplit := 0

	for depth := 1; depth < totalLevels; depth++ {
		chain = append(chain, mg.NewCoarser(chain[len(chain)-1]))
		sinceSplit++

		canSplit := split > 0 && sinceSplit == split &&
			cur.Size() >= elasticShrinkFactor && cur.Size()%elasticShrinkFactor == 0 &&
			depth < totalLevels-1

		if canSplit {
			sub := cur.Split(elasticShrinkFactor)
			stages = append(stages, elasticStage{
				chain:       chain,
				teamSize:    cur.Size(),
				subTeam:     sub,
				joinBarrier: team.NewBarrier(cur.Size()),
			})
			cur = sub
			chain = []*mg.Level{chain[len(chain)-1].WithTeam(sub, 0)}
			sinceSplit = 0
		}
	}

	stages = append(stages, elasticStage{chain: chain, teamSize: cur.Size()})
	return stages
}

// RunElastic runs the elastic cycle (V- or W-shaped per cfg.Gamma),
// splitting the team into a
// smaller subteam every cfg.ElasticSplit levels (mirroring
// do_multigrid_elastic): units excluded by a shrink become passive for
// every level below that point, waiting at joinBarrier rather than
// deadlocking the coarser team's own barriers, and rejoin once the
// active subteam transfers its solved correction back up.
func RunElastic(cfg config.Config, log logging.Logger, mon *telemetry.Monitor) (Result, error) {
	t := newTeam()
	stages := buildElasticStages(t, cfg.GridDim(), cfg.Dim, cfg.Levels, cfg.ElasticSplit)

	results := make([]Result, t.Size())
	spawnUnits(t.Size(), func(pos int) {
		results[pos] = runElasticUnit(stages, pos, cfg)
	})

	r := results[0]
	log.Info("elastic multigrid run complete",
		"iterations", r.Iterations, "residual", r.Residual, "stages", len(stages))
	return r, nil
}

// runElasticUnit mirrors CycleDriver's shape across team shrinks: one
// recursive pass down through every stage's chain, followed by
// uncapped finest-level smoothing until the residual settles.
func runElasticUnit(stages []elasticStage, u int, cfg config.Config) Result {
	finest := stages[0].chain[0].ForUnit(u)

	elasticCycle(stages, 0, 0, u, cfg.Beta, cfg.Gamma, cfg.Eps)
	residual, sweeps := mg.Smooth(finest, mg.Uncapped, cfg.Eps)

	return Result{Iterations: sweeps, Residual: residual, Converged: residual < cfg.Eps}
}

// elasticCycle performs one recursive cycle pass for unit u, recursing
// through stages[si].chain from depth onward and, at a stage boundary,
// crossing into the subteam (active units) or waiting for it
// (passive units). gamma controls how many times it recurses into the
// next coarser level per visit, same as VCycle.
//
// A stage boundary (atStageEnd with a non-nil subTeam) is a pure data
// move: spec.md §4.7 case 3 is explicit that "no pre/post smoothing is
// done at the shrink boundary on the larger team's level," matching
// original_source/multigrid3d.cpp's recursive_cycle team-shrink branch,
// which goes straight from the size-mismatch check to
// transfertofewer/transfertomore with no smoothing call in between.
// Only the "normal level" case below pre/post-smooths around its
// restrict/recurse/prolong, the same shape as VCycle.
func elasticCycle(stages []elasticStage, si, depth int, u, beta, gamma int, eps float64) {
	stage := stages[si]
	lvl := stage.chain[depth].ForUnit(u)

	atStageEnd := depth == len(stage.chain)-1
	globalCoarsest := atStageEnd && stage.subTeam == nil

	if globalCoarsest {
		mg.Smooth(lvl, mg.Uncapped, eps)
		return
	}

	if !atStageEnd {
		mg.Smooth(lvl, beta, eps)

		next := stage.chain[depth+1].ForUnit(u)
		mg.Restrict(lvl, next)
		for i := 0; i < gamma; i++ {
			elasticCycle(stages, si, depth+1, u, beta, gamma, eps)
		}
		mg.Prolong(next, lvl)

		mg.Smooth(lvl, beta, eps)
		return
	}

	next := stages[si+1]
	if u < stage.subTeam.Size() {
		subLvl := next.chain[0].ForUnit(u)
		mg.TeamTransfer(lvl, subLvl)
		elasticCycle(stages, si+1, 0, u, beta, gamma, eps)
		stage.joinBarrier.Wait()
		mg.TeamTransfer(subLvl, lvl)
	} else {
		stage.joinBarrier.Wait()
		mg.TeamTransfer(next.chain[0], lvl)
	}
}
