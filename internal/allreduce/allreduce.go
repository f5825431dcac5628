// Package allreduce implements the pipelined, one-iteration-delayed
// max-allreduce the solver uses to detect global convergence without
// blocking every unit on every sweep: a unit stages its local residual,
// asks for the previous round's global max while the new one is
// collected in the background, and only blocks when it actually needs
// the fresh value.
package allreduce

import (
	"math"
	"sync"

	"github.com/mephisto-hpc/multigrid3d/internal/team"
)

// AsyncAllreduce computes the global maximum of per-unit staged values
// across a team, overlapping collection of one round's values with the
// previous round's still-outstanding result. One instance is shared by
// every goroutine in a level's team; each mg.Level, including one
// rebuilt for a subteam by WithTeam, creates its own. The team is
// passed explicitly into every call rather than bound at construction,
// mirroring the original source.
//
// Every round lives in one of two maps: pending accumulates Set calls
// for the round that hasn't started reducing yet, and active holds the
// round currently being (or having just finished being) reduced.
// CollectAndSpread promotes pending to active only once every unit in
// the team has staged a value — never partially, so a slow unit's late
// Set can't be dropped from the round a fast unit is already reducing.
type AsyncAllreduce struct {
	mu       sync.Mutex
	cond     *sync.Cond
	pending  map[int]float64
	active   map[int]float64
	inFlight bool
	ready    bool
	global   float64
}

// New returns an AsyncAllreduce ready to accept its first round of Set
// calls. Unlike Reset, it leaves Get's result at zero until a round
// actually completes; Reset is what seeds the large-sentinel bootstrap
// value spec.md §4.3 requires of a fresh pipelined loop.
func New() *AsyncAllreduce {
	a := &AsyncAllreduce{pending: make(map[int]float64), active: make(map[int]float64)}
	a.cond = sync.NewCond(&a.mu)
	return a
}

// Reset blocks until any in-flight reduction completes, then clears
// pending values for a new round and latches a large sentinel as the
// current result — so the first iteration of a loop guarded by
// Get() > eps always runs at least once, exactly as spec.md §4.3
// describes.
func (a *AsyncAllreduce) Reset(t *team.Team) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for a.inFlight {
		a.cond.Wait()
	}
	a.pending = make(map[int]float64, t.Size())
	a.active = make(map[int]float64, t.Size())
	a.global = math.MaxFloat64
	a.ready = true
}

// Set stages unit's local residual for the round that has not yet
// started collecting. It never touches the round currently (or most
// recently) reduced, so a slow unit's deposit can never race with
// another unit already reading that round's result via Wait/Get.
func (a *AsyncAllreduce) Set(unit int, local float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending[unit] = local
}

// CollectAndSpread starts (or joins) the reduction for whichever round
// is ready to promote: once every member of t has staged a value in
// pending, it becomes the active round and its maximum is computed and
// latched immediately. It returns without blocking; a team member that
// hasn't yet staged its own value simply finds nothing to promote and
// leaves the previous round's result available via Get until it does.
func (a *AsyncAllreduce) CollectAndSpread(unit int, t *team.Team) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tryPromote(t)
}

// tryPromote must be called with a.mu held.
func (a *AsyncAllreduce) tryPromote(t *team.Team) {
	if a.inFlight {
		return
	}
	if len(a.pending) < t.Size() {
		return
	}
	a.active = a.pending
	a.pending = make(map[int]float64, t.Size())
	a.inFlight = true
	a.ready = false
	a.maybeComplete(t)
}

// maybeComplete must be called with a.mu held.
func (a *AsyncAllreduce) maybeComplete(t *team.Team) {
	if !a.inFlight {
		return
	}
	if len(a.active) < t.Size() {
		return
	}
	max := 0.0
	first := true
	for _, id := range t.IDs() {
		v := a.active[id]
		if first || v > max {
			max = v
			first = false
		}
	}
	a.global = max
	a.inFlight = false
	a.ready = true
	a.cond.Broadcast()
}

// Wait blocks until the most recently promoted round's reduction has
// completed and the global maximum is available via Get. If no round
// has been promoted yet (the team hasn't finished staging one), it
// also tries to promote pending itself before blocking, so a unit that
// calls Set then Wait without an intervening CollectAndSpread still
// makes progress.
func (a *AsyncAllreduce) Wait(unit int, t *team.Team) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tryPromote(t)
	for !a.ready {
		a.cond.Wait()
		a.tryPromote(t)
	}
}

// Get returns the most recently completed round's global maximum.
func (a *AsyncAllreduce) Get() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.global
}
