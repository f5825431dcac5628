// Package mg implements the multigrid V-cycle itself: levels, the
// Jacobi smoother, restriction, prolongation, cross-team transfer, the
// recursive cycle driver, and the symmetry diagnostic, ported field by
// field from original_source/multigrid3d.cpp.
package mg

import (
	"math"

	"github.com/mephisto-hpc/multigrid3d/internal/allreduce"
	"github.com/mephisto-hpc/multigrid3d/internal/boundary"
	"github.com/mephisto-hpc/multigrid3d/internal/grid"
	"github.com/mephisto-hpc/multigrid3d/internal/team"
)

// levelStorage is the state one grid level shares across every unit
// in its team. It is built once and never mutated by more than one
// goroutine at a time per field (fieldA/fieldB are swapped logically,
// never written to out of turn) — see Level below for why the
// per-unit cursor, not this struct, is what each unit's goroutine
// actually mutates.
type levelStorage struct {
	team     *team.Team
	fieldA   *grid.Field
	fieldB   *grid.Field
	rhs      *grid.Field
	boundary grid.BoundaryFunc
	reducer  *allreduce.AsyncAllreduce
	dim      [3]int

	// Per-axis grid spacing and the cached Poisson-operator
	// coefficients derived from it (spec.md §3): ax/ay/az are the
	// off-diagonal coefficients along x/y/z, ac the diagonal, m its
	// reciprocal, ff the right-hand-side scale (1 on the finest
	// level), dt the explicit-stepping CFL bound. Every one of these
	// is inherited verbatim by a coarser level rather than recomputed
	// — see NewCoarser.
	hz, hy, hx         float64
	ax, ay, az, ac, m  float64
	ff                 float64
	dt                 float64
	phys               [3]float64 // physical extents {lz,ly,lx} in meters
	depth              int        // 0 = finest
}

// Level is one unit's private cursor into a shared levelStorage. Every
// unit in a level's team holds its own Level value; the only mutable
// field, parity, lives in this per-goroutine value rather than in
// levelStorage; this is a deliberate redesign. The original source
// swaps a shared two-buffer struct, which in a language with explicit
// goroutine-level aliasing control is only safe if every swap is
// serialized by the BSP lock-step (every unit performs it identically
// after every unit reaches the same barrier); but a Go data race
// detector does not reason about "every writer writes the same
// value," it reasons about concurrent unsynchronized access to the
// same memory — so here the thing each unit mutates (parity) is never
// shared, and the thing that is shared (fieldA/fieldB) is never
// mutated after construction, only read and written cell-by-cell into
// disjoint per-unit Arrays.
type Level struct {
	storage *levelStorage
	pos     int
	parity  int
}

// NewFinest builds the finest grid level: a dim[0]xdim[1]xdim[2]
// domain (inner points only; spec.md §6 fixes dim to 2^levels-1 per
// axis) distributed over t, spanning physical extents phys meters
// per axis, zero-initialized, with the hot-disk Dirichlet boundary on
// its two z faces (see boundary.HotDisk).
func NewFinest(t *team.Team, dim [3]int, phys [3]float64) *Level {
	hz := phys[0] / float64(dim[0]+1)
	hy := phys[1] / float64(dim[1]+1)
	hx := phys[2] / float64(dim[2]+1)
	az := -1 / (hz * hz)
	ay := -1 / (hy * hy)
	ax := -1 / (hx * hx)
	ac := -2 * (ax + ay + az)
	minH := math.Min(hz, math.Min(hy, hx))

	st := &levelStorage{
		team:     t,
		fieldA:   grid.NewField(t.Spec(), dim),
		fieldB:   grid.NewField(t.Spec(), dim),
		rhs:      grid.NewField(t.Spec(), dim),
		boundary: boundary.HotDisk(dim),
		reducer:  allreduce.New(),
		dim:      dim,
		hz:       hz, hy: hy, hx: hx,
		ax: ax, ay: ay, az: az, ac: ac, m: 1 / ac,
		ff:    1.0,
		dt:    0.5 * minH * minH,
		phys:  phys,
		depth: 0,
	}
	return &Level{storage: st, pos: t.Position(0)}
}

// NewCoarser builds the next-coarser level below prev. Its inner
// extent per axis satisfies spec.md §4.4's precondition
// (nC+1)*2 = nF+1; every cached coefficient (spacing, ax/ay/az/ac/m,
// ff, dt) is copied from prev unchanged rather than recomputed from a
// doubled h — spec.md §3 calls this out explicitly as a deliberate
// property of the restriction scheme (extra_factor compensates for it
// at the coarse right-hand side instead), so coarsening this level
// list is a reshape of the grids, not a rescale of the operator.
func NewCoarser(prev *Level) *Level {
	pd := prev.storage.dim
	dim := [3]int{
		(pd[0]+1)/2 - 1,
		(pd[1]+1)/2 - 1,
		(pd[2]+1)/2 - 1,
	}
	p := prev.storage
	t := p.team
	st := &levelStorage{
		team:     t,
		fieldA:   grid.NewField(t.Spec(), dim),
		fieldB:   grid.NewField(t.Spec(), dim),
		rhs:      grid.NewField(t.Spec(), dim),
		boundary: boundary.Zero,
		reducer:  allreduce.New(),
		dim:      dim,
		hz:       p.hz, hy: p.hy, hx: p.hx,
		ax: p.ax, ay: p.ay, az: p.az, ac: p.ac, m: p.m,
		ff:    p.ff,
		dt:    p.dt,
		phys:  p.phys,
		depth: p.depth + 1,
	}
	return &Level{storage: st, pos: prev.pos}
}

// WithTeam rebuilds a Level's storage for a different (sub)team,
// keeping every other field — used by elastic mode when recursion
// crosses a team-shrink boundary and the coarser levels below it live
// on a subteam. unit's new position within t replaces pos.
func (l *Level) WithTeam(t *team.Team, unit int) *Level {
	p := l.storage
	st := &levelStorage{
		team:     t,
		fieldA:   grid.NewField(t.Spec(), p.dim),
		fieldB:   grid.NewField(t.Spec(), p.dim),
		rhs:      grid.NewField(t.Spec(), p.dim),
		boundary: p.boundary,
		reducer:  allreduce.New(),
		dim:      p.dim,
		hz:       p.hz, hy: p.hy, hx: p.hx,
		ax: p.ax, ay: p.ay, az: p.az, ac: p.ac, m: p.m,
		ff:    p.ff,
		dt:    p.dt,
		phys:  p.phys,
		depth: p.depth,
	}
	return &Level{storage: st, pos: t.Position(unit)}
}

// ForUnit returns a cursor sharing the receiver's storage but scoped
// to a different unit position within the same team. Every goroutine
// that needs to work on a level built by another goroutine (elastic
// mode's stage templates, built once before units are spawned) gets
// its own working Level this way rather than sharing one mutable
// cursor.
func (l *Level) ForUnit(pos int) *Level {
	return &Level{storage: l.storage, pos: pos}
}

// Depth returns 0 for the finest level, increasing toward the coarsest.
func (l *Level) Depth() int { return l.storage.depth }

// Dim returns the level's global extent {z,y,x}.
func (l *Level) Dim() [3]int { return l.storage.dim }

// Spacing returns the level's (isotropic-by-convention) grid spacing,
// here reported as the z-axis spacing; see Coefficients for the full
// per-axis breakdown used by the smoother and restriction.
func (l *Level) Spacing() float64 { return l.storage.hz }

// Coefficients returns the level's cached Poisson-operator
// coefficients: the three off-diagonal terms, the diagonal, its
// reciprocal, and the right-hand-side scale, exactly as spec.md §3
// defines them.
func (l *Level) Coefficients() (ax, ay, az, ac, m, ff float64) {
	s := l.storage
	return s.ax, s.ay, s.az, s.ac, s.m, s.ff
}

// Team returns the team this level's units run over.
func (l *Level) Team() *team.Team { return l.storage.team }

// Pos returns the unit's position within Team().
func (l *Level) Pos() int { return l.pos }

// Boundary returns the level's Dirichlet boundary function.
func (l *Level) Boundary() grid.BoundaryFunc { return l.storage.boundary }

// Reducer returns the level's pipelined max-allreduce.
func (l *Level) Reducer() *allreduce.AsyncAllreduce { return l.storage.reducer }

// RHS returns the level's right-hand-side field.
func (l *Level) RHS() *grid.Field { return l.storage.rhs }

// current returns the field currently holding this unit's solution,
// and next the one being written to during the current sweep.
func (l *Level) current() *grid.Field {
	if l.parity == 0 {
		return l.storage.fieldA
	}
	return l.storage.fieldB
}

func (l *Level) next() *grid.Field {
	if l.parity == 0 {
		return l.storage.fieldB
	}
	return l.storage.fieldA
}

// Current returns this unit's Array in the field currently holding
// the solution.
func (l *Level) Current() *grid.Array { return l.current().Array(l.pos) }

// Next returns this unit's Array in the field the next sweep writes
// into.
func (l *Level) Next() *grid.Array { return l.next().Array(l.pos) }

// CurrentField returns the field currently holding the solution.
func (l *Level) CurrentField() *grid.Field { return l.current() }

// NextField returns the field the next sweep writes into.
func (l *Level) NextField() *grid.Field { return l.next() }

// Swap flips which field is "current" versus "next." It touches only
// this unit's own cursor (parity), never shared storage, so it is
// race-free to call concurrently across units with no synchronization
// at all.
func (l *Level) Swap() { l.parity ^= 1 }

// MaxDt returns the cached stable explicit time step for this level's
// grid spacing under the standard 3D heat-equation CFL bound,
// mirroring original_source/multigrid3d.cpp's Level::max_dt().
func (l *Level) MaxDt() float64 { return l.storage.dt }
