package grid

import "github.com/mephisto-hpc/multigrid3d/internal/team"

// Field is a BLOCKED/BLOCKED/BLOCKED-distributed 3D scalar field: one
// Array per team unit, addressable either by team position or by
// global coordinate. It is the Go stand-in for a DASH NArray<double,3>.
type Field struct {
	spec   team.TeamSpec
	global [3]int
	offset [3][]int // per-axis, per-unit-coordinate global start
	count  [3][]int // per-axis, per-unit-coordinate cell count
	units  []*Array
}

// NewField allocates a Field of the given global extent {z,y,x},
// distributed BLOCKED/BLOCKED/BLOCKED over spec.
func NewField(spec team.TeamSpec, global [3]int) *Field {
	f := &Field{spec: spec, global: global, units: make([]*Array, spec.Size())}
	for axis := 0; axis < 3; axis++ {
		f.offset[axis], f.count[axis] = axisPartition(global[axis], spec.NumUnits(axis))
	}
	for pos := 0; pos < spec.Size(); pos++ {
		c := f.spec.CoordsOf(pos)
		extent := [3]int{
			f.count[0][c[0]],
			f.count[1][c[1]],
			f.count[2][c[2]],
		}
		f.units[pos] = NewArray(extent)
	}
	return f
}

// Spec returns the TeamSpec the field is distributed over.
func (f *Field) Spec() team.TeamSpec { return f.spec }

// Global returns the field's global extent {z,y,x}.
func (f *Field) Global() [3]int { return f.global }

// Array returns the local Array owned by team position pos.
func (f *Field) Array(pos int) *Array { return f.units[pos] }

// GlobalOrigin returns the global coordinate of local owned cell
// (0,0,0) for team position pos.
func (f *Field) GlobalOrigin(pos int) [3]int {
	c := f.spec.CoordsOf(pos)
	return [3]int{f.offset[0][c[0]], f.offset[1][c[1]], f.offset[2][c[2]]}
}

// unitAt returns the team position owning global coordinate g.
func (f *Field) unitAt(g [3]int) int {
	c := [3]int{
		axisUnitOf(g[0], f.offset[0], f.count[0]),
		axisUnitOf(g[1], f.offset[1], f.count[1]),
		axisUnitOf(g[2], f.offset[2], f.count[2]),
	}
	return f.spec.PositionOf(c)
}

// GlobalGet transparently reads the cell at global coordinate g,
// regardless of which unit owns it, mirroring a one-sided get through
// a DASH global iterator. Used by TeamTransfer, where source and
// destination fields have mismatched partition boundaries and
// position-indexed access does not suffice.
func (f *Field) GlobalGet(g [3]int) float64 {
	pos := f.unitAt(g)
	origin := f.GlobalOrigin(pos)
	return f.units[pos].Owned(g[0]-origin[0], g[1]-origin[1], g[2]-origin[2])
}

// GlobalSet transparently writes the cell at global coordinate g.
func (f *Field) GlobalSet(g [3]int, v float64) {
	pos := f.unitAt(g)
	origin := f.GlobalOrigin(pos)
	f.units[pos].SetOwned(g[0]-origin[0], g[1]-origin[1], g[2]-origin[2], v)
}

// NeighborAt returns the team position of the unit adjacent to pos
// along axis in direction dir (-1 or +1), and whether such a neighbor
// exists (false at the global domain boundary).
func (f *Field) NeighborAt(pos, axis, dir int) (int, bool) {
	c := f.spec.CoordsOf(pos)
	nc := c
	nc[axis] += dir
	if nc[axis] < 0 || nc[axis] >= f.spec.NumUnits(axis) {
		return 0, false
	}
	return f.spec.PositionOf(nc), true
}
