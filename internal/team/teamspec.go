package team

// TeamSpec describes how a team's units are arranged on a 3-axis grid of
// positions (the z/y/x "unit cube" a distributed array is laid out over),
// mirroring dash::TeamSpec<3> from the original DASH-based implementation.
type TeamSpec struct {
	dims [3]int
}

// NewTeamSpec returns the degenerate spec {size,1,1}: every unit stacked
// along the z axis. Callers almost always follow this with
// BalanceExtents.
func NewTeamSpec(size int) TeamSpec {
	return TeamSpec{dims: [3]int{size, 1, 1}}
}

// BalanceExtents redistributes the team size across the three axes so
// that the resulting box is as close to a cube as a 3-way integer
// factorization of Size() allows. It mutates the receiver in place,
// mirroring dash::TeamSpec::balance_extents().
//
// The elastic mode (internal/app, through Team.Split) always rebuilds a
// reduced TeamSpec as {size,1,1} before calling this, exactly as the
// original source does;
// whether that matches the parent team's actual data layout on every
// topology is unproven (see DESIGN.md, open question 2) and is
// preserved rather than "fixed."
func (s *TeamSpec) BalanceExtents() {
	n := s.Size()
	if n <= 1 {
		s.dims = [3]int{max(n, 1), 1, 1}
		return
	}

	best := [3]int{n, 1, 1}
	bestSpread := spread(best)

	for a := 1; a*a*a <= n*4; a++ {
		if n%a != 0 {
			continue
		}
		rem := n / a
		for b := a; b*b <= rem*2; b++ {
			if rem%b != 0 {
				continue
			}
			c := rem / b
			for _, perm := range permutations3(a, b, c) {
				if sp := spread(perm); sp < bestSpread {
					best = perm
					bestSpread = sp
				}
			}
		}
	}
	s.dims = best
}

// spread measures how far a factorization is from a cube: the ratio of
// the largest to the smallest axis extent.
func spread(dims [3]int) float64 {
	lo, hi := dims[0], dims[0]
	for _, d := range dims[1:] {
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}
	return float64(hi) / float64(lo)
}

func permutations3(a, b, c int) [][3]int {
	return [][3]int{
		{a, b, c}, {a, c, b},
		{b, a, c}, {b, c, a},
		{c, a, b}, {c, b, a},
	}
}

// Size returns the total number of units the spec covers.
func (s TeamSpec) Size() int { return s.dims[0] * s.dims[1] * s.dims[2] }

// NumUnits returns the number of units arranged along the given axis
// (0=z, 1=y, 2=x).
func (s TeamSpec) NumUnits(axis int) int { return s.dims[axis] }

// Dims returns the {z,y,x} unit counts.
func (s TeamSpec) Dims() [3]int { return s.dims }

// CoordsOf maps a linear team position (row-major over z,y,x, matching
// dash::TeamSpec's default ordering) to its {z,y,x} coordinate triple.
func (s TeamSpec) CoordsOf(pos int) [3]int {
	x := pos % s.dims[2]
	rest := pos / s.dims[2]
	y := rest % s.dims[1]
	z := rest / s.dims[1]
	return [3]int{z, y, x}
}

// PositionOf is the inverse of CoordsOf.
func (s TeamSpec) PositionOf(coords [3]int) int {
	return (coords[0]*s.dims[1]+coords[1])*s.dims[2] + coords[2]
}
