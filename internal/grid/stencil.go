package grid

// StencilPoint is one neighbor offset and weight of a 3D interpolation
// stencil, expressed relative to a center cell.
type StencilPoint struct {
	DZ, DY, DX int
	Weight     float64
}

// FullStencilSpec is the 26-point tri-linear neighborhood (every
// offset in {-1,0,1}^3 except the center), weighted by
// 1/2^(number of nonzero axes): 1/2 for a face neighbor, 1/4 for an
// edge neighbor, 1/8 for a corner neighbor. internal/mg's restriction
// and prolongation combine this with the center point and their own
// scale factors.
var FullStencilSpec = buildFullStencil()

func buildFullStencil() []StencilPoint {
	pts := make([]StencilPoint, 0, 26)
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dz == 0 && dy == 0 && dx == 0 {
					continue
				}
				nonzero := 0
				for _, d := range []int{dz, dy, dx} {
					if d != 0 {
						nonzero++
					}
				}
				weight := 1.0
				for i := 0; i < nonzero; i++ {
					weight /= 2
				}
				pts = append(pts, StencilPoint{DZ: dz, DY: dy, DX: dx, Weight: weight})
			}
		}
	}
	return pts
}

// StencilOp splits an Array's owned cells into an "inner" set (whose
// 6-point face neighbors all lie within the same owned block, so a
// Jacobi sweep can visit them before a halo exchange completes) and a
// "boundary" set (cells on the owned block's own face, whose 6-point
// neighbors reach into the ghost shell a Halo fills).
type StencilOp struct {
	extent [3]int
}

// NewStencilOp builds a StencilOp for an Array of the given owned
// extent.
func NewStencilOp(extent [3]int) StencilOp { return StencilOp{extent: extent} }

// ForEachInner calls fn for every owned cell strictly away from the
// block's own boundary.
func (s StencilOp) ForEachInner(fn func(z, y, x int)) {
	for z := 1; z < s.extent[0]-1; z++ {
		for y := 1; y < s.extent[1]-1; y++ {
			for x := 1; x < s.extent[2]-1; x++ {
				fn(z, y, x)
			}
		}
	}
}

// ForEachBoundary calls fn for every owned cell on the block's own
// face (the complement of ForEachInner).
func (s StencilOp) ForEachBoundary(fn func(z, y, x int)) {
	for z := 0; z < s.extent[0]; z++ {
		for y := 0; y < s.extent[1]; y++ {
			for x := 0; x < s.extent[2]; x++ {
				if isInner(z, s.extent[0]) && isInner(y, s.extent[1]) && isInner(x, s.extent[2]) {
					continue
				}
				fn(z, y, x)
			}
		}
	}
}

func isInner(v, ext int) bool { return v >= 1 && v < ext-1 }
