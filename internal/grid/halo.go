package grid

// BoundaryFunc evaluates the Dirichlet boundary value at a global
// coordinate {z,y,x} that lies outside the computational domain. The
// original source uses a single lambda uniformly for every ghost
// region — face, edge, and corner alike — since it only inspects the
// z-coordinate; this type preserves that uniformity rather than
// special-casing regions.
type BoundaryFunc func(global [3]int) float64

// Halo fills one unit's ghost shell, either by copying the adjacent
// owned cell out of a neighbor's Array (when one exists along that
// direction) or by evaluating a BoundaryFunc at the corresponding
// global coordinate (at the outer edge of the domain). It reads only
// from src (never written to while a Halo update is in flight) and
// writes only to its own unit's Array, so concurrent Halo updates
// across units never touch the same memory — the "async update
// overlaps with inner compute" property holds because the inner
// compute step of a Jacobi sweep writes to a *different* Field (the
// ping-pong destination), never to src.
type Halo struct {
	done chan struct{}
}

// UpdateAsync launches the halo fill for team position pos in the
// background and returns immediately; call Wait before reading the
// ghost shell.
func UpdateAsync(dst *Array, src *Field, pos int, boundary BoundaryFunc) *Halo {
	h := &Halo{done: make(chan struct{})}
	go func() {
		defer close(h.done)
		fillGhostShell(dst, src, pos, boundary)
	}()
	return h
}

// Wait blocks until the halo fill launched by UpdateAsync completes.
func (h *Halo) Wait() { <-h.done }

func fillGhostShell(dst *Array, src *Field, pos int, boundary BoundaryFunc) {
	ext := dst.Extent()
	origin := src.GlobalOrigin(pos)

	for lz := -1; lz <= ext[0]; lz++ {
		for ly := -1; ly <= ext[1]; ly++ {
			for lx := -1; lx <= ext[2]; lx++ {
				if inRange(lz, ext[0]) && inRange(ly, ext[1]) && inRange(lx, ext[2]) {
					continue // owned interior, not part of the ghost shell
				}
				local := [3]int{lz, ly, lx}
				off := [3]int{offsetOf(lz, ext[0]), offsetOf(ly, ext[1]), offsetOf(lx, ext[2])}

				neighbor, ok := neighborPos(src, pos, off)
				var v float64
				if ok {
					nArray := src.Array(neighbor)
					nExt := nArray.Extent()
					nLocal := [3]int{
						faceIndex(off[0], local[0], nExt[0]),
						faceIndex(off[1], local[1], nExt[1]),
						faceIndex(off[2], local[2], nExt[2]),
					}
					v = nArray.Owned(nLocal[0], nLocal[1], nLocal[2])
				} else {
					g := [3]int{origin[0] + local[0], origin[1] + local[1], origin[2] + local[2]}
					v = boundary(g)
				}
				dst.Set(lz, ly, lx, v)
			}
		}
	}
}

func inRange(l, ext int) bool { return l >= 0 && l < ext }

func offsetOf(l, ext int) int {
	switch {
	case l < 0:
		return -1
	case l >= ext:
		return 1
	default:
		return 0
	}
}

// faceIndex maps a ghost-shell local coordinate to the adjacent
// neighbor's owned-index along the same axis: the index unchanged if
// off==0 (same team coordinate along that axis), otherwise the
// neighbor's face that touches this unit (extent-1 for off==-1, 0 for
// off==+1).
func faceIndex(off, local, neighborExt int) int {
	switch off {
	case -1:
		return neighborExt - 1
	case 1:
		return 0
	default:
		return local
	}
}

func neighborPos(f *Field, pos int, off [3]int) (int, bool) {
	spec := f.Spec()
	c := spec.CoordsOf(pos)
	for axis := 0; axis < 3; axis++ {
		c[axis] += off[axis]
		if c[axis] < 0 || c[axis] >= spec.NumUnits(axis) {
			return 0, false
		}
	}
	return spec.PositionOf(c), true
}
