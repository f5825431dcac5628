package grid

// Array is one unit's local block of a distributed 3D scalar field: a
// contiguous owned sub-block plus a one-cell ghost layer on every
// face, used to hold halo copies or boundary values. Local coordinates
// passed to Get/Set include the ghost layer (so valid indices run from
// -1 to extent[d]); Owned/SetOwned take coordinates relative to the
// owned block only (0..extent[d]-1).
type Array struct {
	extent [3]int // owned cell counts, {z,y,x}
	stride [3]int
	data   []float64
}

// NewArray allocates a zeroed Array owning extent[0]*extent[1]*extent[2]
// cells plus a surrounding ghost shell.
func NewArray(extent [3]int) *Array {
	gz, gy, gx := extent[0]+2, extent[1]+2, extent[2]+2
	a := &Array{
		extent: extent,
		stride: [3]int{gy * gx, gx, 1},
		data:   make([]float64, gz*gy*gx),
	}
	return a
}

// Extent returns the owned cell counts {z,y,x}.
func (a *Array) Extent() [3]int { return a.extent }

func (a *Array) index(z, y, x int) int {
	return (z+1)*a.stride[0] + (y+1)*a.stride[1] + (x + 1)
}

// Get reads a ghost-inclusive local coordinate (-1..extent[d]).
func (a *Array) Get(z, y, x int) float64 { return a.data[a.index(z, y, x)] }

// Set writes a ghost-inclusive local coordinate (-1..extent[d]).
func (a *Array) Set(z, y, x int, v float64) { a.data[a.index(z, y, x)] = v }

// Owned reads an owned-block-relative coordinate (0..extent[d]-1).
func (a *Array) Owned(z, y, x int) float64 { return a.Get(z, y, x) }

// SetOwned writes an owned-block-relative coordinate (0..extent[d]-1).
func (a *Array) SetOwned(z, y, x int, v float64) { a.Set(z, y, x, v) }

// Fill sets every owned cell (not the ghost layer) to v.
func (a *Array) Fill(v float64) {
	for z := 0; z < a.extent[0]; z++ {
		for y := 0; y < a.extent[1]; y++ {
			for x := 0; x < a.extent[2]; x++ {
				a.SetOwned(z, y, x, v)
			}
		}
	}
}

// CopyOwnedFrom copies every owned cell from src into the receiver;
// the two arrays must share the same extent.
func (a *Array) CopyOwnedFrom(src *Array) {
	for z := 0; z < a.extent[0]; z++ {
		for y := 0; y < a.extent[1]; y++ {
			for x := 0; x < a.extent[2]; x++ {
				a.SetOwned(z, y, x, src.Owned(z, y, x))
			}
		}
	}
}
