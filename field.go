package turbts

import "fmt"

// NumComponents is the number of velocity components in a field:
// 0 along-wind (u), 1 cross-wind (v), 2 vertical (w).
const NumComponents = 3

// Field is a 4-dimensional float32 velocity tensor indexed as
// [component, y, z, t]. The z axis runs bottom-up: index 0 is the lowest
// grid point. Samples live in one contiguous allocation with t varying
// fastest and component slowest, so each component is a contiguous
// sub-slice.
type Field struct {
	ny, nz, nt int
	data       []float32
}

// NewField allocates a zeroed field with the given grid dimensions.
// It panics if any dimension is not positive.
func NewField(ny, nz, nt int) *Field {
	if ny <= 0 || nz <= 0 || nt <= 0 {
		panic(fmt.Sprintf("turbts: invalid field dimensions %dx%dx%d", ny, nz, nt))
	}
	return &Field{
		ny:   ny,
		nz:   nz,
		nt:   nt,
		data: make([]float32, NumComponents*ny*nz*nt),
	}
}

// Dims returns the grid dimensions (y points, z points, time steps).
func (f *Field) Dims() (ny, nz, nt int) {
	return f.ny, f.nz, f.nt
}

// At returns the sample for component c at grid point (iy, iz) and time
// step it. It panics if any index is out of range.
func (f *Field) At(c, iy, iz, it int) float32 {
	return f.data[f.index(c, iy, iz, it)]
}

// Set stores the sample for component c at grid point (iy, iz) and time
// step it. It panics if any index is out of range.
func (f *Field) Set(c, iy, iz, it int, v float32) {
	f.data[f.index(c, iy, iz, it)] = v
}

// Component returns the contiguous samples of one velocity component,
// ordered [y][z][t] with t fastest. The slice aliases the field;
// mutations are visible through At.
func (f *Field) Component(c int) []float32 {
	if c < 0 || c >= NumComponents {
		panic(fmt.Sprintf("turbts: component %d out of range", c))
	}
	n := f.ny * f.nz * f.nt
	return f.data[c*n : (c+1)*n]
}

func (f *Field) index(c, iy, iz, it int) int {
	if c < 0 || c >= NumComponents ||
		iy < 0 || iy >= f.ny ||
		iz < 0 || iz >= f.nz ||
		it < 0 || it >= f.nt {
		panic(fmt.Sprintf("turbts: index (%d,%d,%d,%d) out of range for %dx%dx%d field",
			c, iy, iz, it, f.ny, f.nz, f.nt))
	}
	return ((c*f.ny+iy)*f.nz+iz)*f.nt + it
}
