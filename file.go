package turbts

// Grid describes the spatial and temporal layout of a field. All values
// are captured once at encode time and reconstructed verbatim on decode.
type Grid struct {
	NumZ     int // grid points in z
	NumY     int // grid points in y
	NumTower int // tower points below the grid
	NumT     int // time steps

	DZ float32 // vertical grid spacing, m
	DY float32 // lateral grid spacing, m
	DT float32 // time step, s

	UHub float32 // hub-height reference wind speed, m/s
	ZHub float32 // hub height, m
	Z0   float32 // height of the lowest grid point, m
}

// Quant is one component's quantization mapping as stored in the header:
// code = round(value*Scale + Offset) clamped to [-32768, 32767], and
// value = (code - Offset) / Scale.
type Quant struct {
	Scale  float32
	Offset float32
}

// Step returns the value difference represented by one quantization
// code, (max-min)/65536 for the component's encoded range. It bounds the
// absolute reconstruction error of interior samples at Step()/2.
func (q Quant) Step() float32 {
	return float32(1 / float64(q.Scale))
}

// File is a fully decoded full-field time-series file: the velocity
// tensor plus everything the header carried.
type File struct {
	Field      *Field
	Grid       Grid
	Quant      [NumComponents]Quant
	Descriptor string
}
