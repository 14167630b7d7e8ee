package turbts_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/gustline/turbts"
	"github.com/gustline/turbts/internal/synth"
)

func testGrid(ny, nz, nt int) turbts.Grid {
	return turbts.Grid{
		NumZ: nz, NumY: ny, NumTower: 2, NumT: nt,
		DZ: 3.5, DY: 3.0, DT: 0.05,
		UHub: 12.5, ZHub: 90, Z0: 65.5,
	}
}

// distinctField assigns every (c, iy, iz, it) tuple a unique value spaced
// far wider than the quantization step, so any reordering bug surfaces as
// a sample mismatch rather than hiding inside the error bound.
func distinctField(ny, nz, nt int) *turbts.Field {
	f := turbts.NewField(ny, nz, nt)
	for c := 0; c < turbts.NumComponents; c++ {
		for iy := 0; iy < ny; iy++ {
			for iz := 0; iz < nz; iz++ {
				for it := 0; it < nt; it++ {
					f.Set(c, iy, iz, it, float32(iy+16*(iz+16*it))+float32(c)*0.001)
				}
			}
		}
	}
	return f
}

// componentBound returns the reconstruction error bound
// (max-min)/65536 for one component, with 1% float32 headroom.
func componentBound(f *turbts.Field, c int) float64 {
	comp := f.Component(c)
	lo, hi := comp[0], comp[0]
	for _, v := range comp {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return 1.01 * (float64(hi) - float64(lo)) / 65536
}

func TestRoundTrip_Synthetic(t *testing.T) {
	field, grid, err := synth.Generate(synth.Config{
		NumY: 7, NumZ: 9, NumT: 50,
		DY: 3, DZ: 3, DT: 0.05,
		UHub: 12, ZHub: 90, Z0: 78,
		Alpha:     0.14,
		Intensity: [3]float64{0.16, 0.12, 0.08},
		Seed:      42,
	})
	if err != nil {
		t.Fatalf("synth.Generate() error = %v", err)
	}

	var buf bytes.Buffer
	if err := turbts.Encode(&buf, field, grid); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	file, err := turbts.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if file.Grid != grid {
		t.Errorf("grid mismatch:\ngot  %+v\nwant %+v", file.Grid, grid)
	}

	ny, nz, nt := field.Dims()
	for c := 0; c < turbts.NumComponents; c++ {
		bound := componentBound(field, c)
		for iy := 0; iy < ny; iy++ {
			for iz := 0; iz < nz; iz++ {
				for it := 0; it < nt; it++ {
					want := float64(field.At(c, iy, iz, it))
					got := float64(file.Field.At(c, iy, iz, it))
					if math.Abs(got-want) > bound {
						t.Fatalf("sample (%d,%d,%d,%d) = %v, want %v ± %v",
							c, iy, iz, it, got, want, bound)
					}
				}
			}
		}
	}
}

func TestRoundTrip_AxisOrder(t *testing.T) {
	const ny, nz, nt = 4, 5, 6
	field := distinctField(ny, nz, nt)

	var buf bytes.Buffer
	if err := turbts.Encode(&buf, field, testGrid(ny, nz, nt)); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	file, err := turbts.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	// Values are spaced ~1 apart against a step of ~0.01, so nearest-value
	// matching identifies the exact source index of every decoded sample.
	for c := 0; c < turbts.NumComponents; c++ {
		bound := componentBound(field, c)
		for iy := 0; iy < ny; iy++ {
			for iz := 0; iz < nz; iz++ {
				for it := 0; it < nt; it++ {
					want := float64(field.At(c, iy, iz, it))
					got := float64(file.Field.At(c, iy, iz, it))
					if math.Abs(got-want) > bound {
						t.Fatalf("sample (%d,%d,%d,%d) decoded to %v, want %v: axis order broken",
							c, iy, iz, it, got, want)
					}
				}
			}
		}
	}
}

func TestRoundTrip_ConstantComponent(t *testing.T) {
	const ny, nz, nt = 3, 3, 4
	field := turbts.NewField(ny, nz, nt)
	// Component 0 varies; components 1 and 2 are constant, including the
	// all-zero case.
	for iy := 0; iy < ny; iy++ {
		for iz := 0; iz < nz; iz++ {
			for it := 0; it < nt; it++ {
				field.Set(0, iy, iz, it, float32(iy+iz+it))
				field.Set(1, iy, iz, it, 7.25)
			}
		}
	}

	var buf bytes.Buffer
	if err := turbts.Encode(&buf, field, testGrid(ny, nz, nt)); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	file, err := turbts.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	// Constant components reconstruct exactly, not approximately.
	for iy := 0; iy < ny; iy++ {
		for iz := 0; iz < nz; iz++ {
			for it := 0; it < nt; it++ {
				if got := file.Field.At(1, iy, iz, it); got != 7.25 {
					t.Fatalf("constant component = %v at (%d,%d,%d), want exactly 7.25", got, iy, iz, it)
				}
				if got := file.Field.At(2, iy, iz, it); got != 0 {
					t.Fatalf("zero component = %v at (%d,%d,%d), want exactly 0", got, iy, iz, it)
				}
			}
		}
	}
	if file.Quant[1].Scale != 1 {
		t.Errorf("constant component scale = %v, want 1", file.Quant[1].Scale)
	}
}

func TestEncode_BoundaryCodes(t *testing.T) {
	// One component spanning [-5, 5], extremes at known grid positions.
	const ny, nz, nt = 2, 2, 1
	field := turbts.NewField(ny, nz, nt)
	field.Set(0, 0, nz-1, 0, -5) // first sample on disk
	field.Set(0, 1, nz-1, 0, 5)  // second y point, top plane

	var buf bytes.Buffer
	if err := turbts.Encode(&buf, field, testGrid(ny, nz, nt), turbts.WithDescriptor("x")); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	raw := buf.Bytes()
	const dataStart = 70 + 1 // header + one descriptor byte

	// Disk order is component-fastest: sample 0 is (c0, iy0, top z),
	// sample 3 is (c0, iy1, top z).
	if got := int16(binary.LittleEndian.Uint16(raw[dataStart:])); got != -32768 {
		t.Errorf("code at range minimum = %d, want -32768", got)
	}
	if got := int16(binary.LittleEndian.Uint16(raw[dataStart+2*3:])); got != 32767 {
		t.Errorf("code at range maximum = %d, want 32767", got)
	}
}

func TestEncode_DimensionMismatch(t *testing.T) {
	field := turbts.NewField(3, 3, 3)
	grid := testGrid(3, 3, 4) // nt disagrees

	err := turbts.Encode(&bytes.Buffer{}, field, grid)
	if !errors.Is(err, turbts.ErrDimension) {
		t.Errorf("Encode() error = %v, want ErrDimension", err)
	}
}

func TestEncode_Descriptor(t *testing.T) {
	field := turbts.NewField(2, 2, 2)
	grid := testGrid(2, 2, 2)

	t.Run("explicit text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := turbts.Encode(&buf, field, grid, turbts.WithDescriptor("site 12, run 3")); err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		file, err := turbts.Decode(&buf)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if file.Descriptor != "site 12, run 3" {
			t.Errorf("Descriptor = %q, want %q", file.Descriptor, "site 12, run 3")
		}
	})

	t.Run("generated stamp", func(t *testing.T) {
		var buf bytes.Buffer
		if err := turbts.Encode(&buf, field, grid, turbts.WithTool("windgen", "2.1")); err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		file, err := turbts.Decode(&buf)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if !strings.HasPrefix(file.Descriptor, "generated by windgen v2.1, ") {
			t.Errorf("Descriptor = %q, want windgen stamp", file.Descriptor)
		}
	})
}

func TestDecode_BigEndian(t *testing.T) {
	field := distinctField(3, 4, 5)
	grid := testGrid(3, 4, 5)

	var buf bytes.Buffer
	if err := turbts.Encode(&buf, field, grid, turbts.WithByteOrder(binary.BigEndian)); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	// The default little-endian decode must reject it outright.
	if _, err := turbts.Decode(bytes.NewReader(buf.Bytes())); !errors.Is(err, turbts.ErrFormat) {
		t.Errorf("Decode(big-endian stream) error = %v, want ErrFormat", err)
	}

	file, err := turbts.Decode(bytes.NewReader(buf.Bytes()), turbts.WithByteOrder(binary.BigEndian))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	bound := componentBound(field, 0)
	if got, want := float64(file.Field.At(0, 1, 2, 3)), float64(field.At(0, 1, 2, 3)); math.Abs(got-want) > bound {
		t.Errorf("sample = %v, want %v ± %v", got, want, bound)
	}
}

func TestDecode_Malformed(t *testing.T) {
	field := turbts.NewField(3, 3, 3)
	grid := testGrid(3, 3, 3)
	var buf bytes.Buffer
	if err := turbts.Encode(&buf, field, grid, turbts.WithDescriptor("abcdef")); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	valid := buf.Bytes()

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"empty stream", nil, turbts.ErrFormat},
		{"short header", valid[:50], turbts.ErrFormat},
		{"truncated descriptor", valid[:72], turbts.ErrTruncated},
		{"truncated data block", valid[:len(valid)-10], turbts.ErrTruncated},
		{"header only", valid[:70], turbts.ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := turbts.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("wrong format tag", func(t *testing.T) {
		bad := append([]byte(nil), valid...)
		bad[0] = 8
		if _, err := turbts.Decode(bytes.NewReader(bad)); !errors.Is(err, turbts.ErrFormat) {
			t.Errorf("Decode() error = %v, want ErrFormat", err)
		}
	})

	t.Run("negative dimension", func(t *testing.T) {
		bad := append([]byte(nil), valid...)
		binary.LittleEndian.PutUint32(bad[2:], ^uint32(0)) // nz = -1
		if _, err := turbts.Decode(bytes.NewReader(bad)); !errors.Is(err, turbts.ErrFormat) {
			t.Errorf("Decode() error = %v, want ErrFormat", err)
		}
	})

	// A zero scale would divide by zero during dequantization and turn
	// every sample into Inf or NaN; no encoder emits one.
	t.Run("zero scale", func(t *testing.T) {
		bad := append([]byte(nil), valid...)
		binary.LittleEndian.PutUint32(bad[42:], 0) // scale[0] = 0
		if _, err := turbts.Decode(bytes.NewReader(bad)); !errors.Is(err, turbts.ErrFormat) {
			t.Errorf("Decode() error = %v, want ErrFormat", err)
		}
	})
}

func TestEncode_StreamSize(t *testing.T) {
	const ny, nz, nt = 5, 6, 7
	var buf bytes.Buffer
	err := turbts.Encode(&buf, turbts.NewField(ny, nz, nt), testGrid(ny, nz, nt),
		turbts.WithDescriptor("sized"))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := 70 + len("sized") + 2*3*ny*nz*nt
	if buf.Len() != want {
		t.Errorf("stream size = %d, want %d", buf.Len(), want)
	}
}

func BenchmarkEncode(b *testing.B) {
	field, grid, err := synth.Generate(synth.Config{
		NumY: 15, NumZ: 15, NumT: 600,
		DY: 3, DZ: 3, DT: 0.05,
		UHub: 12, ZHub: 90, Z0: 69,
		Alpha:     0.14,
		Intensity: [3]float64{0.16, 0.12, 0.08},
		Seed:      7,
	})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var buf bytes.Buffer
		if err := turbts.Encode(&buf, field, grid); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	field, grid, err := synth.Generate(synth.Config{
		NumY: 15, NumZ: 15, NumT: 600,
		DY: 3, DZ: 3, DT: 0.05,
		UHub: 12, ZHub: 90, Z0: 69,
		Alpha:     0.14,
		Intensity: [3]float64{0.16, 0.12, 0.08},
		Seed:      7,
	})
	if err != nil {
		b.Fatal(err)
	}
	var buf bytes.Buffer
	if err := turbts.Encode(&buf, field, grid); err != nil {
		b.Fatal(err)
	}
	data := buf.Bytes()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := turbts.Decode(bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}
