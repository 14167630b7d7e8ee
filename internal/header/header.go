// Package header implements the fixed 70-byte record that leads a
// full-field time-series (.bts) file.
//
// The record is a contiguous packed struct with no padding; field order
// and widths are format-defined and must never change:
//
//	int16   format tag (7)
//	int32   nz, ny, ntower, nt
//	float32 dz, dy, dt, uhub, zhub, z0
//	float32 scale/offset pairs for components u, v, w
//	int32   descriptor length
package header

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// FormatID tags the single full-field time-series variant this package
// understands. Files carrying any other tag are rejected.
const FormatID = 7

// Size is the encoded size of the header in bytes.
const Size = 70

// Sentinel errors for malformed headers.
var (
	// ErrShortBuffer indicates the buffer holds fewer than Size bytes.
	ErrShortBuffer = errors.New("header: buffer shorter than 70 bytes")

	// ErrFormatID indicates the leading format tag is not FormatID.
	ErrFormatID = errors.New("header: format tag mismatch")

	// ErrBadValue indicates counts or quantization parameters that
	// cannot describe a real file.
	ErrBadValue = errors.New("header: implausible field value")
)

// Header is the leading record of a .bts file. Integer counts are stored
// as int32 and the scalars as float32, exactly as they appear on disk.
type Header struct {
	NumZ     int32 // grid points in z
	NumY     int32 // grid points in y
	NumTower int32 // tower points below the grid
	NumT     int32 // time steps

	DZ   float32 // vertical grid spacing, m
	DY   float32 // lateral grid spacing, m
	DT   float32 // time step, s
	UHub float32 // hub-height reference wind speed, m/s
	ZHub float32 // hub height, m
	Z0   float32 // height of the lowest grid point, m

	// Per-component quantization, index 0 u, 1 v, 2 w.
	Scale  [3]float32
	Offset [3]float32

	// DescLen is the byte length of the descriptor string that follows
	// the header on disk.
	DescLen int32
}

// MarshalTo packs h into buf using the given byte order. buf must hold at
// least Size bytes; only the first Size bytes are written.
func (h *Header) MarshalTo(buf []byte, order binary.ByteOrder) error {
	if len(buf) < Size {
		return ErrShortBuffer
	}
	order.PutUint16(buf[0:], FormatID)
	order.PutUint32(buf[2:], uint32(h.NumZ))
	order.PutUint32(buf[6:], uint32(h.NumY))
	order.PutUint32(buf[10:], uint32(h.NumTower))
	order.PutUint32(buf[14:], uint32(h.NumT))
	putFloat32(buf[18:], order, h.DZ)
	putFloat32(buf[22:], order, h.DY)
	putFloat32(buf[26:], order, h.DT)
	putFloat32(buf[30:], order, h.UHub)
	putFloat32(buf[34:], order, h.ZHub)
	putFloat32(buf[38:], order, h.Z0)
	off := 42
	for c := 0; c < 3; c++ {
		putFloat32(buf[off:], order, h.Scale[c])
		putFloat32(buf[off+4:], order, h.Offset[c])
		off += 8
	}
	order.PutUint32(buf[66:], uint32(h.DescLen))
	return nil
}

// Unmarshal unpacks h from buf using the given byte order. It fails with
// ErrShortBuffer if buf holds fewer than Size bytes and ErrFormatID if
// the format tag is wrong; in both cases h is left unchanged.
func (h *Header) Unmarshal(buf []byte, order binary.ByteOrder) error {
	if len(buf) < Size {
		return fmt.Errorf("%w: got %d", ErrShortBuffer, len(buf))
	}
	if tag := int16(order.Uint16(buf[0:])); tag != FormatID {
		return fmt.Errorf("%w: got %d, want %d", ErrFormatID, tag, FormatID)
	}
	h.NumZ = int32(order.Uint32(buf[2:]))
	h.NumY = int32(order.Uint32(buf[6:]))
	h.NumTower = int32(order.Uint32(buf[10:]))
	h.NumT = int32(order.Uint32(buf[14:]))
	h.DZ = getFloat32(buf[18:], order)
	h.DY = getFloat32(buf[22:], order)
	h.DT = getFloat32(buf[26:], order)
	h.UHub = getFloat32(buf[30:], order)
	h.ZHub = getFloat32(buf[34:], order)
	h.Z0 = getFloat32(buf[38:], order)
	off := 42
	for c := 0; c < 3; c++ {
		h.Scale[c] = getFloat32(buf[off:], order)
		h.Offset[c] = getFloat32(buf[off+4:], order)
		off += 8
	}
	h.DescLen = int32(order.Uint32(buf[66:]))
	return nil
}

// Validate rejects headers whose counts or quantization parameters
// cannot describe a real file. Callers must validate before sizing any
// allocation from the header.
func (h *Header) Validate() error {
	if h.NumZ <= 0 || h.NumY <= 0 || h.NumT <= 0 {
		return fmt.Errorf("%w: non-positive dimensions nz=%d ny=%d nt=%d",
			ErrBadValue, h.NumZ, h.NumY, h.NumT)
	}
	if h.NumTower < 0 {
		return fmt.Errorf("%w: negative tower point count %d", ErrBadValue, h.NumTower)
	}
	if h.DescLen < 0 {
		return fmt.Errorf("%w: negative descriptor length %d", ErrBadValue, h.DescLen)
	}
	total := 3 * int64(h.NumY) * int64(h.NumZ) * int64(h.NumT)
	if total > math.MaxInt32 {
		return fmt.Errorf("%w: sample count %d overflows the format", ErrBadValue, total)
	}
	// Scales are always positive: 65536/(max-min), or 1 for a constant
	// component. Zero or negative would divide by zero on decode or flip
	// the mapping. The negated comparison also rejects NaN.
	for c, s := range h.Scale {
		if !(s > 0) {
			return fmt.Errorf("%w: component %d scale %v", ErrBadValue, c, s)
		}
	}
	return nil
}

func putFloat32(buf []byte, order binary.ByteOrder, v float32) {
	order.PutUint32(buf, math.Float32bits(v))
}

func getFloat32(buf []byte, order binary.ByteOrder) float32 {
	return math.Float32frombits(order.Uint32(buf))
}
