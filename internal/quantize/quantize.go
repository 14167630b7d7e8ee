// Package quantize maps float32 velocity samples onto the signed 16-bit
// code space used by the full-field time-series data block.
package quantize

import "math"

const (
	codeMin   = -32768
	codeMax   = 32767
	codeRange = 65536
)

// Params is one component's linear code mapping, chosen so the
// component's [min, max] value range spans the full int16 code space.
//
// Codes are round(x*Scale + Offset) clamped to [-32768, 32767]. The
// clamp matters at the top of the range: the exact component maximum
// computes to code 32768 and is pinned to 32767 instead of wrapping.
type Params struct {
	Scale  float32
	Offset float32
}

// Derive computes the mapping for one component from its full sample
// slice. A constant component (min == max) gets Scale 1 so that every
// sample maps to the same code and decodes back to the exact constant.
// An empty slice yields the identity-scale mapping with Offset 0.
func Derive(samples []float32) Params {
	if len(samples) == 0 {
		return Params{Scale: 1}
	}
	lo, hi := samples[0], samples[0]
	for _, v := range samples[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	scale := float32(1)
	if hi > lo {
		scale = float32(codeRange / (float64(hi) - float64(lo)))
	}
	return Params{
		Scale:  scale,
		Offset: float32(codeMin - float64(scale)*float64(lo)),
	}
}

// Code quantizes a single sample.
func (p Params) Code(x float32) int16 {
	q := math.Round(float64(x)*float64(p.Scale) + float64(p.Offset))
	if q < codeMin {
		q = codeMin
	}
	if q > codeMax {
		q = codeMax
	}
	return int16(q)
}

// Value reverses Code up to quantization error. The reconstruction error
// for values inside the derived range is at most Step()/2 plus one code
// step of clamping loss at the exact maximum.
func (p Params) Value(q int16) float32 {
	return float32((float64(q) - float64(p.Offset)) / float64(p.Scale))
}

// Step returns the value difference represented by one code step,
// (max-min)/65536 for a mapping derived from that range.
func (p Params) Step() float32 {
	return float32(1 / float64(p.Scale))
}
