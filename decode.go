package turbts

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/gustline/turbts/internal/header"
	"github.com/gustline/turbts/internal/layout"
	"github.com/gustline/turbts/internal/quantize"
	"github.com/gustline/turbts/internal/stats"
)

// Decode reads a full-field time-series byte stream from r and returns
// the reconstructed velocity tensor together with the grid metadata,
// quantization parameters, and descriptor recovered from the header.
//
// The whole time series is read into memory; there is no partial decode.
// A short or mistagged header fails with ErrFormat, a stream that ends
// inside the descriptor or data block with ErrTruncated, and other I/O
// errors propagate unchanged.
func Decode(r io.Reader, opts ...Option) (*File, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	var hbuf [header.Size]byte
	if _, err := io.ReadFull(r, hbuf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			cfg.stats.IncCounter(stats.MetricFormatErrors, 1)
			return nil, fmt.Errorf("%w: stream shorter than header: %v", ErrFormat, err)
		}
		return nil, fmt.Errorf("turbts: reading header: %w", err)
	}

	var hdr header.Header
	if err := hdr.Unmarshal(hbuf[:], cfg.order); err != nil {
		cfg.stats.IncCounter(stats.MetricFormatErrors, 1)
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if err := hdr.Validate(); err != nil {
		cfg.stats.IncCounter(stats.MetricFormatErrors, 1)
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	desc := make([]byte, hdr.DescLen)
	if _, err := io.ReadFull(r, desc); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: stream ends inside %d-byte descriptor: %v",
				ErrTruncated, hdr.DescLen, err)
		}
		return nil, fmt.Errorf("turbts: reading descriptor: %w", err)
	}

	ny, nz, nt := int(hdr.NumY), int(hdr.NumZ), int(hdr.NumT)
	n := NumComponents * ny * nz * nt
	block := make([]byte, 2*n)
	if _, err := io.ReadFull(r, block); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: want %d sample bytes: %v", ErrTruncated, len(block), err)
		}
		return nil, fmt.Errorf("turbts: reading data block: %w", err)
	}

	disk := make([]int16, n)
	for i := range disk {
		disk[i] = int16(cfg.order.Uint16(block[2*i:]))
	}
	codes := layout.Deinterleave(disk, ny, nz, nt)

	f := NewField(ny, nz, nt)
	var quants [NumComponents]Quant
	perComp := ny * nz * nt
	for c := 0; c < NumComponents; c++ {
		p := quantize.Params{Scale: hdr.Scale[c], Offset: hdr.Offset[c]}
		quants[c] = Quant{Scale: p.Scale, Offset: p.Offset}
		comp := f.Component(c)
		in := codes[c*perComp : (c+1)*perComp]
		for i, q := range in {
			comp[i] = p.Value(q)
		}
	}

	cfg.stats.IncCounter(stats.MetricDecodes, 1)
	cfg.stats.IncCounter(stats.MetricDecodedBytes, int64(header.Size+len(desc)+len(block)))
	cfg.logger.Debug("decoded field",
		zap.Int("ny", ny),
		zap.Int("nz", nz),
		zap.Int("nt", nt),
		zap.String("descriptor", string(desc)),
	)

	return &File{
		Field: f,
		Grid: Grid{
			NumZ:     nz,
			NumY:     ny,
			NumTower: int(hdr.NumTower),
			NumT:     nt,
			DZ:       hdr.DZ,
			DY:       hdr.DY,
			DT:       hdr.DT,
			UHub:     hdr.UHub,
			ZHub:     hdr.ZHub,
			Z0:       hdr.Z0,
		},
		Quant:      quants,
		Descriptor: string(desc),
	}, nil
}
