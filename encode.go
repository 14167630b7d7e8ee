package turbts

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/gustline/turbts/internal/header"
	"github.com/gustline/turbts/internal/layout"
	"github.com/gustline/turbts/internal/quantize"
	"github.com/gustline/turbts/internal/stats"
)

// Encode writes f to w as a full-field time-series byte stream: the
// 70-byte header, the descriptor text, then the quantized data block in
// disk order. Each component gets its own scale/offset mapping derived
// from its value range, stored in the header for exact inverse decode.
//
// Encode validates that g's grid dimensions match f's; grid-only values
// (tower points, spacing, hub scalars) are taken from g verbatim. I/O
// errors propagate to the caller; nothing is cleaned up on failure, so a
// partially written stream is the caller's to discard.
func Encode(w io.Writer, f *Field, g Grid, opts ...Option) error {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	ny, nz, nt := f.Dims()
	if g.NumY != ny || g.NumZ != nz || g.NumT != nt {
		return fmt.Errorf("%w: field %dx%dx%d, grid %dx%dx%d",
			ErrDimension, ny, nz, nt, g.NumY, g.NumZ, g.NumT)
	}

	desc := cfg.descriptor
	if desc == "" {
		desc = fmt.Sprintf("generated by %s v%s, %s.",
			cfg.toolName, cfg.toolVersion,
			cfg.now().Format("Jan 02, 2006, 15:04 (MST)"))
	}

	hdr := header.Header{
		NumZ:     int32(nz),
		NumY:     int32(ny),
		NumTower: int32(g.NumTower),
		NumT:     int32(nt),
		DZ:       g.DZ,
		DY:       g.DY,
		DT:       g.DT,
		UHub:     g.UHub,
		ZHub:     g.ZHub,
		Z0:       g.Z0,
		DescLen:  int32(len(desc)),
	}

	// Quantize each component through its own linear mapping; the three
	// components have independent dynamic ranges.
	perComp := ny * nz * nt
	codes := make([]int16, NumComponents*perComp)
	for c := 0; c < NumComponents; c++ {
		comp := f.Component(c)
		p := quantize.Derive(comp)
		hdr.Scale[c] = p.Scale
		hdr.Offset[c] = p.Offset
		out := codes[c*perComp : (c+1)*perComp]
		for i, v := range comp {
			out[i] = p.Code(v)
		}
	}

	var hbuf [header.Size]byte
	if err := hdr.MarshalTo(hbuf[:], cfg.order); err != nil {
		return fmt.Errorf("turbts: packing header: %w", err)
	}
	if _, err := w.Write(hbuf[:]); err != nil {
		return fmt.Errorf("turbts: writing header: %w", err)
	}
	if _, err := io.WriteString(w, desc); err != nil {
		return fmt.Errorf("turbts: writing descriptor: %w", err)
	}

	disk := layout.Interleave(codes, ny, nz, nt)
	block := make([]byte, 2*len(disk))
	for i, q := range disk {
		cfg.order.PutUint16(block[2*i:], uint16(q))
	}
	if _, err := w.Write(block); err != nil {
		return fmt.Errorf("turbts: writing data block: %w", err)
	}

	total := header.Size + len(desc) + len(block)
	cfg.stats.IncCounter(stats.MetricEncodes, 1)
	cfg.stats.IncCounter(stats.MetricEncodedBytes, int64(total))
	cfg.logger.Debug("encoded field",
		zap.Int("ny", ny),
		zap.Int("nz", nz),
		zap.Int("nt", nt),
		zap.Int("bytes", total),
	)
	return nil
}
