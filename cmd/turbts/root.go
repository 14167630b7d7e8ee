package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gustline/turbts/internal/codec/gzipcodec"
	"github.com/gustline/turbts/internal/codec/zstdcodec"
)

var (
	// Global flags.
	verbose   bool
	byteOrder string
)

var rootCmd = &cobra.Command{
	Use:   "turbts",
	Short: "Work with full-field time-series (.bts) wind files",
	Long: `turbts inspects, verifies, and produces full-field time-series
binary files: 3-component wind-velocity grids exchanged between
turbulence generators and aeroelastic simulators.

Examples:
  # Print the header of a file
  turbts info field.bts

  # Fully decode a file and report per-component statistics
  turbts verify field.bts

  # Generate a synthetic sheared field
  turbts gen --ny 15 --nz 15 --nt 600 --uhub 12 -o field.bts`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&byteOrder, "byte-order", "little", "byte order of .bts files (little or big)")
}

// newLogger returns a development logger when --verbose is set and a
// no-op logger otherwise.
func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// parseByteOrder resolves the --byte-order flag.
func parseByteOrder() (binary.ByteOrder, error) {
	switch byteOrder {
	case "little":
		return binary.LittleEndian, nil
	case "big":
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("unknown byte order %q (want little or big)", byteOrder)
	}
}

// openInput opens a .bts file for reading, transparently unwrapping
// at-rest compression by extension (.zst, .gz).
func openInput(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasSuffix(path, ".zst"):
		r, err := zstdcodec.New().Reader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening zstd stream: %w", err)
		}
		return &wrappedReader{ReadCloser: r, file: f}, nil
	case strings.HasSuffix(path, ".gz"):
		r, err := gzipcodec.New().Reader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		return &wrappedReader{ReadCloser: r, file: f}, nil
	default:
		return f, nil
	}
}

// wrappedReader closes both the decompressor and the underlying file.
type wrappedReader struct {
	io.ReadCloser
	file *os.File
}

func (w *wrappedReader) Close() error {
	err := w.ReadCloser.Close()
	if cerr := w.file.Close(); err == nil {
		err = cerr
	}
	return err
}
