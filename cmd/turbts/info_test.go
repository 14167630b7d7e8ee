package main

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gustline/turbts/internal/header"
)

func writeHeaderFile(t *testing.T, h header.Header) string {
	t.Helper()
	var buf [header.Size]byte
	if err := h.MarshalTo(buf[:], binary.LittleEndian); err != nil {
		t.Fatalf("MarshalTo() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "corrupt.bts")
	if err := os.WriteFile(path, buf[:], 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestRunInfo_NegativeDescriptorLength(t *testing.T) {
	path := writeHeaderFile(t, header.Header{
		NumZ: 5, NumY: 5, NumT: 10,
		Scale:   [3]float32{1, 1, 1},
		DescLen: -1,
	})

	err := runInfo(infoCmd, []string{path})
	if !errors.Is(err, header.ErrBadValue) {
		t.Errorf("runInfo() error = %v, want ErrBadValue", err)
	}
}

func TestRunInfo_NegativeDimension(t *testing.T) {
	path := writeHeaderFile(t, header.Header{
		NumZ: -3, NumY: 5, NumT: 10,
		Scale:   [3]float32{1, 1, 1},
		DescLen: 4,
	})

	err := runInfo(infoCmd, []string{path})
	if !errors.Is(err, header.ErrBadValue) {
		t.Errorf("runInfo() error = %v, want ErrBadValue", err)
	}
}
