// Package manifest reads and writes the manifest.json that describes a
// field archive directory, so clients can auto-configure compression and
// byte order from the data itself.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Manifest contains metadata about an archive directory.
type Manifest struct {
	Version     int       `json:"version"`
	Compression string    `json:"compression"` // "zstd", "gzip", or "none"
	ByteOrder   string    `json:"byte_order"`  // "little" or "big"
	FieldCount  int       `json:"field_count"`
	BuiltAt     time.Time `json:"built_at"`
	Tool        string    `json:"tool,omitempty"`
}

const filename = "manifest.json"

// Write writes the manifest to the archive directory.
func Write(dir string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// Read reads the manifest from an archive directory.
func Read(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}
