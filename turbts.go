// Package turbts encodes and decodes full-field time-series (.bts) wind
// files: 3-component velocity grids quantized to 16-bit fixed point
// behind a fixed 70-byte header, the exchange format between turbulence
// generators and aeroelastic simulators.
//
// Example usage:
//
//	field := turbts.NewField(13, 15, 600)
//	// ... fill field via field.Set ...
//
//	var buf bytes.Buffer
//	if err := turbts.Encode(&buf, field, grid); err != nil {
//	    log.Fatal(err)
//	}
//
//	file, err := turbts.Decode(&buf)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(file.Grid.UHub, file.Field.At(0, 0, 0, 0))
package turbts

import "errors"

// Version is stamped into the default descriptor string of encoded files.
const Version = "0.3.0"

// Sentinel errors for well-defined error conditions.
var (
	// ErrFormat indicates a malformed or foreign header.
	ErrFormat = errors.New("turbts: malformed header")

	// ErrTruncated indicates the stream ended before the descriptor or
	// data block did.
	ErrTruncated = errors.New("turbts: truncated data block")

	// ErrDimension indicates field and grid dimensions disagree.
	ErrDimension = errors.New("turbts: field and grid dimensions disagree")

	// ErrNotFound indicates the named field is not in the archive.
	ErrNotFound = errors.New("turbts: field not found")

	// ErrClosed indicates the archive has been closed.
	ErrClosed = errors.New("turbts: archive closed")

	// ErrNoStore indicates no store was provided to the archive.
	ErrNoStore = errors.New("turbts: no store provided")
)
