// Package layout converts between the in-memory tensor order of a
// velocity field and the on-disk sample order of the full-field
// time-series data block.
//
// In memory a field is component-major: index ((c*ny+iy)*nz+iz)*nt+it,
// with the z axis running bottom-up (iz 0 is the lowest grid point). On
// disk the axes vary component fastest, then y, then z top-down, then
// time slowest. The two permutations here are exact inverses; existing
// readers of the format depend on this order bit for bit.
package layout

// Interleave reorders component-major codes into on-disk sample order.
// codes must hold 3*ny*nz*nt values.
func Interleave(codes []int16, ny, nz, nt int) []int16 {
	zStride := nt
	yStride := nz * nt
	cStride := ny * nz * nt

	disk := make([]int16, len(codes))
	i := 0
	for it := 0; it < nt; it++ {
		for izd := 0; izd < nz; izd++ {
			iz := nz - 1 - izd // z is stored top-down on disk
			for iy := 0; iy < ny; iy++ {
				base := iy*yStride + iz*zStride + it
				disk[i] = codes[base]
				disk[i+1] = codes[cStride+base]
				disk[i+2] = codes[2*cStride+base]
				i += 3
			}
		}
	}
	return disk
}

// Deinterleave reorders on-disk samples back into component-major order.
// disk must hold 3*ny*nz*nt values.
func Deinterleave(disk []int16, ny, nz, nt int) []int16 {
	zStride := nt
	yStride := nz * nt
	cStride := ny * nz * nt

	codes := make([]int16, len(disk))
	i := 0
	for it := 0; it < nt; it++ {
		for izd := 0; izd < nz; izd++ {
			iz := nz - 1 - izd
			for iy := 0; iy < ny; iy++ {
				base := iy*yStride + iz*zStride + it
				codes[base] = disk[i]
				codes[cStride+base] = disk[i+1]
				codes[2*cStride+base] = disk[i+2]
				i += 3
			}
		}
	}
	return codes
}
