// Package ncimport loads velocity components from a NetCDF file into a
// Field, for converting reanalysis or CFD output to the full-field
// time-series format.
package ncimport

import (
	"fmt"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"

	"github.com/gustline/turbts"
)

// Vars names the NetCDF variables holding each velocity component. Each
// must be float32 dimensioned (time, z, y) with z ascending bottom-up.
type Vars struct {
	U, V, W string
}

// Read loads the three component variables from the NetCDF file at path
// and assembles them into a Field. Grid spacing and hub scalars are not
// read from the file; the caller supplies those separately.
func Read(path string, vars Vars) (*turbts.Field, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ncimport: opening %s: %w", path, err)
	}
	defer nc.Close()

	names := [turbts.NumComponents]string{vars.U, vars.V, vars.W}
	var comps [turbts.NumComponents][][][]float32
	for c, name := range names {
		comps[c], err = component(nc, name)
		if err != nil {
			return nil, err
		}
	}

	nt := len(comps[0])
	if nt == 0 || len(comps[0][0]) == 0 || len(comps[0][0][0]) == 0 {
		return nil, fmt.Errorf("ncimport: variable %q has an empty dimension", vars.U)
	}
	nz := len(comps[0][0])
	ny := len(comps[0][0][0])

	f := turbts.NewField(ny, nz, nt)
	for c, comp := range comps {
		if len(comp) != nt || len(comp[0]) != nz || len(comp[0][0]) != ny {
			return nil, fmt.Errorf("ncimport: variable %q dims %dx%dx%d disagree with %q (%dx%dx%d)",
				names[c], len(comp), len(comp[0]), len(comp[0][0]), vars.U, nt, nz, ny)
		}
		for it, plane := range comp {
			for iz, row := range plane {
				for iy, v := range row {
					f.Set(c, iy, iz, it, v)
				}
			}
		}
	}
	return f, nil
}

func component(nc api.Group, name string) ([][][]float32, error) {
	vg, err := nc.GetVarGetter(name)
	if err != nil {
		return nil, fmt.Errorf("ncimport: variable %q: %w", name, err)
	}
	v, err := vg.Values()
	if err != nil {
		return nil, fmt.Errorf("ncimport: reading %q: %w", name, err)
	}
	vals, ok := v.([][][]float32)
	if !ok {
		return nil, fmt.Errorf("ncimport: variable %q is %T, want float32 (time, z, y)", name, v)
	}
	return vals, nil
}
