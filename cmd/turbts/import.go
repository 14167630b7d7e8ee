package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gustline/turbts"
	"github.com/gustline/turbts/internal/ncimport"
)

var importCmd = &cobra.Command{
	Use:   "import [NETCDF-FILE]",
	Short: "Convert NetCDF velocity data to a .bts file",
	Long: `Read three velocity variables from a NetCDF file and encode them as a
full-field time-series.

Each variable must be float32 dimensioned (time, z, y) with z ascending
bottom-up. Grid spacing and hub scalars are not read from the file and
must be given as flags.

Example:
  turbts import les_run.nc --u u --v v --w w \
    --dy 3 --dz 3 --dt 0.05 --uhub 12 --zhub 90 --z0 69 -o field.bts`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	importVars ncimport.Vars
	importGrid turbts.Grid
	importOut  string
)

func init() {
	importCmd.Flags().StringVar(&importVars.U, "u", "u", "along-wind variable name")
	importCmd.Flags().StringVar(&importVars.V, "v", "v", "cross-wind variable name")
	importCmd.Flags().StringVar(&importVars.W, "w", "w", "vertical variable name")
	importCmd.Flags().IntVar(&importGrid.NumTower, "tower", 0, "tower points")
	importCmd.Flags().Float32Var(&importGrid.DY, "dy", 0, "lateral grid spacing, m")
	importCmd.Flags().Float32Var(&importGrid.DZ, "dz", 0, "vertical grid spacing, m")
	importCmd.Flags().Float32Var(&importGrid.DT, "dt", 0, "time step, s")
	importCmd.Flags().Float32Var(&importGrid.UHub, "uhub", 0, "hub-height wind speed, m/s")
	importCmd.Flags().Float32Var(&importGrid.ZHub, "zhub", 0, "hub height, m")
	importCmd.Flags().Float32Var(&importGrid.Z0, "z0", 0, "height of the lowest grid point, m")
	importCmd.Flags().StringVarP(&importOut, "out", "o", "field.bts", "output path (.zst/.gz compresses)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	order, err := parseByteOrder()
	if err != nil {
		return err
	}

	field, err := ncimport.Read(args[0], importVars)
	if err != nil {
		return err
	}
	ny, nz, nt := field.Dims()
	importGrid.NumY, importGrid.NumZ, importGrid.NumT = ny, nz, nt

	out, err := createOutput(importOut)
	if err != nil {
		return err
	}

	desc := fmt.Sprintf("imported from %s by turbts v%s.", args[0], turbts.Version)
	if err := turbts.Encode(out, field, importGrid, turbts.WithByteOrder(order),
		turbts.WithDescriptor(desc), turbts.WithLogger(newLogger())); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}

	fmt.Printf("Wrote %s: %dx%d grid, %d steps.\n", importOut, ny, nz, nt)
	return nil
}
