package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gustline/turbts/internal/header"
)

var infoCmd = &cobra.Command{
	Use:   "info [FILE]",
	Short: "Print the header of a .bts file",
	Long: `Print the header and descriptor of a full-field time-series file
without reading the data block.

Compressed files (.bts.zst, .bts.gz) are unwrapped by extension.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	order, err := parseByteOrder()
	if err != nil {
		return err
	}

	in, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	var buf [header.Size]byte
	if _, err := io.ReadFull(in, buf[:]); err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	var hdr header.Header
	if err := hdr.Unmarshal(buf[:], order); err != nil {
		return err
	}
	if err := hdr.Validate(); err != nil {
		return err
	}

	desc := make([]byte, hdr.DescLen)
	if _, err := io.ReadFull(in, desc); err != nil {
		return fmt.Errorf("reading descriptor: %w", err)
	}

	fmt.Printf("Grid:        %d x %d points (y x z), %d tower points\n", hdr.NumY, hdr.NumZ, hdr.NumTower)
	fmt.Printf("Spacing:     dy=%g m, dz=%g m\n", hdr.DY, hdr.DZ)
	fmt.Printf("Time:        %d steps, dt=%g s (%.1f s total)\n", hdr.NumT, hdr.DT, float64(hdr.NumT)*float64(hdr.DT))
	fmt.Printf("Hub:         uhub=%g m/s at zhub=%g m, lowest point z0=%g m\n", hdr.UHub, hdr.ZHub, hdr.Z0)
	for c, label := range [3]string{"u", "v", "w"} {
		fmt.Printf("Quant %s:     scale=%g offset=%g (step %g m/s)\n",
			label, hdr.Scale[c], hdr.Offset[c], 1/float64(hdr.Scale[c]))
	}
	fmt.Printf("Descriptor:  %s\n", desc)
	return nil
}
