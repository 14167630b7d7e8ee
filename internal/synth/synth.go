// Package synth generates synthetic sheared wind fields: a power-law
// mean profile with Gaussian turbulence on top. The output is physically
// plausible test and demo data, not a validated turbulence model.
package synth

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/gustline/turbts"
)

// Config parameterizes a synthetic field.
type Config struct {
	NumY, NumZ, NumT int
	NumTower         int

	DY, DZ float32 // grid spacing, m
	DT     float32 // time step, s

	UHub float32 // mean wind speed at hub height, m/s
	ZHub float32 // hub height, m
	Z0   float32 // height of the lowest grid point, m

	// Alpha is the power-law shear exponent; 0.14 is a common neutral
	// onshore value.
	Alpha float64

	// Intensity is the turbulence intensity per component as a fraction
	// of UHub, index 0 u, 1 v, 2 w.
	Intensity [3]float64

	// Seed makes generation reproducible.
	Seed uint64
}

// Generate builds a field and matching grid metadata from cfg.
func Generate(cfg Config) (*turbts.Field, turbts.Grid, error) {
	if cfg.NumY <= 0 || cfg.NumZ <= 0 || cfg.NumT <= 0 {
		return nil, turbts.Grid{}, fmt.Errorf("synth: invalid dimensions %dx%dx%d",
			cfg.NumY, cfg.NumZ, cfg.NumT)
	}
	if cfg.UHub <= 0 || cfg.ZHub <= 0 {
		return nil, turbts.Grid{}, fmt.Errorf("synth: UHub and ZHub must be positive")
	}

	gust := distuv.Normal{
		Mu:    0,
		Sigma: 1,
		Src:   rand.NewSource(cfg.Seed),
	}

	f := turbts.NewField(cfg.NumY, cfg.NumZ, cfg.NumT)
	for iz := 0; iz < cfg.NumZ; iz++ {
		z := float64(cfg.Z0) + float64(iz)*float64(cfg.DZ)
		mean := float64(cfg.UHub) * math.Pow(z/float64(cfg.ZHub), cfg.Alpha)
		for iy := 0; iy < cfg.NumY; iy++ {
			for it := 0; it < cfg.NumT; it++ {
				for c := 0; c < turbts.NumComponents; c++ {
					v := gust.Rand() * cfg.Intensity[c] * float64(cfg.UHub)
					if c == 0 {
						v += mean
					}
					f.Set(c, iy, iz, it, float32(v))
				}
			}
		}
	}

	g := turbts.Grid{
		NumZ:     cfg.NumZ,
		NumY:     cfg.NumY,
		NumTower: cfg.NumTower,
		NumT:     cfg.NumT,
		DZ:       cfg.DZ,
		DY:       cfg.DY,
		DT:       cfg.DT,
		UHub:     cfg.UHub,
		ZHub:     cfg.ZHub,
		Z0:       cfg.Z0,
	}
	return f, g, nil
}
