// SPDX-License-Identifier: MIT

package standard

import (
	"fmt"
	"math"

	"github.com/katalvlaran/pkpd/macros"
)

// Defaults used by OneCompartmentModel, TwoCompartmentModel and
// ThreeCompartmentModel.
const (
	DefaultVolume    = 1.0
	DefaultClearance = 0.5
)

// DefaultDistribution holds the central/peripheral and central/deep
// peripheral rate constants.
var DefaultDistribution = []RatePair{
	{Out: 0.1, Back: 0.01},
	{Out: 1e-3, Back: 1e-4},
}

// RatePair is a reversible distribution between the central compartment
// and one peripheral compartment.
type RatePair struct {
	Out  float64 // central -> peripheral
	Back float64 // peripheral -> central
}

// Config declares a standard model.
type Config struct {
	Name string
	Drug string // default macros.DefaultDrug

	// Compartments is 1, 2 or 3.
	Compartments int
	Dose         float64
	Route        DoseRoute // nil means IVBolus

	// Volumes lists central, peripheral, deep peripheral volumes.
	// Empty means DefaultVolume everywhere.
	Volumes []float64

	// Clearance of the central compartment. Zero adds no clearance.
	Clearance float64

	// Distribution has one pair per peripheral compartment.
	// Empty means DefaultDistribution.
	Distribution []RatePair

	PD PDModel // nil means no PD
}

// DefaultConfig returns the configuration behind OneCompartmentModel,
// TwoCompartmentModel and ThreeCompartmentModel.
func DefaultConfig(compartments int, dose float64) Config {
	return Config{
		Name:         defaultName(compartments),
		Drug:         macros.DefaultDrug,
		Compartments: compartments,
		Dose:         dose,
		Route:        IVBolus{},
		Clearance:    DefaultClearance,
	}
}

func defaultName(n int) string {
	switch n {
	case 1:
		return "one_compartment_model"
	case 2:
		return "two_compartment_model"
	case 3:
		return "three_compartment_model"
	}
	return "standard_model"
}

// volumeNames are the parameter names of the compartment volumes.
func volumeNames(n int) []string {
	if n == 1 {
		return []string{"Vd"}
	}
	return []string{"Vc", "Vp", "Vdp"}[:n]
}

// normalize fills defaults and validates c.
func (c Config) normalize() (Config, error) {
	if c.Compartments < 1 || c.Compartments > 3 {
		return c, fmt.Errorf("%w: %d compartments, want 1, 2 or 3", ErrInvalidConfig, c.Compartments)
	}
	if c.Name == "" {
		c.Name = defaultName(c.Compartments)
	}
	if c.Drug == "" {
		c.Drug = macros.DefaultDrug
	}
	if c.Route == nil {
		c.Route = IVBolus{}
	}
	if !finite(c.Dose) || c.Dose < 0 {
		return c, fmt.Errorf("%w: dose %g must be finite and >= 0", ErrInvalidConfig, c.Dose)
	}
	if !finite(c.Clearance) || c.Clearance < 0 {
		return c, fmt.Errorf("%w: clearance %g must be finite and >= 0", ErrInvalidConfig, c.Clearance)
	}

	switch len(c.Volumes) {
	case 0:
		c.Volumes = make([]float64, c.Compartments)
		for i := range c.Volumes {
			c.Volumes[i] = DefaultVolume
		}
	case c.Compartments:
		for i, v := range c.Volumes {
			if !finite(v) || !(v > 0) {
				return c, fmt.Errorf("%w: volume %s = %g must be finite and > 0",
					ErrInvalidConfig, volumeNames(c.Compartments)[i], v)
			}
		}
	default:
		return c, fmt.Errorf("%w: %d volumes for %d compartments", ErrInvalidConfig, len(c.Volumes), c.Compartments)
	}

	peripherals := c.Compartments - 1
	switch len(c.Distribution) {
	case 0:
		c.Distribution = append([]RatePair(nil), DefaultDistribution[:peripherals]...)
	case peripherals:
		for i, p := range c.Distribution {
			if !finite(p.Out) || !finite(p.Back) || p.Out < 0 || p.Back < 0 {
				return c, fmt.Errorf("%w: distribution %d rates (%g, %g) must be finite and >= 0",
					ErrInvalidConfig, i+1, p.Out, p.Back)
			}
		}
	default:
		return c, fmt.Errorf("%w: %d distribution pairs for %d peripheral compartments",
			ErrInvalidConfig, len(c.Distribution), peripherals)
	}

	if err := c.Route.validate(); err != nil {
		return c, err
	}
	return c, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
