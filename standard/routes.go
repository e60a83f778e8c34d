// SPDX-License-Identifier: MIT

package standard

import (
	"fmt"
	"math"

	"github.com/katalvlaran/pkpd/macros"
	"github.com/katalvlaran/pkpd/model"
)

// DoseRoute selects how the dose enters the central compartment.
// Implementations: IVBolus, IVInfusion, Oral, Subcutaneous.
type DoseRoute interface {
	// Key returns the configuration key of the route.
	Key() string

	validate() error
	apply(m *model.Model, drug *model.Species, central *model.Compartment, dose *model.Parameter) error
}

// IVBolus gives the whole dose at t = 0 (macros.DoseBolus).
type IVBolus struct{}

// IVInfusion infuses the dose (macros.DoseInfusion). With Duration > 0
// the dose is the total amount delivered over Duration; with Duration 0
// the dose is a rate applied for the whole simulation.
type IVInfusion struct {
	Duration float64
}

// Oral doses through an absorption depot (macros.DoseAbsorbed).
// A nil F means complete bioavailability; a set F must lie in (0, 1].
type Oral struct {
	Ka float64
	F  *float64
}

// Subcutaneous is absorbed like Oral but keeps its own key.
type Subcutaneous struct {
	Ka float64
	F  *float64
}

// Bioavailability returns f for the F field of Oral and Subcutaneous.
func Bioavailability(f float64) *float64 { return &f }

func (IVBolus) Key() string      { return "iv-bolus" }
func (IVInfusion) Key() string   { return "iv-infusion" }
func (Oral) Key() string         { return "oral" }
func (Subcutaneous) Key() string { return "subcutaneous" }

func (IVBolus) validate() error { return nil }

func (r IVInfusion) validate() error {
	if r.Duration < 0 || math.IsNaN(r.Duration) || math.IsInf(r.Duration, 0) {
		return fmt.Errorf("%w: infusion duration %g", ErrInvalidConfig, r.Duration)
	}
	return nil
}

func (r Oral) validate() error         { return validateAbsorption(r.Key(), r.Ka, r.F) }
func (r Subcutaneous) validate() error { return validateAbsorption(r.Key(), r.Ka, r.F) }

func validateAbsorption(key string, ka float64, f *float64) error {
	if !(ka > 0) || math.IsInf(ka, 0) {
		return fmt.Errorf("%w: %s ka %g must be finite and > 0", ErrInvalidConfig, key, ka)
	}
	if f != nil && !(*f > 0 && *f <= 1) {
		return fmt.Errorf("%w: %s f %g must be in (0, 1]", ErrInvalidConfig, key, *f)
	}
	return nil
}

func (IVBolus) apply(m *model.Model, drug *model.Species, c *model.Compartment, dose *model.Parameter) error {
	_, err := macros.DoseBolus(m, drug, c, dose)
	return err
}

func (r IVInfusion) apply(m *model.Model, drug *model.Species, c *model.Compartment, dose *model.Parameter) error {
	var opts []macros.InfusionOption
	if r.Duration > 0 {
		opts = append(opts, macros.WithInfusionDuration(r.Duration), macros.WithInfusionTotal())
	}
	_, err := macros.DoseInfusion(m, drug, c, dose, opts...)
	return err
}

func (r Oral) apply(m *model.Model, drug *model.Species, c *model.Compartment, dose *model.Parameter) error {
	return absorb(m, drug, c, dose, r.Ka, r.F)
}

func (r Subcutaneous) apply(m *model.Model, drug *model.Species, c *model.Compartment, dose *model.Parameter) error {
	return absorb(m, drug, c, dose, r.Ka, r.F)
}

func absorb(m *model.Model, drug *model.Species, c *model.Compartment, dose *model.Parameter, ka float64, f *float64) error {
	var fq model.Quantity
	if f != nil {
		fq = model.Lit(*f)
	}
	_, err := macros.DoseAbsorbed(m, drug, c, dose, model.Lit(ka), fq)
	return err
}
