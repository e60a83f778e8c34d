// SPDX-License-Identifier: MIT

package standard

import (
	"fmt"
	"math"

	"github.com/katalvlaran/pkpd/macros"
	"github.com/katalvlaran/pkpd/model"
)

// PDModel selects the effect expression attached to the central
// compartment. Implementations: Emax, SigmoidalEmax, Linear, LogLinear,
// Fixed.
type PDModel interface {
	// Key returns the configuration key of the PD model.
	Key() string

	apply(m *model.Model, drug *model.Species, central *model.Compartment) (*model.Expression, error)
}

// Emax is E = Emax·C/(C+EC50).
type Emax struct {
	Emax, EC50 float64
}

// SigmoidalEmax is E = Emax·C^N/(C^N+EC50^N).
type SigmoidalEmax struct {
	Emax, EC50, N float64
}

// Linear is E = Slope·C + Intercept.
type Linear struct {
	Slope, Intercept float64
}

// LogLinear is E = Slope·log(C) + Intercept. Base 0 means natural log.
type LogLinear struct {
	Slope, Intercept float64
	Base             float64
}

// Fixed is E = EFixed when C > CThreshold, else 0.
type Fixed struct {
	EFixed, CThreshold float64
}

func (Emax) Key() string          { return "emax" }
func (SigmoidalEmax) Key() string { return "sigmoidal-emax" }
func (Linear) Key() string        { return "linear" }
func (LogLinear) Key() string     { return "log-linear" }
func (Fixed) Key() string         { return "fixed" }

func (p Emax) apply(m *model.Model, drug *model.Species, c *model.Compartment) (*model.Expression, error) {
	return macros.Emax(m, drug, c, model.Lit(p.Emax), model.Lit(p.EC50))
}

func (p SigmoidalEmax) apply(m *model.Model, drug *model.Species, c *model.Compartment) (*model.Expression, error) {
	return macros.SigmoidalEmax(m, drug, c, model.Lit(p.Emax), model.Lit(p.EC50), model.Lit(p.N))
}

func (p Linear) apply(m *model.Model, drug *model.Species, c *model.Compartment) (*model.Expression, error) {
	return macros.LinearEffect(m, drug, c, model.Lit(p.Slope), macros.WithIntercept(model.Lit(p.Intercept)))
}

func (p LogLinear) apply(m *model.Model, drug *model.Species, c *model.Compartment) (*model.Expression, error) {
	opts := []macros.EffectOption{macros.WithIntercept(model.Lit(p.Intercept))}
	if p.Base != 0 {
		if !(p.Base > 0) || p.Base == 1 || math.IsInf(p.Base, 0) {
			return nil, fmt.Errorf("%w: log base %g must be finite, > 0 and != 1", ErrInvalidConfig, p.Base)
		}
		opts = append(opts, macros.WithLogBase(p.Base))
	}
	return macros.LogLinearEffect(m, drug, c, model.Lit(p.Slope), opts...)
}

func (p Fixed) apply(m *model.Model, drug *model.Species, c *model.Compartment) (*model.Expression, error) {
	return macros.FixedEffect(m, drug, c, model.Lit(p.EFixed), model.Lit(p.CThreshold))
}
