// SPDX-License-Identifier: MIT

package integrate

import "math"

// Defaults used by NewDormandPrince.
const (
	DefaultRelTol   = 1e-6
	DefaultAbsTol   = 1e-9
	DefaultMaxSteps = 100000
)

// Option configures a DormandPrince integrator.
type Option func(*DormandPrince)

// WithTolerances sets the relative and absolute error tolerances.
// Panics unless both are finite and > 0.
func WithTolerances(rtol, atol float64) Option {
	if !(rtol > 0) || !(atol > 0) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		panic("integrate: WithTolerances requires finite rtol, atol > 0")
	}
	return func(d *DormandPrince) { d.rtol, d.atol = rtol, atol }
}

// WithMaxSteps bounds the number of attempted steps per Integrate call.
// Panics if n <= 0.
func WithMaxSteps(n int) Option {
	if n <= 0 {
		panic("integrate: WithMaxSteps(n<=0)")
	}
	return func(d *DormandPrince) { d.maxSteps = n }
}

// WithMaxStep bounds the step size. Panics unless h is finite and > 0.
func WithMaxStep(h float64) Option {
	if !(h > 0) || math.IsInf(h, 0) {
		panic("integrate: WithMaxStep requires a finite h > 0")
	}
	return func(d *DormandPrince) { d.hmax = h }
}
