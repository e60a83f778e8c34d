// SPDX-License-Identifier: MIT

package odesys

// Option adjusts values of a compiled System.
type Option func(*overrides)

type overrides struct {
	params   map[string]float64
	initials map[string]float64
}

// WithParameterValues replaces the nominal value of the named parameters.
// Initial conditions and compartment sizes derived from them follow.
func WithParameterValues(values map[string]float64) Option {
	return func(o *overrides) {
		for k, v := range values {
			o.params[k] = v
		}
	}
}

// WithInitialValues sets the starting value of the named states
// (StateNames), bypassing the model's initial conditions.
func WithInitialValues(values map[string]float64) Option {
	return func(o *overrides) {
		for k, v := range values {
			o.initials[k] = v
		}
	}
}
