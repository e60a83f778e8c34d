// SPDX-License-Identifier: MIT

// Package pkpd assembles and simulates compartmental pharmacokinetic /
// pharmacodynamic models.
//
// A model is a set of named components (species, compartments,
// parameters, expressions, observables, rules, initial conditions)
// sharing one namespace. Models are composed with macros that each add a
// small, self-describing group of components, and are then compiled to
// an ODE system and integrated.
//
// Packages:
//
//	expr/      symbolic expression trees and evaluation
//	model/     the component registry and transactional model
//	macros/    topology, PK process, dosing and PD effect builders
//	standard/  one, two and three compartment models from a Config
//	odesys/    compilation of a model into a right-hand side
//	integrate/ adaptive Dormand-Prince integration
//	simulate/  Simulate and SimulateBatch with caching and metrics
//	config/    YAML and environment run configuration
//
// Quick start:
//
//	m, _ := standard.TwoCompartmentModel(100,
//		standard.WithRoute(standard.Oral{Ka: 1.2}),
//		standard.WithPD(standard.Emax{Emax: 1, EC50: 4}))
//	tr, _ := simulate.Simulate(ctx, m, []float64{0, 1, 2, 4, 8})
//	effect, _ := tr.Series("Emax_expr_Drug_CENTRAL")
//
// The pkpdsim command runs the same from a configuration file.
package pkpd
