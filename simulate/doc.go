// SPDX-License-Identifier: MIT

// Package simulate runs a finished model over a time grid.
//
// Simulate validates the grid (non-empty, finite, non-decreasing),
// compiles the model with odesys, hands the system to an
// integrate.Integrator (DormandPrince by default) and returns a
// Trajectory with one series per state, observable and expression.
//
// Integration failures are never retried or clamped: they come back as a
// *SimulationError naming the time the integrator reached, wrapping the
// integrator's error (integrate.ErrStepUnderflow, ...).
//
// Simulate blocks until the integrator returns. WithTimeout and the
// caller's context bound the wall-clock time; the default integrator
// checks the context before every step.
//
// SimulateBatch runs the same model under several parameter sets on a
// bounded worker pool. A Cache lets repeated simulations of an unchanged
// model skip compilation; it is keyed by model ID and revision.
package simulate
