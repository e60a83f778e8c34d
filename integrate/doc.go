// SPDX-License-Identifier: MIT

// Package integrate solves initial value problems dy/dt = f(t, y) on a
// time grid.
//
// DormandPrince is an adaptive explicit Runge-Kutta 5(4) method with the
// first-same-as-last property. It:
//   - lands exactly on every requested time and on every breakpoint a
//     System reports through Breakpointer, restarting the stage pipeline
//     after a breakpoint so rate discontinuities are never stepped over;
//   - controls the local error in the RMS norm with weights
//     atol + rtol·max(|y_old|, |y_new|);
//   - checks ctx before each step.
//
// Failures are *Error values carrying the time reached and one of
// ErrStepUnderflow, ErrNonFinite, ErrMaxSteps or the context error.
package integrate
