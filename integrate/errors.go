// SPDX-License-Identifier: MIT

package integrate

import (
	"errors"
	"fmt"
)

var (
	// ErrStepUnderflow indicates the step size shrank below what the
	// floating point resolution at the current time can represent.
	ErrStepUnderflow = errors.New("integrate: step size underflow")

	// ErrNonFinite indicates the solution became NaN or infinite.
	ErrNonFinite = errors.New("integrate: non-finite state")

	// ErrMaxSteps indicates the step budget was exhausted.
	ErrMaxSteps = errors.New("integrate: maximum number of steps exceeded")

	// ErrDimension indicates len(y0) does not match System.Dim.
	ErrDimension = errors.New("integrate: dimension mismatch")

	// ErrTimeGrid indicates an empty, decreasing or non-finite time grid.
	ErrTimeGrid = errors.New("integrate: invalid time grid")
)

// Error reports where integration stopped.
type Error struct {
	Time float64
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("integrate: failed at t=%g: %v", e.Time, e.Err)
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error { return e.Err }
