// SPDX-License-Identifier: MIT

package simulate

import (
	"errors"
	"fmt"
)

var (
	// ErrNilModel is returned for a nil model.
	ErrNilModel = errors.New("simulate: nil model")

	// ErrEmptyTimeGrid indicates a time grid with no points.
	ErrEmptyTimeGrid = errors.New("simulate: empty time grid")

	// ErrDecreasingTimeGrid indicates times[i] < times[i-1].
	ErrDecreasingTimeGrid = errors.New("simulate: decreasing time grid")

	// ErrNonFiniteTime indicates a NaN or infinite time point.
	ErrNonFiniteTime = errors.New("simulate: non-finite time")
)

// SimulationError is an integration failure. Time is meaningful only
// when HasTime is true.
type SimulationError struct {
	Model   string
	Time    float64
	HasTime bool
	Err     error
}

func (e *SimulationError) Error() string {
	if e.HasTime {
		return fmt.Sprintf("simulate: model %q failed at t=%g: %v", e.Model, e.Time, e.Err)
	}
	return fmt.Sprintf("simulate: model %q failed: %v", e.Model, e.Err)
}

// Unwrap returns the integrator's error.
func (e *SimulationError) Unwrap() error { return e.Err }
