// SPDX-License-Identifier: MIT

package simulate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/pkpd/integrate"
	"github.com/katalvlaran/pkpd/model"
	"github.com/katalvlaran/pkpd/odesys"
)

// Simulate integrates m over times and returns the trajectory.
//
// Errors:
//   - ErrNilModel, ErrEmptyTimeGrid, ErrDecreasingTimeGrid, ErrNonFiniteTime.
//   - odesys errors for unknown or invalid overrides.
//   - *SimulationError for integration failures.
func Simulate(ctx context.Context, m *model.Model, times []float64, opts ...Option) (*Trajectory, error) {
	cfg := newConfig(opts)
	return run(ctx, m, times, cfg, cfg.params)
}

func run(ctx context.Context, m *model.Model, times []float64, cfg config, params map[string]float64) (*Trajectory, error) {
	start := time.Now()
	if m == nil {
		cfg.metrics.observe(statusInvalid, 0)
		return nil, ErrNilModel
	}
	log := cfg.log.WithFields(logrus.Fields{
		"model":    m.Name(),
		"model_id": m.ID().String(),
		"points":   len(times),
	})
	if err := ValidateTimeGrid(times); err != nil {
		cfg.metrics.observe(statusInvalid, 0)
		log.WithError(err).Warn("Rejected time grid")
		return nil, err
	}

	sys, err := compile(m, cfg, params)
	if err != nil {
		cfg.metrics.observe(statusInvalid, 0)
		log.WithError(err).Warn("Failed to compile model")
		return nil, fmt.Errorf("simulate: compiling %q: %w", m.Name(), err)
	}

	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}
	rhs := &counted{System: sys}
	states, err := cfg.integrator.Integrate(ctx, rhs, sys.InitialState(), times)
	if cfg.metrics != nil {
		cfg.metrics.rhs.Add(float64(rhs.n))
	}
	if err != nil {
		simErr := &SimulationError{Model: m.Name(), Err: err}
		var ie *integrate.Error
		if errors.As(err, &ie) {
			simErr.Time, simErr.HasTime = ie.Time, true
		}
		cfg.metrics.observe(statusFailed, 0)
		log.WithError(err).WithField("rhs_evaluations", rhs.n).Error("Simulation failed")
		return nil, simErr
	}

	tr := assemble(m.Name(), sys, times, states)
	elapsed := time.Since(start)
	cfg.metrics.observe(statusOK, elapsed.Seconds())
	log.WithFields(logrus.Fields{
		"duration":        elapsed,
		"rhs_evaluations": rhs.n,
	}).Debug("Simulation completed")
	return tr, nil
}

func compile(m *model.Model, cfg config, params map[string]float64) (*odesys.System, error) {
	var (
		sys *odesys.System
		err error
	)
	if cfg.cache != nil {
		sys, _, err = cfg.cache.compile(m)
	} else {
		sys, err = odesys.Compile(m)
	}
	if err != nil {
		return nil, err
	}
	if len(params) == 0 && len(cfg.initials) == 0 {
		return sys, nil
	}
	return sys.Override(odesys.WithParameterValues(params), odesys.WithInitialValues(cfg.initials))
}

func assemble(name string, sys *odesys.System, times []float64, states [][]float64) *Trajectory {
	stateNames := sys.StateNames()
	outNames := sys.OutputNames()
	names := append(append([]string(nil), stateNames...), outNames...)
	tr := newTrajectory(name, times, names)

	out := make([]float64, len(outNames))
	for i, y := range states {
		for j, v := range y {
			tr.Values[j][i] = v
		}
		sys.Evaluate(times[i], y, out)
		for j, v := range out {
			tr.Values[len(stateNames)+j][i] = v
		}
	}
	return tr
}

// ValidateTimeGrid checks that times is non-empty, finite and
// non-decreasing.
func ValidateTimeGrid(times []float64) error {
	if len(times) == 0 {
		return ErrEmptyTimeGrid
	}
	for i, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("%w: times[%d] = %g", ErrNonFiniteTime, i, t)
		}
		if i > 0 && t < times[i-1] {
			return fmt.Errorf("%w: times[%d] = %g < %g", ErrDecreasingTimeGrid, i, t, times[i-1])
		}
	}
	return nil
}
