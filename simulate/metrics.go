// SPDX-License-Identifier: MIT

package simulate

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/pkpd/integrate"
)

// Metrics are the Prometheus collectors updated by Simulate:
//
//	pkpd_simulations_total{status}     runs by outcome: ok, invalid, failed
//	pkpd_simulation_duration_seconds   wall-clock time of completed runs
//	pkpd_rhs_evaluations_total         right-hand side evaluations
type Metrics struct {
	runs     *prometheus.CounterVec
	duration prometheus.Histogram
	rhs      prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pkpd_simulations_total",
				Help: "Total simulations by status",
			},
			[]string{"status"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pkpd_simulation_duration_seconds",
				Help:    "Simulation latency",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
		),
		rhs: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pkpd_rhs_evaluations_total",
				Help: "Total right-hand side evaluations",
			},
		),
	}
	for _, c := range []prometheus.Collector{m.runs, m.duration, m.rhs} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// status labels
const (
	statusOK      = "ok"
	statusInvalid = "invalid"
	statusFailed  = "failed"
)

func (m *Metrics) observe(status string, seconds float64) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(status).Inc()
	if status == statusOK {
		m.duration.Observe(seconds)
	}
}

// counted forwards to a system and counts evaluations.
type counted struct {
	integrate.System
	n int
}

func (c *counted) Derivatives(t float64, y, dy []float64) {
	c.n++
	c.System.Derivatives(t, y, dy)
}

// Breakpoints forwards to the wrapped system when it has any.
func (c *counted) Breakpoints() []float64 {
	if b, ok := c.System.(integrate.Breakpointer); ok {
		return b.Breakpoints()
	}
	return nil
}
