// SPDX-License-Identifier: MIT

package simulate

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/pkpd/integrate"
)

// Option configures Simulate and SimulateBatch.
type Option func(*config)

type config struct {
	integrator integrate.Integrator
	params     map[string]float64
	initials   map[string]float64
	log        logrus.FieldLogger
	metrics    *Metrics
	cache      *Cache
	timeout    time.Duration
	workers    int
}

func newConfig(opts []Option) config {
	cfg := config{
		params:   make(map[string]float64),
		initials: make(map[string]float64),
		workers:  4,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.integrator == nil {
		cfg.integrator = integrate.NewDormandPrince()
	}
	if cfg.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.log = l
	}
	return cfg
}

// WithIntegrator replaces the default DormandPrince integrator.
// Panics on nil.
func WithIntegrator(in integrate.Integrator) Option {
	if in == nil {
		panic("simulate: WithIntegrator(nil)")
	}
	return func(c *config) { c.integrator = in }
}

// WithParameterValues overrides parameter values for this run only.
func WithParameterValues(values map[string]float64) Option {
	return func(c *config) {
		for k, v := range values {
			c.params[k] = v
		}
	}
}

// WithInitialValues overrides the starting value of named states.
func WithInitialValues(values map[string]float64) Option {
	return func(c *config) {
		for k, v := range values {
			c.initials[k] = v
		}
	}
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l logrus.FieldLogger) Option {
	if l == nil {
		panic("simulate: WithLogger(nil)")
	}
	return func(c *config) { c.log = l }
}

// WithMetrics records run counts, durations and RHS evaluations.
// Panics on nil.
func WithMetrics(m *Metrics) Option {
	if m == nil {
		panic("simulate: WithMetrics(nil)")
	}
	return func(c *config) { c.metrics = m }
}

// WithCache reuses compiled systems across runs. Panics on nil.
func WithCache(cache *Cache) Option {
	if cache == nil {
		panic("simulate: WithCache(nil)")
	}
	return func(c *config) { c.cache = cache }
}

// WithTimeout bounds each run. Panics if d <= 0.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("simulate: WithTimeout(d<=0)")
	}
	return func(c *config) { c.timeout = d }
}

// WithWorkers sets the SimulateBatch pool size. Panics if n <= 0.
func WithWorkers(n int) Option {
	if n <= 0 {
		panic("simulate: WithWorkers(n<=0)")
	}
	return func(c *config) { c.workers = n }
}
