// SPDX-License-Identifier: MIT

package standard

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Option adjusts a Config before it is built.
type Option func(*settings)

type settings struct {
	cfg Config
	log logrus.FieldLogger
}

// WithName sets the model name.
func WithName(name string) Option {
	return func(s *settings) { s.cfg.Name = name }
}

// WithDrug sets the drug species name.
func WithDrug(name string) Option {
	return func(s *settings) { s.cfg.Drug = name }
}

// WithRoute selects the dose route. Panics on nil.
func WithRoute(r DoseRoute) Option {
	if r == nil {
		panic("standard: WithRoute(nil)")
	}
	return func(s *settings) { s.cfg.Route = r }
}

// WithVolumes sets the compartment volumes, central first.
func WithVolumes(v ...float64) Option {
	v = append([]float64(nil), v...)
	return func(s *settings) { s.cfg.Volumes = v }
}

// WithClearance sets the central clearance. Zero disables clearance.
func WithClearance(cl float64) Option {
	return func(s *settings) { s.cfg.Clearance = cl }
}

// WithDistribution sets the distribution rates, one pair per peripheral
// compartment.
func WithDistribution(p ...RatePair) Option {
	p = append([]RatePair(nil), p...)
	return func(s *settings) { s.cfg.Distribution = p }
}

// WithPD attaches a PD model. Panics on nil.
func WithPD(pd PDModel) Option {
	if pd == nil {
		panic("standard: WithPD(nil)")
	}
	return func(s *settings) { s.cfg.PD = pd }
}

// WithLogger sets the logger used while assembling. Panics on nil.
func WithLogger(l logrus.FieldLogger) Option {
	if l == nil {
		panic("standard: WithLogger(nil)")
	}
	return func(s *settings) { s.log = l }
}

func newSettings(cfg Config, opts []Option) settings {
	s := settings{cfg: cfg}
	for _, opt := range opts {
		opt(&s)
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = l
	}
	return s
}
