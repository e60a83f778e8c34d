// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/pkpd/integrate"
	"github.com/katalvlaran/pkpd/simulate"
	"github.com/katalvlaran/pkpd/standard"
)

// Config is one simulation run.
type Config struct {
	Model      ModelConfig      `mapstructure:"model"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Log        LogConfig        `mapstructure:"log"`
}

// ModelConfig mirrors standard.Config with keyed routes and PD models.
type ModelConfig struct {
	Name         string       `mapstructure:"name" validate:"omitempty,max=128"`
	Drug         string       `mapstructure:"drug"`
	Compartments int          `mapstructure:"compartments" validate:"min=1,max=3"`
	Dose         float64      `mapstructure:"dose" validate:"gte=0"`
	Route        KeyedConfig  `mapstructure:"route"`
	Volumes      []float64    `mapstructure:"volumes" validate:"omitempty,max=3,dive,gt=0"`
	Clearance    float64      `mapstructure:"clearance" validate:"gte=0"`
	Distribution []RateConfig `mapstructure:"distribution" validate:"omitempty,max=2,dive"`
	PD           *KeyedConfig `mapstructure:"pd"`
}

// KeyedConfig names a route or PD model and its numeric arguments.
type KeyedConfig struct {
	Key    string             `mapstructure:"key" validate:"required"`
	Params map[string]float64 `mapstructure:"params"`
}

// RateConfig is one central/peripheral rate pair.
type RateConfig struct {
	Out  float64 `mapstructure:"out" validate:"gte=0"`
	Back float64 `mapstructure:"back" validate:"gte=0"`
}

// Override sets one named parameter.
type Override struct {
	Name  string  `mapstructure:"name" validate:"required"`
	Value float64 `mapstructure:"value"`
}

// SweepPoint is one entry of a parameter sweep.
type SweepPoint struct {
	Set []Override `mapstructure:"set" validate:"dive"`
}

// SimulationConfig controls the time grid, the integrator and the run.
type SimulationConfig struct {
	Start  float64   `mapstructure:"start" validate:"gte=0"`
	End    float64   `mapstructure:"end" validate:"gtfield=Start"`
	Points int       `mapstructure:"points" validate:"min=2"`
	Times  []float64 `mapstructure:"times"` // overrides start/end/points

	RTol     float64 `mapstructure:"rtol" validate:"gt=0"`
	ATol     float64 `mapstructure:"atol" validate:"gt=0"`
	MaxSteps int     `mapstructure:"max_steps" validate:"gt=0"`

	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=0"` // 0 disables
	Workers   int           `mapstructure:"workers" validate:"gt=0"`
	CacheSize int           `mapstructure:"cache_size" validate:"gt=0"`

	Parameters []Override   `mapstructure:"parameters" validate:"dive"`
	Sweep      []SweepPoint `mapstructure:"sweep" validate:"dive"`
}

// LogConfig selects the logrus level and formatter.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// Standard converts c into a standard.Config.
func (c ModelConfig) Standard() (standard.Config, error) {
	route, err := standard.DoseRouteFromKey(c.Route.Key, c.Route.Params)
	if err != nil {
		return standard.Config{}, fmt.Errorf("config: model.route: %w", err)
	}
	out := standard.Config{
		Name:         c.Name,
		Drug:         c.Drug,
		Compartments: c.Compartments,
		Dose:         c.Dose,
		Route:        route,
		Volumes:      append([]float64(nil), c.Volumes...),
		Clearance:    c.Clearance,
	}
	for _, r := range c.Distribution {
		out.Distribution = append(out.Distribution, standard.RatePair{Out: r.Out, Back: r.Back})
	}
	if c.PD != nil {
		out.PD, err = standard.PDModelFromKey(c.PD.Key, c.PD.Params)
		if err != nil {
			return standard.Config{}, fmt.Errorf("config: model.pd: %w", err)
		}
	}
	return out, nil
}

// TimeGrid returns Times when set, otherwise Points evenly spaced
// samples from Start to End inclusive.
func (c SimulationConfig) TimeGrid() ([]float64, error) {
	if len(c.Times) > 0 {
		if err := simulate.ValidateTimeGrid(c.Times); err != nil {
			return nil, fmt.Errorf("config: simulation.times: %w", err)
		}
		return append([]float64(nil), c.Times...), nil
	}
	if c.Points < 2 || !(c.End > c.Start) {
		return nil, fmt.Errorf("%w: grid [%g, %g] with %d points", ErrInvalid, c.Start, c.End, c.Points)
	}
	out := make([]float64, c.Points)
	step := (c.End - c.Start) / float64(c.Points-1)
	for i := range out {
		out[i] = c.Start + float64(i)*step
	}
	out[len(out)-1] = c.End
	return out, nil
}

// Integrator returns a DormandPrince integrator with the configured
// tolerances and step limit.
func (c SimulationConfig) Integrator() integrate.Integrator {
	return integrate.NewDormandPrince(
		integrate.WithTolerances(c.RTol, c.ATol),
		integrate.WithMaxSteps(c.MaxSteps),
	)
}

// Overrides returns Parameters as a map.
func (c SimulationConfig) Overrides() map[string]float64 {
	return toMap(c.Parameters)
}

// SweepParameters returns one override map per sweep point.
func (c SimulationConfig) SweepParameters() []map[string]float64 {
	out := make([]map[string]float64, len(c.Sweep))
	for i, p := range c.Sweep {
		out[i] = toMap(p.Set)
	}
	return out
}

func toMap(list []Override) map[string]float64 {
	out := make(map[string]float64, len(list))
	for _, o := range list {
		out[o.Name] = o.Value
	}
	return out
}

// Logger builds a logrus logger writing to w.
func (c LogConfig) Logger(w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	if c.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	return l, nil
}
