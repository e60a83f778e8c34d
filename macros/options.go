// SPDX-License-Identifier: MIT

package macros

import (
	"fmt"
	"math"

	"github.com/katalvlaran/pkpd/model"
)

// Default names used by the topology builders.
const (
	DefaultDrug           = "Drug"
	DefaultCentral        = "CENTRAL"
	DefaultPeripheral     = "PERIPHERAL"
	DefaultDeepPeripheral = "DEEPPERIPHERAL"
)

// TopologyOption customizes OneCompartment, TwoCompartments and
// ThreeCompartments.
type TopologyOption func(*topologyConfig)

type topologyConfig struct {
	names [3]string
}

func newTopologyConfig(opts []TopologyOption) topologyConfig {
	cfg := topologyConfig{names: [3]string{DefaultCentral, DefaultPeripheral, DefaultDeepPeripheral}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithNames overrides compartment names in order central, peripheral,
// deep peripheral. Empty entries keep the default. Panics on more than
// three names or on a name that is not an identifier.
func WithNames(names ...string) TopologyOption {
	if len(names) > 3 {
		panic("macros: WithNames accepts at most three names")
	}
	for _, n := range names {
		if n != "" && !model.ValidName(n) {
			panic(fmt.Sprintf("macros: WithNames(%q) is not an identifier", n))
		}
	}
	return func(c *topologyConfig) {
		for i, n := range names {
			if n != "" {
				c.names[i] = n
			}
		}
	}
}

// InfusionOption customizes DoseInfusion.
type InfusionOption func(*infusionConfig)

type infusionConfig struct {
	start    float64
	duration float64 // 0 means unbounded
	total    bool
}

// WithInfusionStart delays the infusion to t0. Panics if t0 is negative
// or not finite.
func WithInfusionStart(t0 float64) InfusionOption {
	if t0 < 0 || math.IsInf(t0, 0) || math.IsNaN(t0) {
		panic("macros: WithInfusionStart(t0) requires a finite t0 >= 0")
	}
	return func(c *infusionConfig) { c.start = t0 }
}

// WithInfusionDuration stops the infusion after d time units.
// Panics if d is not finite and > 0.
func WithInfusionDuration(d float64) InfusionOption {
	if !(d > 0) || math.IsInf(d, 0) {
		panic("macros: WithInfusionDuration(d) requires a finite d > 0")
	}
	return func(c *infusionConfig) { c.duration = d }
}

// WithInfusionTotal makes DoseInfusion read its quantity as the total
// amount delivered over the duration instead of a rate. Requires
// WithInfusionDuration.
func WithInfusionTotal() InfusionOption {
	return func(c *infusionConfig) { c.total = true }
}

// EffectOption customizes LinearEffect and LogLinearEffect.
type EffectOption func(*effectConfig)

type effectConfig struct {
	intercept model.Quantity
	base      float64 // 0 means natural logarithm
}

// WithIntercept sets the effect at zero concentration (linear) or at
// unit concentration (log-linear). Panics on nil.
func WithIntercept(b model.Quantity) EffectOption {
	if b == nil {
		panic("macros: WithIntercept(nil)")
	}
	return func(c *effectConfig) { c.intercept = b }
}

// WithLogBase selects the logarithm base of LogLinearEffect.
// Panics unless base is finite, > 0 and != 1.
func WithLogBase(base float64) EffectOption {
	if !(base > 0) || base == 1 || math.IsInf(base, 0) {
		panic("macros: WithLogBase(base) requires a finite base > 0 and != 1")
	}
	return func(c *effectConfig) { c.base = base }
}
