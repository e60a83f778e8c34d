// SPDX-License-Identifier: MIT

package odesys

import (
	"math"
	"sort"

	"github.com/katalvlaran/pkpd/expr"
)

// ModelName returns the name of the compiled model.
func (s *System) ModelName() string { return s.modelName }

// Dim returns the number of states.
func (s *System) Dim() int { return len(s.names) }

// StateNames returns the state names (Site.String()) in state-vector order.
func (s *System) StateNames() []string { return append([]string(nil), s.names...) }

// OutputNames returns the observable names followed by the expression
// names, in the order Evaluate writes them.
func (s *System) OutputNames() []string {
	out := make([]string, 0, len(s.obs)+len(s.exprs))
	for _, o := range s.obs {
		out = append(out, o.name)
	}
	for _, e := range s.exprs {
		out = append(out, e.name)
	}
	return out
}

// Parameter returns the effective value of a parameter.
func (s *System) Parameter(name string) (float64, bool) {
	i, ok := s.slots[name]
	if !ok || i >= len(s.pnames) {
		return 0, false
	}
	return s.params[i], true
}

// fill loads parameters, observables and expressions for (t, y).
func (s *System) fill(env *slotEnv, t float64, y []float64) {
	env.t = t
	copy(env.vals, s.params)
	for _, o := range s.obs {
		env.vals[o.slot] = y[o.state] * s.volume(env.vals, o.state)
	}
	for _, e := range s.exprs {
		env.vals[e.slot] = e.node.Eval(env)
	}
}

func (s *System) volume(vals []float64, state int) float64 {
	if v := s.volSlot[state]; v >= 0 {
		return vals[v]
	}
	return 1
}

// Derivatives writes dy/dt at (t, y) into dy. len(y) and len(dy) must be
// Dim(). Safe for concurrent use.
func (s *System) Derivatives(t float64, y, dy []float64) {
	env := s.scratch.Get().(*slotEnv)
	defer s.scratch.Put(env)
	s.fill(env, t, y)

	for i := range dy {
		dy[i] = 0
	}
	vals := env.vals
	for _, r := range s.rules {
		var flux float64
		if r.reactant >= 0 {
			flux = vals[r.fwd] * y[r.reactant] * s.volume(vals, r.reactant)
		} else {
			flux = vals[r.fwd]
		}
		if r.rev >= 0 {
			flux -= vals[r.rev] * y[r.product] * s.volume(vals, r.product)
		}
		if r.reactant >= 0 {
			dy[r.reactant] -= flux / s.volume(vals, r.reactant)
		}
		if r.product >= 0 {
			dy[r.product] += flux / s.volume(vals, r.product)
		}
	}
}

// InitialState returns the state vector at the start of a simulation.
// States without an initial condition start at 0.
func (s *System) InitialState() []float64 {
	y := make([]float64, len(s.names))
	env := s.scratch.Get().(*slotEnv)
	defer s.scratch.Put(env)
	s.fill(env, 0, y)

	for _, in := range s.inits {
		y[in.state] = env.vals[in.slot]
	}
	for i, v := range s.initSet {
		y[i] = v
	}
	return y
}

// Evaluate writes the outputs (OutputNames order) at (t, y) into out.
func (s *System) Evaluate(t float64, y, out []float64) {
	env := s.scratch.Get().(*slotEnv)
	defer s.scratch.Put(env)
	s.fill(env, t, y)

	n := 0
	for _, o := range s.obs {
		out[n] = env.vals[o.slot]
		n++
	}
	for _, e := range s.exprs {
		out[n] = env.vals[e.slot]
		n++
	}
}

// Breakpoints returns the sorted, distinct, finite edges of every time
// window in the system. Integrators must not step across them.
func (s *System) Breakpoints() []float64 {
	env := s.scratch.Get().(*slotEnv)
	defer s.scratch.Put(env)
	s.fill(env, 0, make([]float64, len(s.names)))

	seen := make(map[float64]struct{})
	for _, e := range s.exprs {
		for _, w := range expr.Windows(e.node) {
			for _, edge := range []expr.Node{w.Start, w.End} {
				v := edge.Eval(env)
				if !math.IsNaN(v) && !math.IsInf(v, 0) {
					seen[v] = struct{}{}
				}
			}
		}
	}
	out := make([]float64, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}
