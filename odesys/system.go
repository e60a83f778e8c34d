// SPDX-License-Identifier: MIT

package odesys

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/katalvlaran/pkpd/expr"
	"github.com/katalvlaran/pkpd/model"
)

type observable struct {
	name  string
	slot  int
	state int
}

type expression struct {
	name string
	slot int
	node expr.Node
}

type rule struct {
	reactant, product int // -1 when absent
	fwd, rev          int // value slots; rev -1 when irreversible
}

type initial struct {
	state int
	slot  int
}

// System is the ODE system compiled from a model.
type System struct {
	modelName string

	names   []string // state names
	stateIx map[model.Site]int
	byName  map[string]int // state name -> index
	volSlot []int // size parameter slot per state, -1 for pools

	slots   map[string]int // every value name -> slot
	pnames  []string       // parameter names, slots [0, len)
	params  []float64
	isSize  map[int]bool
	nslots  int
	obs     []observable
	exprs   []expression
	rules   []rule
	inits   []initial
	initSet map[int]float64 // state -> overridden initial value

	scratch *sync.Pool
}

// slotEnv is the expr.Env of one evaluation.
type slotEnv struct {
	slots map[string]int
	vals  []float64
	t     float64
}

func (e *slotEnv) Value(name string) (float64, bool) {
	i, ok := e.slots[name]
	if !ok {
		return 0, false
	}
	return e.vals[i], true
}

func (e *slotEnv) Time() float64 { return e.t }

// Compile expands m into a System and applies opts.
//
// Errors: ErrNilModel, plus those of Override.
//
// Complexity: O(entities) time and space.
func Compile(m *model.Model, opts ...Option) (*System, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	s := &System{
		modelName: m.Name(),
		stateIx:   make(map[model.Site]int),
		byName:    make(map[string]int),
		slots:     make(map[string]int),
		isSize:    make(map[int]bool),
		initSet:   make(map[int]float64),
	}

	for _, p := range m.Parameters() {
		s.slots[p.Name()] = len(s.pnames)
		s.pnames = append(s.pnames, p.Name())
		s.params = append(s.params, p.Value())
	}
	for _, c := range m.Compartments() {
		s.isSize[s.slots[c.Size().Name()]] = true
	}

	s.layoutStates(m)

	next := len(s.pnames)
	for _, o := range m.Observables() {
		s.slots[o.Name()] = next
		s.obs = append(s.obs, observable{name: o.Name(), slot: next, state: s.stateIx[o.Site()]})
		next++
	}
	for _, e := range m.Expressions() {
		s.slots[e.Name()] = next
		s.exprs = append(s.exprs, expression{name: e.Name(), slot: next, node: e.Definition()})
		next++
	}
	s.nslots = next

	for _, r := range m.Rules() {
		cr := rule{reactant: -1, product: -1, fwd: s.slots[r.Forward().Name()], rev: -1}
		if site, ok := r.Reactant(); ok {
			cr.reactant = s.stateIx[site]
		}
		if site, ok := r.Product(); ok {
			cr.product = s.stateIx[site]
		}
		if rev, ok := r.Reverse(); ok {
			cr.rev = s.slots[rev.Name()]
		}
		s.rules = append(s.rules, cr)
	}
	for _, in := range m.Initials() {
		s.inits = append(s.inits, initial{state: s.stateIx[in.Site()], slot: s.slots[in.Value().Name()]})
	}

	s.scratch = newScratch(s.slots, s.nslots)
	if len(opts) == 0 {
		return s, nil
	}
	return s.Override(opts...)
}

// layoutStates assigns one state per referenced site.
func (s *System) layoutStates(m *model.Model) {
	used := make(map[model.Site]bool)
	mark := func(site model.Site) { used[site] = true }
	for _, r := range m.Rules() {
		if site, ok := r.Reactant(); ok {
			mark(site)
		}
		if site, ok := r.Product(); ok {
			mark(site)
		}
	}
	for _, in := range m.Initials() {
		mark(in.Site())
	}
	for _, o := range m.Observables() {
		mark(o.Site())
	}

	add := func(site model.Site) {
		if !used[site] {
			return
		}
		vol := -1
		if site.Compartment != nil {
			vol = s.slots[site.Compartment.Size().Name()]
		}
		s.stateIx[site] = len(s.names)
		s.byName[site.String()] = len(s.names)
		s.names = append(s.names, site.String())
		s.volSlot = append(s.volSlot, vol)
	}
	for _, sp := range m.Species() {
		add(model.Pool(sp))
		for _, c := range m.Compartments() {
			add(model.At(sp, c))
		}
	}
}

func newScratch(slots map[string]int, n int) *sync.Pool {
	return &sync.Pool{New: func() any {
		return &slotEnv{slots: slots, vals: make([]float64, n)}
	}}
}

// Override returns a copy of s with the given values replaced.
//
// Errors: ErrUnknownParameter, ErrUnknownState, ErrInvalidValue.
func (s *System) Override(opts ...Option) (*System, error) {
	o := overrides{params: make(map[string]float64), initials: make(map[string]float64)}
	for _, opt := range opts {
		opt(&o)
	}

	c := *s
	c.params = append([]float64(nil), s.params...)
	c.initSet = make(map[int]float64, len(s.initSet)+len(o.initials))
	for k, v := range s.initSet {
		c.initSet[k] = v
	}

	for _, name := range sortedKeys(o.params) {
		v := o.params[name]
		i, ok := s.slots[name]
		if !ok || i >= len(s.pnames) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || (s.isSize[i] && v <= 0) {
			return nil, fmt.Errorf("%w: parameter %q = %g", ErrInvalidValue, name, v)
		}
		c.params[i] = v
	}
	for _, name := range sortedKeys(o.initials) {
		v := o.initials[name]
		i, ok := s.byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownState, name)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: initial %q = %g", ErrInvalidValue, name, v)
		}
		c.initSet[i] = v
	}
	c.scratch = newScratch(c.slots, c.nslots)
	return &c, nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
