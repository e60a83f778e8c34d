// SPDX-License-Identifier: MIT

package model

// state is the full content of a model. Entities are immutable, so a clone
// copies containers and shares entity pointers.
type state struct {
	reg *Registry

	species      []*Species
	compartments []*Compartment
	parameters   []*Parameter
	expressions  []*Expression
	observables  []*Observable
	rules        []*Rule
	initials     []*Initial

	byName        map[string]any
	initialBySite map[string]*Initial
	labels        map[string]Site // Site.Label() -> owning site
	dosed         map[Site]string // site -> dosing kind
}

func newState() *state {
	return &state{
		reg:           NewRegistry(),
		byName:        make(map[string]any),
		initialBySite: make(map[string]*Initial),
		labels:        make(map[string]Site),
		dosed:         make(map[Site]string),
	}
}

func (s *state) clone() *state {
	c := &state{
		reg:           s.reg.clone(),
		species:       append([]*Species(nil), s.species...),
		compartments:  append([]*Compartment(nil), s.compartments...),
		parameters:    append([]*Parameter(nil), s.parameters...),
		expressions:   append([]*Expression(nil), s.expressions...),
		observables:   append([]*Observable(nil), s.observables...),
		rules:         append([]*Rule(nil), s.rules...),
		initials:      append([]*Initial(nil), s.initials...),
		byName:        make(map[string]any, len(s.byName)),
		initialBySite: make(map[string]*Initial, len(s.initialBySite)),
		labels:        make(map[string]Site, len(s.labels)),
		dosed:         make(map[Site]string, len(s.dosed)),
	}
	for k, v := range s.byName {
		c.byName[k] = v
	}
	for k, v := range s.initialBySite {
		c.initialBySite[k] = v
	}
	for k, v := range s.labels {
		c.labels[k] = v
	}
	for k, v := range s.dosed {
		c.dosed[k] = v
	}
	return c
}

func (s *state) parameter(name string) (*Parameter, bool) {
	p, ok := s.byName[name].(*Parameter)
	return p, ok
}

func (s *state) expression(name string) (*Expression, bool) {
	e, ok := s.byName[name].(*Expression)
	return e, ok
}

func (s *state) observable(name string) (*Observable, bool) {
	o, ok := s.byName[name].(*Observable)
	return o, ok
}

func (s *state) speciesNamed(name string) (*Species, bool) {
	sp, ok := s.byName[name].(*Species)
	return sp, ok
}

func (s *state) compartment(name string) (*Compartment, bool) {
	c, ok := s.byName[name].(*Compartment)
	return c, ok
}

func (s *state) rule(name string) (*Rule, bool) {
	r, ok := s.byName[name].(*Rule)
	return r, ok
}

// owns reports whether the exact entity pointer is registered here.
func (s *state) owns(name string, entity any) bool {
	got, ok := s.byName[name]
	return ok && got == entity
}

func (s *state) ownsSite(site Site) bool {
	if site.Species == nil || !s.owns(site.Species.name, site.Species) {
		return false
	}
	if site.Compartment != nil && !s.owns(site.Compartment.name, site.Compartment) {
		return false
	}
	return true
}

func (s *state) ownsRef(ref Ref) bool {
	if ref == nil {
		return false
	}
	switch r := ref.(type) {
	case *Parameter:
		return r != nil && s.owns(r.name, r)
	case *Expression:
		return r != nil && s.owns(r.name, r)
	default:
		return false
	}
}
