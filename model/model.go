// SPDX-License-Identifier: MIT

package model

import (
	"github.com/google/uuid"
)

// Model is one in-progress PK/PD reaction network.
type Model struct {
	id   uuid.UUID
	name string
	st   *state
	rev  uint64
	inTx bool
}

// New returns an empty model. The name is informational; the ID is a
// random UUID used to correlate log lines.
func New(name string) *Model {
	return &Model{id: uuid.New(), name: name, st: newState()}
}

// ID returns the model's correlation id.
func (m *Model) ID() uuid.UUID { return m.id }

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// Revision counts committed transactions that created at least one entity.
// Two reads with equal revisions see the same model.
func (m *Model) Revision() uint64 { return m.rev }

// Apply runs fn against a staged copy of the model and commits the result
// only when fn returns nil. The returned ComponentSet lists the entities
// created by fn.
//
// Apply must not be called from inside fn (ErrNestedTransaction).
//
// Complexity: O(size of model) for the staging copy.
func (m *Model) Apply(fn func(tx *Tx) error) (ComponentSet, error) {
	if m.inTx {
		return ComponentSet{}, ErrNestedTransaction
	}
	m.inTx = true
	defer func() { m.inTx = false }()

	tx := &Tx{st: m.st.clone()}
	if err := fn(tx); err != nil {
		return ComponentSet{}, err
	}
	m.st = tx.st
	if tx.created.Len() > 0 {
		m.rev++
	}
	return tx.created, nil
}

// AddSpecies registers a species in its own transaction.
func (m *Model) AddSpecies(name string) (*Species, error) {
	var sp *Species
	_, err := m.Apply(func(tx *Tx) (err error) {
		sp, err = tx.AddSpecies(name)
		return err
	})
	return sp, err
}

// AddCompartment registers a compartment in its own transaction.
func (m *Model) AddCompartment(name string, size Quantity) (*Compartment, error) {
	var c *Compartment
	_, err := m.Apply(func(tx *Tx) (err error) {
		c, err = tx.AddCompartment(name, size)
		return err
	})
	return c, err
}

// AddParameter registers a new parameter in its own transaction.
func (m *Model) AddParameter(name string, value float64) (*Parameter, error) {
	var p *Parameter
	_, err := m.Apply(func(tx *Tx) (err error) {
		p, err = tx.AddParameter(name, value)
		return err
	})
	return p, err
}

// GetOrCreateParameter is Tx.GetOrCreateParameter in its own transaction.
func (m *Model) GetOrCreateParameter(name string, value float64) (*Parameter, error) {
	var p *Parameter
	_, err := m.Apply(func(tx *Tx) (err error) {
		p, err = tx.GetOrCreateParameter(name, value)
		return err
	})
	return p, err
}

// Names returns every registered identifier in registration order.
func (m *Model) Names() []string { return m.st.reg.Names() }

// Species returns all species in declaration order.
func (m *Model) Species() []*Species { return append([]*Species(nil), m.st.species...) }

// Compartments returns all compartments in declaration order.
func (m *Model) Compartments() []*Compartment {
	return append([]*Compartment(nil), m.st.compartments...)
}

// Parameters returns all parameters in declaration order.
func (m *Model) Parameters() []*Parameter { return append([]*Parameter(nil), m.st.parameters...) }

// Expressions returns all expressions in declaration order. Because
// expressions may only reference earlier ones, this order is a valid
// evaluation order.
func (m *Model) Expressions() []*Expression {
	return append([]*Expression(nil), m.st.expressions...)
}

// Observables returns all observables in declaration order.
func (m *Model) Observables() []*Observable {
	return append([]*Observable(nil), m.st.observables...)
}

// Rules returns all rules in declaration order.
func (m *Model) Rules() []*Rule { return append([]*Rule(nil), m.st.rules...) }

// Initials returns all initial conditions in declaration order.
func (m *Model) Initials() []*Initial { return append([]*Initial(nil), m.st.initials...) }

// LookupSpecies finds a species by name.
func (m *Model) LookupSpecies(name string) (*Species, bool) { return m.st.speciesNamed(name) }

// LookupCompartment finds a compartment by name.
func (m *Model) LookupCompartment(name string) (*Compartment, bool) { return m.st.compartment(name) }

// LookupParameter finds a parameter by name.
func (m *Model) LookupParameter(name string) (*Parameter, bool) { return m.st.parameter(name) }

// LookupExpression finds an expression by name.
func (m *Model) LookupExpression(name string) (*Expression, bool) { return m.st.expression(name) }

// LookupObservable finds an observable by name.
func (m *Model) LookupObservable(name string) (*Observable, bool) { return m.st.observable(name) }

// LookupRule finds a rule by name.
func (m *Model) LookupRule(name string) (*Rule, bool) { return m.st.rule(name) }

// InitialAt returns the initial condition of site, if any.
func (m *Model) InitialAt(site Site) (*Initial, bool) {
	in, ok := m.st.initialBySite[site.String()]
	return in, ok
}

// Kind returns the kind registered under name.
func (m *Model) Kind(name string) (Kind, bool) { return m.st.reg.Kind(name) }
