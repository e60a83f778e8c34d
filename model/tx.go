// SPDX-License-Identifier: MIT

package model

import (
	"math"

	"github.com/katalvlaran/pkpd/expr"
)

// Tx is a staged view of a model used inside Model.Apply.
// Nothing written through a Tx is visible on the Model until Apply commits.
type Tx struct {
	st      *state
	created ComponentSet
}

// Created returns the entities created so far in this transaction.
func (tx *Tx) Created() ComponentSet { return tx.created }

// AddSpecies registers a new species.
//
// Errors: ErrInvalidName, ErrDuplicateName.
func (tx *Tx) AddSpecies(name string) (*Species, error) {
	if err := tx.st.reg.Reserve(name, KindSpecies); err != nil {
		return nil, err
	}
	sp := &Species{name: name}
	tx.st.species = append(tx.st.species, sp)
	tx.st.byName[name] = sp
	tx.created.Species = append(tx.created.Species, sp)
	return sp, nil
}

// AddCompartment registers a new compartment.
//
// size is either Lit (a parameter "V_<name>" is created for it) or an
// already registered *Parameter. The size must be finite and > 0.
//
// Errors: ErrInvalidName, ErrDuplicateName, ErrInvalidArgument,
// ErrUnknownComponent.
func (tx *Tx) AddCompartment(name string, size Quantity) (*Compartment, error) {
	if !ValidName(name) {
		return nil, modelErrorf("AddCompartment", ErrInvalidName, "%q", name)
	}
	if k, ok := tx.st.reg.Kind(name); ok {
		return nil, &DuplicateNameError{Name: name, Existing: k, Requested: KindCompartment}
	}
	if lit, ok := size.(Lit); ok && !validSize(float64(lit)) {
		return nil, modelErrorf("AddCompartment", ErrInvalidArgument,
			"%q size %g must be finite and > 0", name, float64(lit))
	}
	sizeParam, err := tx.Resolve(size, "V_"+name)
	if err != nil {
		return nil, err
	}
	if !validSize(sizeParam.value) {
		return nil, modelErrorf("AddCompartment", ErrInvalidArgument,
			"%q size %g must be finite and > 0", name, sizeParam.value)
	}
	if err := tx.st.reg.Reserve(name, KindCompartment); err != nil {
		return nil, err
	}
	c := &Compartment{name: name, size: sizeParam}
	tx.st.compartments = append(tx.st.compartments, c)
	tx.st.byName[name] = c
	tx.created.Compartments = append(tx.created.Compartments, c)
	return c, nil
}

// AddParameter registers a new parameter; the name must be free.
//
// Errors: ErrInvalidName, ErrDuplicateName, ErrInvalidArgument (NaN/Inf).
func (tx *Tx) AddParameter(name string, value float64) (*Parameter, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, modelErrorf("AddParameter", ErrInvalidArgument, "%q value %g is not finite", name, value)
	}
	if err := tx.st.reg.Reserve(name, KindParameter); err != nil {
		return nil, err
	}
	p := &Parameter{name: name, value: value}
	tx.st.parameters = append(tx.st.parameters, p)
	tx.st.byName[name] = p
	tx.created.Parameters = append(tx.created.Parameters, p)
	return p, nil
}

// GetOrCreateParameter returns the parameter registered under name when it
// already holds value, or registers a new one.
//
// A parameter with the same name and a different value, or another kind of
// entity under that name, is a *DuplicateNameError.
func (tx *Tx) GetOrCreateParameter(name string, value float64) (*Parameter, error) {
	if k, ok := tx.st.reg.Kind(name); ok {
		if k != KindParameter {
			return nil, &DuplicateNameError{Name: name, Existing: k, Requested: KindParameter}
		}
		p, _ := tx.st.parameter(name)
		if p.value != value {
			return nil, &DuplicateNameError{
				Name: name, Existing: k, Requested: KindParameter,
				Reason: "already registered with a different value",
			}
		}
		return p, nil
	}
	return tx.AddParameter(name, value)
}

// Resolve turns a Quantity into a registered parameter.
// A Lit becomes GetOrCreateParameter(derived, value); a *Parameter must
// belong to this model.
func (tx *Tx) Resolve(q Quantity, derived string) (*Parameter, error) {
	switch v := q.(type) {
	case Lit:
		return tx.GetOrCreateParameter(derived, float64(v))
	case *Parameter:
		if v == nil || !tx.st.owns(v.name, v) {
			name := "<nil>"
			if v != nil {
				name = v.name
			}
			return nil, modelErrorf("Resolve", ErrUnknownComponent, "parameter %q is not registered", name)
		}
		return v, nil
	default:
		return nil, modelErrorf("Resolve", ErrInvalidArgument, "missing quantity for %q", derived)
	}
}

// AddExpression registers a derived expression.
//
// Every symbol in node must name an already registered parameter,
// observable or expression. An identical re-definition is idempotent.
func (tx *Tx) AddExpression(name string, node expr.Node) (*Expression, error) {
	if node == nil {
		return nil, modelErrorf("AddExpression", ErrInvalidArgument, "%q has no definition", name)
	}
	if k, ok := tx.st.reg.Kind(name); ok {
		if e, isExpr := tx.st.expression(name); isExpr && expr.Equal(e.node, node) {
			return e, nil
		}
		return nil, &DuplicateNameError{
			Name: name, Existing: k, Requested: KindExpression,
			Reason: "already registered with a different definition",
		}
	}
	for _, sym := range expr.Symbols(node) {
		k, ok := tx.st.reg.Kind(sym)
		if !ok || (k != KindParameter && k != KindExpression && k != KindObservable) {
			return nil, modelErrorf("AddExpression", ErrUnknownComponent, "%q references %q", name, sym)
		}
	}
	if err := tx.st.reg.Reserve(name, KindExpression); err != nil {
		return nil, err
	}
	e := &Expression{name: name, node: node}
	tx.st.expressions = append(tx.st.expressions, e)
	tx.st.byName[name] = e
	tx.created.Expressions = append(tx.created.Expressions, e)
	return e, nil
}

// AddObservable registers the amount of site under name.
// Re-registering the same site under the same name is idempotent.
func (tx *Tx) AddObservable(name string, site Site) (*Observable, error) {
	if !tx.st.ownsSite(site) {
		return nil, modelErrorf("AddObservable", ErrUnknownComponent, "%q observes unregistered site %s", name, site)
	}
	if k, ok := tx.st.reg.Kind(name); ok {
		if o, isObs := tx.st.observable(name); isObs && o.site == site {
			return o, nil
		}
		return nil, &DuplicateNameError{
			Name: name, Existing: k, Requested: KindObservable,
			Reason: "already registered for a different site",
		}
	}
	if err := tx.st.reg.Reserve(name, KindObservable); err != nil {
		return nil, err
	}
	o := &Observable{name: name, site: site}
	tx.st.observables = append(tx.st.observables, o)
	tx.st.byName[name] = o
	tx.created.Observables = append(tx.created.Observables, o)
	return o, nil
}

// AddRule registers a reaction rule. Sites and rate references must be
// registered; a rule identical to an existing one of the same name is
// returned without change.
func (tx *Tx) AddRule(spec RuleSpec) (*Rule, error) {
	const op = "AddRule"
	if spec.Reactant == nil && spec.Product == nil {
		return nil, modelErrorf(op, ErrInvalidArgument, "%q has neither reactant nor product", spec.Name)
	}
	if spec.Reactant != nil && !tx.st.ownsSite(*spec.Reactant) {
		return nil, modelErrorf(op, ErrUnknownComponent, "%q reactant %s is not registered", spec.Name, *spec.Reactant)
	}
	if spec.Product != nil && !tx.st.ownsSite(*spec.Product) {
		return nil, modelErrorf(op, ErrUnknownComponent, "%q product %s is not registered", spec.Name, *spec.Product)
	}
	if spec.Reactant != nil && spec.Product != nil && *spec.Reactant == *spec.Product {
		return nil, modelErrorf(op, ErrInvalidArgument, "%q maps %s onto itself", spec.Name, *spec.Reactant)
	}
	if !tx.st.ownsRef(spec.Forward) {
		return nil, modelErrorf(op, ErrUnknownComponent, "%q forward rate is not registered", spec.Name)
	}
	if spec.Reverse != nil {
		if spec.Reactant == nil || spec.Product == nil {
			return nil, modelErrorf(op, ErrInvalidArgument, "%q reverse rate needs both reactant and product", spec.Name)
		}
		if !tx.st.ownsRef(spec.Reverse) {
			return nil, modelErrorf(op, ErrUnknownComponent, "%q reverse rate is not registered", spec.Name)
		}
	}

	r := &Rule{
		name:     spec.Name,
		reactant: copySite(spec.Reactant),
		product:  copySite(spec.Product),
		forward:  spec.Forward,
		reverse:  spec.Reverse,
	}
	if k, ok := tx.st.reg.Kind(spec.Name); ok {
		if existing, isRule := tx.st.rule(spec.Name); isRule && sameRule(existing, r) {
			return existing, nil
		}
		return nil, &DuplicateNameError{
			Name: spec.Name, Existing: k, Requested: KindRule,
			Reason: "already registered with a different definition",
		}
	}
	if err := tx.st.reg.Reserve(spec.Name, KindRule); err != nil {
		return nil, err
	}
	tx.st.rules = append(tx.st.rules, r)
	tx.st.byName[spec.Name] = r
	tx.created.Rules = append(tx.created.Rules, r)
	return r, nil
}

// AddInitial binds site to value. Each site accepts exactly one initial
// condition; a second one is ErrInitialConflict.
func (tx *Tx) AddInitial(site Site, value Ref) (*Initial, error) {
	if !tx.st.ownsSite(site) {
		return nil, modelErrorf("AddInitial", ErrUnknownComponent, "site %s is not registered", site)
	}
	if !tx.st.ownsRef(value) {
		return nil, modelErrorf("AddInitial", ErrUnknownComponent, "initial value for %s is not registered", site)
	}
	key := site.String()
	if _, exists := tx.st.initialBySite[key]; exists {
		return nil, modelErrorf("AddInitial", ErrInitialConflict, "%s", key)
	}
	in := &Initial{site: site, value: value}
	tx.st.initials = append(tx.st.initials, in)
	tx.st.initialBySite[key] = in
	tx.created.Initials = append(tx.created.Initials, in)
	return in, nil
}

// ClaimLabel returns site.Label() and records site as its owner.
// Labels join names with "_", so two sites can share one (A@B_C and
// A_B@C); the second site to claim it fails with ErrDuplicateName.
// Claiming the same site again is a no-op.
func (tx *Tx) ClaimLabel(site Site) (string, error) {
	if !tx.st.ownsSite(site) {
		return "", modelErrorf("ClaimLabel", ErrUnknownComponent, "site %s is not registered", site)
	}
	label := site.Label()
	if owner, taken := tx.st.labels[label]; taken && owner != site {
		return "", modelErrorf("ClaimLabel", ErrDuplicateName,
			"label %q of %s is already used by %s", label, site, owner)
	}
	tx.st.labels[label] = site
	return label, nil
}

// MarkDosed records that site receives a dose of the given kind. Any
// second dose on the same site, of any kind, is ErrInitialConflict.
func (tx *Tx) MarkDosed(site Site, kind string) error {
	if !tx.st.ownsSite(site) {
		return modelErrorf("MarkDosed", ErrUnknownComponent, "site %s is not registered", site)
	}
	if prev, ok := tx.st.dosed[site]; ok {
		return modelErrorf("MarkDosed", ErrInitialConflict, "%s is already dosed by %s", site, prev)
	}
	tx.st.dosed[site] = kind
	return nil
}

// DosedBy returns the dosing kind recorded for site, if any.
func (tx *Tx) DosedBy(site Site) (string, bool) {
	kind, ok := tx.st.dosed[site]
	return kind, ok
}

// Species looks up a species by name.
func (tx *Tx) Species(name string) (*Species, bool) { return tx.st.speciesNamed(name) }

// Compartment looks up a compartment by name.
func (tx *Tx) Compartment(name string) (*Compartment, bool) { return tx.st.compartment(name) }

// Parameter looks up a parameter by name.
func (tx *Tx) Parameter(name string) (*Parameter, bool) { return tx.st.parameter(name) }

// InitialAt returns the initial condition of site, if any.
func (tx *Tx) InitialAt(site Site) (*Initial, bool) {
	in, ok := tx.st.initialBySite[site.String()]
	return in, ok
}

// HasSite reports whether both the species and compartment of site are
// registered in this model.
func (tx *Tx) HasSite(site Site) bool { return tx.st.ownsSite(site) }

// Has reports whether name is registered.
func (tx *Tx) Has(name string) bool { return tx.st.reg.Has(name) }

func validSize(v float64) bool { return v > 0 && !math.IsInf(v, 0) }

func copySite(s *Site) *Site {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func sameRule(a, b *Rule) bool {
	eqSite := func(x, y *Site) bool {
		if x == nil || y == nil {
			return x == nil && y == nil
		}
		return *x == *y
	}
	eqRef := func(x, y Ref) bool {
		if x == nil || y == nil {
			return x == nil && y == nil
		}
		return x.Name() == y.Name()
	}
	return eqSite(a.reactant, b.reactant) && eqSite(a.product, b.product) &&
		eqRef(a.forward, b.forward) && eqRef(a.reverse, b.reverse)
}
