// SPDX-License-Identifier: MIT

package model

import (
	"strings"

	"github.com/katalvlaran/pkpd/expr"
)

// Quantity is a macro argument that is either a literal value (Lit) or an
// already registered *Parameter.
type Quantity interface {
	isQuantity()
}

// Lit is a literal numeric Quantity. Macros turn it into a Parameter with a
// name derived from the process it belongs to.
type Lit float64

func (Lit) isQuantity() {}

// Ref is anything usable as a rate constant or an initial value:
// a *Parameter or an *Expression.
type Ref interface {
	Name() string
	Node() expr.Node
	isRef()
}

// Parameter is a named numeric constant.
type Parameter struct {
	name  string
	value float64
}

// Name returns the parameter name.
func (p *Parameter) Name() string { return p.name }

// Value returns the nominal parameter value.
func (p *Parameter) Value() float64 { return p.value }

// Node returns a symbol referencing the parameter.
func (p *Parameter) Node() expr.Node { return expr.Symbol(p.name) }

func (*Parameter) isQuantity() {}
func (*Parameter) isRef()      {}

// Expression is a named derived quantity. It is not a state variable.
type Expression struct {
	name string
	node expr.Node
}

// Name returns the expression name.
func (e *Expression) Name() string { return e.name }

// Node returns a symbol referencing the expression.
func (e *Expression) Node() expr.Node { return expr.Symbol(e.name) }

// Definition returns the expression tree.
func (e *Expression) Definition() expr.Node { return e.node }

func (*Expression) isRef() {}

// Species is a drug or chemical entity. Its identity never changes after
// creation; the same Species is reused in every compartment.
type Species struct {
	name string
}

// Name returns the species name.
func (s *Species) Name() string { return s.name }

// Compartment is a named region with a strictly positive size.
// The size is always backed by a Parameter so it stays tunable.
type Compartment struct {
	name string
	size *Parameter
}

// Name returns the compartment name.
func (c *Compartment) Name() string { return c.name }

// Size returns the parameter holding the compartment size.
func (c *Compartment) Size() *Parameter { return c.size }

// Volume returns the nominal compartment size.
func (c *Compartment) Volume() float64 { return c.size.value }

// Site locates a species: inside a compartment, or in a volume-free pool
// when Compartment is nil.
type Site struct {
	Species     *Species
	Compartment *Compartment
}

// At returns the Site of s inside c.
func At(s *Species, c *Compartment) Site { return Site{Species: s, Compartment: c} }

// Pool returns the volume-free Site of s.
func Pool(s *Species) Site { return Site{Species: s} }

// VolumeFree reports whether the site has no compartment.
func (s Site) VolumeFree() bool { return s.Compartment == nil }

// String renders "Species@COMPARTMENT", or just "Species" for a pool.
func (s Site) String() string {
	if s.Species == nil {
		return "<nil>"
	}
	if s.Compartment == nil {
		return s.Species.name
	}
	return s.Species.name + "@" + s.Compartment.name
}

// Label renders the site with an underscore separator, for use inside
// derived identifiers ("Drug_CENTRAL"). Labels are not injective; Tx.ClaimLabel
// binds each one to a single site.
func (s Site) Label() string {
	return strings.ReplaceAll(s.String(), "@", "_")
}

// Observable reports the amount of a species at a site.
type Observable struct {
	name string
	site Site
}

// Name returns the observable name.
func (o *Observable) Name() string { return o.name }

// Site returns the observed site.
func (o *Observable) Site() Site { return o.site }

// Node returns a symbol referencing the observable.
func (o *Observable) Node() expr.Node { return expr.Symbol(o.name) }

// RuleSpec is the request passed to Tx.AddRule.
//
// Reactant/Product nil means "none" (source or sink). Reverse is only
// permitted when both sides are present.
type RuleSpec struct {
	Name     string
	Reactant *Site
	Product  *Site
	Forward  Ref
	Reverse  Ref
}

// Rule is a directional (or reversible) transformation between sites.
type Rule struct {
	name     string
	reactant *Site
	product  *Site
	forward  Ref
	reverse  Ref
}

// Name returns the rule name.
func (r *Rule) Name() string { return r.name }

// Reactant returns the consumed site, if any.
func (r *Rule) Reactant() (Site, bool) {
	if r.reactant == nil {
		return Site{}, false
	}
	return *r.reactant, true
}

// Product returns the produced site, if any.
func (r *Rule) Product() (Site, bool) {
	if r.product == nil {
		return Site{}, false
	}
	return *r.product, true
}

// Forward returns the forward rate constant.
func (r *Rule) Forward() Ref { return r.forward }

// Reverse returns the reverse rate constant of a reversible rule.
func (r *Rule) Reverse() (Ref, bool) { return r.reverse, r.reverse != nil }

// Reversible reports whether the rule has a reverse direction.
func (r *Rule) Reversible() bool { return r.reverse != nil }

// String renders the rule in arrow notation, e.g. "Drug@CENTRAL >> None".
func (r *Rule) String() string {
	side := func(s *Site) string {
		if s == nil {
			return "None"
		}
		return s.String()
	}
	arrow := " >> "
	if r.reverse != nil {
		arrow = " | "
	}
	return side(r.reactant) + arrow + side(r.product)
}

// Initial binds a site to its starting value.
type Initial struct {
	site  Site
	value Ref
}

// Site returns the initialized site.
func (i *Initial) Site() Site { return i.site }

// Value returns the parameter or expression giving the starting value.
func (i *Initial) Value() Ref { return i.value }

// ComponentSet lists the entities created by one transaction, in creation
// order. Idempotent re-registrations are not included.
type ComponentSet struct {
	Species      []*Species
	Compartments []*Compartment
	Parameters   []*Parameter
	Expressions  []*Expression
	Observables  []*Observable
	Rules        []*Rule
	Initials     []*Initial
}

// Len returns the total number of entities in the set.
func (c ComponentSet) Len() int {
	return len(c.Species) + len(c.Compartments) + len(c.Parameters) +
		len(c.Expressions) + len(c.Observables) + len(c.Rules) + len(c.Initials)
}

// Merge appends the entities of o to c.
func (c *ComponentSet) Merge(o ComponentSet) {
	c.Species = append(c.Species, o.Species...)
	c.Compartments = append(c.Compartments, o.Compartments...)
	c.Parameters = append(c.Parameters, o.Parameters...)
	c.Expressions = append(c.Expressions, o.Expressions...)
	c.Observables = append(c.Observables, o.Observables...)
	c.Rules = append(c.Rules, o.Rules...)
	c.Initials = append(c.Initials, o.Initials...)
}
