// SPDX-License-Identifier: MIT

package model

import (
	"regexp"
)

// Kind classifies a registered identifier.
type Kind int

const (
	// KindSpecies names a Species.
	KindSpecies Kind = iota + 1
	// KindCompartment names a Compartment.
	KindCompartment
	// KindParameter names a Parameter.
	KindParameter
	// KindExpression names an Expression.
	KindExpression
	// KindObservable names an Observable.
	KindObservable
	// KindRule names a Rule.
	KindRule
)

// String returns a lowercase label for the kind.
func (k Kind) String() string {
	switch k {
	case KindSpecies:
		return "species"
	case KindCompartment:
		return "compartment"
	case KindParameter:
		return "parameter"
	case KindExpression:
		return "expression"
	case KindObservable:
		return "observable"
	case KindRule:
		return "rule"
	default:
		return "unknown"
	}
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// TimeSymbol is the name expressions use for simulation time. It cannot
// be registered.
const TimeSymbol = "t"

// ValidName reports whether name can be registered: an identifier other
// than TimeSymbol.
func ValidName(name string) bool { return name != TimeSymbol && identRe.MatchString(name) }

// Registry is the per-model symbol table. It records every identifier and
// its Kind in registration order and is the single source of truth for
// uniqueness checks.
type Registry struct {
	kinds map[string]Kind
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]Kind)}
}

// Reserve claims name for kind.
//
// Errors:
//   - ErrInvalidName if name is not an identifier.
//   - *DuplicateNameError (ErrDuplicateName) if name is already taken.
//
// Complexity: O(1) amortized.
func (r *Registry) Reserve(name string, kind Kind) error {
	if !ValidName(name) {
		return modelErrorf("Reserve", ErrInvalidName, "%q", name)
	}
	if existing, ok := r.kinds[name]; ok {
		return &DuplicateNameError{Name: name, Existing: existing, Requested: kind}
	}
	r.kinds[name] = kind
	r.order = append(r.order, name)
	return nil
}

// Kind returns the kind registered under name.
func (r *Registry) Kind(name string) (Kind, bool) {
	k, ok := r.kinds[name]
	return k, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.kinds[name]
	return ok
}

// Len returns the number of registered names.
func (r *Registry) Len() int { return len(r.order) }

// Names returns all registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) clone() *Registry {
	c := &Registry{
		kinds: make(map[string]Kind, len(r.kinds)),
		order: make([]string, len(r.order)),
	}
	for k, v := range r.kinds {
		c.kinds[k] = v
	}
	copy(c.order, r.order)
	return c
}
