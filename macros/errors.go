// SPDX-License-Identifier: MIT

package macros

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/pkpd/model"
)

// ErrNilArgument indicates a nil model, species or compartment.
var ErrNilArgument = fmt.Errorf("macros: nil argument: %w", model.ErrInvalidArgument)

// errNoQuantity is returned when a required quantity is nil.
var errNoQuantity = errors.New("missing quantity")

// invalidf builds a configuration error wrapping model.ErrInvalidArgument.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), model.ErrInvalidArgument)
}

// conflictf builds a repeated-dosing error wrapping model.ErrInitialConflict.
func conflictf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), model.ErrInitialConflict)
}

// bound is a numeric domain a quantity must fall into.
type bound struct {
	ok   func(float64) bool
	desc string
}

var (
	positive = bound{
		ok:   func(v float64) bool { return v > 0 && !math.IsInf(v, 0) },
		desc: "must be finite and > 0",
	}
	nonNegative = bound{
		ok:   func(v float64) bool { return v >= 0 && !math.IsInf(v, 0) },
		desc: "must be finite and >= 0",
	}
	fraction = bound{
		ok:   func(v float64) bool { return v > 0 && v <= 1 },
		desc: "must be in (0, 1]",
	}
	finite = bound{
		ok:   func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) },
		desc: "must be finite",
	}
)

// quantity resolves q into a parameter named name and checks it against b.
// A literal is checked before anything is registered.
func quantity(tx *model.Tx, q model.Quantity, name, what string, b bound) (*model.Parameter, error) {
	if q == nil {
		return nil, invalidf("%s: %v", what, errNoQuantity)
	}
	if lit, ok := q.(model.Lit); ok && !b.ok(float64(lit)) {
		return nil, invalidf("%s %g %s", what, float64(lit), b.desc)
	}
	p, err := tx.Resolve(q, name)
	if err != nil {
		return nil, err
	}
	if !b.ok(p.Value()) {
		return nil, invalidf("%s %q = %g %s", what, p.Name(), p.Value(), b.desc)
	}
	return p, nil
}

// apply runs fn as one transaction on m and prefixes failures with op.
func apply(m *model.Model, op string, fn func(tx *model.Tx) error) (model.ComponentSet, error) {
	if m == nil {
		return model.ComponentSet{}, fmt.Errorf("macros: %s: %w", op, ErrNilArgument)
	}
	set, err := m.Apply(fn)
	if err != nil {
		return model.ComponentSet{}, fmt.Errorf("macros: %s: %w", op, err)
	}
	return set, nil
}

// site validates drug and comp and returns their Site.
func site(tx *model.Tx, drug *model.Species, comp *model.Compartment) (model.Site, error) {
	if drug == nil || comp == nil {
		return model.Site{}, ErrNilArgument
	}
	s := model.At(drug, comp)
	if !tx.HasSite(s) {
		return model.Site{}, fmt.Errorf("site %s: %w", s, model.ErrUnknownComponent)
	}
	// derived names embed the label, so it must identify one site
	if _, err := tx.ClaimLabel(s); err != nil {
		return model.Site{}, err
	}
	return s, nil
}

// markDosed rejects a second dose on s, whatever its kind.
func markDosed(tx *model.Tx, s model.Site, kind string) error {
	if prev, ok := tx.DosedBy(s); ok {
		return conflictf("%s already has a %s dose", s, prev)
	}
	return tx.MarkDosed(s, kind)
}
