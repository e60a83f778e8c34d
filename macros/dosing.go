// SPDX-License-Identifier: MIT

package macros

import (
	"math"

	"github.com/katalvlaran/pkpd/expr"
	"github.com/katalvlaran/pkpd/model"
)

// DoseBolus sets the initial concentration of drug in comp to dose / V.
//
// Creates dose_<drug>_<comp> (literal dose), the expression
// expr_<drug>_<comp>_0 and the initial condition. A site takes one dose of any kind: a
// bolus after another bolus, an infusion or an absorbed dose on the same
// site fails with model.ErrInitialConflict.
func DoseBolus(m *model.Model, drug *model.Species, comp *model.Compartment, dose model.Quantity) (model.ComponentSet, error) {
	return apply(m, "DoseBolus", func(tx *model.Tx) error {
		s, err := site(tx, drug, comp)
		if err != nil {
			return err
		}
		if err := markDosed(tx, s, "bolus"); err != nil {
			return err
		}
		if _, taken := tx.InitialAt(s); taken {
			return conflictf("%s already has an initial condition", s)
		}
		d, err := quantity(tx, dose, "dose_"+s.Label(), "dose", nonNegative)
		if err != nil {
			return err
		}
		c0, err := tx.AddExpression("expr_"+s.Label()+"_0", expr.Div(d.Node(), comp.Size().Node()))
		if err != nil {
			return err
		}
		_, err = tx.AddInitial(s, c0)
		return err
	})
}

// DoseInfusion adds a zero-order input of drug into comp.
//
// By default rate is an amount per unit time delivered from t = 0 for
// ever. WithInfusionStart and WithInfusionDuration bound the window
// [start, start+duration); WithInfusionTotal reads rate as the total
// amount, delivered at amount/duration.
//
// The input rate is the expression infusion_expr_<drug>_<comp>, the
// source rate multiplied by a window gate, and the rule is
// infusion_<drug>_<comp>. Any earlier dose on the same site makes this
// fail with model.ErrInitialConflict.
func DoseInfusion(m *model.Model, drug *model.Species, comp *model.Compartment, rate model.Quantity, opts ...InfusionOption) (model.ComponentSet, error) {
	var cfg infusionConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return apply(m, "DoseInfusion", func(tx *model.Tx) error {
		s, err := site(tx, drug, comp)
		if err != nil {
			return err
		}
		if err := markDosed(tx, s, "infusion"); err != nil {
			return err
		}
		ruleName := "infusion_" + s.Label()

		var input expr.Node
		if cfg.total {
			if cfg.duration == 0 {
				return invalidf("total-amount infusion needs a duration")
			}
			amount, err := quantity(tx, rate, "dose_infusion_"+s.Label(), "amount", nonNegative)
			if err != nil {
				return err
			}
			input = expr.Div(amount.Node(), expr.Num(cfg.duration))
		} else {
			k, err := quantity(tx, rate, "k_infusion_"+s.Label(), "rate", nonNegative)
			if err != nil {
				return err
			}
			input = k.Node()
		}

		end := expr.Inf()
		if cfg.duration > 0 {
			end = expr.Num(cfg.start + cfg.duration)
		}
		if math.IsInf(cfg.start+cfg.duration, 0) {
			return invalidf("infusion window end overflows")
		}
		gated, err := tx.AddExpression("infusion_expr_"+s.Label(),
			expr.Mul(input, expr.Window(expr.Num(cfg.start), end)))
		if err != nil {
			return err
		}
		_, err = tx.AddRule(model.RuleSpec{Name: ruleName, Product: &s, Forward: gated})
		return err
	})
}

// DoseAbsorbed models extravascular dosing through a volume-free depot.
//
// The depot species depot_<drug>_<comp> starts with the amount F·dose
// (expression depot_<drug>_<comp>_0) and empties into drug@comp at the
// first-order rate ka (rule absorb_<drug>_<comp>). f may be nil, meaning
// complete bioavailability; otherwise 0 < f <= 1.
//
// Bioavailability is applied only to the depot amount. Any earlier dose on
// the same site makes this fail with model.ErrInitialConflict.
func DoseAbsorbed(m *model.Model, drug *model.Species, comp *model.Compartment, dose, ka, f model.Quantity) (model.ComponentSet, error) {
	if f == nil {
		f = model.Lit(1)
	}
	return apply(m, "DoseAbsorbed", func(tx *model.Tx) error {
		s, err := site(tx, drug, comp)
		if err != nil {
			return err
		}
		if err := markDosed(tx, s, "absorption"); err != nil {
			return err
		}
		depotName := "depot_" + s.Label()
		d, err := quantity(tx, dose, "dose_"+s.Label(), "dose", nonNegative)
		if err != nil {
			return err
		}
		kaP, err := quantity(tx, ka, "ka_"+s.Label(), "ka", positive)
		if err != nil {
			return err
		}
		fP, err := quantity(tx, f, "F_"+s.Label(), "f", fraction)
		if err != nil {
			return err
		}

		depot, err := tx.AddSpecies(depotName)
		if err != nil {
			return err
		}
		pool := model.Pool(depot)
		a0, err := tx.AddExpression(depotName+"_0", expr.Mul(fP.Node(), d.Node()))
		if err != nil {
			return err
		}
		if _, err := tx.AddInitial(pool, a0); err != nil {
			return err
		}
		_, err = tx.AddRule(model.RuleSpec{Name: "absorb_" + s.Label(), Reactant: &pool, Product: &s, Forward: kaP})
		return err
	})
}
