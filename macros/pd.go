// SPDX-License-Identifier: MIT

package macros

import (
	"github.com/katalvlaran/pkpd/expr"
	"github.com/katalvlaran/pkpd/model"
)

// Emax adds E = Emax·C/(C+EC50) on drug@comp. Emax and EC50 must be > 0.
func Emax(m *model.Model, drug *model.Species, comp *model.Compartment, emax, ec50 model.Quantity) (*model.Expression, error) {
	return effect(m, "Emax", drug, comp, func(tx *model.Tx, s model.Site, c expr.Node) (string, expr.Node, error) {
		e, err := quantity(tx, emax, "Emax_"+s.Label(), "emax", positive)
		if err != nil {
			return "", nil, err
		}
		ec, err := quantity(tx, ec50, "EC50_"+s.Label(), "ec50", positive)
		if err != nil {
			return "", nil, err
		}
		return "Emax_expr_", expr.Div(expr.Mul(e.Node(), c), expr.Add(c, ec.Node())), nil
	})
}

// SigmoidalEmax adds E = Emax·C^n/(C^n+EC50^n). Emax, EC50 and the Hill
// coefficient n must be > 0.
func SigmoidalEmax(m *model.Model, drug *model.Species, comp *model.Compartment, emax, ec50, n model.Quantity) (*model.Expression, error) {
	return effect(m, "SigmoidalEmax", drug, comp, func(tx *model.Tx, s model.Site, c expr.Node) (string, expr.Node, error) {
		e, err := quantity(tx, emax, "Emax_"+s.Label(), "emax", positive)
		if err != nil {
			return "", nil, err
		}
		ec, err := quantity(tx, ec50, "EC50_"+s.Label(), "ec50", positive)
		if err != nil {
			return "", nil, err
		}
		hill, err := quantity(tx, n, "n_"+s.Label(), "n", positive)
		if err != nil {
			return "", nil, err
		}
		cn := expr.Pow(c, hill.Node())
		return "SigmoidalEmax_expr_", expr.Div(expr.Mul(e.Node(), cn), expr.Add(cn, expr.Pow(ec.Node(), hill.Node()))), nil
	})
}

// LinearEffect adds E = slope·C + b. The intercept b defaults to 0 and is
// set with WithIntercept.
func LinearEffect(m *model.Model, drug *model.Species, comp *model.Compartment, slope model.Quantity, opts ...EffectOption) (*model.Expression, error) {
	cfg := newEffectConfig(opts)
	return effect(m, "LinearEffect", drug, comp, func(tx *model.Tx, s model.Site, c expr.Node) (string, expr.Node, error) {
		sl, b, err := slopeIntercept(tx, s, slope, cfg.intercept)
		if err != nil {
			return "", nil, err
		}
		return "Linear_expr_", expr.Add(expr.Mul(sl.Node(), c), b.Node()), nil
	})
}

// LogLinearEffect adds E = slope·log(C) + b, natural logarithm unless
// WithLogBase is given. The effect is only defined for C > 0; at C = 0 it
// evaluates to -Inf (or +Inf for a negative slope).
func LogLinearEffect(m *model.Model, drug *model.Species, comp *model.Compartment, slope model.Quantity, opts ...EffectOption) (*model.Expression, error) {
	cfg := newEffectConfig(opts)
	return effect(m, "LogLinearEffect", drug, comp, func(tx *model.Tx, s model.Site, c expr.Node) (string, expr.Node, error) {
		sl, b, err := slopeIntercept(tx, s, slope, cfg.intercept)
		if err != nil {
			return "", nil, err
		}
		logC := expr.Ln(c)
		if cfg.base != 0 {
			logC = expr.LogBase(c, expr.Num(cfg.base))
		}
		return "LogLinear_expr_", expr.Add(expr.Mul(sl.Node(), logC), b.Node()), nil
	})
}

// FixedEffect adds E = Efixed when C > Cthreshold, else 0.
// Cthreshold must be >= 0.
func FixedEffect(m *model.Model, drug *model.Species, comp *model.Compartment, eFixed, cThreshold model.Quantity) (*model.Expression, error) {
	return effect(m, "FixedEffect", drug, comp, func(tx *model.Tx, s model.Site, c expr.Node) (string, expr.Node, error) {
		e, err := quantity(tx, eFixed, "Efixed_"+s.Label(), "eFixed", finite)
		if err != nil {
			return "", nil, err
		}
		th, err := quantity(tx, cThreshold, "Cthreshold_"+s.Label(), "cThreshold", nonNegative)
		if err != nil {
			return "", nil, err
		}
		return "Fixed_expr_", expr.Mul(e.Node(), expr.Gt(c, th.Node())), nil
	})
}

// effectFn returns the expression name prefix and definition given the
// site and its concentration node.
type effectFn func(tx *model.Tx, s model.Site, conc expr.Node) (string, expr.Node, error)

func effect(m *model.Model, op string, drug *model.Species, comp *model.Compartment, fn effectFn) (*model.Expression, error) {
	var out *model.Expression
	_, err := apply(m, op, func(tx *model.Tx) error {
		s, err := site(tx, drug, comp)
		if err != nil {
			return err
		}
		amtOverV, err := concentration(tx, s)
		if err != nil {
			return err
		}
		c, err := tx.AddExpression("conc_"+s.Label(), amtOverV)
		if err != nil {
			return err
		}
		prefix, def, err := fn(tx, s, c.Node())
		if err != nil {
			return err
		}
		out, err = tx.AddExpression(prefix+s.Label(), def)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func newEffectConfig(opts []EffectOption) effectConfig {
	cfg := effectConfig{intercept: model.Lit(0)}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func slopeIntercept(tx *model.Tx, s model.Site, slope, intercept model.Quantity) (*model.Parameter, *model.Parameter, error) {
	sl, err := quantity(tx, slope, "slope_"+s.Label(), "slope", finite)
	if err != nil {
		return nil, nil, err
	}
	b, err := quantity(tx, intercept, "intercept_"+s.Label(), "intercept", finite)
	if err != nil {
		return nil, nil, err
	}
	return sl, b, nil
}
