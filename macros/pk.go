// SPDX-License-Identifier: MIT

package macros

import (
	"github.com/katalvlaran/pkpd/expr"
	"github.com/katalvlaran/pkpd/model"
)

// Eliminate adds first-order elimination of drug from comp at rate kel.
//
// Creates k_eliminate_<drug>_<comp> (when kel is a literal) and the sink
// rule eliminate_<drug>_<comp>. kel must be > 0.
func Eliminate(m *model.Model, drug *model.Species, comp *model.Compartment, kel model.Quantity) (model.ComponentSet, error) {
	return apply(m, "Eliminate", func(tx *model.Tx) error {
		s, err := site(tx, drug, comp)
		if err != nil {
			return err
		}
		k, err := quantity(tx, kel, "k_eliminate_"+s.Label(), "kel", positive)
		if err != nil {
			return err
		}
		_, err = tx.AddRule(model.RuleSpec{Name: "eliminate_" + s.Label(), Reactant: &s, Forward: k})
		return err
	})
}

// EliminateMM adds Michaelis-Menten elimination, -dC/dt = Vmax·C/(Km+C).
//
// The effective first-order rate Vmax/(Km + amt/V) is registered as the
// expression k_expr_<drug>_<comp>, reading the amount observable
// amt_<drug>_<comp> and the compartment's size parameter.
func EliminateMM(m *model.Model, drug *model.Species, comp *model.Compartment, vmax, km model.Quantity) (model.ComponentSet, error) {
	return apply(m, "EliminateMM", func(tx *model.Tx) error {
		s, err := site(tx, drug, comp)
		if err != nil {
			return err
		}
		vm, err := quantity(tx, vmax, "Vmax_"+s.Label(), "vmax", positive)
		if err != nil {
			return err
		}
		kmP, err := quantity(tx, km, "Km_"+s.Label(), "km", positive)
		if err != nil {
			return err
		}
		conc, err := concentration(tx, s)
		if err != nil {
			return err
		}
		k, err := tx.AddExpression("k_expr_"+s.Label(), expr.Div(vm.Node(), expr.Add(kmP.Node(), conc)))
		if err != nil {
			return err
		}
		_, err = tx.AddRule(model.RuleSpec{Name: "eliminate_mm_" + s.Label(), Reactant: &s, Forward: k})
		return err
	})
}

// Clearance adds elimination parameterized by clearance CL.
// The rate constant is the expression CL / V_<comp>, so changing the
// compartment size rescales elimination.
func Clearance(m *model.Model, drug *model.Species, comp *model.Compartment, cl model.Quantity) (model.ComponentSet, error) {
	return apply(m, "Clearance", func(tx *model.Tx) error {
		s, err := site(tx, drug, comp)
		if err != nil {
			return err
		}
		clP, err := quantity(tx, cl, "CL_"+s.Label(), "cl", positive)
		if err != nil {
			return err
		}
		k, err := tx.AddExpression("k_CL_expr_"+s.Label(), expr.Div(clP.Node(), comp.Size().Node()))
		if err != nil {
			return err
		}
		_, err = tx.AddRule(model.RuleSpec{Name: "clearance_" + s.Label(), Reactant: &s, Forward: k})
		return err
	})
}

// Distribute adds reversible first-order exchange of drug between c1 and
// c2: c1 -> c2 at kOut and c2 -> c1 at kBack. Rates must be >= 0.
func Distribute(m *model.Model, drug *model.Species, c1, c2 *model.Compartment, kOut, kBack model.Quantity) (model.ComponentSet, error) {
	return apply(m, "Distribute", func(tx *model.Tx) error {
		from, to, err := route(tx, drug, c1, c2)
		if err != nil {
			return err
		}
		suffix := "distribute_" + drug.Name() + "_" + c1.Name() + "_to_" + c2.Name()
		kf, err := quantity(tx, kOut, "kf_"+suffix, "kOut", nonNegative)
		if err != nil {
			return err
		}
		kr, err := quantity(tx, kBack, "kr_"+suffix, "kBack", nonNegative)
		if err != nil {
			return err
		}
		_, err = tx.AddRule(model.RuleSpec{Name: suffix, Reactant: &from, Product: &to, Forward: kf, Reverse: kr})
		return err
	})
}

// Transfer adds one-way first-order transfer of drug from c1 to c2.
func Transfer(m *model.Model, drug *model.Species, c1, c2 *model.Compartment, k model.Quantity) (model.ComponentSet, error) {
	return apply(m, "Transfer", func(tx *model.Tx) error {
		from, to, err := route(tx, drug, c1, c2)
		if err != nil {
			return err
		}
		name := "transfer_" + drug.Name() + "_" + c1.Name() + "_to_" + c2.Name()
		kt, err := quantity(tx, k, "k_"+name, "k", nonNegative)
		if err != nil {
			return err
		}
		_, err = tx.AddRule(model.RuleSpec{Name: name, Reactant: &from, Product: &to, Forward: kt})
		return err
	})
}

func route(tx *model.Tx, drug *model.Species, c1, c2 *model.Compartment) (model.Site, model.Site, error) {
	from, err := site(tx, drug, c1)
	if err != nil {
		return model.Site{}, model.Site{}, err
	}
	to, err := site(tx, drug, c2)
	if err != nil {
		return model.Site{}, model.Site{}, err
	}
	if c1 == c2 {
		return model.Site{}, model.Site{}, invalidf("%s cannot exchange with itself", c1.Name())
	}
	return from, to, nil
}

// concentration registers the amount observable of s and returns the
// node amt_<s> / V_<comp>. It never caches the size.
func concentration(tx *model.Tx, s model.Site) (expr.Node, error) {
	obs, err := tx.AddObservable("amt_"+s.Label(), s)
	if err != nil {
		return nil, err
	}
	return expr.Div(obs.Node(), s.Compartment.Size().Node()), nil
}
