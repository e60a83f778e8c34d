package macros_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pkpd/macros"
	"github.com/katalvlaran/pkpd/model"
)

// modelEnv evaluates expressions of m with fixed observable amounts.
type modelEnv struct {
	m       *model.Model
	amounts map[string]float64
	t       float64
}

func (e modelEnv) Value(name string) (float64, bool) {
	if v, ok := e.amounts[name]; ok {
		return v, true
	}
	if p, ok := e.m.LookupParameter(name); ok {
		return p.Value(), true
	}
	if x, ok := e.m.LookupExpression(name); ok {
		return x.Definition().Eval(e), true
	}
	return 0, false
}

func (e modelEnv) Time() float64 { return e.t }

// oneComp returns a model with Drug in a CENTRAL compartment of size v.
func oneComp(t *testing.T, v float64) (*model.Model, *model.Species, *model.Compartment) {
	t.Helper()
	m := model.New(t.Name())
	drug, err := macros.DrugSpecies(m, "")
	require.NoError(t, err)
	central, err := macros.OneCompartment(m, model.Lit(v))
	require.NoError(t, err)
	return m, drug, central
}

// twoComp returns a model with Drug in CENTRAL and PERIPHERAL.
func twoComp(t *testing.T) (*model.Model, *model.Species, macros.Topology) {
	t.Helper()
	m := model.New(t.Name())
	drug, err := macros.DrugSpecies(m, "")
	require.NoError(t, err)
	top, err := macros.TwoCompartments(m, model.Lit(1), model.Lit(2))
	require.NoError(t, err)
	return m, drug, top
}
