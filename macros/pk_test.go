package macros_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pkpd/macros"
	"github.com/katalvlaran/pkpd/model"
)

func TestEliminate(t *testing.T) {
	m, drug, central := oneComp(t, 1)

	set, err := macros.Eliminate(m, drug, central, model.Lit(0.1))
	require.NoError(t, err)
	require.Len(t, set.Parameters, 1)
	require.Len(t, set.Rules, 1)
	assert.Equal(t, "k_eliminate_Drug_CENTRAL", set.Parameters[0].Name())
	assert.Equal(t, "eliminate_Drug_CENTRAL", set.Rules[0].Name())
	assert.Equal(t, "Drug@CENTRAL >> None", set.Rules[0].String())

	again, err := macros.Eliminate(m, drug, central, model.Lit(0.1))
	require.NoError(t, err, "identical repeat")
	assert.Zero(t, again.Len())

	_, err = macros.Eliminate(m, drug, central, model.Lit(0.2))
	assert.ErrorIs(t, err, model.ErrDuplicateName)
}

func TestEliminate_InvalidRate(t *testing.T) {
	for _, kel := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		m, drug, central := oneComp(t, 1)
		before := len(m.Names())
		_, err := macros.Eliminate(m, drug, central, model.Lit(kel))
		assert.ErrorIs(t, err, model.ErrInvalidArgument, "kel=%g", kel)
		assert.Len(t, m.Names(), before)
	}
}

func TestEliminate_ParameterRate(t *testing.T) {
	m, drug, central := oneComp(t, 1)
	kel, err := m.AddParameter("kel", 0.3)
	require.NoError(t, err)
	set, err := macros.Eliminate(m, drug, central, kel)
	require.NoError(t, err)
	assert.Empty(t, set.Parameters)
	assert.Same(t, kel, set.Rules[0].Forward())

	neg, err := m.AddParameter("kneg", -0.3)
	require.NoError(t, err)
	_, err = macros.Eliminate(m, drug, central, neg)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestEliminate_ForeignEntities(t *testing.T) {
	m, drug, central := oneComp(t, 1)
	_, otherDrug, otherCentral := oneComp(t, 1)

	_, err := macros.Eliminate(m, otherDrug, central, model.Lit(1))
	assert.ErrorIs(t, err, model.ErrUnknownComponent)
	_, err = macros.Eliminate(m, drug, otherCentral, model.Lit(1))
	assert.ErrorIs(t, err, model.ErrUnknownComponent)
	_, err = macros.Eliminate(m, nil, central, model.Lit(1))
	assert.ErrorIs(t, err, macros.ErrNilArgument)
	assert.Empty(t, m.Rules())
}

func TestEliminateMM(t *testing.T) {
	m, drug, central := oneComp(t, 2)
	set, err := macros.EliminateMM(m, drug, central, model.Lit(4), model.Lit(3))
	require.NoError(t, err)
	assert.Len(t, set.Parameters, 2)
	assert.Len(t, set.Observables, 1)
	require.Len(t, set.Expressions, 1)
	assert.Len(t, set.Rules, 1)

	k := set.Expressions[0]
	assert.Equal(t, "k_expr_Drug_CENTRAL", k.Name())
	// amount 2 in V=2 -> C=1: Vmax/(Km+C) = 4/4
	got := k.Definition().Eval(modelEnv{m: m, amounts: map[string]float64{"amt_Drug_CENTRAL": 2}})
	assert.InDelta(t, 1.0, got, 1e-15)

	m2, d2, c2 := oneComp(t, 1)
	_, err = macros.EliminateMM(m2, d2, c2, model.Lit(4), model.Lit(0))
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestClearance(t *testing.T) {
	m, drug, central := oneComp(t, 4)
	set, err := macros.Clearance(m, drug, central, model.Lit(2))
	require.NoError(t, err)
	require.Len(t, set.Parameters, 1)
	require.Len(t, set.Expressions, 1)
	require.Len(t, set.Rules, 1)
	assert.Equal(t, "CL_Drug_CENTRAL", set.Parameters[0].Name())
	assert.Equal(t, "k_CL_expr_Drug_CENTRAL", set.Expressions[0].Name())
	assert.Equal(t, "(CL_Drug_CENTRAL / V_CENTRAL)", set.Expressions[0].Definition().String())
	assert.Equal(t, "clearance_Drug_CENTRAL", set.Rules[0].Name())

	v := set.Expressions[0].Definition().Eval(modelEnv{m: m})
	assert.Equal(t, 0.5, v)
}

func TestDistribute(t *testing.T) {
	m, drug, top := twoComp(t)
	set, err := macros.Distribute(m, drug, top.Central, top.Peripheral, model.Lit(0.1), model.Lit(0.01))
	require.NoError(t, err)
	require.Len(t, set.Parameters, 2)
	require.Len(t, set.Rules, 1)

	r := set.Rules[0]
	assert.Equal(t, "distribute_Drug_CENTRAL_to_PERIPHERAL", r.Name())
	assert.True(t, r.Reversible())
	assert.Equal(t, "Drug@CENTRAL | Drug@PERIPHERAL", r.String())
	assert.Equal(t, "kf_distribute_Drug_CENTRAL_to_PERIPHERAL", r.Forward().Name())
	rev, ok := r.Reverse()
	require.True(t, ok)
	assert.Equal(t, "kr_distribute_Drug_CENTRAL_to_PERIPHERAL", rev.Name())

	_, err = macros.Distribute(m, drug, top.Central, top.Central, model.Lit(1), model.Lit(1))
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	_, err = macros.Distribute(m, drug, top.Peripheral, top.Central, model.Lit(0), model.Lit(-1))
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	assert.Len(t, m.Rules(), 1)
}

func TestTransfer(t *testing.T) {
	m, drug, top := twoComp(t)
	set, err := macros.Transfer(m, drug, top.Peripheral, top.Central, model.Lit(0.2))
	require.NoError(t, err)
	require.Len(t, set.Rules, 1)
	assert.Equal(t, "transfer_Drug_PERIPHERAL_to_CENTRAL", set.Rules[0].Name())
	assert.False(t, set.Rules[0].Reversible())
	assert.Equal(t, "k_transfer_Drug_PERIPHERAL_to_CENTRAL", set.Parameters[0].Name())
	assert.Equal(t, "Drug@PERIPHERAL >> Drug@CENTRAL", set.Rules[0].String())
}

func TestSiteLabelCollision(t *testing.T) {
	m := model.New(t.Name())
	a, err := m.AddSpecies("A")
	require.NoError(t, err)
	ab, err := m.AddSpecies("A_B")
	require.NoError(t, err)
	bc, err := m.AddCompartment("B_C", model.Lit(1))
	require.NoError(t, err)
	c, err := m.AddCompartment("C", model.Lit(1))
	require.NoError(t, err)

	// A@B_C and A_B@C both label as A_B_C
	_, err = macros.DoseBolus(m, a, bc, model.Lit(10))
	require.NoError(t, err)
	names := m.Names()

	_, err = macros.Eliminate(m, ab, c, model.Lit(1))
	assert.ErrorIs(t, err, model.ErrDuplicateName)
	_, err = macros.DoseBolus(m, ab, c, model.Lit(10))
	assert.ErrorIs(t, err, model.ErrDuplicateName)
	assert.Equal(t, names, m.Names())

	_, err = macros.Eliminate(m, a, bc, model.Lit(1))
	assert.NoError(t, err, "the owning site keeps its label")
}
