package simulate_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/pkpd/integrate"
	"github.com/katalvlaran/pkpd/macros"
	"github.com/katalvlaran/pkpd/model"
	"github.com/katalvlaran/pkpd/odesys"
	"github.com/katalvlaran/pkpd/simulate"
)

func grid(t1 float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = t1 * float64(i) / float64(n-1)
	}
	return out
}

type failing struct{ err error }

func (f failing) Integrate(context.Context, integrate.System, []float64, []float64) ([][]float64, error) {
	return nil, f.err
}

type blocking struct{}

func (blocking) Integrate(ctx context.Context, _ integrate.System, _, _ []float64) ([][]float64, error) {
	<-ctx.Done()
	return nil, &integrate.Error{Time: 0, Err: ctx.Err()}
}

// PKSuite shares a one-compartment drug/compartment fixture.
type PKSuite struct {
	suite.Suite
	m       *model.Model
	drug    *model.Species
	central *model.Compartment
}

func (s *PKSuite) SetupTest() {
	s.m = model.New(s.T().Name())
	var err error
	s.drug, err = macros.DrugSpecies(s.m, "")
	s.Require().NoError(err)
	s.central, err = macros.OneCompartment(s.m, model.Lit(5))
	s.Require().NoError(err)
}

func (s *PKSuite) ok(_ model.ComponentSet, err error) { s.Require().NoError(err) }

func (s *PKSuite) TestEliminateMatchesExponential() {
	s.ok(macros.DoseBolus(s.m, s.drug, s.central, model.Lit(100)))
	s.ok(macros.Eliminate(s.m, s.drug, s.central, model.Lit(0.3)))

	times := grid(20, 41)
	tr, err := simulate.Simulate(context.Background(), s.m, times)
	s.Require().NoError(err)
	c, ok := tr.Series("Drug@CENTRAL")
	s.Require().True(ok)
	s.Equal(20.0, c[0], "bolus starts at dose / V")
	for i, t := range times {
		s.InEpsilon(20*math.Exp(-0.3*t), c[i], 1e-5, "t=%g", t)
		if i > 0 {
			s.Less(c[i], c[i-1])
		}
	}
}

func (s *PKSuite) TestClearanceEqualsEliminate() {
	s.ok(macros.DoseBolus(s.m, s.drug, s.central, model.Lit(100)))
	s.ok(macros.Clearance(s.m, s.drug, s.central, model.Lit(2)))

	ref := model.New("ref")
	d, err := macros.DrugSpecies(ref, "")
	s.Require().NoError(err)
	c, err := macros.OneCompartment(ref, model.Lit(5))
	s.Require().NoError(err)
	s.ok(macros.DoseBolus(ref, d, c, model.Lit(100)))
	s.ok(macros.Eliminate(ref, d, c, model.Lit(2.0/5)))

	times := grid(10, 11)
	a, err := simulate.Simulate(context.Background(), s.m, times)
	s.Require().NoError(err)
	b, err := simulate.Simulate(context.Background(), ref, times)
	s.Require().NoError(err)
	ya, _ := a.Series("Drug@CENTRAL")
	yb, _ := b.Series("Drug@CENTRAL")
	s.InDeltaSlice(yb, ya, 1e-9)
}

func (s *PKSuite) TestAbsorbedDeliversFractionOfDose() {
	s.ok(macros.DoseAbsorbed(s.m, s.drug, s.central, model.Lit(100), model.Lit(2), model.Lit(0.6)))
	_, err := macros.Emax(s.m, s.drug, s.central, model.Lit(1), model.Lit(10))
	s.Require().NoError(err)

	tr, err := simulate.Simulate(context.Background(), s.m, []float64{0, 1, 50})
	s.Require().NoError(err)
	amt, ok := tr.Series("amt_Drug_CENTRAL")
	s.Require().True(ok)
	depot, _ := tr.Series("depot_Drug_CENTRAL")
	s.Equal(0.0, amt[0])
	s.Equal(60.0, depot[0])
	s.InDelta(60, amt[2], 1e-6, "f·dose, never dose")
	s.InDelta(60, amt[1]+depot[1], 1e-6)
}

func (s *PKSuite) TestFastAbsorptionApproachesBolus() {
	s.ok(macros.DoseAbsorbed(s.m, s.drug, s.central, model.Lit(100), model.Lit(1e4), nil))
	tr, err := simulate.Simulate(context.Background(), s.m, []float64{0, 0.01, 1})
	s.Require().NoError(err)
	c, _ := tr.Series("Drug@CENTRAL")
	s.InDelta(20, c[1], 1e-6)
	s.InDelta(20, c[2], 1e-6)
}

func (s *PKSuite) TestInfusionWindow() {
	s.ok(macros.DoseInfusion(s.m, s.drug, s.central, model.Lit(50),
		macros.WithInfusionStart(1), macros.WithInfusionDuration(2), macros.WithInfusionTotal()))
	tr, err := simulate.Simulate(context.Background(), s.m, []float64{0, 1, 2, 3, 10})
	s.Require().NoError(err)
	c, _ := tr.Series("Drug@CENTRAL")
	s.InDeltaSlice([]float64{0, 0, 5, 10, 10}, c, 1e-9)
}

func (s *PKSuite) TestEmaxSeries() {
	s.ok(macros.DoseBolus(s.m, s.drug, s.central, model.Lit(50)))
	s.ok(macros.Eliminate(s.m, s.drug, s.central, model.Lit(0.1)))
	_, err := macros.SigmoidalEmax(s.m, s.drug, s.central, model.Lit(2), model.Lit(4), model.Lit(2))
	s.Require().NoError(err)

	tr, err := simulate.Simulate(context.Background(), s.m, grid(10, 6))
	s.Require().NoError(err)
	c, _ := tr.Series("Drug@CENTRAL")
	e, ok := tr.Series("SigmoidalEmax_expr_Drug_CENTRAL")
	s.Require().True(ok)
	for i := range c {
		s.InDelta(2*c[i]*c[i]/(c[i]*c[i]+16), e[i], 1e-12)
	}
}

func (s *PKSuite) TestOverrides() {
	s.ok(macros.DoseBolus(s.m, s.drug, s.central, model.Lit(100)))
	tr, err := simulate.Simulate(context.Background(), s.m, []float64{0},
		simulate.WithParameterValues(map[string]float64{"V_CENTRAL": 10}))
	s.Require().NoError(err)
	c, _ := tr.Series("Drug@CENTRAL")
	s.Equal(10.0, c[0])

	tr, err = simulate.Simulate(context.Background(), s.m, []float64{0},
		simulate.WithInitialValues(map[string]float64{"Drug@CENTRAL": 3}))
	s.Require().NoError(err)
	c, _ = tr.Series("Drug@CENTRAL")
	s.Equal(3.0, c[0])

	_, err = simulate.Simulate(context.Background(), s.m, []float64{0},
		simulate.WithParameterValues(map[string]float64{"missing": 1}))
	s.ErrorIs(err, odesys.ErrUnknownParameter)
}

func TestPKSuite(t *testing.T) {
	suite.Run(t, new(PKSuite))
}

func TestDistributionConservesAmount(t *testing.T) {
	m := model.New("dist")
	drug, err := macros.DrugSpecies(m, "")
	require.NoError(t, err)
	top, err := macros.TwoCompartments(m, model.Lit(3), model.Lit(7))
	require.NoError(t, err)
	_, err = macros.DoseBolus(m, drug, top.Central, model.Lit(30))
	require.NoError(t, err)
	_, err = macros.Distribute(m, drug, top.Central, top.Peripheral, model.Lit(0.4), model.Lit(0.1))
	require.NoError(t, err)

	tr, err := simulate.Simulate(context.Background(), m, grid(50, 26))
	require.NoError(t, err)
	c, _ := tr.Series("Drug@CENTRAL")
	p, _ := tr.Series("Drug@PERIPHERAL")
	for i := range tr.Time {
		assert.InDelta(t, 30, 3*c[i]+7*p[i], 1e-5, "t=%g", tr.Time[i])
	}
	// equilibrium: k12·A_c = k21·A_p
	last := tr.Len() - 1
	assert.InDelta(t, 0.4*3*c[last], 0.1*7*p[last], 1e-4)
}

func TestTrajectoryNamesAreUnique(t *testing.T) {
	m := model.New("labels")
	a, err := m.AddSpecies("A")
	require.NoError(t, err)
	ab, err := m.AddSpecies("A_B")
	require.NoError(t, err)
	bc, err := m.AddCompartment("B_C", model.Lit(1))
	require.NoError(t, err)
	c, err := m.AddCompartment("C", model.Lit(1))
	require.NoError(t, err)
	_, err = macros.DoseBolus(m, a, bc, model.Lit(10))
	require.NoError(t, err)
	site := model.At(ab, c)
	_, err = m.Apply(func(tx *model.Tx) error {
		k, err := tx.AddParameter("k_el", 1)
		if err != nil {
			return err
		}
		if _, err := tx.AddInitial(site, k); err != nil {
			return err
		}
		_, err = tx.AddRule(model.RuleSpec{Name: "el", Reactant: &site, Forward: k})
		return err
	})
	require.NoError(t, err)

	tr, err := simulate.Simulate(context.Background(), m, []float64{0, 1, 2})
	require.NoError(t, err)
	seen := make(map[string]bool)
	for _, n := range tr.Names {
		assert.False(t, seen[n], "duplicate series %q", n)
		seen[n] = true
	}
	dosed, ok := tr.Series("A@B_C")
	require.True(t, ok)
	assert.Equal(t, []float64{10, 10, 10}, dosed)
	el, ok := tr.Series("A_B@C")
	require.True(t, ok)
	assert.InEpsilon(t, math.Exp(-2), el[2], 1e-5)
}

func TestSimulate_TimeGrid(t *testing.T) {
	m := model.New("grid")
	cases := []struct {
		name  string
		times []float64
		want  error
	}{
		{"empty", nil, simulate.ErrEmptyTimeGrid},
		{"decreasing", []float64{0, 2, 1}, simulate.ErrDecreasingTimeGrid},
		{"nan", []float64{0, math.NaN()}, simulate.ErrNonFiniteTime},
		{"inf", []float64{0, math.Inf(1)}, simulate.ErrNonFiniteTime},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := simulate.Simulate(context.Background(), m, tc.times)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	tr, err := simulate.Simulate(context.Background(), m, []float64{0, 0, 1})
	require.NoError(t, err, "repeated times are non-decreasing")
	assert.Equal(t, 3, tr.Len())
	assert.Empty(t, tr.Names)

	_, err = simulate.Simulate(context.Background(), nil, []float64{0})
	assert.ErrorIs(t, err, simulate.ErrNilModel)
}

func TestSimulate_IntegrationError(t *testing.T) {
	m := model.New("fail")
	cause := &integrate.Error{Time: 3.5, Err: integrate.ErrStepUnderflow}
	_, err := simulate.Simulate(context.Background(), m, []float64{0, 5}, simulate.WithIntegrator(failing{err: cause}))
	require.ErrorIs(t, err, integrate.ErrStepUnderflow)

	var se *simulate.SimulationError
	require.True(t, errors.As(err, &se))
	assert.True(t, se.HasTime)
	assert.Equal(t, 3.5, se.Time)
	assert.Contains(t, err.Error(), "t=3.5")

	_, err = simulate.Simulate(context.Background(), m, []float64{0, 5}, simulate.WithIntegrator(failing{err: errors.New("opaque")}))
	require.True(t, errors.As(err, &se))
	assert.False(t, se.HasTime)
}

func TestSimulate_Timeout(t *testing.T) {
	m := model.New("slow")
	_, err := simulate.Simulate(context.Background(), m, []float64{0, 1},
		simulate.WithIntegrator(blocking{}), simulate.WithTimeout(20*time.Millisecond))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOptions_Panic(t *testing.T) {
	assert.Panics(t, func() { simulate.WithIntegrator(nil) })
	assert.Panics(t, func() { simulate.WithLogger(nil) })
	assert.Panics(t, func() { simulate.WithMetrics(nil) })
	assert.Panics(t, func() { simulate.WithCache(nil) })
	assert.Panics(t, func() { simulate.WithTimeout(0) })
	assert.Panics(t, func() { simulate.WithWorkers(0) })
}
