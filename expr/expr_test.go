package expr_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pkpd/expr"
)

func env(t float64, kv ...any) expr.MapEnv {
	vals := make(map[string]float64, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		vals[kv[i].(string)] = kv[i+1].(float64)
	}
	return expr.MapEnv{Values: vals, T: t}
}

func TestEval_Arithmetic(t *testing.T) {
	e := env(0, "a", 3.0, "b", 4.0)
	cases := []struct {
		name string
		node expr.Node
		want float64
	}{
		{"add", expr.Add(expr.Symbol("a"), expr.Symbol("b"), expr.Num(1)), 8},
		{"sub", expr.Sub(expr.Symbol("a"), expr.Symbol("b")), -1},
		{"mul", expr.Mul(expr.Symbol("a"), expr.Symbol("b")), 12},
		{"div", expr.Div(expr.Symbol("b"), expr.Num(2)), 2},
		{"pow", expr.Pow(expr.Symbol("a"), expr.Num(2)), 9},
		{"neg", expr.Neg(expr.Symbol("a")), -3},
		{"ln", expr.Ln(expr.Num(math.E)), 1},
		{"log2", expr.LogBase(expr.Num(8), expr.Num(2)), 3},
		{"empty add", expr.Add(), 0},
		{"empty mul", expr.Mul(), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, tc.node.Eval(e), 1e-12)
		})
	}
}

func TestEval_UnknownSymbolIsNaN(t *testing.T) {
	v := expr.Symbol("missing").Eval(env(0))
	assert.True(t, math.IsNaN(v))
}

func TestEval_Comparisons(t *testing.T) {
	gt := expr.Gt(expr.Symbol("c"), expr.Num(2))
	assert.Equal(t, 1.0, gt.Eval(env(0, "c", 2.5)))
	assert.Equal(t, 0.0, gt.Eval(env(0, "c", 2.0)), "strict comparison")

	w := expr.Window(expr.Num(1), expr.Num(3))
	assert.Equal(t, 0.0, w.Eval(env(0.5)))
	assert.Equal(t, 1.0, w.Eval(env(1)), "start is inclusive")
	assert.Equal(t, 1.0, w.Eval(env(2.9)))
	assert.Equal(t, 0.0, w.Eval(env(3)), "end is exclusive")

	open := expr.Window(expr.Num(0), expr.Inf())
	assert.Equal(t, 1.0, open.Eval(env(1e12)))
}

func TestString_Canonical(t *testing.T) {
	c := expr.Div(expr.Symbol("amt"), expr.Symbol("V"))
	e := expr.Div(expr.Mul(expr.Symbol("Emax"), c), expr.Add(c, expr.Symbol("EC50")))
	assert.Equal(t, "((Emax * (amt / V)) / ((amt / V) + EC50))", e.String())
	assert.Equal(t, "window(0, +Inf)", expr.Window(expr.Num(0), expr.Inf()).String())
	assert.Equal(t, "(-(x) > 0.25)", expr.Gt(expr.Neg(expr.Symbol("x")), expr.Num(0.25)).String())
}

func TestEqual(t *testing.T) {
	a := expr.Div(expr.Symbol("CL"), expr.Symbol("V"))
	b := expr.Div(expr.Symbol("CL"), expr.Symbol("V"))
	c := expr.Div(expr.Symbol("V"), expr.Symbol("CL"))
	assert.True(t, expr.Equal(a, b))
	assert.False(t, expr.Equal(a, c))
	assert.True(t, expr.Equal(nil, nil))
	assert.False(t, expr.Equal(a, nil))
}

func TestSymbolsAndWindows(t *testing.T) {
	n := expr.Mul(
		expr.Symbol("rate"),
		expr.Window(expr.Symbol("t0"), expr.Add(expr.Symbol("t0"), expr.Num(2))),
		expr.Symbol("rate"),
	)
	assert.Equal(t, []string{"rate", "t0"}, expr.Symbols(n))

	ws := expr.Windows(n)
	require.Len(t, ws, 1)
	assert.Equal(t, "t0", ws[0].Start.String())
	assert.True(t, expr.DependsOnTime(n))
	assert.False(t, expr.DependsOnTime(expr.Symbol("rate")))
	assert.True(t, expr.DependsOnTime(expr.Mul(expr.Time(), expr.Num(2))))
}

func TestEval_NilNode(t *testing.T) {
	_, err := expr.Eval(nil, env(0))
	assert.ErrorIs(t, err, expr.ErrNilNode)

	v, err := expr.Eval(expr.Time(), env(4))
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)
}
