// SPDX-License-Identifier: MIT

package expr

import (
	"math"
	"strconv"
)

type constNode struct{ v float64 }

func (n constNode) Eval(Env) float64 { return n.v }
func (n constNode) String() string   { return formatFloat(n.v) }
func (n constNode) children() []Node { return nil }

type symbolNode struct{ name string }

func (n symbolNode) Eval(env Env) float64 {
	v, ok := env.Value(n.name)
	if !ok {
		return math.NaN()
	}
	return v
}
func (n symbolNode) String() string   { return n.name }
func (n symbolNode) children() []Node { return nil }

type timeNode struct{}

func (timeNode) Eval(env Env) float64 { return env.Time() }
func (timeNode) String() string       { return "t" }
func (timeNode) children() []Node     { return nil }

type binaryNode struct {
	op   Op
	l, r Node
}

func (n binaryNode) Eval(env Env) float64 {
	a, b := n.l.Eval(env), n.r.Eval(env)
	switch n.op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		return a / b
	case OpPow:
		return math.Pow(a, b)
	default:
		return math.NaN()
	}
}

func (n binaryNode) String() string {
	return "(" + n.l.String() + " " + n.op.String() + " " + n.r.String() + ")"
}

func (n binaryNode) children() []Node { return []Node{n.l, n.r} }

type negNode struct{ x Node }

func (n negNode) Eval(env Env) float64 { return -n.x.Eval(env) }
func (n negNode) String() string       { return "-(" + n.x.String() + ")" }
func (n negNode) children() []Node     { return []Node{n.x} }

type lnNode struct{ x Node }

// Eval follows math.Log: ln(0) = -Inf, ln(x<0) = NaN.
func (n lnNode) Eval(env Env) float64 { return math.Log(n.x.Eval(env)) }
func (n lnNode) String() string       { return "ln(" + n.x.String() + ")" }
func (n lnNode) children() []Node     { return []Node{n.x} }

type gtNode struct{ l, r Node }

func (n gtNode) Eval(env Env) float64 {
	if n.l.Eval(env) > n.r.Eval(env) {
		return 1
	}
	return 0
}
func (n gtNode) String() string   { return "(" + n.l.String() + " > " + n.r.String() + ")" }
func (n gtNode) children() []Node { return []Node{n.l, n.r} }

// WindowNode gates a quantity on a half-open time interval [Start, End).
// It is exported so compilers can discover window edges via Windows.
type WindowNode struct {
	Start Node
	End   Node
}

// Eval returns 1 while Start <= t < End and 0 otherwise.
func (n WindowNode) Eval(env Env) float64 {
	t := env.Time()
	if t >= n.Start.Eval(env) && t < n.End.Eval(env) {
		return 1
	}
	return 0
}

func (n WindowNode) String() string {
	return "window(" + n.Start.String() + ", " + n.End.String() + ")"
}

func (n WindowNode) children() []Node { return []Node{n.Start, n.End} }

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
