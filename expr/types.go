// SPDX-License-Identifier: MIT

package expr

import "errors"

// ErrNilNode is returned by helpers that receive a nil Node.
var ErrNilNode = errors.New("expr: nil node")

// Env resolves symbol values and the current time during evaluation.
//
// Value reports false for names it does not know; Eval turns that into NaN.
type Env interface {
	Value(name string) (float64, bool)
	Time() float64
}

// Node is a symbolic expression. Implementations are immutable and safe
// to share between models and goroutines.
type Node interface {
	// Eval computes the numeric value of the node under env.
	Eval(env Env) float64

	// String renders the canonical form of the node.
	String() string

	// children returns the direct sub-expressions, in evaluation order.
	children() []Node
}

// Op enumerates binary arithmetic operators.
type Op int

const (
	// OpAdd is a + b.
	OpAdd Op = iota
	// OpSub is a - b.
	OpSub
	// OpMul is a * b.
	OpMul
	// OpDiv is a / b.
	OpDiv
	// OpPow is a ^ b.
	OpPow
)

// String returns the operator symbol.
func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	default:
		return "?"
	}
}

// MapEnv is a map-backed Env with a fixed time, handy for one-off
// evaluation and tests.
type MapEnv struct {
	Values map[string]float64
	T      float64
}

// Value implements Env.
func (e MapEnv) Value(name string) (float64, bool) {
	v, ok := e.Values[name]
	return v, ok
}

// Time implements Env.
func (e MapEnv) Time() float64 { return e.T }
