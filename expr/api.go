// SPDX-License-Identifier: MIT

package expr

import (
	"math"
	"sort"
)

// Num returns a constant node.
func Num(v float64) Node { return constNode{v: v} }

// Inf returns the +Inf constant, used for unbounded windows.
func Inf() Node { return constNode{v: math.Inf(1)} }

// Symbol returns a reference to a named quantity.
func Symbol(name string) Node { return symbolNode{name: name} }

// Time returns the simulation time node t.
func Time() Node { return timeNode{} }

// Add returns the sum of the nodes, folded left: ((a + b) + c).
// A single argument is returned as is; no arguments yields Num(0).
func Add(nodes ...Node) Node { return fold(OpAdd, 0, nodes) }

// Mul returns the product of the nodes, folded left.
// No arguments yields Num(1).
func Mul(nodes ...Node) Node { return fold(OpMul, 1, nodes) }

// Sub returns a - b.
func Sub(a, b Node) Node { return binaryNode{op: OpSub, l: a, r: b} }

// Div returns a / b.
func Div(a, b Node) Node { return binaryNode{op: OpDiv, l: a, r: b} }

// Pow returns a ^ b.
func Pow(a, b Node) Node { return binaryNode{op: OpPow, l: a, r: b} }

// Neg returns -x.
func Neg(x Node) Node { return negNode{x: x} }

// Ln returns the natural logarithm of x.
func Ln(x Node) Node { return lnNode{x: x} }

// LogBase returns log_base(x) as ln(x) / ln(base).
func LogBase(x, base Node) Node { return Div(Ln(x), Ln(base)) }

// Gt returns 1 when a > b and 0 otherwise.
func Gt(a, b Node) Node { return gtNode{l: a, r: b} }

// Window returns the gate 1 for start <= t < end, 0 otherwise.
func Window(start, end Node) Node { return WindowNode{Start: start, End: end} }

func fold(op Op, identity float64, nodes []Node) Node {
	switch len(nodes) {
	case 0:
		return Num(identity)
	case 1:
		return nodes[0]
	}
	acc := nodes[0]
	for _, n := range nodes[1:] {
		acc = binaryNode{op: op, l: acc, r: n}
	}
	return acc
}

// Walk visits n and its descendants depth-first, pre-order.
// Returning false from fn skips the children of the visited node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.children() {
		Walk(c, fn)
	}
}

// Symbols returns the sorted, de-duplicated names referenced by n.
func Symbols(n Node) []string {
	seen := make(map[string]struct{})
	Walk(n, func(x Node) bool {
		if s, ok := x.(symbolNode); ok {
			seen[s.name] = struct{}{}
		}
		return true
	})
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Windows returns every window gate inside n, in pre-order.
func Windows(n Node) []WindowNode {
	var out []WindowNode
	Walk(n, func(x Node) bool {
		if w, ok := x.(WindowNode); ok {
			out = append(out, w)
		}
		return true
	})
	return out
}

// DependsOnTime reports whether n reads the simulation time.
func DependsOnTime(n Node) bool {
	found := false
	Walk(n, func(x Node) bool {
		switch x.(type) {
		case timeNode, WindowNode:
			found = true
		}
		return !found
	})
	return found
}

// Equal reports whether a and b are structurally identical.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.String() == b.String()
}

// Eval evaluates n, returning ErrNilNode for a nil node.
func Eval(n Node, env Env) (float64, error) {
	if n == nil {
		return math.NaN(), ErrNilNode
	}
	return n.Eval(env), nil
}
