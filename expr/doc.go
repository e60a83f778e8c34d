// SPDX-License-Identifier: MIT

// Package expr implements the small symbolic expression language used by
// pkpd models for rate laws, derived quantities and initial values.
//
// An expression is an immutable tree of Node values:
//
//	Num(2.5)                     constant
//	Symbol("CL")                 parameter, observable or expression name
//	Time()                       simulation time t
//	Add/Sub/Mul/Div/Pow          arithmetic
//	Ln/LogBase                   logarithms
//	Gt(a, b)                     1 if a > b, else 0
//	Window(start, end)           1 if start <= t < end, else 0
//
// Nodes never hold values of the symbols they reference; they are evaluated
// against an Env supplied by the caller (see odesys). Unknown symbols
// evaluate to NaN, so callers validate Symbols(n) before evaluating.
//
// Every node renders a deterministic canonical String(). Two nodes are
// considered structurally identical when their canonical strings match,
// which is how the model registry recognizes a repeated definition.
//
// Example:
//
//	// E = Emax·C/(C+EC50) with C = amount / volume
//	c := expr.Div(expr.Symbol("amt_Drug_CENTRAL"), expr.Symbol("V_CENTRAL"))
//	e := expr.Div(expr.Mul(expr.Symbol("Emax"), c), expr.Add(c, expr.Symbol("EC50")))
//	fmt.Println(e) // ((Emax * (amt_Drug_CENTRAL / V_CENTRAL)) / ((amt_Drug_CENTRAL / V_CENTRAL) + EC50))
package expr
