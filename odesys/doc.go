// SPDX-License-Identifier: MIT

// Package odesys expands a finished model.Model into an ordinary
// differential equation system ready for numerical integration.
//
// States:
//   - One state per referenced Site, in species then compartment
//     declaration order (the volume-free pool of a species first).
//     Compartment states are concentrations; pool states are amounts.
//   - States are keyed by Site, never by a derived string. StateNames
//     uses Site.String() ("Drug@CENTRAL", or "depot_Drug_CENTRAL" for
//     a pool), which is unique within a model.
//
// Right-hand side, per rule with forward rate kf and optional reverse kr:
//
//	flux = kf·y_r·V_r − kr·y_p·V_p      (kf alone when there is no reactant)
//	dy_r −= flux / V_r
//	dy_p += flux / V_p
//
// V is 1 for pools and otherwise the compartment size parameter, read on
// every evaluation. Observables evaluate to y·V (amounts); expressions are
// evaluated in declaration order, which the model guarantees to be
// dependency order.
//
// A System is immutable and safe for concurrent use. Override returns a
// copy with new parameter or initial values, so a compiled system can be
// shared across simulations.
package odesys
