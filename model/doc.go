// SPDX-License-Identifier: MIT

// Package model holds the in-progress PK/PD reaction network: species,
// compartments, parameters, observables, derived expressions, reaction
// rules and initial conditions, together with the Registry that keeps
// every identifier unique.
//
// Ownership:
//   - Every Model owns exactly one Registry. There is no package-level
//     state, so independent models can be assembled from separate
//     goroutines at the same time.
//   - A single Model is NOT safe for concurrent mutation; callers building
//     one model from several goroutines must serialize access.
//
// Mutation:
//   - All writes go through Model.Apply, which runs a function against a
//     cloned state (Tx) and commits only if the function returns nil.
//     A failing macro therefore leaves no partial mutation behind.
//
// Identity rules:
//   - Names are unique across all kinds (a parameter cannot share a name
//     with a compartment).
//   - Re-registering an identical parameter, expression, observable or rule
//     under the same name is idempotent and returns the existing entity.
//     A different definition under a taken name is a DuplicateNameError.
//   - Species and compartments are never re-registered; initial conditions
//     are unique per Site.
//   - References must point at already registered entities (no forward
//     references); violations return ErrUnknownComponent.
//
// State semantics (used by odesys):
//   - A Site inside a compartment carries a concentration; a volume-free
//     Site (nil compartment) carries an amount.
//   - Observables report amounts, i.e. concentration times compartment size.
//
// Errors:
//
//	ErrInvalidName        - name is empty or not an identifier.
//	ErrDuplicateName      - name already taken by a different definition.
//	ErrInitialConflict    - the Site already has an initial condition.
//	ErrUnknownComponent   - reference to an entity not in this model.
//	ErrInvalidArgument    - invalid numeric value or malformed request.
//	ErrNestedTransaction  - Apply called from inside Apply.
package model
