// SPDX-License-Identifier: MIT

package odesys

import "errors"

var (
	// ErrNilModel is returned by Compile for a nil model.
	ErrNilModel = errors.New("odesys: nil model")

	// ErrUnknownParameter indicates an override for a name that is not a
	// parameter of the model.
	ErrUnknownParameter = errors.New("odesys: unknown parameter")

	// ErrUnknownState indicates an initial-value override for a name that
	// is not a state of the system.
	ErrUnknownState = errors.New("odesys: unknown state")

	// ErrInvalidValue indicates a non-finite override, or a compartment
	// size override that is not > 0.
	ErrInvalidValue = errors.New("odesys: invalid value")
)
