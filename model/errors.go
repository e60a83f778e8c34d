// SPDX-License-Identifier: MIT

package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for model operations. Match with errors.Is.
var (
	// ErrInvalidName indicates an empty or malformed identifier.
	ErrInvalidName = errors.New("model: invalid name")

	// ErrDuplicateName indicates a naming conflict between two different definitions.
	ErrDuplicateName = errors.New("model: duplicate name")

	// ErrInitialConflict indicates a second initial condition for the same Site.
	ErrInitialConflict = errors.New("model: initial condition already set")

	// ErrUnknownComponent indicates a reference to an entity that is not registered.
	ErrUnknownComponent = errors.New("model: unknown component")

	// ErrInvalidArgument indicates an invalid numeric value or malformed request.
	ErrInvalidArgument = errors.New("model: invalid argument")

	// ErrNestedTransaction indicates Apply was called while another Apply was running.
	ErrNestedTransaction = errors.New("model: nested transaction")
)

// DuplicateNameError describes a name clash. It unwraps to ErrDuplicateName.
type DuplicateNameError struct {
	Name      string
	Existing  Kind
	Requested Kind
	Reason    string
}

func (e *DuplicateNameError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("model: duplicate name %q: %s %s", e.Name, e.Existing, e.Reason)
	}
	if e.Existing == e.Requested {
		return fmt.Sprintf("model: duplicate name %q: %s already registered", e.Name, e.Existing)
	}
	return fmt.Sprintf("model: duplicate name %q: registered as %s, requested as %s", e.Name, e.Existing, e.Requested)
}

// Unwrap returns ErrDuplicateName.
func (e *DuplicateNameError) Unwrap() error { return ErrDuplicateName }

// modelErrorf prefixes a wrapped sentinel with the failing operation.
func modelErrorf(op string, err error, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), err)
}
