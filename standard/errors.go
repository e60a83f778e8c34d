// SPDX-License-Identifier: MIT

package standard

import (
	"fmt"

	"github.com/katalvlaran/pkpd/model"
)

var (
	// ErrUnknownDoseRoute indicates an unsupported dose route key.
	ErrUnknownDoseRoute = fmt.Errorf("standard: unknown dose route: %w", model.ErrInvalidArgument)

	// ErrUnknownPDModel indicates an unsupported PD model key.
	ErrUnknownPDModel = fmt.Errorf("standard: unknown PD model: %w", model.ErrInvalidArgument)

	// ErrMissingParameter indicates a required parameter was not given.
	ErrMissingParameter = fmt.Errorf("standard: missing parameter: %w", model.ErrInvalidArgument)

	// ErrUnexpectedParameter indicates a parameter the route or PD model
	// does not accept.
	ErrUnexpectedParameter = fmt.Errorf("standard: unexpected parameter: %w", model.ErrInvalidArgument)

	// ErrInvalidConfig indicates an inconsistent Config (compartment count,
	// volumes, rates).
	ErrInvalidConfig = fmt.Errorf("standard: invalid config: %w", model.ErrInvalidArgument)
)
