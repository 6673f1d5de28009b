// SPDX-License-Identifier: MIT

package rep

import (
	"errors"
	"fmt"
)

var (
	// ErrUnboundRepresentation is returned when size or an action is requested
	// from a representation that has no group yet.
	ErrUnboundRepresentation = errors.New("rep: representation is not bound to a group")

	// ErrInvalidPower is returned by Pow for negative exponents.
	ErrInvalidPower = errors.New("rep: power must be a non-negative integer")

	// ErrNegativeMultiplicity is returned by Times for negative multiplicities.
	ErrNegativeMultiplicity = errors.New("rep: multiplicity must be non-negative")

	// ErrNilRepresentation is returned when an operation needs a representation and got nil.
	ErrNilRepresentation = errors.New("rep: nil representation")

	// ErrMissingAction is returned when Rho/Drho is called without an Action.
	ErrMissingAction = errors.New("rep: nil action")
)

// Operation tags for error wrapping.
const (
	opSize         = "Size"
	opPow          = "Pow"
	opTimes        = "Times"
	opRho          = "Rho"
	opDrho         = "Drho"
	opCanonicalize = "Canonicalize"
	opIndices      = "AsIndices"
)

// repErrorf wraps err with an operation tag ("Rho: rep: ...").
func repErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
