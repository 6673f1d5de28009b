// SPDX-License-Identifier: MIT

package solver

import (
	"errors"
	"fmt"
)

// Sentinel errors. Match with errors.Is.
var (
	// ErrConvergence is returned when the iterative solve exhausts its step
	// budget or its learning rate falls below the configured minimum.
	ErrConvergence = errors.New("solver: failed to converge")

	// ErrResourceExceeded is returned when the candidate basis would not fit
	// under the memory ceiling (always at the start, during rank growth only
	// in strict mode).
	ErrResourceExceeded = errors.New("solver: memory ceiling exceeded")

	// ErrInvalidConfig is returned by Config.Validate and New.
	ErrInvalidConfig = errors.New("solver: invalid configuration")

	// ErrBasisQuality is returned when the orthogonalized basis still
	// violates the constraint by more than the tolerance.
	ErrBasisQuality = errors.New("solver: basis residual above tolerance")
)

const (
	opSolve     = "solver.Solve"
	opDense     = "solver.Dense"
	opIterative = "solver.Iterative"
	opConfig    = "solver.Config"
)

// solverErrorf wraps err with an operation tag ("solver.Dense: ...").
func solverErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// WarningNumericalQuality is the value of the "warning" log field attached
// to non-fatal numerical diagnostics.
const WarningNumericalQuality = "numerical_quality"
