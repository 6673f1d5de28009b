// SPDX-License-Identifier: MIT

package linop

import (
	"fmt"

	"github.com/katalvlaran/equivar/matrix"
)

// Operator is a linear map ℝ^cols → ℝ^rows applied to column batches.
type Operator interface {
	// Shape returns (rows, cols) of the operator viewed as a matrix.
	Shape() (rows, cols int)

	// Apply returns Op·x for x of shape cols×k.
	Apply(x *matrix.Dense) (*matrix.Dense, error)

	// ApplyT returns Opᵀ·y for y of shape rows×k.
	ApplyT(y *matrix.Dense) (*matrix.Dense, error)
}

// Operation tags for error wrapping.
const (
	opDense    = "linop.Dense"
	opIdentity = "linop.Identity"
	opZero     = "linop.Zero"
	opPerm     = "linop.Permutation"
	opDiff     = "linop.Difference"
	opKron     = "linop.Kron"
	opKronSum  = "linop.KronSum"
	opBlock    = "linop.BlockDiag"
	opConcat   = "linop.Concat"
	opCompose  = "linop.Compose"
	opToDense  = "linop.ToDense"
)

// linopErrorf wraps err with an operator tag ("linop.Kron: ...").
func linopErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// checkRows validates that x is non-nil and has exactly want rows.
func checkRows(tag string, x *matrix.Dense, want int) error {
	if err := matrix.ValidateNotNil(x); err != nil {
		return linopErrorf(tag, err)
	}
	if x.Rows() != want {
		return linopErrorf(tag, fmt.Errorf("batch has %d rows, operator expects %d: %w",
			x.Rows(), want, matrix.ErrDimensionMismatch))
	}

	return nil
}
