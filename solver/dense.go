// SPDX-License-Identifier: MIT

package solver

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/equivar/linop"
	"github.com/katalvlaran/equivar/matrix"
)

// Dense solves by full SVD of the materialized operator.
//
// Implementation:
//   - Stage 1: C with no rows constrains nothing; return I_n.
//   - Stage 2: C = U·diag(S)·Vᵀ; rank = #{σ > tol}.
//   - Stage 3: the trailing n − rank columns of V are the basis.
//
// Complexity: O(rows·n·min(rows,n) + n³) time, O(rows·n + n²) space.
func (s *Solver) Dense(c linop.Operator) (*Result, error) {
	if c == nil {
		return nil, solverErrorf(opDense, matrix.ErrNilMatrix)
	}
	rows, n := c.Shape()
	if rows == 0 {
		return unconstrained(n)
	}

	m, err := linop.ToDense(c)
	if err != nil {
		return nil, solverErrorf(opDense, err)
	}
	_, sv, v, err := matrix.SVD(m)
	if err != nil {
		return nil, solverErrorf(opDense, err)
	}
	var rank int
	for _, sigma := range sv {
		if sigma > s.cfg.Tolerance {
			rank++
		}
	}
	q, err := matrix.Columns(v, rank, n)
	if err != nil {
		return nil, solverErrorf(opDense, err)
	}
	s.log.Debug("dense null space",
		zap.Int("rows", rows),
		zap.Int("cols", n),
		zap.Int("constraint_rank", rank),
		zap.Int("basis_rank", n-rank))

	return &Result{Basis: q, Path: PathDense}, nil
}

func unconstrained(n int) (*Result, error) {
	id, err := matrix.NewIdentity(n)
	if err != nil {
		return nil, err
	}

	return &Result{Basis: id, Path: PathUnconstrained}, nil
}
