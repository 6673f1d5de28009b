// SPDX-License-Identifier: MIT

// Package matrix - inversion and log-determinants.
//
// Purpose:
//   - Dual representations need (M⁻¹)ᵀ; the sparsifier's regularizer needs log|det W|.
//   - Both delegate to gonum's pivoted LU, like SVD in impl_svd.go; this file
//     maps gonum's condition reports onto ErrSingular.

package matrix

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	opInverse = "Inverse"
	opLogDet  = "LogAbsDet"
)

// toGonum validates a non-empty square m and copies it into a gonum Dense.
func toGonum(m Matrix, tag string) (*mat.Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	src, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}
	if src.r == 0 {
		return nil, matrixErrorf(tag, ErrInvalidDimensions)
	}
	buf := make([]float64, len(src.data))
	copy(buf, src.data)

	return mat.NewDense(src.r, src.c, buf), nil
}

// Inverse computes A⁻¹.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrInvalidDimensions (0×0), ErrSingular.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// AI-Hints:
//   - Ill-conditioned but invertible inputs still return a result; only an
//     exactly zero pivot is ErrSingular.
func Inverse(m Matrix) (*Dense, error) {
	a, err := toGonum(m, opInverse)
	if err != nil {
		return nil, err
	}
	var inv mat.Dense
	if err = inv.Inverse(a); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, matrixErrorf(opInverse, ErrSingular)
		}
	}

	return fromGonum(&inv), nil
}

// LogAbsDet returns log|det(A)| and the sign of det(A).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrInvalidDimensions (0×0), ErrSingular.
//
// Complexity:
//   - Time O(n^3) (one LU), Space O(n^2).
func LogAbsDet(m Matrix) (float64, float64, error) {
	a, err := toGonum(m, opLogDet)
	if err != nil {
		return 0, 0, err
	}
	var lu mat.LU
	lu.Factorize(a)
	logDet, sign := lu.LogDet()
	if sign == 0 || math.IsInf(logDet, -1) || math.IsNaN(logDet) {
		return 0, 0, matrixErrorf(opLogDet, ErrSingular)
	}

	return logDet, sign, nil
}
