// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// element-wise addition and subtraction, matrix multiplication, transpose,
// scaling and Householder QR. Inversion and log-determinants live in
// impl_inverse.go on top of gonum's LU.
// All functions perform strict fail-fast validation and return clear errors
// on dimension mismatches.
//
// Notes:
//   - Every kernel funnels its operands through asDense, so the hot loops
//     always run on flat row-major slices. Non-Dense inputs pay one copy.
//   - Results are freshly allocated; inputs are never mutated.

package matrix

import (
	"fmt"
	"math"
)

// NormZero is the additive identity for norm and accumulation operations.
const NormZero = 0.0

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opQR        = "QR"
	opAsDense   = "AsDense"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting across facades.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// AsDense returns m itself when it already is a *Dense, otherwise a Dense copy
// read through At. It is the single bridge between the Matrix interface and
// the flat-slice kernels.
//
// Errors:
//   - ErrNilMatrix, or any error surfaced by m.At.
//
// Complexity:
//   - O(1) for *Dense, O(r*c) otherwise.
func AsDense(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opAsDense, err)
	}
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDenseZeroOK(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opAsDense, err)
	}
	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opAsDense, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			res.data[i*cols+j] = v
		}
	}

	return res, nil
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Inputs must have identical shapes. A fresh Dense is allocated; operands are not mutated.
//
// Determinism:
//   - Single flat slice walk 0..(r*c−1).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b Matrix, sign float64, opTag string) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	da, err := AsDense(a)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	db, err := AsDense(b)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	res, err := NewDenseZeroOK(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	for idx := range res.data { // deterministic 0..n-1
		res.data[idx] = da.data[idx] + sign*db.data[idx]
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Complexity: Time O(r*c), Space O(r*c).
func Add(a, b Matrix) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A − B and returns a fresh Dense result.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Complexity: Time O(r*c), Space O(r*c).
func Sub(a, b Matrix) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Mul computes the matrix product C = A × B.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b); bridge both operands to *Dense.
//   - Stage 2: i→k→j loop on flat slices, skipping zero A[i,k].
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c). Skipping zero A[i,k] avoids useless multiplies,
//     which matters for permutation-like generator matrices.
//
// AI-Hints:
//   - Zero-width operands are legal (an empty basis times anything is empty).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := AsDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := AsDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	aRows, aCols, bCols := da.r, da.c, db.c
	res, err := NewDenseZeroOK(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, j, k                            int
		av                                 float64
		rowOffsetA, rowOffsetB, rowOffsetR int
	)
	for i = 0; i < aRows; i++ {
		rowOffsetA = i * aCols
		rowOffsetR = i * bCols
		for k = 0; k < aCols; k++ {
			av = da.data[rowOffsetA+k]
			if av == 0 {
				continue // skip zero for performance
			}
			rowOffsetB = k * bCols
			for j = 0; j < bCols; j++ {
				res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
			}
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the returned matrix.
func Transpose(m Matrix) (*Dense, error) {
	dm, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	rows, cols := dm.r, dm.c
	res, err := NewDenseZeroOK(cols, rows) // dims flipped
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	// data[i*cols + j] → res.data[j*rows + i]
	var i, j, baseSrc int
	for i = 0; i < rows; i++ {
		baseSrc = i * cols
		for j = 0; j < cols; j++ {
			res.data[j*rows+i] = dm.data[baseSrc+j]
		}
	}

	return res, nil
}

// Scale returns a new matrix whose elements are alpha * m[i,j].
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
//
// Notes:
//   - alpha = 0 yields an explicit zero matrix with the same shape.
func Scale(m Matrix, alpha float64) (*Dense, error) {
	dm, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res, err := NewDenseZeroOK(dm.r, dm.c)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for idx, v := range dm.data {
		res.data[idx] = alpha * v
	}

	return res, nil
}

// QR computes a Householder-based factorization such that A ≈ Qᵀ * R.
//
// Implementation:
//   - Stage 1: Validate m (not nil, square); clone A; init Q to identity.
//   - Stage 2: For k=0..n-1, build a column reflector and apply it to A (forming R) and to Q.
//
// Returns:
//   - Q: accumulated reflectors, orthogonal (note that A ≈ Qᵀ * R, not Q*R).
//   - R: upper triangular after reflections.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// AI-Hints:
//   - QR of a Gaussian matrix gives a Haar-like random orthogonal Q; the
//     sparsifier seeds its rotation this way.
func QR(m Matrix) (*Dense, *Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}
	src, err := AsDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}
	n := src.r
	Ad := src.Copy()
	Qd, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}

	v := make([]float64, n) // Householder vector
	var (
		i, j, k    int
		norm, beta float64 // column norm and β = vᵀv
		alpha, tau float64 // reflection scalar and 2/β factor
		sum, aij   float64
	)
	for k = 0; k < n; k++ {
		// Norm of A[k:n][k].
		norm = NormZero
		for i = k; i < n; i++ {
			aij = Ad.data[i*n+k]
			norm += aij * aij
		}
		norm = math.Sqrt(norm)
		if norm == NormZero {
			continue // skip zero column
		}

		// alpha = -sign(A[k,k]) * norm; v = A[k:n][k] - alpha*e_k.
		alpha = -math.Copysign(norm, Ad.data[k*n+k])
		for i = 0; i < n; i++ {
			v[i] = 0.0
		}
		for i = k; i < n; i++ {
			v[i] = Ad.data[i*n+k]
		}
		v[k] -= alpha

		beta = NormZero
		for i = k; i < n; i++ {
			beta += v[i] * v[i]
		}
		if beta == NormZero {
			continue
		}
		tau = 2.0 / beta

		// Apply reflection to A (update R).
		for j = k; j < n; j++ {
			sum = ZeroSum
			for i = k; i < n; i++ {
				sum += v[i] * Ad.data[i*n+j]
			}
			for i = k; i < n; i++ {
				Ad.data[i*n+j] -= tau * v[i] * sum
			}
		}
		// Apply reflection to Q.
		for j = 0; j < n; j++ {
			sum = ZeroSum
			for i = k; i < n; i++ {
				sum += v[i] * Qd.data[i*n+j]
			}
			for i = k; i < n; i++ {
				Qd.data[i*n+j] -= tau * v[i] * sum
			}
		}
	}

	return Qd, Ad, nil
}
