// SPDX-License-Identifier: MIT

// Package matrix - singular value decomposition.
//
// Purpose:
//   - Expose full and thin SVD on Dense for null-space extraction and orthogonalization.
//   - Delegate the factorization itself to gonum's LAPACK-backed mat.SVD; this file
//     only bridges storage (row-major copy in/out) and error surfaces.
//
// Determinism:
//   - gonum's SVD is deterministic for identical inputs; singular values come back
//     in non-increasing order.

package matrix

import (
	"gonum.org/v1/gonum/mat"
)

const (
	opSVD     = "SVD"
	opThinSVD = "ThinSVD"
)

// SVD computes the full factorization A = U·diag(S)·Vᵀ.
//
// Returns:
//   - U: r×r orthogonal.
//   - S: min(r,c) singular values, non-increasing.
//   - V: c×c orthogonal (columns are right singular vectors).
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions (zero-area input), ErrSVDFailed.
//
// Complexity:
//   - Time O(r·c·min(r,c) + r^3 + c^3), Space O(r^2 + c^2).
//
// AI-Hints:
//   - The trailing columns of V whose singular values vanish span the null space of A.
func SVD(m Matrix) (*Dense, []float64, *Dense, error) {
	return factorizeSVD(m, mat.SVDFull, opSVD)
}

// ThinSVD computes the economy factorization A = U·diag(S)·Vᵀ with
// k = min(r,c): U is r×k, V is c×k. Memory stays O((r+c)·k), which is what
// makes orthogonalizing a tall n×r candidate basis affordable.
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions (zero-area input), ErrSVDFailed.
func ThinSVD(m Matrix) (*Dense, []float64, *Dense, error) {
	return factorizeSVD(m, mat.SVDThin, opThinSVD)
}

// factorizeSVD is the shared bridge for SVD/ThinSVD.
func factorizeSVD(m Matrix, kind mat.SVDKind, tag string) (*Dense, []float64, *Dense, error) {
	src, err := AsDense(m)
	if err != nil {
		return nil, nil, nil, matrixErrorf(tag, err)
	}
	if src.r == 0 || src.c == 0 {
		return nil, nil, nil, matrixErrorf(tag, ErrInvalidDimensions)
	}
	// gonum keeps the slice it is given; hand it a copy so src stays immutable.
	buf := make([]float64, len(src.data))
	copy(buf, src.data)
	a := mat.NewDense(src.r, src.c, buf)

	var svd mat.SVD
	if ok := svd.Factorize(a, kind); !ok {
		return nil, nil, nil, matrixErrorf(tag, ErrSVDFailed)
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	return fromGonum(&u), svd.Values(nil), fromGonum(&v), nil
}

// fromGonum copies a gonum Dense (possibly strided) into a fresh row-major Dense.
func fromGonum(g *mat.Dense) *Dense {
	raw := g.RawMatrix()
	res, _ := NewDenseZeroOK(raw.Rows, raw.Cols)
	for i := 0; i < raw.Rows; i++ {
		copy(res.data[i*raw.Cols:(i+1)*raw.Cols], raw.Data[i*raw.Stride:i*raw.Stride+raw.Cols])
	}

	return res
}
