// SPDX-License-Identifier: MIT

// Package matrix - element-wise micro-kernels (ew*).
//
// Purpose:
//   - Centralize the small element-wise loops used by facades (AllClose) and
//     by the optimizers (sign masks, absolute means).
//   - Keep each kernel a single flat pass over *Dense data.

package matrix

import (
	"math"
)

// ewAllClose is the kernel behind AllClose.
// Tolerances are normalized to |rtol|, |atol|; NaN/Inf tolerances are rejected.
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	var err error
	if rtol, err = ValidateTolerance(rtol); err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	if atol, err = ValidateTolerance(atol); err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	if err = ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	da, err := AsDense(a)
	if err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	db, err := AsDense(b)
	if err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	for idx := range da.data {
		// Check |a-b| ≤ atol + rtol*|b|; NaN never compares close.
		if !(math.Abs(da.data[idx]-db.data[idx]) <= atol+rtol*math.Abs(db.data[idx])) {
			return false, nil // early-exit on first violation
		}
	}

	return true, nil
}

// MeanAbs returns mean |m[i,j]| (0 for an empty matrix).
func MeanAbs(m *Dense) float64 {
	if len(m.data) == 0 {
		return NormZero
	}
	s := NormZero
	for _, v := range m.data {
		s += math.Abs(v)
	}

	return s / float64(len(m.data))
}

// Sign returns a matrix of sign(m[i,j]) ∈ {−1, 0, +1}; the subgradient of |x|.
func Sign(m *Dense) *Dense {
	res, _ := NewDenseZeroOK(m.r, m.c)
	for idx, v := range m.data {
		switch {
		case v > 0:
			res.data[idx] = 1
		case v < 0:
			res.data[idx] = -1
		}
	}

	return res
}

// AddScaledInPlace performs dst += alpha*src (axpy on whole matrices).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
func AddScaledInPlace(dst *Dense, alpha float64, src *Dense) error {
	if err := ValidateBinarySameShape(dst, src); err != nil {
		return matrixErrorf("AddScaledInPlace", err)
	}
	for idx, v := range src.data {
		dst.data[idx] += alpha * v
	}

	return nil
}
