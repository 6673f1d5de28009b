// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Avoid any logic duplication; each facade delegates to the canonical implementation.
//
// AI-Hints:
//   - Prefer passing *Dense to skip the AsDense copy in kernels.
//   - Use NewIdentity/ZerosLike to build matrices with explicit shape and neutral elements.

package matrix

import (
	"math"
	"math/rand/v2"
)

// ---------- Constructors & Utilities ----------

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ { // fixed i order guarantees reproducibility
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// ZerosLike returns a new zero matrix with the same shape as m (zero-area allowed).
func ZerosLike(m Matrix) (*Dense, error) {
	return NewDenseZeroOK(m.Rows(), m.Cols())
}

// RandNormal fills a rows×cols matrix with independent N(0, scale²) samples
// drawn from rng. The caller owns the source; equal seeds give equal matrices.
// Complexity: O(r*c).
func RandNormal(rows, cols int, scale float64, rng *rand.Rand) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	for idx := range m.data {
		m.data[idx] = scale * rng.NormFloat64()
	}

	return m, nil
}

// ---------- Norms & comparisons ----------

// SumSquares returns Σ m[i,j]² (the squared Frobenius norm).
// Complexity: O(r*c).
func SumSquares(m *Dense) float64 {
	s := NormZero
	for _, v := range m.data {
		s += v * v
	}

	return s
}

// FrobeniusNorm returns √(Σ m[i,j]²).
func FrobeniusNorm(m *Dense) float64 { return math.Sqrt(SumSquares(m)) }

// MaxAbs returns max |m[i,j]| (0 for an empty matrix).
func MaxAbs(m *Dense) float64 {
	best := NormZero
	for _, v := range m.data {
		if a := math.Abs(v); a > best {
			best = a
		}
	}

	return best
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// Time: O(r*c). Space: O(1). Deterministic.
//
// AI-Hints:
//   - AllClose with small atol/rtol is ideal for invariance tests in unit tests.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}

// IsOrthogonal reports whether mᵀm = I within eps (WithEpsilon; DefaultEpsilon otherwise).
// Non-square inputs are never orthogonal.
func IsOrthogonal(m Matrix, opts ...Option) (bool, error) {
	if err := ValidateNotNil(m); err != nil {
		return false, err
	}
	if m.Rows() != m.Cols() {
		return false, nil
	}
	o := gatherOptions(opts...)
	mt, err := Transpose(m)
	if err != nil {
		return false, err
	}
	g, err := Mul(mt, m)
	if err != nil {
		return false, err
	}
	I, err := NewIdentity(g.r)
	if err != nil {
		return false, err
	}

	return ewAllClose(g, I, 0, o.eps)
}

// IsAntisymmetric reports whether m = −mᵀ within eps. The Lie algebra of an
// orthogonal group consists of such matrices.
func IsAntisymmetric(m Matrix, opts ...Option) (bool, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return false, err
	}
	o := gatherOptions(opts...)
	d, err := AsDense(m)
	if err != nil {
		return false, err
	}
	n := d.r
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if math.Abs(d.data[i*n+j]+d.data[j*n+i]) > o.eps {
				return false, nil
			}
		}
	}

	return true, nil
}
