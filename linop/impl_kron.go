// SPDX-License-Identifier: MIT

// Package linop - Kronecker operators.
//
// Kron(F₁,…,F_m)·X is evaluated one tensor axis at a time: for axis j the
// batch is viewed as a (pre, c_j, post) array, the c_j axis is gathered into
// a c_j×(pre·post) matrix, F_j is applied, and the result is scattered back.
// Identity factors are skipped. Cost is Σ_j cost(F_j applied to N/c_j columns)
// instead of the N² of a materialized Kronecker product.

package linop

import (
	"fmt"

	"github.com/katalvlaran/equivar/matrix"
)

var (
	_ Operator = (*kronOp)(nil)
	_ Operator = (*kronSumOp)(nil)
)

// axisApply applies f along axis j of x, where x's rows are indexed by the
// row-major multi-index over dims. f maps dims[j] rows to outDim rows.
// Returns the new batch; dims is not modified.
func axisApply(x *matrix.Dense, dims []int, j, outDim int, f func(*matrix.Dense) (*matrix.Dense, error)) (*matrix.Dense, error) {
	k := x.Cols()
	pre := 1
	for i := 0; i < j; i++ {
		pre *= dims[i]
	}
	tail := 1
	for i := j + 1; i < len(dims); i++ {
		tail *= dims[i]
	}
	post := tail * k
	n := dims[j]

	// Gather: g[b, p*post+q] = x[(p*n+b)*post+q] over the flat row-major data.
	g, err := matrix.NewDenseZeroOK(n, pre*post)
	if err != nil {
		return nil, err
	}
	src, gd := x.Data(), g.Data()
	width := pre * post
	var p, b, q int
	for p = 0; p < pre; p++ {
		for b = 0; b < n; b++ {
			base := (p*n + b) * post
			for q = 0; q < post; q++ {
				gd[b*width+p*post+q] = src[base+q]
			}
		}
	}

	h, err := f(g)
	if err != nil {
		return nil, err
	}
	if h.Rows() != outDim || h.Cols() != width {
		return nil, fmt.Errorf("axis %d produced %dx%d, want %dx%d: %w", j, h.Rows(), h.Cols(), outDim, width, matrix.ErrDimensionMismatch)
	}

	// Scatter back with the axis length replaced by outDim.
	out, err := matrix.NewDenseZeroOK(pre*outDim*tail, k)
	if err != nil {
		return nil, err
	}
	od, hd := out.Data(), h.Data()
	var a int
	for p = 0; p < pre; p++ {
		for a = 0; a < outDim; a++ {
			base := (p*outDim + a) * post
			for q = 0; q < post; q++ {
				od[base+q] = hd[a*width+p*post+q]
			}
		}
	}

	return out, nil
}

// ---------- Kron ----------

type kronOp struct {
	factors    []Operator
	rows, cols int
}

// Kron returns F₁ ⊗ F₂ ⊗ … ⊗ F_m. Row (and column) multi-indices are
// row-major, matching matrix.Kron. A single factor is returned unchanged.
//
// Errors: ErrInvalidDimensions when no factors are given.
func Kron(factors ...Operator) (Operator, error) {
	if len(factors) == 0 {
		return nil, linopErrorf(opKron, matrix.ErrInvalidDimensions)
	}
	if len(factors) == 1 {
		return factors[0], nil
	}
	rows, cols := 1, 1
	for _, f := range factors {
		r, c := f.Shape()
		rows *= r
		cols *= c
	}
	fs := make([]Operator, len(factors))
	copy(fs, factors)

	return &kronOp{factors: fs, rows: rows, cols: cols}, nil
}

func (k *kronOp) Shape() (int, int) { return k.rows, k.cols }

func (k *kronOp) Apply(x *matrix.Dense) (*matrix.Dense, error) {
	if err := checkRows(opKron, x, k.cols); err != nil {
		return nil, err
	}
	dims := make([]int, len(k.factors))
	for i, f := range k.factors {
		_, dims[i] = f.Shape()
	}

	return k.sweep(x, dims, false)
}

func (k *kronOp) ApplyT(y *matrix.Dense) (*matrix.Dense, error) {
	if err := checkRows(opKron, y, k.rows); err != nil {
		return nil, err
	}
	dims := make([]int, len(k.factors))
	for i, f := range k.factors {
		dims[i], _ = f.Shape()
	}

	return k.sweep(y, dims, true)
}

// sweep applies every non-identity factor along its axis, updating dims as
// axes change length.
func (k *kronOp) sweep(x *matrix.Dense, dims []int, transpose bool) (*matrix.Dense, error) {
	cur := x
	for j, f := range k.factors {
		if _, ok := f.(identityOp); ok {
			continue
		}
		r, c := f.Shape()
		out := r
		apply := f.Apply
		if transpose {
			out = c
			apply = f.ApplyT
		}
		next, err := axisApply(cur, dims, j, out, apply)
		if err != nil {
			return nil, linopErrorf(opKron, err)
		}
		dims[j] = out
		cur = next
	}
	if cur == x {
		return x.Copy(), nil
	}

	return cur, nil
}

// ---------- KronSum ----------

type kronSumOp struct {
	factors []Operator
	n       int
}

// KronSum returns the Kronecker sum A₁ ⊕ … ⊕ A_m of square operators:
//
//	Σ_j I ⊗ … ⊗ A_j ⊗ … ⊗ I.
//
// This is the infinitesimal action of a tensor product of representations.
//
// Errors: ErrInvalidDimensions (no factors), ErrDimensionMismatch (non-square factor).
func KronSum(factors ...Operator) (Operator, error) {
	if len(factors) == 0 {
		return nil, linopErrorf(opKronSum, matrix.ErrInvalidDimensions)
	}
	n := 1
	for i, f := range factors {
		r, c := f.Shape()
		if r != c {
			return nil, linopErrorf(opKronSum, fmt.Errorf("factor %d is %dx%d: %w", i, r, c, matrix.ErrDimensionMismatch))
		}
		n *= r
	}
	if len(factors) == 1 {
		return factors[0], nil
	}
	fs := make([]Operator, len(factors))
	copy(fs, factors)

	return &kronSumOp{factors: fs, n: n}, nil
}

func (k *kronSumOp) Shape() (int, int) { return k.n, k.n }

func (k *kronSumOp) Apply(x *matrix.Dense) (*matrix.Dense, error) {
	return k.accumulate(x, false)
}

func (k *kronSumOp) ApplyT(y *matrix.Dense) (*matrix.Dense, error) {
	return k.accumulate(y, true)
}

func (k *kronSumOp) accumulate(x *matrix.Dense, transpose bool) (*matrix.Dense, error) {
	if err := checkRows(opKronSum, x, k.n); err != nil {
		return nil, err
	}
	dims := make([]int, len(k.factors))
	for i, f := range k.factors {
		dims[i], _ = f.Shape()
	}
	sum, err := matrix.NewDenseZeroOK(k.n, x.Cols())
	if err != nil {
		return nil, linopErrorf(opKronSum, err)
	}
	for j, f := range k.factors {
		if _, ok := f.(zeroOp); ok {
			continue
		}
		apply := f.Apply
		if transpose {
			apply = f.ApplyT
		}
		term, err := axisApply(x, dims, j, dims[j], apply)
		if err != nil {
			return nil, linopErrorf(opKronSum, err)
		}
		if err = matrix.AddScaledInPlace(sum, 1, term); err != nil {
			return nil, linopErrorf(opKronSum, err)
		}
	}

	return sum, nil
}
