// SPDX-License-Identifier: MIT

// Package linop - leaf operators: dense, identity, zero, permutation, difference.

package linop

import (
	"fmt"

	"github.com/katalvlaran/equivar/matrix"
)

// Compile-time conformance.
var (
	_ Operator = (*denseOp)(nil)
	_ Operator = identityOp(0)
	_ Operator = zeroOp{}
	_ Operator = (*permOp)(nil)
	_ Operator = (*diffOp)(nil)
)

// ---------- Dense ----------

type denseOp struct {
	m  *matrix.Dense
	mt *matrix.Dense // transpose, built at construction
}

// Dense wraps an explicit matrix. The matrix is copied; later writes to m do
// not affect the operator.
//
// Errors: ErrNilMatrix.
func Dense(m *matrix.Dense) (Operator, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, linopErrorf(opDense, err)
	}
	mt, err := matrix.Transpose(m)
	if err != nil {
		return nil, linopErrorf(opDense, err)
	}

	return &denseOp{m: m.Copy(), mt: mt}, nil
}

func (d *denseOp) Shape() (int, int) { return d.m.Rows(), d.m.Cols() }

func (d *denseOp) Apply(x *matrix.Dense) (*matrix.Dense, error) {
	if err := checkRows(opDense, x, d.m.Cols()); err != nil {
		return nil, err
	}

	return matrix.Mul(d.m, x)
}

func (d *denseOp) ApplyT(y *matrix.Dense) (*matrix.Dense, error) {
	if err := checkRows(opDense, y, d.m.Rows()); err != nil {
		return nil, err
	}

	return matrix.Mul(d.mt, y)
}

// ---------- Identity ----------

type identityOp int

// Identity returns I_n. Kron skips identity factors, which keeps ρ(h)
// applications on one tensor axis at a time cheap.
func Identity(n int) Operator { return identityOp(n) }

func (n identityOp) Shape() (int, int) { return int(n), int(n) }

func (n identityOp) Apply(x *matrix.Dense) (*matrix.Dense, error) {
	if err := checkRows(opIdentity, x, int(n)); err != nil {
		return nil, err
	}

	return x.Copy(), nil
}

func (n identityOp) ApplyT(y *matrix.Dense) (*matrix.Dense, error) { return n.Apply(y) }

// ---------- Zero ----------

type zeroOp struct{ rows, cols int }

// Zero returns the rows×cols zero operator. rows may be 0: an empty
// constraint stack over an n-dimensional space is Zero(0, n).
func Zero(rows, cols int) Operator { return zeroOp{rows: rows, cols: cols} }

func (z zeroOp) Shape() (int, int) { return z.rows, z.cols }

func (z zeroOp) Apply(x *matrix.Dense) (*matrix.Dense, error) {
	if err := checkRows(opZero, x, z.cols); err != nil {
		return nil, err
	}

	return matrix.NewDenseZeroOK(z.rows, x.Cols())
}

func (z zeroOp) ApplyT(y *matrix.Dense) (*matrix.Dense, error) {
	if err := checkRows(opZero, y, z.rows); err != nil {
		return nil, err
	}

	return matrix.NewDenseZeroOK(z.cols, y.Cols())
}

// ---------- Permutation ----------

type permOp struct {
	perm []int // (P·x)[i] = x[perm[i]]
	inv  []int
}

// Permutation returns the operator P with (P·x)[i] = x[perm[i]].
// Pᵀ = P⁻¹ scatters rows back: (Pᵀ·y)[perm[i]] = y[i].
//
// Errors: ErrBadPermutation.
func Permutation(perm []int) (Operator, error) {
	inv, err := matrix.InversePermutation(perm)
	if err != nil {
		return nil, linopErrorf(opPerm, err)
	}
	p := make([]int, len(perm))
	copy(p, perm)

	return &permOp{perm: p, inv: inv}, nil
}

func (p *permOp) Shape() (int, int) { return len(p.perm), len(p.perm) }

func (p *permOp) Apply(x *matrix.Dense) (*matrix.Dense, error) {
	if err := checkRows(opPerm, x, len(p.perm)); err != nil {
		return nil, err
	}

	return matrix.PermuteRows(x, p.perm)
}

func (p *permOp) ApplyT(y *matrix.Dense) (*matrix.Dense, error) {
	if err := checkRows(opPerm, y, len(p.perm)); err != nil {
		return nil, err
	}

	return matrix.PermuteRows(y, p.inv)
}

// ---------- Difference ----------

type diffOp struct{ a, b Operator }

// Difference returns a − b for operators of equal shape. The discrete
// constraint ρ(h) − I is Difference(ρ(h), Identity(n)).
//
// Errors: ErrDimensionMismatch.
func Difference(a, b Operator) (Operator, error) {
	ar, ac := a.Shape()
	br, bc := b.Shape()
	if ar != br || ac != bc {
		return nil, linopErrorf(opDiff, fmt.Errorf("%dx%d vs %dx%d: %w", ar, ac, br, bc, matrix.ErrDimensionMismatch))
	}

	return &diffOp{a: a, b: b}, nil
}

func (d *diffOp) Shape() (int, int) { return d.a.Shape() }

func (d *diffOp) Apply(x *matrix.Dense) (*matrix.Dense, error) {
	return d.combine(x, Operator.Apply)
}

func (d *diffOp) ApplyT(y *matrix.Dense) (*matrix.Dense, error) {
	return d.combine(y, Operator.ApplyT)
}

func (d *diffOp) combine(x *matrix.Dense, apply func(Operator, *matrix.Dense) (*matrix.Dense, error)) (*matrix.Dense, error) {
	ya, err := apply(d.a, x)
	if err != nil {
		return nil, linopErrorf(opDiff, err)
	}
	yb, err := apply(d.b, x)
	if err != nil {
		return nil, linopErrorf(opDiff, err)
	}
	diff, err := matrix.Sub(ya, yb)
	if err != nil {
		return nil, linopErrorf(opDiff, err)
	}

	return diff, nil
}
