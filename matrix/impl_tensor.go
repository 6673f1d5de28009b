// SPDX-License-Identifier: MIT

// Package matrix - tensor-layout helpers.
//
// Purpose:
//   - Kronecker products for materializing tensor-product actions.
//   - Permutation utilities for moving bases between canonical and declared layouts.
//   - Column slicing for truncating singular-vector blocks.

package matrix

import "fmt"

const (
	opKron        = "Kron"
	opPermuteRows = "PermuteRows"
	opColumns     = "Columns"
)

// Kron returns the Kronecker product a ⊗ b:
//
//	(a⊗b)[i*rb+k, j*cb+l] = a[i,j]·b[k,l].
//
// Complexity: Time O(ra·ca·rb·cb), Space the same.
func Kron(a, b Matrix) (*Dense, error) {
	da, err := AsDense(a)
	if err != nil {
		return nil, matrixErrorf(opKron, err)
	}
	db, err := AsDense(b)
	if err != nil {
		return nil, matrixErrorf(opKron, err)
	}
	ra, ca, rb, cb := da.r, da.c, db.r, db.c
	res, err := NewDenseZeroOK(ra*rb, ca*cb)
	if err != nil {
		return nil, matrixErrorf(opKron, err)
	}
	cols := ca * cb
	var i, j, k, l int
	var av float64
	for i = 0; i < ra; i++ {
		for j = 0; j < ca; j++ {
			av = da.data[i*ca+j]
			if av == 0 {
				continue
			}
			for k = 0; k < rb; k++ {
				for l = 0; l < cb; l++ {
					res.data[(i*rb+k)*cols+j*cb+l] = av * db.data[k*cb+l]
				}
			}
		}
	}

	return res, nil
}

// InversePermutation returns q with q[p[i]] = i (argsort of a permutation).
//
// Errors: ErrBadPermutation.
func InversePermutation(p []int) ([]int, error) {
	if err := ValidatePermutation(p, len(p)); err != nil {
		return nil, err
	}
	q := make([]int, len(p))
	for i, v := range p {
		q[v] = i
	}

	return q, nil
}

// IdentityPermutation returns [0, 1, ..., n-1].
func IdentityPermutation(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}

	return p
}

// ComposePermutations returns r with r[i] = outer[inner[i]].
// Reading a vector v through inner and then outer: v[outer][inner] == v[r].
//
// Errors: ErrBadPermutation when lengths differ or either input is invalid.
func ComposePermutations(outer, inner []int) ([]int, error) {
	if err := ValidatePermutation(outer, len(outer)); err != nil {
		return nil, err
	}
	if err := ValidatePermutation(inner, len(outer)); err != nil {
		return nil, err
	}
	r := make([]int, len(inner))
	for i, v := range inner {
		r[i] = outer[v]
	}

	return r, nil
}

// PermuteRows returns m' with m'[i,:] = m[perm[i],:].
//
// Errors: ErrNilMatrix, ErrBadPermutation.
// Complexity: O(r*c).
func PermuteRows(m Matrix, perm []int) (*Dense, error) {
	d, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opPermuteRows, err)
	}
	if err = ValidatePermutation(perm, d.r); err != nil {
		return nil, matrixErrorf(opPermuteRows, err)
	}

	return d.Induced(perm, IdentityPermutation(d.c))
}

// Columns returns the copy m[:, from:to].
//
// Errors: ErrNilMatrix, ErrBadShape (range outside [0, Cols]).
func Columns(m Matrix, from, to int) (*Dense, error) {
	d, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opColumns, err)
	}
	if from < 0 || to < from || to > d.c {
		return nil, matrixErrorf(opColumns, fmt.Errorf("[%d:%d] of %d: %w", from, to, d.c, ErrBadShape))
	}
	idx := make([]int, to-from)
	for j := range idx {
		idx[j] = from + j
	}

	return d.Induced(IdentityPermutation(d.r), idx)
}
