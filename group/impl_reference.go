// SPDX-License-Identifier: MIT

// Package group - reference groups (Trivial, SO, O, S, Z).

package group

import (
	"fmt"

	"github.com/katalvlaran/equivar/matrix"
)

const (
	opTrivial = "Trivial"
	opSO      = "SO"
	opO       = "O"
	opS       = "S"
	opZ       = "Z"
)

// Trivial returns the trivial group acting on ℝᵈ: no generators.
func Trivial(d int) (Group, error) {
	if d < 1 {
		return nil, groupErrorf(opTrivial, ErrInvalidDimension)
	}

	return &base{
		name:       fmt.Sprintf("Trivial(%d)", d),
		d:          d,
		orthogonal: true,
		regular:    true,
	}, nil
}

// SO returns the special orthogonal group SO(n), n ≥ 2. Its Lie algebra is
// spanned by E_ij − E_ji for i < j.
func SO(n int) (Group, error) {
	if n < 2 {
		return nil, groupErrorf(opSO, ErrInvalidDimension)
	}

	return &base{
		name:       fmt.Sprintf("SO(%d)", n),
		d:          n,
		lie:        rotationGenerators(n),
		orthogonal: true,
	}, nil
}

// O returns the orthogonal group O(n), n ≥ 1: SO(n)'s Lie algebra plus the
// reflection diag(−1, 1, …, 1).
func O(n int) (Group, error) {
	if n < 1 {
		return nil, groupErrorf(opO, ErrInvalidDimension)
	}
	refl, _ := matrix.NewIdentity(n)
	_ = refl.Set(0, 0, -1)

	return &base{
		name:       fmt.Sprintf("O(%d)", n),
		d:          n,
		discrete:   []*matrix.Dense{refl},
		lie:        rotationGenerators(n),
		orthogonal: true,
	}, nil
}

// S returns the symmetric group S(n), n ≥ 2, generated by the transpositions
// (0 i) for i = 1..n-1.
func S(n int) (Group, error) {
	if n < 2 {
		return nil, groupErrorf(opS, ErrInvalidDimension)
	}
	gens := make([]*matrix.Dense, 0, n-1)
	for i := 1; i < n; i++ {
		perm := matrix.IdentityPermutation(n)
		perm[0], perm[i] = i, 0
		gens = append(gens, permutationMatrix(perm))
	}

	return &base{
		name:       fmt.Sprintf("S(%d)", n),
		d:          n,
		discrete:   gens,
		orthogonal: true,
		regular:    true,
	}, nil
}

// Z returns the cyclic group Z(n), n ≥ 2, generated by the shift i ↦ i+1 mod n.
func Z(n int) (Group, error) {
	if n < 2 {
		return nil, groupErrorf(opZ, ErrInvalidDimension)
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = (i + 1) % n
	}

	return &base{
		name:       fmt.Sprintf("Z(%d)", n),
		d:          n,
		discrete:   []*matrix.Dense{permutationMatrix(perm)},
		orthogonal: true,
		regular:    true,
	}, nil
}

// rotationGenerators returns {E_ij − E_ji : i < j} in row-major (i, j) order.
func rotationGenerators(n int) []*matrix.Dense {
	gens := make([]*matrix.Dense, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, _ := matrix.NewDense(n, n)
			_ = a.Set(i, j, 1)
			_ = a.Set(j, i, -1)
			gens = append(gens, a)
		}
	}

	return gens
}

// permutationMatrix returns P with (P·x)[i] = x[perm[i]].
func permutationMatrix(perm []int) *matrix.Dense {
	n := len(perm)
	p, _ := matrix.NewDense(n, n)
	for i, j := range perm {
		_ = p.Set(i, j, 1)
	}

	return p
}
