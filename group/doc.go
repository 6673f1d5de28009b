// SPDX-License-Identifier: MIT

// Package group defines the symmetry-group contract consumed by the
// representation algebra, together with a handful of reference groups.
//
// A Group is described only by its generators acting on ℝᵈ:
//
//   - DiscreteGenerators: finite set of d×d matrices h; invariance under a
//     representation ρ means ρ(h)·v = v.
//   - LieAlgebra: finite set of d×d matrices A spanning the Lie algebra of the
//     identity component; invariance means dρ(A)·v = 0.
//
// The reference groups cover the common cases used in tests and examples:
//
//	Trivial(d)  no generators; every tensor is invariant
//	SO(n)       rotations; n(n-1)/2 antisymmetric Lie algebra generators
//	O(n)        SO(n) plus one reflection
//	S(n)        permutations; n-1 transpositions
//	Z(n)        cyclic shifts; one generator
//
// Arbitrary groups are built with NewGeneric.
//
// Ordering:
//
//	Compare is a total order on groups (by Name, then D). The representation
//	algebra uses it to sort the factors of a canonical form, so two groups
//	with equal names are treated as the same group.
package group
