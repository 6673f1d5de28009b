// SPDX-License-Identifier: MIT

// Package rep is the representation algebra: tensor representations of a
// symmetry group built from a base vector representation V, its dual V*, and
// the trivial Scalar representation with direct sums and tensor products.
//
// Variants:
//
//	Scalar          V⁰, size 1, multiplicative identity
//	Base / Dual     V and V* of a group (Dual collapses to Base for orthogonal groups)
//	Sum             direct sum; terms are never Sums themselves
//	Product         tensor product of atoms sharing one group
//	DirectProduct   tensor product of atoms of different groups
//	Deferred*       sums and products involving unbound atoms (no group yet)
//
// Representations are immutable. Their Key is the structural identity used
// for equality and as the basis-cache key.
//
// Layout:
//
//	Products distribute over sums: (V+V*)⊗V becomes V⊗V + V*⊗V. The vector
//	layout of the product (row-major Kronecker) is preserved by a layout
//	permutation stored on the resulting Sum, so ρ, bases and weight matrices
//	always speak in the coordinates the caller built.
//
// Canonical form:
//
//	Canonicalize sorts sum terms and product factors under the strict total
//	order (Compare) and returns perm with v_canon = v[perm]. It is idempotent.
//
// Actions:
//
//	Rho and Drho evaluate the group action lazily as linop.Operators given an
//	Action (group name → matrix). Atoms whose group is absent from the Action
//	act as identity under Rho and as zero under Drho, which is exactly what a
//	direct product of representations of different groups needs.
package rep
