// SPDX-License-Identifier: MIT

// Package constraint builds the equivariance constraint operator of a
// representation.
//
// A linear map W in the space of a representation r is equivariant exactly
// when it is fixed by every discrete generator and annihilated by every Lie
// algebra generator:
//
//	(ρ(h) − I)·W = 0      for each discrete generator h,
//	dρ(A)·W      = 0      for each Lie algebra generator A.
//
// Build stacks these blocks vertically over every group that appears in r, so
// the equivariant subspace is the null space of the result. Blocks stay lazy
// (linop operators) until a solver materializes them.
//
// Build is normally called on the canonical form of a representation; the
// basis package takes care of that and of permuting the answer back.
package constraint
