// SPDX-License-Identifier: MIT

// Package linop provides matrix-free linear operators over matrix.Dense batches.
//
// A representation's action on a tensor space of dimension dᵖ is never formed
// as a dᵖ×dᵖ matrix unless a caller asks for it: products of representations
// become Kronecker operators, sums become block-diagonal operators, and the
// constraint system becomes a vertical concatenation. Every operator supports
//
//	Apply(X)   Op·X   for X of shape cols×k
//	ApplyT(Y)  Opᵀ·Y  for Y of shape rows×k
//
// which is all the iterative null-space solver needs (its gradient is Cᵀ·C·W).
// ToDense materializes any operator by applying it to the identity.
//
// Shapes:
//
//	Operators may have zero rows (an empty constraint stack); they never have
//	zero columns. Batches may have zero columns.
package linop
