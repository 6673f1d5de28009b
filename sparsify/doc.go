// SPDX-License-Identifier: MIT

// Package sparsify rotates a basis towards sparse, sign-valued columns.
//
// Given Q (n×r) it searches for an r×r matrix W minimizing
//
//	mean|Q·Wᵀ| + 0.1·mean|WᵀW − I| + 0.01·(log|det W|)²
//
// with Adam, starting from a random orthogonal W. The first term rewards
// sparsity, the second keeps W near orthogonal and the third keeps it away
// from singular. Entries of Q·Wᵀ below the threshold are then zeroed and the
// rest replaced by their sign.
//
// The result is checked for separation: with weights 1..r, every coordinate
// of the sparse basis gets a signature Σ_j j·Q_ij, and r (or r+1 counting the
// zero signature) distinct magnitudes mean the columns have disjoint support.
// A failed check is logged and reported, never returned as an error.
package sparsify
