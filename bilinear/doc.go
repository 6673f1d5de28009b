// SPDX-License-Identifier: MIT

// Package bilinear builds input-dependent equivariant weight matrices.
//
// For representations in and out, New prepares a map (params, x) ↦ W(x)
// where W(x) is an out×in matrix in the Hom representation out ⊗ in*. W is
// assembled in the canonical order of out ⊗ in*: each canonical term R of
// multiplicity m that also occurs in x (n copies, Scalar excluded) is filled
// with m linear combinations of up to min(n, size(R)) sampled copies of R
// taken from x,
//
//	W_R[w, s] = Σ_k params[w, k] · x[bids[k][s]],
//
// and terms absent from x stay zero. The result is permuted back to the
// caller's coordinates. Because every copy of R transforms like R, W(g·x) =
// ρ_out(g)·W(x)·ρ_in(g)⁻¹.
//
// ActiveDims is the number of parameters the map consumes.
package bilinear
