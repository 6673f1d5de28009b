// SPDX-License-Identifier: MIT

// Package solver finds an orthonormal basis of the null space of a constraint
// operator C, i.e. every W with C·W = 0.
//
// Two regimes are available:
//
//   - Dense: C is materialized and factorized with a full SVD. Columns of V
//     whose singular values are at most the tolerance span the null space.
//     Used when rows·cols ≤ DenseThreshold.
//   - Iterative: a random n×r candidate W is driven towards the null space by
//     momentum gradient descent on ½‖C·W‖²_F, using only C·x and Cᵀ·y. The
//     rank r doubles while the whole candidate collapses into the null space,
//     and a thin SVD orthogonalizes the result.
//
// Divergence restarts the iterative solve with a smaller learning rate; too
// many steps or too small a rate yields ErrConvergence. Growing past the
// memory ceiling stops rank growth and returns the best basis found so far
// (or ErrResourceExceeded in strict mode). A weak singular value gap is only
// logged as a numerical quality warning.
//
// Configuration comes from functional options or from a YAML Config
// (LoadConfig / ParseConfig). Solves are deterministic for a fixed seed.
package solver
