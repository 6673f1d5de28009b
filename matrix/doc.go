// SPDX-License-Identifier: MIT

// Package matrix is the dense numeric substrate of equivar.
//
// It provides a row-major Dense matrix behind a small Matrix interface, a set
// of sentinel errors, centralized validators, and the linear-algebra kernels
// the solvers rely on:
//
//   - element-wise Add/Sub/Scale, Mul and Transpose with *Dense fast-paths;
//   - Inverse and LogAbsDet through gonum's pivoted LU (dual representations,
//     log-determinant regularizers);
//   - Householder QR (random orthogonal initializations);
//   - full and thin SVD (null-space extraction, orthogonalization);
//   - Kronecker products, row permutations and column slicing
//     (tensor-product representations and basis re-ordering).
//
// Determinism:
//
//	Every kernel walks its operands in a fixed order and never iterates maps.
//	Randomness only enters through an explicit *rand.Rand argument.
//
// Errors:
//
//	Kernels return package sentinels wrapped with an operation tag
//	("Mul: matrix: dimension mismatch"); match them with errors.Is.
package matrix
