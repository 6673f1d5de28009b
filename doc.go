// Package equivar computes bases of equivariant linear maps.
//
// 🚀 What is equivar?
//
//	Given a matrix group G and a representation ρ built from G's base
//	representation V by duals, direct sums and tensor products, equivar
//	finds an orthonormal basis Q of the subspace {v : ρ(g)v = v for all g}.
//	A linear layer V_in → V_out is G-equivariant exactly when its weights
//	lie in that subspace for Hom(V_in, V_out) = V_out ⊗ V_in*.
//
// ✨ Building blocks
//
//   - Lazy operators: representations act without materializing Kroneckers
//   - Canonical forms: equal representations share one cached basis
//   - Two solvers: dense SVD for small constraints, iterative for large ones
//   - Sparse bases: rotate Q into sign-valued, separated columns
//
// Subpackages:
//
//	matrix/     dense row-major matrices, LU, QR, SVD and permutations
//	linop/      lazy linear operators (Kron, KronSum, BlockDiag, Compose)
//	group/      the Group contract and reference groups (S(n), Z(n), SO(n), O(n))
//	rep/        the representation algebra, canonical order and actions
//	constraint/ the stacked equivariance constraint for one representation
//	solver/     dense and iterative null-space solvers plus YAML config
//	basis/      cached, concurrent basis engine with Prometheus metrics
//	sparsify/   the basis sparsifier
//	bilinear/   input-dependent equivariant weight matrices
//
// Quick example:
//
//	so3, _ := group.SO(3)
//	v := rep.Vector(so3)
//	e, _ := basis.New()
//	q, _ := e.SymmetricBasis(v.Mul(v))
//	// q is 9×1: the identity matrix, flattened and normalized.
//
//	go get github.com/katalvlaran/equivar
package equivar
