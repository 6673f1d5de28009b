// SPDX-License-Identifier: MIT

// Package basis computes and caches equivariant bases of representations.
//
// Engine.SymmetricBasis(r) canonicalizes r, looks the canonical key up in a
// Cache, solves the canonical constraint on a miss, stores the canonical-order
// basis, and returns it with rows permuted back into r's coordinates. Every
// representation equal to r up to reordering of sums and products therefore
// shares one solve.
//
// The Cache lives as long as the process (or the caller) keeps it and never
// evicts. Engine is single-writer; SyncEngine wraps it for concurrent hosts,
// collapsing simultaneous requests for the same canonical key into one solve.
//
// Metrics are optional and registered on a caller-supplied Prometheus
// registerer.
package basis
