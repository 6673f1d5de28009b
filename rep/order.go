// SPDX-License-Identifier: MIT

package rep

import (
	"cmp"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/katalvlaran/equivar/group"
)

// Compare is the strict total order on representations. Keys are compared
// through the lexicographic tuple
//
//	(not Scalar, group, size, kind, xxhash(key), key)
//
// so Scalar sorts first, representations without a single group sort before
// grouped ones, unbound sizes (−1) sort before bound ones, and a Base sorts
// before the Dual of the same group. Compare never fails and returns 0 only
// for structurally equal representations. nil sorts before everything.
func Compare(a, b *Rep) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case a.key == b.key:
		return 0
	}
	if c := cmp.Compare(rankScalar(a), rankScalar(b)); c != 0 {
		return c
	}
	if c := group.Compare(a.g, b.g); c != 0 {
		return c
	}
	if c := cmp.Compare(a.size, b.size); c != 0 {
		return c
	}
	if c := cmp.Compare(a.kind, b.kind); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Hash(), b.Hash()); c != 0 {
		return c
	}

	return strings.Compare(a.key, b.key)
}

// Less reports Compare(r, o) < 0.
func (r *Rep) Less(o *Rep) bool { return Compare(r, o) < 0 }

// Hash is a stable 64-bit digest of the structural key.
func (r *Rep) Hash() uint64 { return xxhash.Sum64String(r.key) }

func rankScalar(r *Rep) int {
	if r.kind == KindScalar {
		return 0
	}

	return 1
}
