// SPDX-License-Identifier: MIT

package rep

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/equivar/matrix"
)

// Canonicalize returns the canonical form of r and the permutation perm that
// reorders r's coordinates into it: v_canon[i] = v[perm[i]].
//
// Sum terms are canonicalized and stably sorted by Compare; the result has
// block layout. Product factors are stably sorted and perm is the induced
// Kronecker axis permutation. Atoms and Scalar are their own canonical form.
// Canonicalize is idempotent: the canonical form of a canonical form is
// itself with the identity permutation.
//
// Errors: ErrNilRepresentation, ErrUnboundRepresentation.
func (r *Rep) Canonicalize() (*Rep, []int, error) {
	if r == nil {
		return nil, nil, repErrorf(opCanonicalize, ErrNilRepresentation)
	}
	if !r.Concrete() {
		return nil, nil, repErrorf(opCanonicalize, fmt.Errorf("%s: %w", r, ErrUnboundRepresentation))
	}
	switch r.kind {
	case KindSum:
		c, p := canonicalSum(r)
		return c, p, nil
	case KindProduct, KindDirectProduct:
		c, p := canonicalProduct(r)
		return c, p, nil
	default:
		return r, matrix.IdentityPermutation(r.size), nil
	}
}

// sortOrder returns the indices of reps stably sorted by Compare.
func sortOrder(reps []*Rep) []int {
	order := matrix.IdentityPermutation(len(reps))
	slices.SortStableFunc(order, func(i, j int) int { return Compare(reps[i], reps[j]) })

	return order
}

func canonicalProduct(r *Rep) (*Rep, []int) {
	order := sortOrder(r.terms)
	if isIdentity(order) {
		return r, matrix.IdentityPermutation(r.size)
	}
	m := len(r.terms)
	factors := make([]*Rep, m)
	dims := make([]int, m)
	for k, f := range order {
		factors[k] = r.terms[f]
		dims[k] = r.terms[f].size
	}
	// Row-major strides of the original factor order.
	strides := make([]int, m)
	s := 1
	for f := m - 1; f >= 0; f-- {
		strides[f] = s
		s *= r.terms[f].size
	}

	perm := make([]int, r.size)
	idx := make([]int, m) // canonical multi-index, row-major counter
	for c := range perm {
		orig := 0
		for k, j := range idx {
			orig += j * strides[order[k]]
		}
		perm[c] = orig
		for k := m - 1; k >= 0; k-- {
			idx[k]++
			if idx[k] < dims[k] {
				break
			}
			idx[k] = 0
		}
	}

	return newProduct(factors), perm
}

func canonicalSum(r *Rep) (*Rep, []int) {
	n := len(r.terms)
	canon := make([]*Rep, n)
	perms := make([][]int, n)
	for i, t := range r.terms {
		canon[i], perms[i], _ = t.Canonicalize()
	}
	order := sortOrder(canon)
	off := offsets(r.terms)

	// Block coordinate x of r holds layout coordinate inv[x].
	inv := matrix.IdentityPermutation(r.size)
	if r.layout != nil {
		inv, _ = matrix.InversePermutation(r.layout)
	}

	terms := make([]*Rep, 0, n)
	blocks := make([]int, 0, r.size)
	for _, t := range order {
		terms = append(terms, canon[t])
		for _, o := range perms[t] {
			blocks = append(blocks, off[t]+o)
		}
	}
	perm, _ := matrix.ComposePermutations(inv, blocks)

	return newSum(terms, nil), perm
}

// Multiplicity is one run of equal terms of a canonical representation.
type Multiplicity struct {
	Rep   *Rep
	Count int
}

// Multiplicities returns the runs of equal terms of r's canonical form in
// canonical order. A non-Sum representation is a single run of count 1.
//
// Errors: as Canonicalize.
func (r *Rep) Multiplicities() ([]Multiplicity, error) {
	canon, _, err := r.Canonicalize()
	if err != nil {
		return nil, err
	}

	return runsOf(canon), nil
}

func runsOf(canon *Rep) []Multiplicity {
	if canon.kind != KindSum {
		return []Multiplicity{{Rep: canon, Count: 1}}
	}
	var out []Multiplicity
	for _, t := range canon.terms {
		if k := len(out) - 1; k >= 0 && out[k].Rep.key == t.key {
			out[k].Count++
			continue
		}
		out = append(out, Multiplicity{Rep: t, Count: 1})
	}

	return out
}

// Indices groups the coordinates of r by term: Blocks[c][s] is the
// coordinate (in r's layout) of component s of the c-th copy of Rep.
type Indices struct {
	Rep    *Rep
	Blocks [][]int
}

// AsIndices returns, for every run of Multiplicities, the coordinates of each
// copy in r's own layout. Copies and components follow canonical order.
//
// Errors: as Canonicalize.
func (r *Rep) AsIndices() ([]Indices, error) {
	canon, perm, err := r.Canonicalize()
	if err != nil {
		return nil, repErrorf(opIndices, err)
	}
	runs := runsOf(canon)
	out := make([]Indices, len(runs))
	i := 0
	for k, run := range runs {
		size := run.Rep.size
		blocks := make([][]int, run.Count)
		for c := range blocks {
			blocks[c] = perm[i : i+size : i+size]
			i += size
		}
		out[k] = Indices{Rep: run.Rep, Blocks: blocks}
	}

	return out, nil
}
