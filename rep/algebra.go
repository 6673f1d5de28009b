// SPDX-License-Identifier: MIT

package rep

import (
	"fmt"

	"github.com/katalvlaran/equivar/group"
)

// Add returns the direct sum r ⊕ o. A nil operand is the empty (zero)
// representation, so Add(nil, o) == o. Sums are flattened; an operand that is
// itself a Sum contributes its terms and its layout.
func (r *Rep) Add(o *Rep) *Rep {
	switch {
	case r == nil:
		return o
	case o == nil:
		return r
	}
	if !r.Concrete() || !o.Concrete() {
		return newDeferred(KindDeferredSum, append(deferredOperands(r, KindDeferredSum), deferredOperands(o, KindDeferredSum)...))
	}

	terms := make([]*Rep, 0, len(r.terms)+len(o.terms)+2)
	layout := make([]int, 0, r.size+o.size)
	offset := 0
	for _, x := range [2]*Rep{r, o} {
		if x.kind == KindSum {
			terms = append(terms, x.terms...)
			for i := 0; i < x.size; i++ {
				layout = append(layout, offset+x.layoutAt(i))
			}
		} else {
			terms = append(terms, x)
			for i := 0; i < x.size; i++ {
				layout = append(layout, offset+i)
			}
		}
		offset += x.size
	}

	return newSum(terms, layout)
}

// layoutAt returns the block coordinate of layout coordinate i for a Sum.
func (r *Rep) layoutAt(i int) int {
	if r.layout == nil {
		return i
	}

	return r.layout[i]
}

func deferredOperands(r *Rep, kind Kind) []*Rep {
	if r.kind == kind {
		return r.terms
	}

	return []*Rep{r}
}

// Mul returns the tensor product r ⊗ o.
//
// Scalar is the identity; a nil operand is the zero representation and
// yields nil. Products distribute over sums (the resulting Sum keeps the
// Kronecker layout of r ⊗ o); factors of one group form a Product, factors of
// several groups a DirectProduct. Any unbound operand defers the product.
func (r *Rep) Mul(o *Rep) *Rep {
	switch {
	case r == nil || o == nil:
		return nil
	case r.kind == KindScalar:
		return o
	case o.kind == KindScalar:
		return r
	}
	if !r.Concrete() || !o.Concrete() {
		return newDeferred(KindDeferredProduct, append(deferredOperands(r, KindDeferredProduct), deferredOperands(o, KindDeferredProduct)...))
	}
	if r.kind == KindSum || o.kind == KindSum {
		return distribute(r, o)
	}

	return newProduct(append(factorsOf(r), factorsOf(o)...))
}

// factorsOf flattens products into their atoms.
func factorsOf(r *Rep) []*Rep {
	if r.kind == KindProduct || r.kind == KindDirectProduct {
		return r.terms
	}

	return []*Rep{r}
}

// distribute expands r ⊗ o with at least one Sum operand into a Sum of
// products. Terms follow lexicographic (r-term, o-term) order; the layout maps
// each Kronecker coordinate (i, j) of r ⊗ o to its block coordinate.
func distribute(r, o *Rep) *Rep {
	rt, ot := termsOf(r), termsOf(o)
	rOff, oOff := offsets(rt), offsets(ot)

	terms := make([]*Rep, 0, len(rt)*len(ot))
	blockOff := make([][]int, len(rt))
	off := 0
	for a := range rt {
		blockOff[a] = make([]int, len(ot))
		for b := range ot {
			terms = append(terms, rt[a].Mul(ot[b]))
			blockOff[a][b] = off
			off += rt[a].size * ot[b].size
		}
	}

	layout := make([]int, r.size*o.size)
	var i, j int
	for i = 0; i < r.size; i++ {
		a, ia := locate(rOff, r.layoutOf(i))
		for j = 0; j < o.size; j++ {
			b, jb := locate(oOff, o.layoutOf(j))
			layout[i*o.size+j] = blockOff[a][b] + ia*ot[b].size + jb
		}
	}

	return newSum(terms, layout)
}

// layoutOf is layoutAt for Sums and the identity for everything else.
func (r *Rep) layoutOf(i int) int {
	if r.kind != KindSum {
		return i
	}

	return r.layoutAt(i)
}

func termsOf(r *Rep) []*Rep {
	if r.kind == KindSum {
		return r.terms
	}

	return []*Rep{r}
}

// offsets returns the block start of every term plus the total size.
func offsets(terms []*Rep) []int {
	off := make([]int, len(terms)+1)
	for i, t := range terms {
		off[i+1] = off[i] + t.size
	}

	return off
}

// locate maps a block coordinate x to (term index, offset within term).
func locate(off []int, x int) (int, int) {
	lo, hi := 0, len(off)-2
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if off[mid] <= x {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	return lo, x - off[lo]
}

// Times returns the n-fold direct sum r ⊕ … ⊕ r. Times(0) is the zero
// representation (nil, no error); Times(1) is r.
//
// Errors: ErrNegativeMultiplicity, ErrNilRepresentation.
func (r *Rep) Times(n int) (*Rep, error) {
	if r == nil {
		return nil, repErrorf(opTimes, ErrNilRepresentation)
	}
	if n < 0 {
		return nil, repErrorf(opTimes, fmt.Errorf("%d: %w", n, ErrNegativeMultiplicity))
	}
	var out *Rep
	for i := 0; i < n; i++ {
		out = out.Add(r)
	}

	return out, nil
}

// Pow returns the n-fold tensor power r ⊗ … ⊗ r; Pow(0) is Scalar.
//
// Errors: ErrInvalidPower (n < 0), ErrNilRepresentation.
func (r *Rep) Pow(n int) (*Rep, error) {
	if r == nil {
		return nil, repErrorf(opPow, ErrNilRepresentation)
	}
	if n < 0 {
		return nil, repErrorf(opPow, fmt.Errorf("%d: %w", n, ErrInvalidPower))
	}
	out := Scalar()
	for i := 0; i < n; i++ {
		out = out.Mul(r)
	}

	return out, nil
}

// Dual returns the dual representation r*. Dual is an involution; Scalar
// and Base representations of orthogonal groups are self-dual. Sum layouts
// carry over unchanged.
func (r *Rep) Dual() *Rep {
	switch r.kind {
	case KindScalar:
		return r
	case KindBase:
		return DualOf(r.g)
	case KindDual:
		return Vector(r.g)
	}
	duals := make([]*Rep, len(r.terms))
	for i, t := range r.terms {
		duals[i] = t.Dual()
	}
	switch r.kind {
	case KindSum:
		return newSum(duals, r.layout)
	case KindProduct, KindDirectProduct:
		return newProduct(duals)
	default:
		return newDeferred(r.kind, duals)
	}
}

// Hom returns the representation of linear maps in → out, out ⊗ in*.
func Hom(in, out *Rep) *Rep {
	if in == nil || out == nil {
		return nil
	}

	return out.Mul(in.Dual())
}

// To returns Hom(r, out): the maps from r to out (r >> out).
func (r *Rep) To(out *Rep) *Rep { return Hom(r, out) }

// From returns r ⊗ in*: the maps from in to r (r << in).
func (r *Rep) From(in *Rep) *Rep { return Hom(in, r) }

// T returns the rank (p, q) tensor representation V^⊗p ⊗ V*^⊗q of g.
//
// Errors: ErrInvalidPower when p or q is negative.
func T(p, q int, g group.Group) (*Rep, error) {
	vp, err := V().Pow(p)
	if err != nil {
		return nil, err
	}
	vq, err := V().Dual().Pow(q)
	if err != nil {
		return nil, err
	}

	return vp.Mul(vq).Bind(g), nil
}

// Bind resolves every unbound atom of r to g and re-evaluates deferred sums
// and products. Atoms that already carry a group keep it, so a bound Vector
// times an unbound V bound to another group becomes a DirectProduct.
// Concrete representations and a nil g return r unchanged.
func (r *Rep) Bind(g group.Group) *Rep {
	if r == nil || g == nil || r.Concrete() {
		return r
	}
	switch r.kind {
	case KindBase:
		return Vector(g)
	case KindDual:
		return DualOf(g)
	case KindDeferredSum:
		var out *Rep
		for _, t := range r.terms {
			out = out.Add(t.Bind(g))
		}

		return out
	default: // KindDeferredProduct
		out := Scalar()
		for _, t := range r.terms {
			out = out.Mul(t.Bind(g))
		}

		return out
	}
}
