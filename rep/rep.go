// SPDX-License-Identifier: MIT

package rep

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/katalvlaran/equivar/group"
)

// Kind is the structural variant of a representation.
type Kind uint8

// Representation variants. The numeric order is the kind rank used by Compare.
const (
	KindScalar Kind = iota
	KindBase
	KindDual
	KindSum
	KindProduct
	KindDirectProduct
	KindDeferredSum
	KindDeferredProduct
)

var kindNames = [...]string{
	KindScalar:          "Scalar",
	KindBase:            "Base",
	KindDual:            "Dual",
	KindSum:             "Sum",
	KindProduct:         "Product",
	KindDirectProduct:   "DirectProduct",
	KindDeferredSum:     "DeferredSum",
	KindDeferredProduct: "DeferredProduct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", k)
}

// unboundSize marks a representation whose size depends on an absent group.
const unboundSize = -1

// Rep is an immutable tensor representation.
type Rep struct {
	kind   Kind
	g      group.Group // atom group; shared group of a composite (nil when none or mixed)
	terms  []*Rep      // Sum terms, Product factors, or deferred operands
	layout []int       // Sum only: v[i] = blocks[layout[i]]; nil means block order
	size   int         // unboundSize when not concrete
	key    string
}

var scalar = &Rep{kind: KindScalar, size: 1, key: "V⁰"}

// Scalar returns the trivial one-dimensional representation V⁰.
func Scalar() *Rep { return scalar }

// V returns the unbound base vector representation. Bind it to a group, or
// use Vector, before asking for sizes or actions.
func V() *Rep { return newAtom(KindBase, nil) }

// Vector returns the base representation of g (V acting through g's matrices).
// A nil g yields the unbound V.
func Vector(g group.Group) *Rep { return newAtom(KindBase, g) }

// DualOf returns the dual representation V* of g. For orthogonal groups the
// dual is identical to the base and Vector(g) is returned.
func DualOf(g group.Group) *Rep {
	if g != nil && g.IsOrthogonal() {
		return newAtom(KindBase, g)
	}

	return newAtom(KindDual, g)
}

func newAtom(kind Kind, g group.Group) *Rep {
	r := &Rep{kind: kind, g: g, size: unboundSize}
	name := "V"
	if kind == KindDual {
		name = "V*"
	}
	r.key = name
	if g != nil {
		r.size = g.D()
		r.key = name + "[" + g.Name() + "]"
	}

	return r
}

// newSum builds a Sum from non-Sum concrete terms. An identity layout is
// normalized to nil so equal structures share a key.
func newSum(terms []*Rep, layout []int) *Rep {
	r := &Rep{kind: KindSum, terms: terms, g: sharedGroup(terms)}
	for _, t := range terms {
		r.size += t.size
	}
	if isIdentity(layout) {
		layout = nil
	}
	r.layout = layout
	r.key = joinKeys("(", terms, "+", ")")
	if layout != nil {
		r.key += fmt.Sprintf("@%016x", layoutHash(layout))
	}

	return r
}

// newProduct builds a Product or DirectProduct from concrete atoms.
func newProduct(factors []*Rep) *Rep {
	g := sharedGroup(factors)
	r := &Rep{kind: KindProduct, terms: factors, g: g, size: 1}
	sep := "⊗"
	if g == nil {
		r.kind, sep = KindDirectProduct, "×"
	}
	for _, f := range factors {
		r.size *= f.size
	}
	r.key = joinKeys("(", factors, sep, ")")

	return r
}

func newDeferred(kind Kind, operands []*Rep) *Rep {
	sep := "+"
	if kind == KindDeferredProduct {
		sep = "⊗"
	}

	return &Rep{
		kind:  kind,
		terms: operands,
		g:     sharedGroup(operands),
		size:  unboundSize,
		key:   joinKeys("~(", operands, sep, ")"),
	}
}

func joinKeys(open string, reps []*Rep, sep, closing string) string {
	var b strings.Builder
	b.WriteString(open)
	for i, r := range reps {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(r.key)
	}
	b.WriteString(closing)

	return b.String()
}

// layoutHash digests a layout permutation for use inside a key.
func layoutHash(layout []int) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, v := range layout {
		u := uint64(v)
		for i := range buf {
			buf[i] = byte(u >> (8 * i))
		}
		_, _ = d.Write(buf[:])
	}

	return d.Sum64()
}

func isIdentity(p []int) bool {
	for i, v := range p {
		if v != i {
			return false
		}
	}

	return true
}

// sharedGroup returns the single group of all non-scalar atoms below reps, or
// nil when there is none or more than one.
func sharedGroup(reps []*Rep) group.Group {
	var g group.Group
	for _, r := range reps {
		if r.kind == KindScalar {
			continue
		}
		rg := r.g
		if rg == nil {
			return nil
		}
		if g == nil {
			g = rg
			continue
		}
		if !group.Equal(g, rg) {
			return nil
		}
	}

	return g
}

// ---------- accessors ----------

// Kind returns the structural variant.
func (r *Rep) Kind() Kind { return r.kind }

// Group returns the group shared by every atom of r, or nil.
func (r *Rep) Group() group.Group { return r.g }

// Terms returns the sum terms, product factors or deferred operands of r
// (nil for atoms). The slice is shared; do not modify it.
func (r *Rep) Terms() []*Rep { return r.terms }

// Key is the structural identity of r. Equal keys mean equal representations.
func (r *Rep) Key() string { return r.key }

// Equal reports structural equality.
func (r *Rep) Equal(o *Rep) bool {
	if r == nil || o == nil {
		return r == o
	}

	return r.key == o.key
}

// Concrete reports whether every atom of r is bound to a group.
func (r *Rep) Concrete() bool { return r != nil && r.size != unboundSize }

// Size returns the dimension of the representation space.
//
// Errors: ErrUnboundRepresentation.
func (r *Rep) Size() (int, error) {
	if r == nil {
		return 0, repErrorf(opSize, ErrNilRepresentation)
	}
	if !r.Concrete() {
		return 0, repErrorf(opSize, fmt.Errorf("%s: %w", r, ErrUnboundRepresentation))
	}

	return r.size, nil
}

// IsRegular reports whether every atom's group acts by permutations.
// Unbound representations are never regular.
func (r *Rep) IsRegular() bool {
	switch r.kind {
	case KindScalar:
		return true
	case KindBase, KindDual:
		return r.g != nil && r.g.IsRegular()
	}
	for _, t := range r.terms {
		if !t.IsRegular() {
			return false
		}
	}

	return r.Concrete()
}

// String renders r compactly: V, V*, V⁰, V+V*, V²⊗V*, V×V.
// Group names are omitted; use Key for an unambiguous identity.
func (r *Rep) String() string {
	switch r.kind {
	case KindScalar:
		return "V⁰"
	case KindBase:
		return "V"
	case KindDual:
		return "V*"
	case KindSum, KindDeferredSum:
		return renderRuns(r.terms, "+", func(s string, n int) string {
			return fmt.Sprintf("%d%s", n, s)
		})
	case KindProduct, KindDeferredProduct:
		return renderRuns(r.terms, "⊗", func(s string, n int) string {
			return s + superscript(n)
		})
	default:
		return renderRuns(r.terms, "×", func(s string, n int) string {
			return s + superscript(n)
		})
	}
}

// renderRuns joins operand strings, collapsing runs of equal operands.
func renderRuns(reps []*Rep, sep string, collapse func(string, int) string) string {
	var b strings.Builder
	for i := 0; i < len(reps); {
		j := i + 1
		for j < len(reps) && reps[j].key == reps[i].key {
			j++
		}
		if i > 0 {
			b.WriteString(sep)
		}
		s := reps[i].String()
		if len(reps[i].terms) > 0 && reps[i].kind != KindProduct {
			s = "(" + s + ")"
		}
		if n := j - i; n > 1 {
			s = collapse(s, n)
		}
		b.WriteString(s)
		i = j
	}

	return b.String()
}

var superDigits = [...]rune{'⁰', '¹', '²', '³', '⁴', '⁵', '⁶', '⁷', '⁸', '⁹'}

func superscript(n int) string {
	digits := []rune(fmt.Sprint(n))
	for i, d := range digits {
		digits[i] = superDigits[d-'0']
	}

	return string(digits)
}
