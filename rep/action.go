// SPDX-License-Identifier: MIT

package rep

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-set/v3"

	"github.com/katalvlaran/equivar/group"
	"github.com/katalvlaran/equivar/linop"
	"github.com/katalvlaran/equivar/matrix"
)

// Action assigns a d×d matrix to each group, keyed by group name. For Rho the
// matrices are group elements; for Drho they are Lie algebra elements.
type Action map[string]*matrix.Dense

// ActionOf returns the single-group Action {g: m}.
func ActionOf(g group.Group, m *matrix.Dense) Action {
	return Action{g.Name(): m}
}

// Rho returns the lazy operator ρ(act) of r.
//
//	Scalar          [[1]]
//	Base            M
//	Dual            (M⁻¹)ᵀ
//	Product(s)      ρ(F₁) ⊗ … ⊗ ρ(F_m)
//	Sum             P_L · diag(ρ(T₁), …) · P_Lᵀ
//
// Atoms whose group has no entry in act act as the identity.
//
// Errors: ErrMissingAction, ErrUnboundRepresentation, matrix.ErrSingular (Dual
// of a non-invertible matrix), shape errors from linop.
func (r *Rep) Rho(act Action) (linop.Operator, error) {
	if r == nil {
		return nil, repErrorf(opRho, ErrNilRepresentation)
	}
	if act == nil {
		return nil, repErrorf(opRho, ErrMissingAction)
	}
	if !r.Concrete() {
		return nil, repErrorf(opRho, fmt.Errorf("%s: %w", r, ErrUnboundRepresentation))
	}
	op, err := r.eval(act, false)
	if err != nil {
		return nil, repErrorf(opRho, err)
	}

	return op, nil
}

// Drho returns the lazy infinitesimal action dρ(act) of r.
//
//	Scalar          [[0]]
//	Base            A
//	Dual            −Aᵀ
//	Product(s)      dρ(F₁) ⊕ … ⊕ dρ(F_m)   (Kronecker sum)
//	Sum             P_L · diag(dρ(T₁), …) · P_Lᵀ
//
// Atoms whose group has no entry in act contribute zero.
//
// Errors: ErrMissingAction, ErrUnboundRepresentation, shape errors from linop.
func (r *Rep) Drho(act Action) (linop.Operator, error) {
	if r == nil {
		return nil, repErrorf(opDrho, ErrNilRepresentation)
	}
	if act == nil {
		return nil, repErrorf(opDrho, ErrMissingAction)
	}
	if !r.Concrete() {
		return nil, repErrorf(opDrho, fmt.Errorf("%s: %w", r, ErrUnboundRepresentation))
	}
	op, err := r.eval(act, true)
	if err != nil {
		return nil, repErrorf(opDrho, err)
	}

	return op, nil
}

// RhoDense materializes Rho(act).
func (r *Rep) RhoDense(act Action) (*matrix.Dense, error) {
	op, err := r.Rho(act)
	if err != nil {
		return nil, err
	}

	return linop.ToDense(op)
}

// DrhoDense materializes Drho(act).
func (r *Rep) DrhoDense(act Action) (*matrix.Dense, error) {
	op, err := r.Drho(act)
	if err != nil {
		return nil, err
	}

	return linop.ToDense(op)
}

// eval is the single dispatch over variants for both actions.
func (r *Rep) eval(act Action, infinitesimal bool) (linop.Operator, error) {
	switch r.kind {
	case KindScalar:
		if infinitesimal {
			return linop.Zero(1, 1), nil
		}

		return linop.Identity(1), nil

	case KindBase, KindDual:
		return r.evalAtom(act, infinitesimal)

	case KindProduct, KindDirectProduct:
		ops := make([]linop.Operator, len(r.terms))
		var err error
		for i, f := range r.terms {
			if ops[i], err = f.eval(act, infinitesimal); err != nil {
				return nil, err
			}
		}
		if infinitesimal {
			return linop.KronSum(ops...)
		}

		return linop.Kron(ops...)

	case KindSum:
		ops := make([]linop.Operator, len(r.terms))
		var err error
		for i, t := range r.terms {
			if ops[i], err = t.eval(act, infinitesimal); err != nil {
				return nil, err
			}
		}
		blocks, err := linop.BlockDiag(ops...)
		if err != nil {
			return nil, err
		}
		if r.layout == nil {
			return blocks, nil
		}
		p, err := linop.Permutation(r.layout)
		if err != nil {
			return nil, err
		}

		return linop.Compose(p, blocks, linop.Transpose(p))
	}

	return nil, fmt.Errorf("%s: %w", r, ErrUnboundRepresentation)
}

func (r *Rep) evalAtom(act Action, infinitesimal bool) (linop.Operator, error) {
	d := r.size
	m, ok := act[r.g.Name()]
	if !ok {
		if infinitesimal {
			return linop.Zero(d, d), nil
		}

		return linop.Identity(d), nil
	}
	if m == nil || m.Rows() != d || m.Cols() != d {
		return nil, fmt.Errorf("action for %s must be %dx%d: %w", r.g.Name(), d, d, matrix.ErrDimensionMismatch)
	}
	if r.kind == KindBase {
		return linop.Dense(m)
	}
	if infinitesimal {
		neg, err := matrix.Scale(m, -1)
		if err != nil {
			return nil, err
		}

		return linop.Transpose(linop.FromDense(neg)), nil
	}
	inv, err := matrix.Inverse(m)
	if err != nil {
		return nil, err
	}

	return linop.Transpose(linop.FromDense(inv)), nil
}

// Groups returns the distinct groups of r's atoms sorted by group.Compare.
// Unbound atoms and Scalar contribute nothing.
func (r *Rep) Groups() []group.Group {
	seen := set.New[string](4)
	var out []group.Group
	r.walkAtoms(func(a *Rep) {
		if a.g != nil && seen.Insert(a.g.Name()) {
			out = append(out, a.g)
		}
	})
	slices.SortFunc(out, group.Compare)

	return out
}

func (r *Rep) walkAtoms(visit func(*Rep)) {
	switch r.kind {
	case KindBase, KindDual:
		visit(r)
	case KindScalar:
	default:
		for _, t := range r.terms {
			t.walkAtoms(visit)
		}
	}
}
