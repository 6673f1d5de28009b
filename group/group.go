// SPDX-License-Identifier: MIT

package group

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/katalvlaran/equivar/matrix"
)

// Sentinel errors for group construction.
var (
	// ErrInvalidDimension is returned when d < 1 (or n too small for the family).
	ErrInvalidDimension = errors.New("group: invalid dimension")

	// ErrBadGenerator is returned when a generator is nil or not d×d.
	ErrBadGenerator = errors.New("group: generator must be a d×d matrix")

	// ErrEmptyName is returned by NewGeneric when no name is supplied.
	ErrEmptyName = errors.New("group: name must be non-empty")
)

// Group is the contract a symmetry group must satisfy. Implementations must be
// immutable: generator matrices are shared and callers must not mutate them.
type Group interface {
	// D is the dimension of the defining (base vector) representation.
	D() int

	// DiscreteGenerators returns the discrete generators h (d×d each).
	DiscreteGenerators() []*matrix.Dense

	// LieAlgebra returns the Lie algebra generators A (d×d each).
	LieAlgebra() []*matrix.Dense

	// IsOrthogonal reports whether every group element is orthogonal. For
	// such groups the dual representation coincides with the base.
	IsOrthogonal() bool

	// IsRegular reports whether the group acts by permutation matrices.
	IsRegular() bool

	// Name identifies the group; equal names mean equal groups.
	Name() string
}

// Compare orders groups by Name, then D. A nil group sorts first.
func Compare(a, b Group) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if c := cmp.Compare(a.Name(), b.Name()); c != 0 {
		return c
	}

	return cmp.Compare(a.D(), b.D())
}

// Equal reports Compare(a, b) == 0.
func Equal(a, b Group) bool { return Compare(a, b) == 0 }

// groupErrorf wraps err with a constructor tag.
func groupErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// base carries the shared state of every concrete group.
type base struct {
	name       string
	d          int
	discrete   []*matrix.Dense
	lie        []*matrix.Dense
	orthogonal bool
	regular    bool
}

func (g *base) D() int                              { return g.d }
func (g *base) DiscreteGenerators() []*matrix.Dense { return g.discrete }
func (g *base) LieAlgebra() []*matrix.Dense         { return g.lie }
func (g *base) IsOrthogonal() bool                  { return g.orthogonal }
func (g *base) IsRegular() bool                     { return g.regular }
func (g *base) Name() string                        { return g.name }
func (g *base) String() string                      { return g.name }
