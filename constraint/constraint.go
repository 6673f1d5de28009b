// SPDX-License-Identifier: MIT

package constraint

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/equivar/linop"
	"github.com/katalvlaran/equivar/matrix"
	"github.com/katalvlaran/equivar/rep"
)

// ErrTooLarge is returned by Dense when rows·cols exceeds the requested limit.
var ErrTooLarge = errors.New("constraint: operator too large to materialize")

const (
	opBuild    = "constraint.Build"
	opEstimate = "constraint.Estimate"
	opDense    = "constraint.Dense"
)

func constraintErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Operator is the stacked constraint C of a representation. It embeds the
// lazy linop.Operator, so Apply and ApplyT work without materialization.
type Operator struct {
	linop.Operator

	rep    *rep.Rep
	blocks int
}

// Rep returns the representation C was built for.
func (o *Operator) Rep() *rep.Rep { return o.rep }

// Blocks is the number of generator blocks stacked in C. Zero means every
// vector of the space is equivariant.
func (o *Operator) Blocks() int { return o.blocks }

// Entries returns rows·cols of the dense form of C.
func (o *Operator) Entries() int64 {
	rows, cols := o.Shape()

	return int64(rows) * int64(cols)
}

// Build returns the constraint operator of r.
//
// For each group G of r (sorted by group.Compare) it stacks ρ(h) − I for every
// discrete generator h of G followed by dρ(A) for every Lie algebra generator
// A of G. Atoms belonging to other groups act trivially inside each block. With
// no generators at all the result is the 0×n zero operator.
//
// Errors: rep.ErrNilRepresentation, rep.ErrUnboundRepresentation, and any
// error raised while evaluating the actions (for example matrix.ErrSingular
// for the dual of a singular generator).
func Build(r *rep.Rep) (*Operator, error) {
	n, err := r.Size()
	if err != nil {
		return nil, constraintErrorf(opBuild, err)
	}

	var blocks []linop.Operator
	for _, g := range r.Groups() {
		for i, h := range g.DiscreteGenerators() {
			rho, err := r.Rho(rep.ActionOf(g, h))
			if err != nil {
				return nil, constraintErrorf(opBuild, fmt.Errorf("%s discrete generator %d: %w", g.Name(), i, err))
			}
			block, err := linop.Difference(rho, linop.Identity(n))
			if err != nil {
				return nil, constraintErrorf(opBuild, err)
			}
			blocks = append(blocks, block)
		}
		for i, a := range g.LieAlgebra() {
			drho, err := r.Drho(rep.ActionOf(g, a))
			if err != nil {
				return nil, constraintErrorf(opBuild, fmt.Errorf("%s Lie generator %d: %w", g.Name(), i, err))
			}
			blocks = append(blocks, drho)
		}
	}

	if len(blocks) == 0 {
		return &Operator{Operator: linop.Zero(0, n), rep: r}, nil
	}
	stacked, err := linop.Concat(blocks...)
	if err != nil {
		return nil, constraintErrorf(opBuild, err)
	}

	return &Operator{Operator: stacked, rep: r, blocks: len(blocks)}, nil
}

// Estimate returns the shape Build(r) would produce without building it:
// rows = n · Σ_G (#discrete + #Lie), cols = n.
func Estimate(r *rep.Rep) (rows, cols int, err error) {
	n, err := r.Size()
	if err != nil {
		return 0, 0, constraintErrorf(opEstimate, err)
	}
	var gens int
	for _, g := range r.Groups() {
		gens += len(g.DiscreteGenerators()) + len(g.LieAlgebra())
	}

	return gens * n, n, nil
}

// Dense materializes C. A positive limit bounds rows·cols; exceeding it
// returns ErrTooLarge before any allocation.
func Dense(c *Operator, limit int64) (*matrix.Dense, error) {
	if c == nil {
		return nil, constraintErrorf(opDense, matrix.ErrNilMatrix)
	}
	if limit > 0 && c.Entries() > limit {
		rows, cols := c.Shape()
		return nil, constraintErrorf(opDense, fmt.Errorf("%dx%d exceeds %d entries: %w", rows, cols, limit, ErrTooLarge))
	}
	m, err := linop.ToDense(c.Operator)
	if err != nil {
		return nil, constraintErrorf(opDense, err)
	}

	return m, nil
}
