// SPDX-License-Identifier: MIT

// Package linop - structural combinators: block-diagonal, vertical stack, composition.

package linop

import (
	"fmt"

	"github.com/katalvlaran/equivar/matrix"
)

var (
	_ Operator = (*blockDiagOp)(nil)
	_ Operator = (*concatOp)(nil)
	_ Operator = (*composeOp)(nil)
)

// splitRows returns the copies x[offsets[i]:offsets[i+1], :].
func splitRows(x *matrix.Dense, sizes []int) ([]*matrix.Dense, error) {
	k := x.Cols()
	src := x.Data()
	parts := make([]*matrix.Dense, len(sizes))
	off := 0
	for i, n := range sizes {
		part, err := matrix.NewDenseFrom(n, k, src[off*k:(off+n)*k])
		if err != nil {
			return nil, err
		}
		parts[i] = part
		off += n
	}

	return parts, nil
}

// stackRows concatenates batches with equal column counts vertically.
func stackRows(parts []*matrix.Dense, k int) (*matrix.Dense, error) {
	rows := 0
	for _, p := range parts {
		if p.Cols() != k {
			return nil, fmt.Errorf("part has %d cols, want %d: %w", p.Cols(), k, matrix.ErrDimensionMismatch)
		}
		rows += p.Rows()
	}
	out, err := matrix.NewDenseZeroOK(rows, k)
	if err != nil {
		return nil, err
	}
	dst := out.Data()
	off := 0
	for _, p := range parts {
		off += copy(dst[off:], p.Data())
	}

	return out, nil
}

// ---------- BlockDiag ----------

type blockDiagOp struct {
	blocks             []Operator
	rowSizes, colSizes []int
	rows, cols         int
}

// BlockDiag returns diag(B₁, …, B_m). A single block is returned unchanged.
//
// Errors: ErrInvalidDimensions when no blocks are given.
func BlockDiag(blocks ...Operator) (Operator, error) {
	if len(blocks) == 0 {
		return nil, linopErrorf(opBlock, matrix.ErrInvalidDimensions)
	}
	if len(blocks) == 1 {
		return blocks[0], nil
	}
	b := &blockDiagOp{
		blocks:   make([]Operator, len(blocks)),
		rowSizes: make([]int, len(blocks)),
		colSizes: make([]int, len(blocks)),
	}
	copy(b.blocks, blocks)
	for i, blk := range blocks {
		r, c := blk.Shape()
		b.rowSizes[i], b.colSizes[i] = r, c
		b.rows += r
		b.cols += c
	}

	return b, nil
}

func (b *blockDiagOp) Shape() (int, int) { return b.rows, b.cols }

func (b *blockDiagOp) Apply(x *matrix.Dense) (*matrix.Dense, error) {
	if err := checkRows(opBlock, x, b.cols); err != nil {
		return nil, err
	}

	return b.each(x, b.colSizes, Operator.Apply)
}

func (b *blockDiagOp) ApplyT(y *matrix.Dense) (*matrix.Dense, error) {
	if err := checkRows(opBlock, y, b.rows); err != nil {
		return nil, err
	}

	return b.each(y, b.rowSizes, Operator.ApplyT)
}

func (b *blockDiagOp) each(x *matrix.Dense, sizes []int, apply func(Operator, *matrix.Dense) (*matrix.Dense, error)) (*matrix.Dense, error) {
	parts, err := splitRows(x, sizes)
	if err != nil {
		return nil, linopErrorf(opBlock, err)
	}
	for i, blk := range b.blocks {
		if parts[i], err = apply(blk, parts[i]); err != nil {
			return nil, linopErrorf(opBlock, err)
		}
	}
	out, err := stackRows(parts, x.Cols())
	if err != nil {
		return nil, linopErrorf(opBlock, err)
	}

	return out, nil
}

// ---------- Concat ----------

type concatOp struct {
	ops      []Operator
	rowSizes []int
	rows     int
	cols     int
}

// Concat stacks operators with a common column count vertically:
//
//	[A₁; A₂; …; A_m].
//
// The constraint operator of a representation is the Concat of one block per
// discrete generator and per Lie algebra generator.
//
// Errors: ErrInvalidDimensions (no operators), ErrDimensionMismatch (column counts differ).
func Concat(ops ...Operator) (Operator, error) {
	if len(ops) == 0 {
		return nil, linopErrorf(opConcat, matrix.ErrInvalidDimensions)
	}
	_, cols := ops[0].Shape()
	c := &concatOp{
		ops:      make([]Operator, len(ops)),
		rowSizes: make([]int, len(ops)),
		cols:     cols,
	}
	copy(c.ops, ops)
	for i, op := range ops {
		r, oc := op.Shape()
		if oc != cols {
			return nil, linopErrorf(opConcat, fmt.Errorf("operator %d has %d cols, want %d: %w", i, oc, cols, matrix.ErrDimensionMismatch))
		}
		c.rowSizes[i] = r
		c.rows += r
	}

	return c, nil
}

func (c *concatOp) Shape() (int, int) { return c.rows, c.cols }

func (c *concatOp) Apply(x *matrix.Dense) (*matrix.Dense, error) {
	if err := checkRows(opConcat, x, c.cols); err != nil {
		return nil, err
	}
	parts := make([]*matrix.Dense, len(c.ops))
	var err error
	for i, op := range c.ops {
		if parts[i], err = op.Apply(x); err != nil {
			return nil, linopErrorf(opConcat, err)
		}
	}
	out, err := stackRows(parts, x.Cols())
	if err != nil {
		return nil, linopErrorf(opConcat, err)
	}

	return out, nil
}

func (c *concatOp) ApplyT(y *matrix.Dense) (*matrix.Dense, error) {
	if err := checkRows(opConcat, y, c.rows); err != nil {
		return nil, err
	}
	parts, err := splitRows(y, c.rowSizes)
	if err != nil {
		return nil, linopErrorf(opConcat, err)
	}
	sum, err := matrix.NewDenseZeroOK(c.cols, y.Cols())
	if err != nil {
		return nil, linopErrorf(opConcat, err)
	}
	for i, op := range c.ops {
		term, err := op.ApplyT(parts[i])
		if err != nil {
			return nil, linopErrorf(opConcat, err)
		}
		if err = matrix.AddScaledInPlace(sum, 1, term); err != nil {
			return nil, linopErrorf(opConcat, err)
		}
	}

	return sum, nil
}

// ---------- Compose ----------

type composeOp struct {
	ops        []Operator // applied right to left
	rows, cols int
}

// Compose returns the product A₁·A₂·…·A_m (A_m acts first).
//
// Errors: ErrInvalidDimensions (no operators), ErrDimensionMismatch (inner sizes differ).
func Compose(ops ...Operator) (Operator, error) {
	if len(ops) == 0 {
		return nil, linopErrorf(opCompose, matrix.ErrInvalidDimensions)
	}
	if len(ops) == 1 {
		return ops[0], nil
	}
	for i := 0; i+1 < len(ops); i++ {
		_, c := ops[i].Shape()
		r, _ := ops[i+1].Shape()
		if c != r {
			return nil, linopErrorf(opCompose, fmt.Errorf("operator %d has %d cols, next has %d rows: %w", i, c, r, matrix.ErrDimensionMismatch))
		}
	}
	rows, _ := ops[0].Shape()
	_, cols := ops[len(ops)-1].Shape()
	cp := make([]Operator, len(ops))
	copy(cp, ops)

	return &composeOp{ops: cp, rows: rows, cols: cols}, nil
}

func (c *composeOp) Shape() (int, int) { return c.rows, c.cols }

func (c *composeOp) Apply(x *matrix.Dense) (*matrix.Dense, error) {
	cur := x
	var err error
	for i := len(c.ops) - 1; i >= 0; i-- {
		if cur, err = c.ops[i].Apply(cur); err != nil {
			return nil, linopErrorf(opCompose, err)
		}
	}

	return cur, nil
}

func (c *composeOp) ApplyT(y *matrix.Dense) (*matrix.Dense, error) {
	cur := y
	var err error
	for _, op := range c.ops {
		if cur, err = op.ApplyT(cur); err != nil {
			return nil, linopErrorf(opCompose, err)
		}
	}

	return cur, nil
}
