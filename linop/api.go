// SPDX-License-Identifier: MIT

package linop

import (
	"github.com/katalvlaran/equivar/matrix"
)

// ToDense materializes op as an explicit rows×cols matrix by applying it to
// I_cols. Use only when the dense size is acceptable.
//
// Errors: whatever op.Apply returns.
// Complexity: one Apply over a cols-column batch.
func ToDense(op Operator) (*matrix.Dense, error) {
	_, cols := op.Shape()
	I, err := matrix.NewIdentity(cols)
	if err != nil {
		return nil, linopErrorf(opToDense, err)
	}
	out, err := op.Apply(I)
	if err != nil {
		return nil, linopErrorf(opToDense, err)
	}

	return out, nil
}

// FromDense is Dense for callers that already hold a validated matrix and
// cannot fail; it panics on a nil input.
func FromDense(m *matrix.Dense) Operator {
	op, err := Dense(m)
	if err != nil {
		panic(err)
	}

	return op
}

// Transpose returns Opᵀ as an operator (Apply and ApplyT swapped).
func Transpose(op Operator) Operator {
	if t, ok := op.(transposeOp); ok {
		return t.inner
	}

	return transposeOp{inner: op}
}

type transposeOp struct{ inner Operator }

func (t transposeOp) Shape() (int, int) {
	r, c := t.inner.Shape()

	return c, r
}

func (t transposeOp) Apply(x *matrix.Dense) (*matrix.Dense, error) { return t.inner.ApplyT(x) }

func (t transposeOp) ApplyT(y *matrix.Dense) (*matrix.Dense, error) { return t.inner.Apply(y) }
