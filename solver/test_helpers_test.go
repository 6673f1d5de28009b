// SPDX-License-Identifier: MIT

package solver_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/equivar/constraint"
	"github.com/katalvlaran/equivar/group"
	"github.com/katalvlaran/equivar/linop"
	"github.com/katalvlaran/equivar/matrix"
	"github.com/katalvlaran/equivar/rep"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}

	return v
}

// square returns the constraint operator of V⊗V for g.
func square(t *testing.T, g group.Group) *constraint.Operator {
	t.Helper()
	v := rep.Vector(g)
	c, err := constraint.Build(v.Mul(v))
	require.NoError(t, err)

	return c
}

// observed returns a debug-level logger and the sink it writes to.
func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)

	return zap.New(core), logs
}

// requireNullSpace checks C·Q ≈ 0 and QᵀQ = I.
func requireNullSpace(t *testing.T, c linop.Operator, q *matrix.Dense, atol float64) {
	t.Helper()
	cq, err := c.Apply(q)
	require.NoError(t, err)
	require.Less(t, matrix.MaxAbs(cq), atol, "C·Q must vanish")
	if q.Cols() == 0 {
		return
	}
	qt, err := matrix.Transpose(q)
	require.NoError(t, err)
	gram, err := matrix.Mul(qt, q)
	require.NoError(t, err)
	id, err := matrix.NewIdentity(q.Cols())
	require.NoError(t, err)
	ok, err := matrix.AllClose(id, gram, 0, 1e-8)
	require.NoError(t, err)
	require.True(t, ok, "columns must be orthonormal:\n%v", gram)
}

// projector returns Q·Qᵀ, which is independent of the basis chosen for span(Q).
func projector(t *testing.T, q *matrix.Dense) *matrix.Dense {
	t.Helper()
	qt, err := matrix.Transpose(q)
	require.NoError(t, err)
	p, err := matrix.Mul(q, qt)
	require.NoError(t, err)

	return p
}

// rowConstraint is the 1×n operator x ↦ scale·x₀, whose null space has
// dimension n−1.
func rowConstraint(t *testing.T, n int, scale float64) linop.Operator {
	t.Helper()
	m, err := matrix.NewDense(1, n)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, scale))
	op, err := linop.Dense(m)
	require.NoError(t, err)

	return op
}
