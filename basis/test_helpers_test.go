// SPDX-License-Identifier: MIT

package basis_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/equivar/basis"
	"github.com/katalvlaran/equivar/constraint"
	"github.com/katalvlaran/equivar/matrix"
	"github.com/katalvlaran/equivar/rep"
	"github.com/katalvlaran/equivar/solver"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}

	return v
}

func denseEngine(t *testing.T, opts ...basis.Option) *basis.Engine {
	t.Helper()
	e, err := basis.New(opts...)
	require.NoError(t, err)

	return e
}

func iterativeEngine(t *testing.T) *basis.Engine {
	t.Helper()
	s, err := solver.New(solver.WithForceIterative())
	require.NoError(t, err)

	return denseEngine(t, basis.WithSolver(s))
}

// requireEquivariant checks C·Q ≈ 0 with C built in r's own coordinates,
// plus orthonormal columns.
func requireEquivariant(t *testing.T, r *rep.Rep, q *matrix.Dense, atol float64) {
	t.Helper()
	c, err := constraint.Build(r)
	require.NoError(t, err)
	cq, err := c.Apply(q)
	require.NoError(t, err)
	require.Less(t, matrix.MaxAbs(cq), atol)
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
	require.True(t, ok)
}
