// SPDX-License-Identifier: MIT

package rep_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/equivar/group"
	"github.com/katalvlaran/equivar/matrix"
	"github.com/katalvlaran/equivar/rep"
)

const tol = 1e-10

// must unwraps a (value, error) pair from a constructor that cannot fail in
// a well-formed test.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}

	return v
}

// shearGroup is a non-orthogonal group on ℝ², so its dual differs from its base.
func shearGroup(t *testing.T) group.Group {
	t.Helper()
	h, err := matrix.NewDenseRows([][]float64{{1, 2}, {0, 1}})
	require.NoError(t, err)
	a, err := matrix.NewDenseRows([][]float64{{0.5, 1}, {0, -0.5}})
	require.NoError(t, err)
	g, err := group.NewGeneric("Shear", 2, []*matrix.Dense{h}, []*matrix.Dense{a})
	require.NoError(t, err)
	require.False(t, g.IsOrthogonal())

	return g
}

func mustPow(t *testing.T, r *rep.Rep, n int) *rep.Rep {
	t.Helper()
	out, err := r.Pow(n)
	require.NoError(t, err)

	return out
}

func mustSize(t *testing.T, r *rep.Rep) int {
	t.Helper()
	n, err := r.Size()
	require.NoError(t, err)

	return n
}

func requireClose(t *testing.T, want, got *matrix.Dense) {
	t.Helper()
	ok, err := matrix.AllClose(want, got, 0, tol)
	require.NoError(t, err)
	require.True(t, ok, "want\n%v\ngot\n%v", want, got)
}

// firstAction returns the Action of g's first discrete generator.
func firstAction(t *testing.T, g group.Group) rep.Action {
	t.Helper()
	require.NotEmpty(t, g.DiscreteGenerators())

	return rep.ActionOf(g, g.DiscreteGenerators()[0])
}

// firstLie returns the Action of g's first Lie algebra generator.
func firstLie(t *testing.T, g group.Group) rep.Action {
	t.Helper()
	require.NotEmpty(t, g.LieAlgebra())

	return rep.ActionOf(g, g.LieAlgebra()[0])
}
