// SPDX-License-Identifier: MIT

package linop_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/equivar/linop"
	"github.com/katalvlaran/equivar/matrix"
)

const tol = 1e-10

func randDense(t *testing.T, r, c int, seed uint64) *matrix.Dense {
	t.Helper()
	m, err := matrix.RandNormal(r, c, 1, rand.New(rand.NewPCG(seed, 17)))
	require.NoError(t, err)

	return m
}

func requireClose(t *testing.T, want, got *matrix.Dense) {
	t.Helper()
	ok, err := matrix.AllClose(want, got, 0, tol)
	require.NoError(t, err)
	require.True(t, ok, "want\n%v\ngot\n%v", want, got)
}

// requireMatches checks Apply and ApplyT of op against an explicit matrix.
func requireMatches(t *testing.T, want *matrix.Dense, op linop.Operator) {
	t.Helper()
	r, c := op.Shape()
	require.Equal(t, want.Rows(), r)
	require.Equal(t, want.Cols(), c)

	x := randDense(t, c, 3, 101)
	got, err := op.Apply(x)
	require.NoError(t, err)
	exp, err := matrix.Mul(want, x)
	require.NoError(t, err)
	requireClose(t, exp, got)

	if r == 0 {
		return
	}
	y := randDense(t, r, 2, 202)
	gotT, err := op.ApplyT(y)
	require.NoError(t, err)
	wt, err := matrix.Transpose(want)
	require.NoError(t, err)
	expT, err := matrix.Mul(wt, y)
	require.NoError(t, err)
	requireClose(t, expT, gotT)
}

func TestDense(t *testing.T) {
	m := randDense(t, 3, 4, 1)
	op, err := linop.Dense(m)
	require.NoError(t, err)
	requireMatches(t, m, op)

	_, err = linop.Dense(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = op.Apply(randDense(t, 3, 1, 2))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestIdentityAndZero(t *testing.T) {
	I, err := matrix.NewIdentity(4)
	require.NoError(t, err)
	requireMatches(t, I, linop.Identity(4))

	z := linop.Zero(0, 5)
	out, err := z.Apply(randDense(t, 5, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, 0, out.Rows())
	assert.Equal(t, 2, out.Cols())

	zd, err := matrix.NewDenseZeroOK(2, 3)
	require.NoError(t, err)
	requireMatches(t, zd, linop.Zero(2, 3))
}

func TestPermutation(t *testing.T) {
	perm := []int{2, 0, 1}
	op, err := linop.Permutation(perm)
	require.NoError(t, err)
	I, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	P, err := matrix.PermuteRows(I, perm)
	require.NoError(t, err)
	requireMatches(t, P, op)

	_, err = linop.Permutation([]int{1, 1})
	require.ErrorIs(t, err, matrix.ErrBadPermutation)
}

func TestDifference(t *testing.T) {
	m := randDense(t, 3, 3, 4)
	op, err := linop.Difference(linop.FromDense(m), linop.Identity(3))
	require.NoError(t, err)
	I, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	want, err := matrix.Sub(m, I)
	require.NoError(t, err)
	requireMatches(t, want, op)

	_, err = linop.Difference(linop.Identity(2), linop.Identity(3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestKron_MatchesMaterialized(t *testing.T) {
	a := randDense(t, 2, 3, 5)
	b := randDense(t, 4, 2, 6)
	c := randDense(t, 3, 3, 7)
	op, err := linop.Kron(linop.FromDense(a), linop.FromDense(b), linop.FromDense(c))
	require.NoError(t, err)

	ab, err := matrix.Kron(a, b)
	require.NoError(t, err)
	want, err := matrix.Kron(ab, c)
	require.NoError(t, err)
	requireMatches(t, want, op)
}

func TestKron_IdentityFactorsSkipped(t *testing.T) {
	a := randDense(t, 3, 3, 8)
	op, err := linop.Kron(linop.Identity(2), linop.FromDense(a), linop.Identity(2))
	require.NoError(t, err)
	I2, err := matrix.NewIdentity(2)
	require.NoError(t, err)
	left, err := matrix.Kron(I2, a)
	require.NoError(t, err)
	want, err := matrix.Kron(left, I2)
	require.NoError(t, err)
	requireMatches(t, want, op)

	_, err = linop.Kron()
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestKronSum_MatchesMaterialized(t *testing.T) {
	a := randDense(t, 2, 2, 9)
	b := randDense(t, 3, 3, 10)
	op, err := linop.KronSum(linop.FromDense(a), linop.FromDense(b))
	require.NoError(t, err)

	I2, err := matrix.NewIdentity(2)
	require.NoError(t, err)
	I3, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	left, err := matrix.Kron(a, I3)
	require.NoError(t, err)
	right, err := matrix.Kron(I2, b)
	require.NoError(t, err)
	want, err := matrix.Add(left, right)
	require.NoError(t, err)
	requireMatches(t, want, op)

	_, err = linop.KronSum(linop.FromDense(randDense(t, 2, 3, 1)))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestBlockDiag(t *testing.T) {
	a := randDense(t, 2, 3, 11)
	b := randDense(t, 1, 1, 12)
	op, err := linop.BlockDiag(linop.FromDense(a), linop.FromDense(b))
	require.NoError(t, err)

	want, err := matrix.NewDense(3, 4)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			v, _ := a.At(i, j)
			require.NoError(t, want.Set(i, j, v))
		}
	}
	v, _ := b.At(0, 0)
	require.NoError(t, want.Set(2, 3, v))
	requireMatches(t, want, op)
}

func TestConcatAndCompose(t *testing.T) {
	a := randDense(t, 2, 3, 13)
	b := randDense(t, 4, 3, 14)
	op, err := linop.Concat(linop.FromDense(a), linop.Zero(0, 3), linop.FromDense(b))
	require.NoError(t, err)
	want, err := matrix.NewDense(6, 3)
	require.NoError(t, err)
	copy(want.Data()[:6], a.Data())
	copy(want.Data()[6:], b.Data())
	requireMatches(t, want, op)

	_, err = linop.Concat(linop.Identity(2), linop.Identity(3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	c := randDense(t, 3, 2, 15)
	comp, err := linop.Compose(linop.FromDense(b), linop.FromDense(c))
	require.NoError(t, err)
	bc, err := matrix.Mul(b, c)
	require.NoError(t, err)
	requireMatches(t, bc, comp)

	_, err = linop.Compose(linop.FromDense(b), linop.FromDense(b))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestToDenseAndTranspose(t *testing.T) {
	a := randDense(t, 2, 2, 16)
	b := randDense(t, 2, 2, 17)
	op, err := linop.Kron(linop.FromDense(a), linop.FromDense(b))
	require.NoError(t, err)
	d, err := linop.ToDense(op)
	require.NoError(t, err)
	want, err := matrix.Kron(a, b)
	require.NoError(t, err)
	requireClose(t, want, d)

	wt, err := matrix.Transpose(want)
	require.NoError(t, err)
	requireMatches(t, wt, linop.Transpose(op))
	assert.Same(t, op, linop.Transpose(linop.Transpose(op)))
}
