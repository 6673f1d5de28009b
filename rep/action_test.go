// SPDX-License-Identifier: MIT

package rep_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/equivar/group"
	"github.com/katalvlaran/equivar/matrix"
	"github.com/katalvlaran/equivar/rep"
)

func TestRho_Atoms(t *testing.T) {
	sh := shearGroup(t)
	v := rep.Vector(sh)
	act := firstAction(t, sh)
	M := sh.DiscreteGenerators()[0]

	got, err := v.RhoDense(act)
	require.NoError(t, err)
	requireClose(t, M, got)

	inv, err := matrix.Inverse(M)
	require.NoError(t, err)
	want, err := matrix.Transpose(inv)
	require.NoError(t, err)
	got, err = v.Dual().RhoDense(act)
	require.NoError(t, err)
	requireClose(t, want, got)

	one, err := rep.Scalar().RhoDense(act)
	require.NoError(t, err)
	requireScalar(t, 1, one)
}

func TestDrho_Atoms(t *testing.T) {
	sh := shearGroup(t)
	v := rep.Vector(sh)
	lie := firstLie(t, sh)
	A := sh.LieAlgebra()[0]

	got, err := v.DrhoDense(lie)
	require.NoError(t, err)
	requireClose(t, A, got)

	at, err := matrix.Transpose(A)
	require.NoError(t, err)
	want, err := matrix.Scale(at, -1)
	require.NoError(t, err)
	got, err = v.Dual().DrhoDense(lie)
	require.NoError(t, err)
	requireClose(t, want, got)

	zero, err := rep.Scalar().DrhoDense(lie)
	require.NoError(t, err)
	requireScalar(t, 0, zero)
}

func TestRho_ProductIsKron(t *testing.T) {
	sh := shearGroup(t)
	v := rep.Vector(sh)
	act := firstAction(t, sh)
	a, err := v.RhoDense(act)
	require.NoError(t, err)
	b, err := v.Dual().RhoDense(act)
	require.NoError(t, err)
	want, err := matrix.Kron(a, b)
	require.NoError(t, err)
	got, err := v.Mul(v.Dual()).RhoDense(act)
	require.NoError(t, err)
	requireClose(t, want, got)
}

func TestDrho_ProductIsKronSum(t *testing.T) {
	sh := shearGroup(t)
	v := rep.Vector(sh)
	lie := firstLie(t, sh)
	A, err := v.DrhoDense(lie)
	require.NoError(t, err)
	B, err := v.Dual().DrhoDense(lie)
	require.NoError(t, err)
	I, err := matrix.NewIdentity(2)
	require.NoError(t, err)
	left, err := matrix.Kron(A, I)
	require.NoError(t, err)
	right, err := matrix.Kron(I, B)
	require.NoError(t, err)
	want, err := matrix.Add(left, right)
	require.NoError(t, err)
	got, err := v.Mul(v.Dual()).DrhoDense(lie)
	require.NoError(t, err)
	requireClose(t, want, got)
}

// Distributing a product over a sum must not change the action in the
// caller's Kronecker coordinates.
func TestRho_DistributionKeepsKroneckerLayout(t *testing.T) {
	sh := shearGroup(t)
	v := rep.Vector(sh)
	sum := v.Add(v.Dual()).Add(rep.Scalar())
	act := firstAction(t, sh)
	lie := firstLie(t, sh)

	for _, tc := range []struct {
		name        string
		left, right *rep.Rep
	}{
		{"sum⊗atom", sum, v},
		{"atom⊗sum", v.Dual(), sum},
		{"sum⊗sum", sum, v.Add(v.Dual())},
	} {
		t.Run(tc.name, func(t *testing.T) {
			prod := tc.left.Mul(tc.right)
			require.Equal(t, rep.KindSum, prod.Kind())

			l, err := tc.left.RhoDense(act)
			require.NoError(t, err)
			r, err := tc.right.RhoDense(act)
			require.NoError(t, err)
			want, err := matrix.Kron(l, r)
			require.NoError(t, err)
			got, err := prod.RhoDense(act)
			require.NoError(t, err)
			requireClose(t, want, got)

			dl, err := tc.left.DrhoDense(lie)
			require.NoError(t, err)
			dr, err := tc.right.DrhoDense(lie)
			require.NoError(t, err)
			Il, err := matrix.NewIdentity(dl.Rows())
			require.NoError(t, err)
			Ir, err := matrix.NewIdentity(dr.Rows())
			require.NoError(t, err)
			k1, err := matrix.Kron(dl, Ir)
			require.NoError(t, err)
			k2, err := matrix.Kron(Il, dr)
			require.NoError(t, err)
			dwant, err := matrix.Add(k1, k2)
			require.NoError(t, err)
			dgot, err := prod.DrhoDense(lie)
			require.NoError(t, err)
			requireClose(t, dwant, dgot)
		})
	}
}

func TestRho_DirectProductActsPerGroup(t *testing.T) {
	z3 := must(group.Z(3))
	so2 := must(group.SO(2))
	r := rep.Vector(z3).Mul(rep.Vector(so2))

	// A Z(3) element acts as h ⊗ I on V_Z3 × V_SO2.
	h := z3.DiscreteGenerators()[0]
	got, err := r.RhoDense(rep.ActionOf(z3, h))
	require.NoError(t, err)
	I2, err := matrix.NewIdentity(2)
	require.NoError(t, err)
	want, err := matrix.Kron(h, I2)
	require.NoError(t, err)
	requireClose(t, want, got)

	// An SO(2) Lie element acts as 0⊗I + I⊗A.
	A := so2.LieAlgebra()[0]
	dgot, err := r.DrhoDense(rep.ActionOf(so2, A))
	require.NoError(t, err)
	I3, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	dwant, err := matrix.Kron(I3, A)
	require.NoError(t, err)
	requireClose(t, dwant, dgot)
}

func TestRho_Errors(t *testing.T) {
	sh := shearGroup(t)
	_, err := rep.V().Rho(rep.Action{})
	require.ErrorIs(t, err, rep.ErrUnboundRepresentation)
	_, err = rep.Vector(sh).Drho(nil)
	require.ErrorIs(t, err, rep.ErrMissingAction)

	wrong, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	_, err = rep.Vector(sh).Rho(rep.ActionOf(sh, wrong))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	singular, err := matrix.NewDenseRows([][]float64{{1, 1}, {1, 1}})
	require.NoError(t, err)
	_, err = rep.Vector(sh).Dual().RhoDense(rep.ActionOf(sh, singular))
	require.ErrorIs(t, err, matrix.ErrSingular)
}

func requireScalar(t *testing.T, want float64, m *matrix.Dense) {
	t.Helper()
	require.Equal(t, 1, m.Rows())
	require.Equal(t, 1, m.Cols())
	v, err := m.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, want, v)
}
