// SPDX-License-Identifier: MIT

package group_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/equivar/group"
	"github.com/katalvlaran/equivar/matrix"
)

func TestReferenceGroups(t *testing.T) {
	for _, tc := range []struct {
		name                string
		build               func() (group.Group, error)
		d, discrete, lie    int
		orthogonal, regular bool
	}{
		{"Trivial(3)", func() (group.Group, error) { return group.Trivial(3) }, 3, 0, 0, true, true},
		{"SO(3)", func() (group.Group, error) { return group.SO(3) }, 3, 0, 3, true, false},
		{"O(2)", func() (group.Group, error) { return group.O(2) }, 2, 1, 1, true, false},
		{"S(4)", func() (group.Group, error) { return group.S(4) }, 4, 3, 0, true, true},
		{"Z(5)", func() (group.Group, error) { return group.Z(5) }, 5, 1, 0, true, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g, err := tc.build()
			require.NoError(t, err)
			assert.Equal(t, tc.name, g.Name())
			assert.Equal(t, tc.d, g.D())
			assert.Len(t, g.DiscreteGenerators(), tc.discrete)
			assert.Len(t, g.LieAlgebra(), tc.lie)
			assert.Equal(t, tc.orthogonal, g.IsOrthogonal())
			assert.Equal(t, tc.regular, g.IsRegular())

			for _, h := range g.DiscreteGenerators() {
				ok, err := matrix.IsOrthogonal(h)
				require.NoError(t, err)
				assert.True(t, ok)
			}
			for _, a := range g.LieAlgebra() {
				ok, err := matrix.IsAntisymmetric(a)
				require.NoError(t, err)
				assert.True(t, ok)
			}
		})
	}
}

func TestReferenceGroups_InvalidDimension(t *testing.T) {
	_, err := group.Trivial(0)
	require.ErrorIs(t, err, group.ErrInvalidDimension)
	_, err = group.SO(1)
	require.ErrorIs(t, err, group.ErrInvalidDimension)
	_, err = group.S(1)
	require.ErrorIs(t, err, group.ErrInvalidDimension)
	_, err = group.Z(0)
	require.ErrorIs(t, err, group.ErrInvalidDimension)
}

func TestCompare_TotalOrder(t *testing.T) {
	so3, err := group.SO(3)
	require.NoError(t, err)
	s3, err := group.S(3)
	require.NoError(t, err)
	so3b, err := group.SO(3)
	require.NoError(t, err)

	assert.True(t, group.Equal(so3, so3b))
	assert.Equal(t, -1, group.Compare(s3, so3)) // "S(3)" < "SO(3)"
	assert.Equal(t, 1, group.Compare(so3, s3))
	assert.Equal(t, -1, group.Compare(nil, s3))
	assert.Equal(t, 0, group.Compare(nil, nil))
}

func TestNewGeneric_DetectsFlags(t *testing.T) {
	shear, err := matrix.NewDenseRows([][]float64{{1, 1}, {0, 1}})
	require.NoError(t, err)
	g, err := group.NewGeneric("Shear", 2, []*matrix.Dense{shear}, nil)
	require.NoError(t, err)
	assert.False(t, g.IsOrthogonal())
	assert.False(t, g.IsRegular())

	swap, err := matrix.NewDenseRows([][]float64{{0, 1}, {1, 0}})
	require.NoError(t, err)
	p, err := group.NewGeneric("Swap", 2, []*matrix.Dense{swap}, nil)
	require.NoError(t, err)
	assert.True(t, p.IsOrthogonal())
	assert.True(t, p.IsRegular())

	// Generators are copied at construction.
	require.NoError(t, swap.Set(0, 0, 5))
	v, err := p.DiscreteGenerators()[0].At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	scale, err := matrix.NewDenseRows([][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)
	l, err := group.NewGeneric("Scaling", 2, nil, []*matrix.Dense{scale})
	require.NoError(t, err)
	assert.False(t, l.IsOrthogonal())
}

func TestNewGeneric_Errors(t *testing.T) {
	_, err := group.NewGeneric("", 2, nil, nil)
	require.ErrorIs(t, err, group.ErrEmptyName)
	_, err = group.NewGeneric("G", 0, nil, nil)
	require.ErrorIs(t, err, group.ErrInvalidDimension)
	wrong, err := matrix.NewDense(3, 3)
	require.NoError(t, err)
	_, err = group.NewGeneric("G", 2, []*matrix.Dense{wrong}, nil)
	require.ErrorIs(t, err, group.ErrBadGenerator)
	_, err = group.NewGeneric("G", 2, nil, []*matrix.Dense{nil})
	require.ErrorIs(t, err, group.ErrBadGenerator)
}
