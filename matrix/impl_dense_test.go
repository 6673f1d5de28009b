// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/equivar/matrix"
)

func TestNewDenseDefaultZero(t *testing.T) {
	for _, tc := range []struct{ rows, cols int }{
		{3, 3},
		{2, 6},
	} {
		name := fmt.Sprintf("%dx%d", tc.rows, tc.cols)
		t.Run(name, func(t *testing.T) {
			m := MustDense(t, tc.rows, tc.cols)
			var i, j int
			for i = 0; i < tc.rows; i++ {
				for j = 0; j < tc.cols; j++ {
					if v := MustAt(t, m, i, j); v != 0.0 {
						t.Fatalf("element [%d,%d] of a new Dense(%dx%d) must be 0", i, j, tc.rows, tc.cols)
					}
				}
			}
		})
	}
}

func TestNewDense_InvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewDense(3, -1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestNewDenseZeroOK(t *testing.T) {
	m, err := matrix.NewDenseZeroOK(4, 0)
	require.NoError(t, err)
	r, c := m.Shape()
	require.Equal(t, 4, r)
	require.Equal(t, 0, c)
	require.Empty(t, m.Data())

	_, err = matrix.NewDenseZeroOK(-1, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestNewDenseFrom(t *testing.T) {
	src := []float64{1, 2, 3, 4, 5, 6}
	m, err := matrix.NewDenseFrom(2, 3, src)
	require.NoError(t, err)
	src[0] = 99 // the constructor copies
	CompareExact(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, m)

	_, err = matrix.NewDenseFrom(2, 2, src)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewDenseFrom(1, 1, []float64{math.NaN()})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestNewDenseRows(t *testing.T) {
	m, err := matrix.NewDenseRows([][]float64{{1, 0}, {0, -1}})
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 0}, {0, -1}}, m)

	_, err = matrix.NewDenseRows([][]float64{{1, 0}, {1}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestAtSet_OutOfRange(t *testing.T) {
	m := MustDense(t, 2, 2)
	_, err := m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
}

func TestSet_NaNPolicy(t *testing.T) {
	m := MustDense(t, 1, 1)
	require.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)
	require.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, m.Apply(func(_, _ int, _ float64) float64 { return math.Inf(-1) }), matrix.ErrNaNInf)
	require.Equal(t, 0.0, MustAt(t, m, 0, 0))
}

func TestClone_IsDeep(t *testing.T) {
	m := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	c := m.Copy()
	MustSet(t, c, 0, 0, 42)
	require.Equal(t, 1.0, MustAt(t, m, 0, 0))
}

func TestInduced(t *testing.T) {
	m := NewFilledDense(t, 3, 3, []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})
	sub, err := m.Induced([]int{2, 0}, []int{1})
	require.NoError(t, err)
	CompareExact(t, [][]float64{{8}, {2}}, sub)

	empty, err := m.Induced([]int{0, 1}, nil)
	require.NoError(t, err)
	require.Equal(t, 0, empty.Cols())

	_, err = m.Induced([]int{3}, []int{0})
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestDoAndApply(t *testing.T) {
	m := NewFilledDense(t, 2, 2, []float64{1, -2, 3, -4})
	require.NoError(t, m.Apply(func(_, _ int, v float64) float64 { return math.Abs(v) }))
	sum := 0.0
	m.Do(func(_, _ int, v float64) bool {
		sum += v
		return true
	})
	require.Equal(t, 10.0, sum)
}

func TestString(t *testing.T) {
	m := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	require.Equal(t, "[1, 2]\n[3, 4]\n", m.String())
}
