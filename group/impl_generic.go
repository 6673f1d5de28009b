// SPDX-License-Identifier: MIT

package group

import (
	"fmt"

	"github.com/katalvlaran/equivar/matrix"
)

const opGeneric = "NewGeneric"

// NewGeneric builds a group from explicit generators acting on ℝᵈ.
//
// Generators are copied. The orthogonal flag is detected: every discrete
// generator orthogonal and every Lie algebra generator antisymmetric (within
// matrix.DefaultEpsilon, or the eps given through opts). The regular flag
// requires an empty Lie algebra and permutation-matrix discrete generators.
//
// Errors: ErrEmptyName, ErrInvalidDimension, ErrBadGenerator.
func NewGeneric(name string, d int, discrete, lie []*matrix.Dense, opts ...matrix.Option) (Group, error) {
	if name == "" {
		return nil, groupErrorf(opGeneric, ErrEmptyName)
	}
	if d < 1 {
		return nil, groupErrorf(opGeneric, ErrInvalidDimension)
	}
	g := &base{name: name, d: d, orthogonal: true, regular: len(lie) == 0}
	var err error
	if g.discrete, err = copyGenerators(d, discrete); err != nil {
		return nil, groupErrorf(opGeneric, err)
	}
	if g.lie, err = copyGenerators(d, lie); err != nil {
		return nil, groupErrorf(opGeneric, err)
	}

	var ok bool
	for _, h := range g.discrete {
		if ok, err = matrix.IsOrthogonal(h, opts...); err != nil {
			return nil, groupErrorf(opGeneric, err)
		}
		g.orthogonal = g.orthogonal && ok
		g.regular = g.regular && isPermutationMatrix(h)
	}
	for _, a := range g.lie {
		if ok, err = matrix.IsAntisymmetric(a, opts...); err != nil {
			return nil, groupErrorf(opGeneric, err)
		}
		g.orthogonal = g.orthogonal && ok
	}

	return g, nil
}

func copyGenerators(d int, gens []*matrix.Dense) ([]*matrix.Dense, error) {
	out := make([]*matrix.Dense, len(gens))
	for i, m := range gens {
		if err := matrix.ValidateNotNil(m); err != nil {
			return nil, fmt.Errorf("generator %d: %w", i, ErrBadGenerator)
		}
		if m.Rows() != d || m.Cols() != d {
			return nil, fmt.Errorf("generator %d is %dx%d, d=%d: %w", i, m.Rows(), m.Cols(), d, ErrBadGenerator)
		}
		out[i] = m.Copy()
	}

	return out, nil
}

// isPermutationMatrix reports whether every row and column holds exactly one 1
// and zeros elsewhere.
func isPermutationMatrix(m *matrix.Dense) bool {
	n := m.Rows()
	colSeen := make([]bool, n)
	data := m.Data()
	for i := 0; i < n; i++ {
		ones := 0
		for j := 0; j < n; j++ {
			switch data[i*n+j] {
			case 0:
			case 1:
				if colSeen[j] {
					return false
				}
				colSeen[j] = true
				ones++
			default:
				return false
			}
		}
		if ones != 1 {
			return false
		}
	}

	return true
}
