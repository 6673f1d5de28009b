// SPDX-License-Identifier: MIT

package solver

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/equivar/constraint"
	"github.com/katalvlaran/equivar/matrix"
)

// Path names the regime that produced a basis.
type Path string

const (
	// PathUnconstrained: C has no rows, the basis is the identity.
	PathUnconstrained Path = "unconstrained"
	PathDense         Path = "dense"
	PathIterative     Path = "iterative"
)

// Result is a null-space basis plus diagnostics.
type Result struct {
	// Basis is n×k with orthonormal columns and C·Basis ≈ 0. k may be 0.
	Basis *matrix.Dense

	Path Path

	// Iterations counts gradient steps over every attempt and rank (0 for
	// the dense path).
	Iterations int

	// Warnings lists non-fatal numerical diagnostics, already logged.
	Warnings []string
}

// Rank is the number of basis columns.
func (r *Result) Rank() int { return r.Basis.Cols() }

// Solver runs null-space solves with a fixed configuration. It holds no
// per-solve state and is safe for concurrent use.
type Solver struct {
	cfg Config
	log *zap.Logger
}

// New builds a Solver from DefaultOptions plus opts.
//
// Errors: ErrInvalidConfig.
func New(opts ...Option) (*Solver, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Config.Validate(); err != nil {
		return nil, err
	}

	return &Solver{cfg: o.Config, log: o.Logger}, nil
}

// Config returns the effective configuration.
func (s *Solver) Config() Config { return s.cfg }

// Solve picks the regime for c and returns its null-space basis in c's
// coordinates.
func (s *Solver) Solve(c *constraint.Operator) (*Result, error) {
	if c == nil {
		return nil, solverErrorf(opSolve, matrix.ErrNilMatrix)
	}
	rows, cols := c.Shape()
	path := PathIterative
	if !s.cfg.ForceIterative && c.Entries() <= s.cfg.DenseThreshold {
		path = PathDense
	}
	s.log.Info("solving basis",
		zap.Stringer("rep", c.Rep()),
		zap.Int("rows", rows),
		zap.Int("cols", cols),
		zap.String("path", string(path)))

	if path == PathDense {
		return s.Dense(c)
	}

	return s.Iterative(c)
}
