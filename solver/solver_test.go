// SPDX-License-Identifier: MIT

package solver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/equivar/constraint"
	"github.com/katalvlaran/equivar/group"
	"github.com/katalvlaran/equivar/matrix"
	"github.com/katalvlaran/equivar/rep"
	"github.com/katalvlaran/equivar/solver"
)

func TestNew(t *testing.T) {
	s, err := solver.New()
	require.NoError(t, err)
	assert.Equal(t, solver.DefaultConfig(), s.Config())

	s, err = solver.New(solver.WithTolerance(1e-7), solver.WithForceIterative(), solver.WithSeed(7))
	require.NoError(t, err)
	assert.Equal(t, 1e-7, s.Config().Tolerance)
	assert.True(t, s.Config().ForceIterative)
	assert.Equal(t, uint64(7), s.Config().Seed)

	_, err = solver.New(solver.WithConfig(solver.Config{}))
	require.ErrorIs(t, err, solver.ErrInvalidConfig)
}

func TestOptions_PanicOnNonsense(t *testing.T) {
	assert.Panics(t, func() { solver.WithTolerance(0) })
	assert.Panics(t, func() { solver.WithLogger(nil) })
	assert.Panics(t, func() { solver.WithDenseThreshold(-1) })
	assert.Panics(t, func() { solver.WithMemoryCeiling(0, false) })
	assert.Panics(t, func() { solver.WithMaxIterations(0) })
	assert.Panics(t, func() { solver.WithLearningRate(-1) })
}

func TestSolve_Unconstrained(t *testing.T) {
	s := must(solver.New())
	res, err := s.Solve(square(t, must(group.Trivial(3))))
	require.NoError(t, err)
	assert.Equal(t, solver.PathUnconstrained, res.Path)
	assert.Equal(t, 9, res.Rank())
	id, err := matrix.NewIdentity(9)
	require.NoError(t, err)
	ok, err := matrix.AllClose(id, res.Basis, 0, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	// The iterative path agrees without running any descent.
	res, err = must(solver.New(solver.WithForceIterative())).Solve(square(t, must(group.Trivial(3))))
	require.NoError(t, err)
	assert.Equal(t, 9, res.Rank())
	assert.Zero(t, res.Iterations)
}

func TestSolve_DenseRanks(t *testing.T) {
	for _, tc := range []struct {
		name string
		g    group.Group
		rank int
	}{
		{"S(3)", must(group.S(3)), 2},  // I and 11ᵀ
		{"SO(3)", must(group.SO(3)), 1}, // δ_ij
		{"SO(2)", must(group.SO(2)), 2}, // δ_ij and ε_ij
		{"Z(4)", must(group.Z(4)), 4},   // circulants
	} {
		t.Run(tc.name, func(t *testing.T) {
			log, logs := observed()
			s := must(solver.New(solver.WithLogger(log)))
			c := square(t, tc.g)
			res, err := s.Solve(c)
			require.NoError(t, err)
			assert.Equal(t, solver.PathDense, res.Path)
			assert.Equal(t, tc.rank, res.Rank())
			assert.Zero(t, res.Iterations)
			requireNullSpace(t, c, res.Basis, 1e-10)

			entries := logs.FilterMessage("solving basis").All()
			require.Len(t, entries, 1)
			assert.Equal(t, "dense", entries[0].ContextMap()["path"])
		})
	}
}

func TestSolve_EmptyNullSpace(t *testing.T) {
	// O(2) fixes no vector of ℝ².
	c, err := constraint.Build(rep.Vector(must(group.O(2))))
	require.NoError(t, err)
	for _, s := range []*solver.Solver{
		must(solver.New()),
		must(solver.New(solver.WithForceIterative())),
	} {
		res, err := s.Solve(c)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Rank())
		assert.Equal(t, 2, res.Basis.Rows())
	}
}

// The iterative path must find the same subspace as dense SVD.
func TestSolve_IterativeMatchesDense(t *testing.T) {
	for _, g := range []group.Group{must(group.S(3)), must(group.SO(3)), must(group.Z(4))} {
		t.Run(g.Name(), func(t *testing.T) {
			c := square(t, g)
			dense, err := must(solver.New()).Solve(c)
			require.NoError(t, err)

			log, logs := observed()
			iter, err := must(solver.New(solver.WithForceIterative(), solver.WithLogger(log))).Solve(c)
			require.NoError(t, err)
			assert.Equal(t, solver.PathIterative, iter.Path)
			assert.Equal(t, dense.Rank(), iter.Rank())
			assert.Positive(t, iter.Iterations)
			requireNullSpace(t, c, iter.Basis, 1e-3)

			ok, err := matrix.AllClose(projector(t, dense.Basis), projector(t, iter.Basis), 0, 1e-3)
			require.NoError(t, err)
			assert.True(t, ok, "projectors differ")
			assert.Equal(t, "iterative", logs.FilterMessage("solving basis").All()[0].ContextMap()["path"])
		})
	}
}

// Without forcing, the path follows the constraint size.
func TestSolve_DenseThresholdPicksPath(t *testing.T) {
	c := square(t, must(group.SO(3)))
	require.Greater(t, c.Entries(), int64(1))

	dense, err := must(solver.New()).Solve(c)
	require.NoError(t, err)
	assert.Equal(t, solver.PathDense, dense.Path)

	iter, err := must(solver.New(solver.WithDenseThreshold(1))).Solve(c)
	require.NoError(t, err)
	assert.Equal(t, solver.PathIterative, iter.Path)
	assert.Equal(t, dense.Rank(), iter.Rank())
	requireNullSpace(t, c, iter.Basis, 1e-3)

	// The threshold is inclusive.
	exact, err := must(solver.New(solver.WithDenseThreshold(c.Entries()))).Solve(c)
	require.NoError(t, err)
	assert.Equal(t, solver.PathDense, exact.Path)
}

// The dropped singular values of a converged candidate are small but never
// 1e30 times smaller than the kept one.
func TestIterative_SingularGapWarning(t *testing.T) {
	cfg := solver.DefaultConfig()
	cfg.GapFactor = 1e30
	cfg.ForceIterative = true
	log, logs := observed()
	c := square(t, must(group.SO(3)))

	res, err := must(solver.New(solver.WithConfig(cfg), solver.WithLogger(log))).Solve(c)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rank())
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "singular value gap too small")

	entries := logs.FilterField(zap.String("warning", solver.WarningNumericalQuality)).All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, res.Warnings[0], entries[0].Message)
}

// A loose tolerance lets the descent stop while row 0 is still populated; with
// every column retained, the orthonormalized basis spans all of ℝ⁴ and the
// residual ½‖C·Q‖² = ½·2² exceeds the tolerance.
func TestIterative_BasisQuality(t *testing.T) {
	cfg := solver.DefaultConfig()
	cfg.Tolerance = 0.5
	cfg.RetainFactor = 1e-9
	s := must(solver.New(solver.WithConfig(cfg)))

	_, err := s.Iterative(rowConstraint(t, 4, 2))
	require.ErrorIs(t, err, solver.ErrBasisQuality)
}

func TestIterative_Deterministic(t *testing.T) {
	c := square(t, must(group.S(3)))
	s := must(solver.New(solver.WithForceIterative(), solver.WithSeed(42)))
	a, err := s.Solve(c)
	require.NoError(t, err)
	b, err := s.Solve(c)
	require.NoError(t, err)
	assert.Equal(t, a.Basis.Data(), b.Basis.Data())
	assert.Equal(t, a.Iterations, b.Iterations)
}

func TestIterative_MemoryCeiling(t *testing.T) {
	c := rowConstraint(t, 20, 1)

	// 1·5·2 = 10 ≤ 15 admits rank 10; the next rank (20) crosses the ceiling.
	log, logs := observed()
	s := must(solver.New(solver.WithMemoryCeiling(15, false), solver.WithLogger(log)))
	res, err := s.Iterative(c)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Rank())
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, 1, logs.FilterMessage("hit memory ceiling, returning sampled equivariant subspace").Len())
	requireNullSpace(t, c, res.Basis, 1e-3)

	_, err = must(solver.New(solver.WithMemoryCeiling(15, true))).Iterative(c)
	require.ErrorIs(t, err, solver.ErrResourceExceeded)

	_, err = must(solver.New(solver.WithMemoryCeiling(9, false))).Iterative(c)
	require.ErrorIs(t, err, solver.ErrResourceExceeded)
}

func TestIterative_FullRankStopsAtDimension(t *testing.T) {
	// Null space of dimension 29 in ℝ³⁰: ranks 10, 20, then capped at 30.
	s := must(solver.New())
	res, err := s.Iterative(rowConstraint(t, 30, 1))
	require.NoError(t, err)
	assert.Equal(t, 29, res.Rank())
}

func TestIterative_StepBudget(t *testing.T) {
	s := must(solver.New(solver.WithMaxIterations(1)))
	_, err := s.Iterative(rowConstraint(t, 4, 1))
	require.ErrorIs(t, err, solver.ErrConvergence)
}

func TestIterative_DivergenceBackoff(t *testing.T) {
	cfg := solver.DefaultConfig()
	cfg.LearningRate = 10
	cfg.MinLearningRate = 0.5
	cfg.DivergenceWarmup = 5
	log, logs := observed()
	s := must(solver.New(solver.WithConfig(cfg), solver.WithLogger(log)))

	// Curvature 100: every rate ≥ 0.038 diverges, so 10, 3.3, 1.1, 0.37 all
	// fail and the last one is below the minimum.
	_, err := s.Iterative(rowConstraint(t, 4, 10))
	require.ErrorIs(t, err, solver.ErrConvergence)
	assert.Equal(t, 4, logs.FilterMessage("constraint solve diverged, lowering learning rate").Len())
}

func TestSolve_Nil(t *testing.T) {
	s := must(solver.New())
	_, err := s.Solve(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = s.Dense(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = s.Iterative(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
