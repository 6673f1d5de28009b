// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"math"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/katalvlaran/equivar/linop"
	"github.com/katalvlaran/equivar/matrix"
)

// seedSalt decorrelates the two PCG words derived from one seed.
const seedSalt = 0x9e3779b97f4a7c15

// Iterative solves matrix-free by momentum gradient descent on ½‖C·W‖²_F.
//
// Implementation:
//   - Stage 1: reject operators whose smallest candidate already exceeds the
//     memory ceiling (rows·2·InitialRank > MemoryCeiling).
//   - Stage 2: r = min(2r, n); solve for an n×r candidate (solveUpTo).
//   - Stage 3: repeat Stage 2 while the whole candidate lies in the null space
//     and r < n. Crossing the ceiling stops growth with the current basis
//     (ErrResourceExceeded in strict mode).
//
// The random source is re-seeded per call, so equal inputs give equal bits.
//
// Errors: ErrResourceExceeded, ErrConvergence, ErrBasisQuality, operator errors.
func (s *Solver) Iterative(c linop.Operator) (*Result, error) {
	if c == nil {
		return nil, solverErrorf(opIterative, matrix.ErrNilMatrix)
	}
	rows, n := c.Shape()
	if rows == 0 {
		return unconstrained(n)
	}
	cfg := s.cfg
	if int64(rows)*int64(cfg.InitialRank)*2 > cfg.MemoryCeiling {
		return nil, solverErrorf(opIterative, fmt.Errorf("solutions for %dx%d constraints need %d entries: %w",
			rows, n, int64(rows)*int64(cfg.InitialRank)*2, ErrResourceExceeded))
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^seedSalt))
	res := &Result{Path: PathIterative}
	r := cfg.InitialRank
	var (
		q        *matrix.Dense
		warnings []string
	)
	for q == nil || (q.Cols() == r && r < n) {
		r = min(2*r, n)
		if int64(rows)*int64(r) > cfg.MemoryCeiling {
			if cfg.StrictMemoryCeiling {
				return nil, solverErrorf(opIterative, fmt.Errorf("rank %d over %d rows: %w", r, rows, ErrResourceExceeded))
			}
			s.log.Error("hit memory ceiling, returning sampled equivariant subspace",
				zap.Int("rank", q.Cols()),
				zap.Int("rows", rows),
				zap.Int64("memory_ceiling", cfg.MemoryCeiling))
			warnings = append(warnings, fmt.Sprintf("memory ceiling reached at rank %d", q.Cols()))
			break
		}
		s.log.Debug("iterative solve", zap.Int("rank_limit", r), zap.Int("cols", n))

		var (
			steps int
			err   error
		)
		q, steps, warnings, err = s.solveUpTo(c, r, rng)
		res.Iterations += steps
		if err != nil {
			return nil, solverErrorf(opIterative, err)
		}
	}
	res.Basis = q
	res.Warnings = warnings

	return res, nil
}

// solveUpTo finds an orthonormal basis of at most r null-space directions.
// Divergence restarts from a fresh candidate with lr/BackoffFactor; the loop
// ends because lr strictly decreases towards MinLearningRate.
func (s *Solver) solveUpTo(c linop.Operator, r int, rng *rand.Rand) (*matrix.Dense, int, []string, error) {
	cfg := s.cfg
	_, n := c.Shape()
	var total int
	for lr := cfg.LearningRate; ; lr /= cfg.BackoffFactor {
		w, err := matrix.RandNormal(n, r, 1/math.Sqrt(float64(n)), rng)
		if err != nil {
			return nil, total, nil, err
		}
		converged, diverged, steps, err := s.descend(c, w, lr)
		total += steps
		if err != nil {
			return nil, total, nil, err
		}
		if diverged {
			s.log.Warn("constraint solve diverged, lowering learning rate",
				zap.Float64("learning_rate", lr/cfg.BackoffFactor),
				zap.Int("rank_limit", r))
			if lr < cfg.MinLearningRate {
				return nil, total, nil, fmt.Errorf("diverged even with learning rate %.2e: %w", lr, ErrConvergence)
			}
			continue
		}
		if !converged {
			return nil, total, nil, fmt.Errorf("no convergence in %d steps: %w", cfg.MaxIterations, ErrConvergence)
		}
		q, warnings, err := s.orthogonalize(c, w)

		return q, total, warnings, err
	}
}

// descend runs heavy-ball gradient descent on w in place:
//
//	g = Cᵀ·C·w,  v = g + μ·v,  w = w − lr·v.
//
// It stops when √loss < tol (converged) or, after the warm-up, when the loss
// exceeds DivergenceLoss or is NaN (diverged).
func (s *Solver) descend(c linop.Operator, w *matrix.Dense, lr float64) (bool, bool, int, error) {
	cfg := s.cfg
	velocity, err := matrix.ZerosLike(w)
	if err != nil {
		return false, false, 0, err
	}
	var (
		i          int
		k          int
		loss       float64
		cw, grad   *matrix.Dense
		wd, vd, gd []float64
	)
	for i = 0; i < cfg.MaxIterations; i++ {
		if cw, err = c.Apply(w); err != nil {
			return false, false, i, err
		}
		loss = 0.5 * matrix.SumSquares(cw)
		if grad, err = c.ApplyT(cw); err != nil {
			return false, false, i, err
		}
		wd, vd, gd = w.Data(), velocity.Data(), grad.Data()
		for k = range vd {
			vd[k] = gd[k] + cfg.Momentum*vd[k]
			wd[k] -= lr * vd[k]
		}

		if math.Sqrt(loss) < cfg.Tolerance {
			return true, false, i + 1, nil
		}
		if i > cfg.DivergenceWarmup && (loss > cfg.DivergenceLoss || math.IsNaN(loss)) {
			return false, true, i + 1, nil
		}
	}

	return false, false, cfg.MaxIterations, nil
}

// orthogonalize turns a converged candidate into an orthonormal basis: thin
// SVD, keep left singular vectors with σ > RetainFactor·tol, then re-check
// the residual and the singular value gap.
func (s *Solver) orthogonalize(c linop.Operator, w *matrix.Dense) (*matrix.Dense, []string, error) {
	cfg := s.cfg
	u, sv, _, err := matrix.ThinSVD(w)
	if err != nil {
		return nil, nil, err
	}
	var rank int
	for _, sigma := range sv {
		if sigma > cfg.RetainFactor*cfg.Tolerance {
			rank++
		}
	}
	q, err := matrix.Columns(u, 0, rank)
	if err != nil {
		return nil, nil, err
	}

	cq, err := c.Apply(q)
	if err != nil {
		return nil, nil, err
	}
	finalLoss := 0.5 * matrix.SumSquares(cq)
	if finalLoss >= cfg.Tolerance {
		return nil, nil, fmt.Errorf("normalized basis loss %.2e for tolerance %.2e: %w", finalLoss, cfg.Tolerance, ErrBasisQuality)
	}

	var warnings []string
	if rank > 0 {
		cutoff := 0.0
		if len(sv) > rank {
			cutoff = sv[rank]
		}
		if !(cutoff < sv[rank-1]/cfg.GapFactor) {
			msg := fmt.Sprintf("singular value gap too small: %.2e kept, %.2e dropped", sv[rank-1], cutoff)
			s.log.Warn(msg,
				zap.String("warning", WarningNumericalQuality),
				zap.Float64("kept", sv[rank-1]),
				zap.Float64("dropped", cutoff),
				zap.Float64("final_loss", finalLoss))
			warnings = append(warnings, msg)
		}
	}

	return q, warnings, nil
}
