// SPDX-License-Identifier: MIT

package sparsify

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/hashicorp/go-set/v3"
	"go.uber.org/zap"

	"github.com/katalvlaran/equivar/matrix"
	"github.com/katalvlaran/equivar/solver"
)

// ErrConvergence is solver.ErrConvergence: the rotation search kept
// diverging down to the minimum learning rate.
var ErrConvergence = solver.ErrConvergence

const opSparsify = "sparsify.Sparsify"

// seedSalt decorrelates the two PCG words derived from one seed.
const seedSalt = 0x2545f4914f6cdd1d

// Result is a sparsified basis.
type Result struct {
	// Basis is n×r with entries in {−1, 0, +1}.
	Basis *matrix.Dense

	// Distinct is the number of distinct signature magnitudes.
	Distinct int

	// Separated reports Distinct ∈ {r, r+1}.
	Separated bool

	// Steps counts Adam steps over every attempt.
	Steps int
}

// Sparsify returns a sparse, sign-valued rotation of q.
//
// Implementation:
//   - Stage 1: W = orthogonal factor of an r×r Gaussian.
//   - Stage 2: Adam on the loss for Steps steps. A loss above DivergenceLoss
//     after the warm-up restarts Stage 1 with lr/BackoffFactor.
//   - Stage 3: threshold and sign Q·Wᵀ, then check separation.
//
// Errors: matrix.ErrNilMatrix, ErrConvergence, matrix.ErrSingular when W
// collapses onto a singular matrix.
func Sparsify(q *matrix.Dense, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := matrix.ValidateNotNil(q); err != nil {
		return nil, fmt.Errorf("%s: %w", opSparsify, err)
	}
	r := q.Cols()
	if r == 0 {
		return &Result{Basis: q.Copy(), Separated: true}, nil
	}

	rng := rand.New(rand.NewPCG(o.Seed, o.Seed^seedSalt))
	var (
		w     *matrix.Dense
		steps int
		err   error
	)
	for lr := o.LearningRate; ; lr /= o.BackoffFactor {
		if lr < o.MinLearningRate {
			return nil, fmt.Errorf("%s: diverged down to learning rate %.2e: %w", opSparsify, lr, ErrConvergence)
		}
		if w, err = randomRotation(r, rng); err != nil {
			return nil, fmt.Errorf("%s: %w", opSparsify, err)
		}
		n, diverged, err := adam(q, w, lr, &o)
		steps += n
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opSparsify, err)
		}
		if !diverged {
			break
		}
		o.Logger.Warn("basis sparsification diverged, lowering learning rate",
			zap.Float64("learning_rate", lr/o.BackoffFactor))
	}

	wt, err := matrix.Transpose(w)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSparsify, err)
	}
	sparse, err := matrix.Mul(q, wt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSparsify, err)
	}
	err = sparse.Apply(func(_, _ int, v float64) float64 {
		switch {
		case math.Abs(v) < o.Threshold:
			return 0
		case v > 0:
			return 1
		default:
			return -1
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSparsify, err)
	}

	distinct, separated := separation(sparse)
	if !separated {
		o.Logger.Error("basis elements did not separate",
			zap.String("warning", solver.WarningNumericalQuality),
			zap.Int("distinct", distinct),
			zap.Int("rank", r))
	}

	return &Result{Basis: sparse, Distinct: distinct, Separated: separated, Steps: steps}, nil
}

// separation counts distinct |Σ_j (j+1)·Q_ij| over rows i.
func separation(q *matrix.Dense) (int, bool) {
	rows, r := q.Shape()
	seen := set.New[float64](rows)
	sig := make([]float64, rows)
	q.Do(func(i, j int, v float64) bool {
		sig[i] += float64(j+1) * v
		return true
	})
	for _, v := range sig {
		seen.Insert(math.Abs(v))
	}
	distinct := seen.Size()

	return distinct, distinct == r || distinct == r+1
}

func randomRotation(r int, rng *rand.Rand) (*matrix.Dense, error) {
	g, err := matrix.RandNormal(r, r, 1, rng)
	if err != nil {
		return nil, err
	}
	qf, _, err := matrix.QR(g)

	return qf, err
}
