// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"

	"go.uber.org/zap"
)

// Options holds the effective configuration of a Solver.
type Options struct {
	Config Config
	Logger *zap.Logger
}

// Option mutates Options. Constructors panic on nonsensical arguments;
// New validates the combined result.
type Option func(*Options)

// DefaultOptions returns DefaultConfig with a no-op logger.
func DefaultOptions() Options {
	return Options{Config: DefaultConfig(), Logger: zap.NewNop()}
}

// WithConfig replaces the whole configuration (for example one returned by
// LoadConfig). Later options still apply on top of it.
func WithConfig(cfg Config) Option {
	return func(o *Options) { o.Config = cfg }
}

// WithLogger sets the logger. A nil logger panics.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("solver: WithLogger(nil)")
	}

	return func(o *Options) { o.Logger = l }
}

// WithTolerance sets the null-space tolerance. Panics unless tol > 0.
func WithTolerance(tol float64) Option {
	if !(tol > 0) {
		panic(fmt.Sprintf("solver: WithTolerance(%v): tolerance must be > 0", tol))
	}

	return func(o *Options) { o.Config.Tolerance = tol }
}

// WithDenseThreshold sets the largest rows·cols handled by dense SVD.
// Panics on a negative threshold; zero sends everything down the iterative path.
func WithDenseThreshold(entries int64) Option {
	if entries < 0 {
		panic(fmt.Sprintf("solver: WithDenseThreshold(%d): must be >= 0", entries))
	}

	return func(o *Options) { o.Config.DenseThreshold = entries }
}

// WithMemoryCeiling bounds rows·r for the iterative candidate.
func WithMemoryCeiling(entries int64, strict bool) Option {
	if entries <= 0 {
		panic(fmt.Sprintf("solver: WithMemoryCeiling(%d): must be > 0", entries))
	}

	return func(o *Options) {
		o.Config.MemoryCeiling = entries
		o.Config.StrictMemoryCeiling = strict
	}
}

// WithForceIterative routes every solve through the iterative path.
func WithForceIterative() Option {
	return func(o *Options) { o.Config.ForceIterative = true }
}

// WithSeed fixes the random source of the iterative path.
func WithSeed(seed uint64) Option {
	return func(o *Options) { o.Config.Seed = seed }
}

// WithMaxIterations caps the gradient steps of one iterative attempt.
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("solver: WithMaxIterations(%d): must be >= 1", n))
	}

	return func(o *Options) { o.Config.MaxIterations = n }
}

// WithLearningRate sets the initial learning rate of the iterative path.
func WithLearningRate(lr float64) Option {
	if !(lr > 0) {
		panic(fmt.Sprintf("solver: WithLearningRate(%v): must be > 0", lr))
	}

	return func(o *Options) { o.Config.LearningRate = lr }
}
