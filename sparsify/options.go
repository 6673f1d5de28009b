// SPDX-License-Identifier: MIT

package sparsify

import (
	"fmt"

	"go.uber.org/zap"
)

// Defaults.
const (
	DefaultLearningRate     = 1e-2
	DefaultSteps            = 3000
	DefaultThreshold        = 1e-2
	DefaultOrthoWeight      = 0.1
	DefaultLogDetWeight     = 0.01
	DefaultDivergenceLoss   = 1e2
	DefaultDivergenceWarmup = 100
	DefaultBackoffFactor    = 3.0
	DefaultMinLearningRate  = 1e-6

	// Adam moments, as commonly defaulted.
	adamBeta1   = 0.9
	adamBeta2   = 0.999
	adamEpsilon = 1e-8
)

// Options configures Sparsify.
type Options struct {
	LearningRate     float64
	Steps            int
	Threshold        float64
	OrthoWeight      float64
	LogDetWeight     float64
	DivergenceLoss   float64
	DivergenceWarmup int
	BackoffFactor    float64
	MinLearningRate  float64
	Seed             uint64
	Logger           *zap.Logger
}

// Option mutates Options; constructors panic on nonsensical values.
type Option func(*Options)

// DefaultOptions returns the defaults with a no-op logger.
func DefaultOptions() Options {
	return Options{
		LearningRate:     DefaultLearningRate,
		Steps:            DefaultSteps,
		Threshold:        DefaultThreshold,
		OrthoWeight:      DefaultOrthoWeight,
		LogDetWeight:     DefaultLogDetWeight,
		DivergenceLoss:   DefaultDivergenceLoss,
		DivergenceWarmup: DefaultDivergenceWarmup,
		BackoffFactor:    DefaultBackoffFactor,
		MinLearningRate:  DefaultMinLearningRate,
		Logger:           zap.NewNop(),
	}
}

// WithLearningRate sets the initial Adam step size.
func WithLearningRate(lr float64) Option {
	if !(lr > 0) {
		panic(fmt.Sprintf("sparsify: WithLearningRate(%v): must be > 0", lr))
	}

	return func(o *Options) { o.LearningRate = lr }
}

// WithSteps sets the number of Adam steps per attempt.
func WithSteps(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("sparsify: WithSteps(%d): must be >= 1", n))
	}

	return func(o *Options) { o.Steps = n }
}

// WithThreshold sets the magnitude below which entries become zero.
func WithThreshold(eps float64) Option {
	if !(eps > 0) {
		panic(fmt.Sprintf("sparsify: WithThreshold(%v): must be > 0", eps))
	}

	return func(o *Options) { o.Threshold = eps }
}

// WithSeed fixes the random initial rotation.
func WithSeed(seed uint64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("sparsify: WithLogger(nil)")
	}

	return func(o *Options) { o.Logger = l }
}
