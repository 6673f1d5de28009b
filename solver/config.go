// SPDX-License-Identifier: MIT

package solver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults. Config zero values are replaced by these in DefaultConfig only;
// a loaded Config is taken as written and then validated.
const (
	// DefaultTolerance is the null-space threshold: singular values (dense)
	// or √loss (iterative) below it count as zero.
	DefaultTolerance = 1e-5

	// DefaultDenseThreshold is the largest rows·cols solved by dense SVD.
	DefaultDenseThreshold int64 = 30_000_000

	// DefaultMemoryCeiling bounds rows·r of the iterative candidate residual.
	DefaultMemoryCeiling int64 = 2_000_000_000

	// DefaultInitialRank is the starting rank; the first solve uses twice it.
	DefaultInitialRank = 5

	DefaultLearningRate    = 1e-2
	DefaultMomentum        = 0.9
	DefaultMaxIterations   = 20000
	DefaultDivergenceLoss  = 2e3
	DefaultDivergenceWarm  = 100
	DefaultMinLearningRate = 1e-4
	DefaultBackoffFactor   = 3.0

	// DefaultGapFactor is the required ratio between the last kept singular
	// value and the first dropped one.
	DefaultGapFactor = 100.0

	// DefaultRetainFactor scales the tolerance into the singular value cutoff
	// used when orthogonalizing an iterative solution.
	DefaultRetainFactor = 10.0
)

// Config is the serializable solver configuration.
type Config struct {
	Tolerance           float64 `yaml:"tolerance"`
	DenseThreshold      int64   `yaml:"dense_threshold"`
	MemoryCeiling       int64   `yaml:"memory_ceiling"`
	InitialRank         int     `yaml:"initial_rank"`
	LearningRate        float64 `yaml:"learning_rate"`
	Momentum            float64 `yaml:"momentum"`
	MaxIterations       int     `yaml:"max_iterations"`
	DivergenceLoss      float64 `yaml:"divergence_loss"`
	DivergenceWarmup    int     `yaml:"divergence_warmup"`
	MinLearningRate     float64 `yaml:"min_learning_rate"`
	BackoffFactor       float64 `yaml:"backoff_factor"`
	GapFactor           float64 `yaml:"gap_factor"`
	RetainFactor        float64 `yaml:"retain_factor"`
	Seed                uint64  `yaml:"seed"`
	StrictMemoryCeiling bool    `yaml:"strict_memory_ceiling"`
	ForceIterative      bool    `yaml:"force_iterative"`
}

// DefaultConfig returns the configuration every solver starts from.
func DefaultConfig() Config {
	return Config{
		Tolerance:        DefaultTolerance,
		DenseThreshold:   DefaultDenseThreshold,
		MemoryCeiling:    DefaultMemoryCeiling,
		InitialRank:      DefaultInitialRank,
		LearningRate:     DefaultLearningRate,
		Momentum:         DefaultMomentum,
		MaxIterations:    DefaultMaxIterations,
		DivergenceLoss:   DefaultDivergenceLoss,
		DivergenceWarmup: DefaultDivergenceWarm,
		MinLearningRate:  DefaultMinLearningRate,
		BackoffFactor:    DefaultBackoffFactor,
		GapFactor:        DefaultGapFactor,
		RetainFactor:     DefaultRetainFactor,
	}
}

// Validate reports the first nonsensical field.
func (c Config) Validate() error {
	bad := func(field string, v any) error {
		return solverErrorf(opConfig, fmt.Errorf("%s=%v: %w", field, v, ErrInvalidConfig))
	}
	switch {
	case !(c.Tolerance > 0):
		return bad("tolerance", c.Tolerance)
	case c.DenseThreshold < 0:
		return bad("dense_threshold", c.DenseThreshold)
	case c.MemoryCeiling <= 0:
		return bad("memory_ceiling", c.MemoryCeiling)
	case c.InitialRank < 1:
		return bad("initial_rank", c.InitialRank)
	case !(c.LearningRate > 0):
		return bad("learning_rate", c.LearningRate)
	case c.Momentum < 0 || c.Momentum >= 1:
		return bad("momentum", c.Momentum)
	case c.MaxIterations < 1:
		return bad("max_iterations", c.MaxIterations)
	case !(c.DivergenceLoss > 0):
		return bad("divergence_loss", c.DivergenceLoss)
	case c.DivergenceWarmup < 0:
		return bad("divergence_warmup", c.DivergenceWarmup)
	case !(c.MinLearningRate > 0) || c.MinLearningRate > c.LearningRate:
		return bad("min_learning_rate", c.MinLearningRate)
	case !(c.BackoffFactor > 1):
		return bad("backoff_factor", c.BackoffFactor)
	case !(c.GapFactor >= 1):
		return bad("gap_factor", c.GapFactor)
	case !(c.RetainFactor > 0):
		return bad("retain_factor", c.RetainFactor)
	}

	return nil
}

// ParseConfig decodes YAML over DefaultConfig, so omitted keys keep their
// defaults. Unknown keys are rejected; an empty document yields the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, solverErrorf(opConfig, fmt.Errorf("parse: %w: %w", ErrInvalidConfig, err))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadConfig reads and parses a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, solverErrorf(opConfig, err)
	}

	return ParseConfig(data)
}
