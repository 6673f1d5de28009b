// SPDX-License-Identifier: MIT

package basis

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for basis computation.
type Metrics struct {
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Solves by path: "unconstrained", "dense", "iterative".
	Solves *prometheus.CounterVec

	// SolveDuration by path.
	SolveDuration *prometheus.HistogramVec

	// Warnings by source: "solver", "sparsify".
	Warnings *prometheus.CounterVec
}

// NewMetrics creates the basis metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		CacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "equivar_basis_cache_hits_total",
			Help: "Basis requests answered from the cache",
		}),
		CacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "equivar_basis_cache_misses_total",
			Help: "Basis requests that required a solve",
		}),
		Solves: f.NewCounterVec(prometheus.CounterOpts{
			Name: "equivar_basis_solves_total",
			Help: "Null-space solves by path",
		}, []string{"path"}),
		SolveDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "equivar_basis_solve_duration_seconds",
			Help:    "Duration of null-space solves by path",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120, 600},
		}, []string{"path"}),
		Warnings: f.NewCounterVec(prometheus.CounterOpts{
			Name: "equivar_basis_numerical_warnings_total",
			Help: "Non-fatal numerical quality warnings by source",
		}, []string{"source"}),
	}
}

// IncrementHit records a cache hit.
func (m *Metrics) IncrementHit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}

// IncrementMiss records a cache miss.
func (m *Metrics) IncrementMiss() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}

// ObserveSolve records one solve on path.
func (m *Metrics) ObserveSolve(path string, d time.Duration) {
	if m != nil {
		m.Solves.WithLabelValues(path).Inc()
		m.SolveDuration.WithLabelValues(path).Observe(d.Seconds())
	}
}

// AddWarnings records n warnings from source.
func (m *Metrics) AddWarnings(source string, n int) {
	if m != nil && n > 0 {
		m.Warnings.WithLabelValues(source).Add(float64(n))
	}
}
