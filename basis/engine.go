// SPDX-License-Identifier: MIT

package basis

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/equivar/constraint"
	"github.com/katalvlaran/equivar/linop"
	"github.com/katalvlaran/equivar/matrix"
	"github.com/katalvlaran/equivar/rep"
	"github.com/katalvlaran/equivar/solver"
	"github.com/katalvlaran/equivar/sparsify"
)

const (
	opBasis     = "basis.SymmetricBasis"
	opProjector = "basis.SymmetricProjector"
	opSparse    = "basis.SparseBasis"
)

func basisErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Options configures an Engine.
type Options struct {
	Cache   *Cache
	Solver  *solver.Solver
	Logger  *zap.Logger
	Metrics *Metrics
}

// Option mutates Options. Nil arguments panic.
type Option func(*Options)

// WithCache injects a cache, which may be shared between engines.
func WithCache(c *Cache) Option {
	if c == nil {
		panic("basis: WithCache(nil)")
	}

	return func(o *Options) { o.Cache = c }
}

// WithSolver sets the null-space solver.
func WithSolver(s *solver.Solver) Option {
	if s == nil {
		panic("basis: WithSolver(nil)")
	}

	return func(o *Options) { o.Solver = s }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("basis: WithLogger(nil)")
	}

	return func(o *Options) { o.Logger = l }
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	if m == nil {
		panic("basis: WithMetrics(nil)")
	}

	return func(o *Options) { o.Metrics = m }
}

// Engine answers basis requests through a cache of canonical solves.
type Engine struct {
	cache   *Cache
	solver  *solver.Solver
	log     *zap.Logger
	metrics *Metrics
	solves  int
}

// New builds an Engine. Without WithSolver it uses solver.New() with the
// engine's logger.
func New(opts ...Option) (*Engine, error) {
	o := Options{Logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Cache == nil {
		o.Cache = NewCache()
	}
	if o.Solver == nil {
		s, err := solver.New(solver.WithLogger(o.Logger))
		if err != nil {
			return nil, err
		}
		o.Solver = s
	}

	return &Engine{cache: o.Cache, solver: o.Solver, log: o.Logger, metrics: o.Metrics}, nil
}

// Solves is the number of null-space solves this engine has run.
func (e *Engine) Solves() int { return e.solves }

// Cache returns the engine's cache.
func (e *Engine) Cache() *Cache { return e.cache }

// SymmetricBasis returns Q (size × rank) with orthonormal columns spanning
// the maps fixed by r's group action, in r's own coordinates. Scalar gives
// [[1]] without touching the cache.
//
// Errors: rep.ErrNilRepresentation, rep.ErrUnboundRepresentation, and solver
// errors (solver.ErrConvergence, solver.ErrResourceExceeded, ...).
func (e *Engine) SymmetricBasis(r *rep.Rep) (*matrix.Dense, error) {
	if r != nil && r.Kind() == rep.KindScalar {
		return matrix.NewIdentity(1)
	}
	canon, perm, err := r.Canonicalize()
	if err != nil {
		return nil, basisErrorf(opBasis, err)
	}
	q, err := e.canonicalBasis(canon, r)
	if err != nil {
		return nil, basisErrorf(opBasis, err)
	}

	return fromCanonical(q, perm)
}

// canonicalBasis returns the cached canonical-order basis of canon, solving
// on a miss. orig is only used for log context.
func (e *Engine) canonicalBasis(canon, orig *rep.Rep) (*matrix.Dense, error) {
	key := canon.Key()
	if q, ok := e.cache.Get(key); ok {
		e.metrics.IncrementHit()
		e.log.Debug("basis cache hit", zap.Stringer("rep", canon))

		return q, nil
	}
	e.metrics.IncrementMiss()
	e.log.Debug("basis cache miss", zap.Stringer("rep", canon), zap.Stringer("requested", orig))

	c, err := constraint.Build(canon)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	res, err := e.solver.Solve(c)
	if err != nil {
		return nil, err
	}
	e.solves++
	e.metrics.ObserveSolve(string(res.Path), time.Since(start))
	e.metrics.AddWarnings("solver", len(res.Warnings))
	e.cache.Put(key, res.Basis)

	return res.Basis, nil
}

// fromCanonical maps a canonical-order basis back: row i of the result is
// row inv(perm)[i] of q.
func fromCanonical(q *matrix.Dense, perm []int) (*matrix.Dense, error) {
	inv, err := matrix.InversePermutation(perm)
	if err != nil {
		return nil, basisErrorf(opBasis, err)
	}

	return matrix.PermuteRows(q, inv)
}

// SymmetricProjector returns the lazy orthogonal projector P = Q·Qᵀ onto the
// equivariant subspace of r.
func (e *Engine) SymmetricProjector(r *rep.Rep) (linop.Operator, error) {
	q, err := e.SymmetricBasis(r)
	if err != nil {
		return nil, err
	}

	return projector(q)
}

func projector(q *matrix.Dense) (linop.Operator, error) {
	n, k := q.Shape()
	if k == 0 {
		return linop.Zero(n, n), nil
	}
	qop, err := linop.Dense(q)
	if err != nil {
		return nil, basisErrorf(opProjector, err)
	}

	return linop.Compose(qop, linop.Transpose(qop))
}

// SymmetricProjectorDense materializes SymmetricProjector(r).
func (e *Engine) SymmetricProjectorDense(r *rep.Rep) (*matrix.Dense, error) {
	p, err := e.SymmetricProjector(r)
	if err != nil {
		return nil, err
	}

	return linop.ToDense(p)
}

// SparseBasis returns a sparse, sign-valued rotation of SymmetricBasis(r).
// A failed separation check is counted as a warning, not an error.
func (e *Engine) SparseBasis(r *rep.Rep, opts ...sparsify.Option) (*sparsify.Result, error) {
	q, err := e.SymmetricBasis(r)
	if err != nil {
		return nil, err
	}
	opts = append([]sparsify.Option{sparsify.WithLogger(e.log)}, opts...)
	res, err := sparsify.Sparsify(q, opts...)
	if err != nil {
		return nil, basisErrorf(opSparse, err)
	}
	if !res.Separated {
		e.metrics.AddWarnings("sparsify", 1)
	}

	return res, nil
}
