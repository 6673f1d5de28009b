// SPDX-License-Identifier: MIT

package basis

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/equivar/linop"
	"github.com/katalvlaran/equivar/matrix"
	"github.com/katalvlaran/equivar/rep"
	"github.com/katalvlaran/equivar/sparsify"
)

// SyncEngine makes an Engine safe for concurrent use. Concurrent requests
// whose canonical forms coincide share one solve; different keys are solved
// one at a time.
type SyncEngine struct {
	mu     sync.Mutex
	engine *Engine
	flight singleflight.Group
}

// NewSync wraps e. The caller must stop using e directly.
func NewSync(e *Engine) *SyncEngine {
	return &SyncEngine{engine: e}
}

// SymmetricBasis is Engine.SymmetricBasis, safe for concurrent callers.
func (s *SyncEngine) SymmetricBasis(r *rep.Rep) (*matrix.Dense, error) {
	if r != nil && r.Kind() == rep.KindScalar {
		return matrix.NewIdentity(1)
	}
	canon, perm, err := r.Canonicalize()
	if err != nil {
		return nil, basisErrorf(opBasis, err)
	}
	v, err, _ := s.flight.Do(canon.Key(), func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		return s.engine.canonicalBasis(canon, r)
	})
	if err != nil {
		return nil, basisErrorf(opBasis, err)
	}

	return fromCanonical(v.(*matrix.Dense), perm)
}

// SymmetricProjectorDense is Engine.SymmetricProjectorDense, safe for
// concurrent callers.
func (s *SyncEngine) SymmetricProjectorDense(r *rep.Rep) (*matrix.Dense, error) {
	q, err := s.SymmetricBasis(r)
	if err != nil {
		return nil, err
	}
	p, err := projector(q)
	if err != nil {
		return nil, err
	}

	return linop.ToDense(p)
}

// SparseBasis is Engine.SparseBasis, safe for concurrent callers.
func (s *SyncEngine) SparseBasis(r *rep.Rep, opts ...sparsify.Option) (*sparsify.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.SparseBasis(r, opts...)
}

// Solves is the number of solves run by the wrapped engine.
func (s *SyncEngine) Solves() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.Solves()
}
