// SPDX-License-Identifier: MIT

package bilinear

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/katalvlaran/equivar/matrix"
	"github.com/katalvlaran/equivar/rep"
)

// Sentinel errors.
var (
	// ErrParamsLength is returned when len(params) != ActiveDims().
	ErrParamsLength = errors.New("bilinear: params length does not match active dims")

	// ErrInputShape is returned when x does not have in.Size() columns.
	ErrInputShape = errors.New("bilinear: input batch has wrong width")
)

const (
	opNew   = "bilinear.New"
	opApply = "bilinear.Apply"
)

// seedSalt decorrelates the two PCG words derived from one seed.
const seedSalt = 0xbf58476d1ce4e5b9

// Options configures New.
type Options struct {
	Seed   uint64
	Logger *zap.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithSeed fixes the sampling of input copies.
func WithSeed(seed uint64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("bilinear: WithLogger(nil)")
	}

	return func(o *Options) { o.Logger = l }
}

// block is one canonical term of out ⊗ in*.
type block struct {
	size   int     // size of the term R
	mult   int     // copies of R in out ⊗ in*
	offset int     // first canonical coordinate of the run
	param  int     // first parameter index
	bids   [][]int // sampled copies of R in x, original coordinates; nil if absent
}

// Weights is the prepared bilinear map. It is immutable and safe for
// concurrent use.
type Weights struct {
	outSize, inSize int
	blocks          []block
	invPerm         []int
	active          int
}

// New prepares the bilinear map for in → out.
//
// Errors: rep.ErrNilRepresentation, rep.ErrUnboundRepresentation.
func New(in, out *rep.Rep, opts ...Option) (*Weights, error) {
	o := Options{Logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if in == nil || out == nil {
		return nil, fmt.Errorf("%s: %w", opNew, rep.ErrNilRepresentation)
	}
	inSize, err := in.Size()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}
	outSize, err := out.Size()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}

	_, perm, err := rep.Hom(in, out).Canonicalize()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}
	invPerm, err := matrix.InversePermutation(perm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}
	wMult, err := rep.Hom(in, out).Multiplicities()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}
	xIdx, err := in.AsIndices()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}
	copies := make(map[string][][]int, len(xIdx))
	for _, ix := range xIdx {
		if ix.Rep.Kind() == rep.KindScalar {
			continue
		}
		copies[ix.Rep.Key()] = ix.Blocks
	}

	rng := rand.New(rand.NewPCG(o.Seed, o.Seed^seedSalt))
	w := &Weights{outSize: outSize, inSize: inSize, invPerm: invPerm}
	var offset int
	for _, m := range wMult {
		size, err := m.Rep.Size()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opNew, err)
		}
		b := block{size: size, mult: m.Count, offset: offset, param: w.active}
		if ids, ok := copies[m.Rep.Key()]; ok {
			n := min(len(ids), size)
			for _, k := range rng.Perm(len(ids))[:n] {
				b.bids = append(b.bids, ids[k])
			}
			w.active += m.Count * n
		}
		w.blocks = append(w.blocks, b)
		offset += m.Count * size
	}
	o.Logger.Debug("bilinear weights",
		zap.Stringer("in", in),
		zap.Stringer("out", out),
		zap.Int("active_dims", w.active))

	return w, nil
}

// ActiveDims is the number of parameters Apply expects.
func (w *Weights) ActiveDims() int { return w.active }

// Shape returns (out.Size(), in.Size()).
func (w *Weights) Shape() (out, in int) { return w.outSize, w.inSize }

// Apply evaluates W for every row of x (bs × in). Row b of the result is
// W(x_b) flattened row-major as out×in.
//
// Errors: ErrParamsLength, ErrInputShape, matrix.ErrNilMatrix.
// Complexity: O(bs · Σ_R mult·n·size).
func (w *Weights) Apply(params []float64, x *matrix.Dense) (*matrix.Dense, error) {
	if len(params) != w.active {
		return nil, fmt.Errorf("%s: got %d, want %d: %w", opApply, len(params), w.active, ErrParamsLength)
	}
	if err := matrix.ValidateNotNil(x); err != nil {
		return nil, fmt.Errorf("%s: %w", opApply, err)
	}
	if x.Cols() != w.inSize {
		return nil, fmt.Errorf("%s: got %d columns, want %d: %w", opApply, x.Cols(), w.inSize, ErrInputShape)
	}

	bs, width := x.Rows(), len(w.invPerm)
	out, err := matrix.NewDenseZeroOK(bs, width)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opApply, err)
	}
	canon := make([]float64, width)
	xd, od := x.Data(), out.Data()
	var (
		row, c, s, k int
		acc          float64
	)
	for row = 0; row < bs; row++ {
		clear(canon)
		xb := xd[row*w.inSize : (row+1)*w.inSize]
		for _, b := range w.blocks {
			n := len(b.bids)
			for c = 0; c < b.mult; c++ {
				p := params[b.param+c*n : b.param+(c+1)*n]
				for s = 0; s < b.size; s++ {
					acc = 0
					for k = 0; k < n; k++ {
						acc += p[k] * xb[b.bids[k][s]]
					}
					canon[b.offset+c*b.size+s] = acc
				}
			}
		}
		dst := od[row*width : (row+1)*width]
		for i, j := range w.invPerm {
			dst[i] = canon[j]
		}
	}

	return out, nil
}

// Matrix evaluates W for a single input vector and returns it as out×in.
func (w *Weights) Matrix(params, x []float64) (*matrix.Dense, error) {
	xm, err := matrix.NewDenseFrom(1, len(x), x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opApply, err)
	}
	flat, err := w.Apply(params, xm)
	if err != nil {
		return nil, err
	}

	return matrix.NewDenseFrom(w.outSize, w.inSize, flat.Data())
}
