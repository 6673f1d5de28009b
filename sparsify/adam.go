// SPDX-License-Identifier: MIT

package sparsify

import (
	"math"

	"github.com/katalvlaran/equivar/matrix"
)

// lossAndGrad evaluates the sparsity loss at W and its (sub)gradient:
//
//	L  = mean|Q·Wᵀ| + α·mean|WᵀW − I| + β·ℓ²,   ℓ = log|det W|
//	∂L = sign(Q·Wᵀ)ᵀ·Q/(n·r) + α·W·(S + Sᵀ)/r² + 2β·ℓ·W⁻ᵀ,   S = sign(WᵀW − I)
func lossAndGrad(q, w *matrix.Dense, alpha, beta float64) (float64, *matrix.Dense, error) {
	n, r := q.Shape()

	wt, err := matrix.Transpose(w)
	if err != nil {
		return 0, nil, err
	}
	proj, err := matrix.Mul(q, wt)
	if err != nil {
		return 0, nil, err
	}
	loss := matrix.MeanAbs(proj)
	st, err := matrix.Transpose(matrix.Sign(proj))
	if err != nil {
		return 0, nil, err
	}
	grad, err := matrix.Mul(st, q)
	if err != nil {
		return 0, nil, err
	}
	grad, err = matrix.Scale(grad, 1/float64(n*r))
	if err != nil {
		return 0, nil, err
	}

	gram, err := matrix.Mul(wt, w)
	if err != nil {
		return 0, nil, err
	}
	for i := 0; i < r; i++ {
		gram.Data()[i*r+i]--
	}
	loss += alpha * matrix.MeanAbs(gram)
	sg := matrix.Sign(gram)
	sgt, err := matrix.Transpose(sg)
	if err != nil {
		return 0, nil, err
	}
	sym, err := matrix.Add(sg, sgt)
	if err != nil {
		return 0, nil, err
	}
	ortho, err := matrix.Mul(w, sym)
	if err != nil {
		return 0, nil, err
	}
	if err = matrix.AddScaledInPlace(grad, alpha/float64(r*r), ortho); err != nil {
		return 0, nil, err
	}

	logdet, _, err := matrix.LogAbsDet(w)
	if err != nil {
		return 0, nil, err
	}
	loss += beta * logdet * logdet
	inv, err := matrix.Inverse(w)
	if err != nil {
		return 0, nil, err
	}
	invT, err := matrix.Transpose(inv)
	if err != nil {
		return 0, nil, err
	}
	if err = matrix.AddScaledInPlace(grad, 2*beta*logdet, invT); err != nil {
		return 0, nil, err
	}

	return loss, grad, nil
}

// adam updates w in place for o.Steps steps and reports divergence.
func adam(q, w *matrix.Dense, lr float64, o *Options) (int, bool, error) {
	size := len(w.Data())
	m := make([]float64, size)
	v := make([]float64, size)
	var (
		i, k       int
		b1t, b2t   = 1.0, 1.0
		mhat, vhat float64
	)
	for i = 0; i < o.Steps; i++ {
		loss, grad, err := lossAndGrad(q, w, o.OrthoWeight, o.LogDetWeight)
		if err != nil {
			return i, false, err
		}
		b1t *= adamBeta1
		b2t *= adamBeta2
		wd, gd := w.Data(), grad.Data()
		for k = 0; k < size; k++ {
			m[k] = adamBeta1*m[k] + (1-adamBeta1)*gd[k]
			v[k] = adamBeta2*v[k] + (1-adamBeta2)*gd[k]*gd[k]
			mhat = m[k] / (1 - b1t)
			vhat = v[k] / (1 - b2t)
			wd[k] -= lr * mhat / (math.Sqrt(vhat) + adamEpsilon)
		}
		if i > o.DivergenceWarmup && (loss > o.DivergenceLoss || math.IsNaN(loss)) {
			return i + 1, true, nil
		}
	}

	return o.Steps, false, nil
}
