// SPDX-License-Identifier: MIT

package sparsify

// Internal hooks for the external test package.
var (
	LossAndGrad = lossAndGrad
	Separation  = separation
)
