// Copyright ©2025 The blockcg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockcg

// NormalEquations applies the regularized normal-equation operator
//
//	(AᵀA + λn·I)·V
//
// to d×k blocks, where n and d are the dimensions of A. The product is
// formed as Aᵀ·(A·V) through an n×k scratch block, followed by a scaled
// addition of λn·V, so AᵀA is never formed explicitly.
//
// The operator is symmetric positive semidefinite whenever λ ≥ 0, which CG
// requires to be well-founded. This is a precondition, not something the
// operator validates.
type NormalEquations struct {
	a       Block
	lambdaN float64
	scratch Block // n×k intermediate holding A·V
}

// NewNormalEquations returns the operator for the matrix a and
// regularization strength lambda, sized for k-column inputs. The scratch
// block is allocated once from a's storage family.
func NewNormalEquations(a Block, lambda float64, k int) *NormalEquations {
	n, _ := a.Dims()
	return &NormalEquations{
		a:       a,
		lambdaN: lambda * float64(n),
		scratch: a.NewCompatible(n, k),
	}
}

// Apply stores (AᵀA + λn·I)·v into dst. dst and v must be d×k and must not
// alias each other.
func (op *NormalEquations) Apply(dst, v Block) {
	op.scratch.Mul(op.a, false, v, 1, 0)
	dst.Mul(op.a, true, op.scratch, 1, 0)
	dst.Axpy(op.lambdaN, v)
}
