// Copyright ©2025 The blockcg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockcg

// Block is a dense block of float64 columns owned by the numerical backend.
// It is the full set of primitives the solver needs; anything that can
// provide them, local or distributed, can be solved against. Per-column
// scalar state is exchanged through plain []float64 slices with one entry
// per column.
//
// Blocks from different backends must not be mixed within one solve.
type Block interface {
	// Dims returns the number of rows and columns.
	Dims() (r, c int)

	// Mul computes
	//	dst = alpha·op(a)·b + beta·dst,
	// where op(a) is a or aᵀ according to transA.
	Mul(a Block, transA bool, b Block, alpha, beta float64)

	// Axpy adds alpha·s to the receiver.
	Axpy(alpha float64, s Block)

	// AxpyColumns adds alpha[j]·s_j to column j of the receiver.
	// alpha must have one entry per column.
	AxpyColumns(alpha []float64, s Block)

	// ScaleColumns scales column j of the receiver by s[j], i.e. it
	// multiplies the receiver by diag(s) from the right.
	ScaleColumns(s []float64)

	// ColumnDots stores the dot product of column j of the receiver
	// with column j of s into dst[j].
	ColumnDots(s Block, dst []float64)

	// ColumnNorms stores the Euclidean norm of column j of the
	// receiver into dst[j].
	ColumnNorms(dst []float64)

	// CopyFrom copies the contents of s into the receiver. The shapes
	// must agree.
	CopyFrom(s Block)

	// Zero sets all elements of the receiver to zero.
	Zero()

	// NewCompatible allocates a zeroed r×c block from the same storage
	// family as the receiver. The solver uses it for its private work
	// blocks so that they live wherever the inputs live.
	NewCompatible(r, c int) Block
}
