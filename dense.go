// Copyright ©2025 The blockcg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockcg

import (
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
)

// Dense is a Block held in local memory as a row-major float64 matrix.
// Multiplications go through the installed blas64 implementation. Dense
// blocks interoperate only with other Dense blocks.
type Dense struct {
	mat blas64.General
}

// NewDense returns an r×c Dense with the given row-major backing data. If
// data is nil, a zeroed slice is allocated. NewDense panics if data is
// non-nil and its length does not equal r*c.
func NewDense(r, c int, data []float64) *Dense {
	if r <= 0 || c <= 0 {
		panic("blockcg: non-positive dimension")
	}
	if data == nil {
		data = make([]float64, r*c)
	} else if len(data) != r*c {
		panic("blockcg: mismatched data length")
	}
	return &Dense{mat: blas64.General{
		Rows:   r,
		Cols:   c,
		Stride: c,
		Data:   data,
	}}
}

// Dims returns the number of rows and columns.
func (d *Dense) Dims() (int, int) { return d.mat.Rows, d.mat.Cols }

// At returns the element at row i, column j.
func (d *Dense) At(i, j int) float64 { return d.mat.Data[i*d.mat.Stride+j] }

// Set sets the element at row i, column j to v.
func (d *Dense) Set(i, j int, v float64) { d.mat.Data[i*d.mat.Stride+j] = v }

// RawData returns the backing row-major slice.
func (d *Dense) RawData() []float64 { return d.mat.Data }

// Mul implements the Block interface using blas64.Gemm.
func (d *Dense) Mul(a Block, transA bool, b Block, alpha, beta float64) {
	t := blas.NoTrans
	if transA {
		t = blas.Trans
	}
	blas64.Gemm(t, blas.NoTrans, alpha, a.(*Dense).mat, b.(*Dense).mat, beta, d.mat)
}

// Axpy implements the Block interface.
func (d *Dense) Axpy(alpha float64, s Block) {
	floats.AddScaled(d.mat.Data, alpha, s.(*Dense).mat.Data)
}

// AxpyColumns implements the Block interface.
func (d *Dense) AxpyColumns(alpha []float64, s Block) {
	sd := s.(*Dense)
	for i := 0; i < d.mat.Rows; i++ {
		drow := d.mat.Data[i*d.mat.Stride : i*d.mat.Stride+d.mat.Cols]
		srow := sd.mat.Data[i*sd.mat.Stride : i*sd.mat.Stride+sd.mat.Cols]
		for j, a := range alpha {
			drow[j] += a * srow[j]
		}
	}
}

// ScaleColumns implements the Block interface.
func (d *Dense) ScaleColumns(s []float64) {
	for i := 0; i < d.mat.Rows; i++ {
		row := d.mat.Data[i*d.mat.Stride : i*d.mat.Stride+d.mat.Cols]
		for j, v := range s {
			row[j] *= v
		}
	}
}

// ColumnDots implements the Block interface.
func (d *Dense) ColumnDots(s Block, dst []float64) {
	sd := s.(*Dense)
	for j := range dst {
		dst[j] = 0
	}
	for i := 0; i < d.mat.Rows; i++ {
		drow := d.mat.Data[i*d.mat.Stride : i*d.mat.Stride+d.mat.Cols]
		srow := sd.mat.Data[i*sd.mat.Stride : i*sd.mat.Stride+sd.mat.Cols]
		for j := range dst {
			dst[j] += drow[j] * srow[j]
		}
	}
}

// ColumnNorms implements the Block interface.
func (d *Dense) ColumnNorms(dst []float64) {
	d.ColumnDots(d, dst)
	for j, v := range dst {
		dst[j] = math.Sqrt(v)
	}
}

// CopyFrom implements the Block interface.
func (d *Dense) CopyFrom(s Block) {
	copy(d.mat.Data, s.(*Dense).mat.Data)
}

// Zero implements the Block interface.
func (d *Dense) Zero() {
	for i := range d.mat.Data {
		d.mat.Data[i] = 0
	}
}

// NewCompatible implements the Block interface.
func (d *Dense) NewCompatible(r, c int) Block {
	return NewDense(r, c, nil)
}
