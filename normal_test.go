// Copyright ©2025 The blockcg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockcg

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestNormalEquationsApply(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for _, tc := range []struct {
		n, d, k int
		lambda  float64
	}{
		{n: 7, d: 4, k: 2, lambda: 0},
		{n: 10, d: 6, k: 3, lambda: 0.3},
		{n: 3, d: 5, k: 1, lambda: 1.5},
	} {
		a := randomDense(rnd, tc.n, tc.d)
		v := randomDense(rnd, tc.d, tc.k)
		dst := NewDense(tc.d, tc.k, nil)

		op := NewNormalEquations(a, tc.lambda, tc.k)
		op.Apply(dst, v)

		// Reference: form G = AᵀA + λn·I explicitly.
		am := mat.NewDense(tc.n, tc.d, a.RawData())
		var g mat.Dense
		g.Mul(am.T(), am)
		for i := 0; i < tc.d; i++ {
			g.Set(i, i, g.At(i, i)+tc.lambda*float64(tc.n))
		}
		var want mat.Dense
		want.Mul(&g, mat.NewDense(tc.d, tc.k, v.RawData()))

		got := dst.RawData()
		wantData := make([]float64, tc.d*tc.k)
		for i := 0; i < tc.d; i++ {
			for j := 0; j < tc.k; j++ {
				wantData[i*tc.k+j] = want.At(i, j)
			}
		}
		if !floats.EqualApprox(got, wantData, 1e-12) {
			t.Errorf("case %+v: unexpected operator result:\ngot  %v\nwant %v", tc, got, wantData)
		}
	}
}

func TestNormalEquationsReusesScratch(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	a := randomDense(rnd, 8, 3)
	op := NewNormalEquations(a, 0.1, 2)
	first := op.scratch

	v := randomDense(rnd, 3, 2)
	dst := NewDense(3, 2, nil)
	op.Apply(dst, v)
	op.Apply(dst, v)
	if op.scratch != first {
		t.Error("scratch block reallocated between applications")
	}
}
