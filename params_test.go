// Copyright ©2025 The blockcg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockcg

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsToleranceClamping(t *testing.T) {
	for _, tc := range []struct {
		name string
		tol  float64
		want float64
	}{
		{name: "zero", tol: 0, want: tolEps},
		{name: "negative", tol: -1, want: tolEps},
		{name: "below machine band", tol: 1e-20, want: tolEps},
		{name: "one", tol: 1, want: 1 - tolEps},
		{name: "above one", tol: 2, want: 1 - tolEps},
		{name: "in band", tol: 1e-6, want: 1e-6},
	} {
		p := Params{Tolerance: tc.tol}
		p.defaults(10)
		assert.Equal(t, tc.want, p.Tolerance, tc.name)
	}
}

func TestParamsDefaults(t *testing.T) {
	var p Params
	p.defaults(25)
	assert.Equal(t, 50, p.MaxIterations)
	assert.Equal(t, 10, p.ProgressInterval)
	assert.NotNil(t, p.Tracer)

	p = Params{MaxIterations: 7, ProgressInterval: 3}
	p.defaults(25)
	assert.Equal(t, 7, p.MaxIterations)
	assert.Equal(t, 3, p.ProgressInterval)
}

func TestSolveAcceptsOutOfRangeTolerance(t *testing.T) {
	// Out-of-range tolerances are corrected, not rejected.
	a := identityDense(4)
	y := identityDense(4)
	for _, tol := range []float64{0, 2} {
		x := NewDense(4, 4, nil)
		_, err := Solve(a, y, x, 0, zerolog.Nop(), Params{Tolerance: tol, MaxIterations: 10}, nil)
		require.NoError(t, err)
	}
}
