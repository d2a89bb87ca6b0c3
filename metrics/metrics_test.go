// Copyright ©2025 The blockcg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"math/rand"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/numkit/blockcg"
)

func TestCollectorObservesSolve(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	rnd := rand.New(rand.NewSource(1))
	const n, d, k = 20, 8, 2
	a := blockcg.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			a.Set(i, j, rnd.NormFloat64())
		}
	}
	y := blockcg.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			y.Set(i, j, rnd.NormFloat64())
		}
	}
	x := blockcg.NewDense(d, k, nil)

	stats, err := blockcg.Solve(a, y, x, 0.1, zerolog.Nop(), blockcg.Params{
		Tolerance: 1e-10,
		Tracer:    c,
	}, nil)
	require.NoError(t, err)
	require.Positive(t, stats.Iterations)

	require.Equal(t, float64(stats.Iterations), testutil.ToFloat64(c.iterations))
	require.Equal(t, 1, testutil.CollectAndCount(c.operatorSeconds))
	require.Equal(t, 1, testutil.CollectAndCount(c.precondSeconds))
}

func TestNewPanicsOnDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	require.Panics(t, func() { New(reg) })
}
