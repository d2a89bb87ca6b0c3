// Copyright ©2025 The blockcg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics exports solver timings to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/numkit/blockcg"
)

// Collector is a blockcg.Tracer backed by Prometheus metrics. A single
// Collector may be shared by any number of sequential solves.
type Collector struct {
	operatorSeconds prometheus.Histogram
	precondSeconds  prometheus.Histogram
	iterations      prometheus.Counter
}

var _ blockcg.Tracer = (*Collector)(nil)

// New registers the solver metrics with reg and returns the collector. Pass
// prometheus.DefaultRegisterer outside of tests. New panics if the metrics
// are already registered with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		operatorSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "blockcg",
			Subsystem: "solver",
			Name:      "operator_apply_seconds",
			Help:      "Duration of normal-equation operator applications",
			Buckets:   prometheus.DefBuckets,
		}),
		precondSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "blockcg",
			Subsystem: "solver",
			Name:      "precond_apply_seconds",
			Help:      "Duration of preconditioner applications",
			Buckets:   prometheus.DefBuckets,
		}),
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blockcg",
			Subsystem: "solver",
			Name:      "iterations_total",
			Help:      "Total CG iterations across solves",
		}),
	}
	reg.MustRegister(c.operatorSeconds, c.precondSeconds, c.iterations)
	return c
}

// OperatorApplied implements the blockcg.Tracer interface.
func (c *Collector) OperatorApplied(d time.Duration) {
	c.operatorSeconds.Observe(d.Seconds())
}

// PreconditionerApplied implements the blockcg.Tracer interface.
func (c *Collector) PreconditionerApplied(d time.Duration) {
	c.precondSeconds.Observe(d.Seconds())
}

// IterationDone implements the blockcg.Tracer interface.
func (c *Collector) IterationDone(int, []float64) {
	c.iterations.Inc()
}
