// Copyright ©2025 The blockcg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockcg

import "time"

// Tracer observes the expensive steps of a solve. It is an advisory
// side-channel: implementations must not modify solver state, and the
// solver never changes behavior based on it. The metrics subpackage
// provides a Prometheus-backed implementation.
type Tracer interface {
	// OperatorApplied is called after every normal-equation operator
	// application with its wall-clock duration.
	OperatorApplied(d time.Duration)

	// PreconditionerApplied is called after every preconditioner
	// application with its wall-clock duration.
	PreconditionerApplied(d time.Duration)

	// IterationDone is called at the end of iteration itn with the
	// per-column squared residual norms. The slice is reused between
	// iterations and must not be retained.
	IterationDone(itn int, ressqr []float64)
}

type noopTracer struct{}

func (noopTracer) OperatorApplied(time.Duration)       {}
func (noopTracer) PreconditionerApplied(time.Duration) {}
func (noopTracer) IterationDone(int, []float64)        {}
