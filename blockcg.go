// Copyright ©2025 The blockcg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package blockcg solves regularized linear least-squares problems
//
//	minimize 1/(2n)‖A·X − Y‖² + λ/2·‖X‖²
//
// by applying the conjugate-gradient method to the equivalent normal
// equations
//
//	(AᵀA + λn·I)·X = AᵀY,
//
// where A is n×d, Y is n×k and X is d×k. All k right-hand-side columns are
// advanced simultaneously through a single sequence of block operations,
// while step sizes, momentum coefficients and the stopping test are tracked
// independently per column.
//
// The matrices are reached only through the Block interface, so the same
// solver runs over the in-memory Dense implementation or over a
// caller-provided distributed backend.
package blockcg

import (
	"errors"
	"time"
)

// ErrIterationLimit is returned by Solve when the iteration limit is reached
// before every column has converged. X still holds the best estimate found.
var ErrIterationLimit = errors.New("blockcg: iteration limit reached")

// tolEps is 32·ε for float64, the bound the tolerance is clamped to.
const tolEps = 32.0 / (1 << 52)

// Params holds various settings for a solve. The zero value is usable: the
// tolerance is clamped up to 32·ε, the iteration limit defaults to twice the
// number of unknowns per column, and logging is off.
type Params struct {
	// Tolerance is the per-column relative residual threshold: column i
	// is converged once ‖R_i‖ < Tolerance·‖B_i‖, where B = AᵀY. Values
	// outside [32ε, 1−32ε] are silently clamped into that interval, not
	// rejected.
	Tolerance float64

	// MaxIterations is the limit on the number of iterations. If it is
	// zero, it will be set to twice the number of rows of X.
	MaxIterations int

	// Verbose gates all logging. In a multi-process setting only one
	// rank would typically set it.
	Verbose bool

	// LogLevel selects how much is logged when Verbose is set:
	// 0 nothing, 1 a summary on exit, 2 per-iteration progress.
	LogLevel int

	// ProgressInterval is the number of iterations between progress
	// lines at LogLevel 2. Zero means 10.
	ProgressInterval int

	// Tracer observes operator and preconditioner applications.
	// If it is nil, a no-op tracer is used.
	Tracer Tracer
}

// DefaultParams returns the settings used when callers have no opinion:
// a moderate tolerance and a summary log line on exit.
func DefaultParams() Params {
	return Params{
		Tolerance: 1e-6,
		LogLevel:  1,
	}
}

func (p *Params) defaults(d int) {
	switch {
	case p.Tolerance < tolEps:
		p.Tolerance = tolEps
	case p.Tolerance >= 1:
		p.Tolerance = 1 - tolEps
	}
	if p.MaxIterations == 0 {
		p.MaxIterations = 2 * d
	}
	if p.ProgressInterval == 0 {
		p.ProgressInterval = 10
	}
	if p.Tracer == nil {
		p.Tracer = noopTracer{}
	}
}

// Stats holds statistics about a solve.
type Stats struct {
	// Iterations is the number of completed CG iterations.
	Iterations int
	// OperatorApplies is the number of normal-equation operator
	// applications performed inside the iteration loop.
	OperatorApplies int
	// PrecondApplies is the number of preconditioner applications.
	PrecondApplies int
	// ConvergedColumns is the number of columns that passed the
	// residual test when the solve stopped.
	ConvergedColumns int
	// RelResidual is the final joint relative residual,
	// sqrt(Σᵢ‖R_i‖²)/sqrt(Σᵢ‖B_i‖²).
	RelResidual float64
	// StartTime is an approximate time when the solve was started.
	StartTime time.Time
	// Runtime is an approximate duration of the solve.
	Runtime time.Duration
}
