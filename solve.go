// Copyright ©2025 The blockcg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockcg

import (
	"math"
	"time"

	"github.com/rs/zerolog"
)

// Solve minimizes 1/(2n)‖A·X − Y‖² + λ/2·‖X‖² by running CG on the normal
// equations (AᵀA + λn·I)·X = AᵀY for all columns of Y at once.
//
// a is the n×d design matrix and y the n×k target block; both are read-only
// for the duration of the call. x must be an allocated d×k block holding the
// initial guess; it is updated in place and is the sole output. On a nil
// error every column satisfies ‖R_i‖ < Tolerance·‖B_i‖; on ErrIterationLimit
// x holds the best estimate found. A nil m selects the identity
// preconditioner, for which no separate preconditioned-residual block is
// allocated.
//
// lambda must be nonnegative so that the implicit operator is symmetric
// positive semidefinite; this is not validated. The per-column recurrences
// divide by P_iᵀQ_i and by the previous R_iᵀZ_i without guarding against
// zero, exactly as classical CG does: a column whose denominator vanishes
// produces non-finite updates for that column from then on. Agreement of the
// block dimensions is the backend's concern and is not checked here.
//
// Solve panics if a, y or x is nil or has a zero dimension.
func Solve(a, y, x Block, lambda float64, logger zerolog.Logger, params Params, m Preconditioner) (Stats, error) {
	stats := Stats{StartTime: time.Now()}

	if a == nil || y == nil || x == nil {
		panic("blockcg: nil block")
	}
	n, d := a.Dims()
	_, k := y.Dims()
	if n == 0 || d == 0 || k == 0 {
		panic("blockcg: zero dimension")
	}
	if m == nil {
		m = Identity{}
	}
	params.defaults(d)
	tracer := params.Tracer

	logLev1 := params.Verbose && params.LogLevel >= 1
	logLev2 := params.Verbose && params.LogLevel >= 2

	if logLev1 {
		logger.Info().
			Int("n", n).Int("d", d).Int("k", k).
			Float64("lambda", lambda).
			Float64("tolerance", params.Tolerance).
			Msg("starting block CG solve")
	}

	// B = AᵀY, the right-hand side of the normal equations.
	b := x.NewCompatible(d, k)
	b.Mul(a, true, y, 1, 0)

	op := NewNormalEquations(a, lambda, k)

	// R = B − (AᵀA + λn·I)·X, fused through the operator's scratch block
	// so the subtraction rides on the second multiplication.
	r := x.NewCompatible(d, k)
	r.CopyFrom(b)
	op.scratch.Mul(a, false, x, 1, 0)
	r.Mul(a, true, op.scratch, -1, 1)
	r.Axpy(-lambda*float64(n), x)

	p := x.NewCompatible(d, k)
	q := x.NewCompatible(d, k)

	// Z aliases R on the unpreconditioned path; otherwise it is a block
	// of its own, private to this call.
	preconditioned := !m.IsIdentity()
	z := r
	if preconditioned {
		z = x.NewCompatible(d, k)
	}

	nrmb := make([]float64, k)
	b.ColumnNorms(nrmb)
	var totalNrmb float64
	for i, v := range nrmb {
		totalNrmb += v * v
		if logLev2 {
			logger.Debug().Int("column", i).Float64("nrmb", v).Msg("right-hand side norm")
		}
	}
	totalNrmb = math.Sqrt(totalNrmb)

	ressqr := make([]float64, k)
	r.ColumnDots(r, ressqr)

	rho := make([]float64, k)
	rho0 := make([]float64, k)
	rhotmp := make([]float64, k)
	alpha := make([]float64, k)
	malpha := make([]float64, k)
	beta := make([]float64, k)

	for itn := 0; itn < params.MaxIterations; itn++ {
		if preconditioned {
			start := time.Now()
			if err := m.Apply(z, r); err != nil {
				stats.Runtime = time.Since(stats.StartTime)
				return stats, err
			}
			tracer.PreconditionerApplied(time.Since(start))
			stats.PrecondApplies++

			r.ColumnDots(z, rho)
		} else {
			// Z is R, so ρ_i = R_iᵀZ_i is already at hand.
			copy(rho, ressqr)
		}

		if itn == 0 {
			for i := range beta {
				beta[i] = 0
			}
		} else {
			for i := range beta {
				beta[i] = rho[i] / rho0[i]
			}
		}

		// P = P·diag(β) + Z.
		p.ScaleColumns(beta)
		p.Axpy(1, z)

		// Q = (AᵀA + λn·I)·P.
		start := time.Now()
		op.Apply(q, p)
		tracer.OperatorApplied(time.Since(start))
		stats.OperatorApplies++

		p.ColumnDots(q, rhotmp)
		for i := range alpha {
			alpha[i] = rho[i] / rhotmp[i]
			malpha[i] = -alpha[i]
		}

		x.AxpyColumns(alpha, p)
		r.AxpyColumns(malpha, q)

		copy(rho0, rho)

		r.ColumnDots(r, ressqr)
		convg := convergedColumns(ressqr, nrmb, params.Tolerance)

		stats.Iterations++
		tracer.IterationDone(itn, ressqr)

		if logLev2 && (itn%params.ProgressInterval == 0 || convg == k) {
			logger.Info().
				Int("iteration", itn).
				Float64("relres", relResidual(ressqr, totalNrmb)).
				Int("converged", convg).
				Msg("block CG progress")
		}

		if convg == k {
			if logLev1 {
				logger.Info().Int("iterations", stats.Iterations).Msg("block CG converged")
			}
			stats.ConvergedColumns = convg
			stats.RelResidual = relResidual(ressqr, totalNrmb)
			stats.Runtime = time.Since(stats.StartTime)
			return stats, nil
		}
	}

	if logLev1 {
		logger.Info().Int("iterations", stats.Iterations).Msg("block CG reached the iteration limit")
	}
	stats.ConvergedColumns = convergedColumns(ressqr, nrmb, params.Tolerance)
	stats.RelResidual = relResidual(ressqr, totalNrmb)
	stats.Runtime = time.Since(stats.StartTime)
	return stats, ErrIterationLimit
}

// convergedColumns counts the columns passing the per-column relative test
// ‖R_i‖ < tol·‖B_i‖.
func convergedColumns(ressqr, nrmb []float64, tol float64) int {
	convg := 0
	for i, rs := range ressqr {
		if math.Sqrt(rs) < tol*nrmb[i] {
			convg++
		}
	}
	return convg
}

func relResidual(ressqr []float64, totalNrmb float64) float64 {
	var total float64
	for _, rs := range ressqr {
		total += rs
	}
	return math.Sqrt(total) / totalNrmb
}
