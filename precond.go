// Copyright ©2025 The blockcg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockcg

// Preconditioner transforms the residual block to accelerate convergence.
type Preconditioner interface {
	// Apply stores the preconditioned src into dst. For non-identity
	// preconditioners dst and src must not alias.
	Apply(dst, src Block) error

	// IsIdentity reports whether Apply is a no-op. When it is, the
	// solver reuses the residual block as the preconditioned residual
	// and never calls Apply.
	IsIdentity() bool
}

// Identity is the no-op preconditioner. It is selected whenever the caller
// passes a nil Preconditioner to Solve.
type Identity struct{}

// Apply implements the Preconditioner interface by copying src into dst.
func (Identity) Apply(dst, src Block) error {
	if dst != src {
		dst.CopyFrom(src)
	}
	return nil
}

// IsIdentity implements the Preconditioner interface.
func (Identity) IsIdentity() bool { return true }
