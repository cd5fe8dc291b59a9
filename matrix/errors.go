// SPDX-License-Identifier: MIT

// Package matrix: sentinel error set.
// All kernels return these sentinels (possibly wrapped with an operation tag);
// tests and callers MUST match them via errors.Is. Shape and numeric sentinels
// also report their burstfit category so errors.Is(err, fiterr.ErrDomain) and
// errors.Is(err, fiterr.ErrShapeMismatch) hold across package boundaries.

package matrix

import (
	"github.com/katalvlaran/burstfit/fiterr"
)

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = fiterr.New(fiterr.ErrDomain, "matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set/Row/Col) return this, they never panic.
	ErrOutOfRange = fiterr.New(fiterr.ErrDomain, "matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand dimensions, e.g. a
	// right-hand side whose length differs from the matrix row count.
	ErrDimensionMismatch = fiterr.New(fiterr.ErrShapeMismatch, "matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = fiterr.New(fiterr.ErrDomain, "matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix or nil vector was supplied.
	ErrNilMatrix = fiterr.New(fiterr.ErrDomain, "matrix: nil receiver")

	// ErrUnderdetermined is returned by LeastSquares when rows < cols: there are
	// fewer equations than unknowns and no unique solution exists.
	ErrUnderdetermined = fiterr.New(fiterr.ErrDomain, "matrix: underdetermined system (rows < cols)")

	// ErrRankDeficient is returned when a diagonal entry of R falls below the
	// rank tolerance, i.e. the columns are (numerically) linearly dependent.
	ErrRankDeficient = fiterr.New(fiterr.ErrDomain, "matrix: rank-deficient system")
)
