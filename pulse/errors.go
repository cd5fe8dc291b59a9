// SPDX-License-Identifier: MIT

package pulse

import (
	"errors"

	"github.com/katalvlaran/burstfit/fiterr"
)

var (
	// ErrParamCount indicates a parameter vector whose length differs from
	// the shape's declared parameter count.
	ErrParamCount = fiterr.New(fiterr.ErrShapeMismatch, "pulse: wrong parameter count")

	// ErrInvalidParams indicates non-finite or out-of-domain shape parameters.
	ErrInvalidParams = fiterr.New(fiterr.ErrDomain, "pulse: invalid shape parameters")

	// ErrNonFinite indicates a non-finite evaluation input or result
	// (exponential overflow).
	ErrNonFinite = fiterr.New(fiterr.ErrDomain, "pulse: non-finite evaluation; input is too extreme")

	// ErrKindMismatch indicates Params built for another shape kind.
	ErrKindMismatch = fiterr.New(fiterr.ErrDomain, "pulse: parameters belong to another shape kind")

	// ErrUnknownKind indicates a Kind value outside the declared set.
	ErrUnknownKind = errors.New("pulse: unknown shape kind")

	// ErrNotImplemented is returned for declared but unimplemented shape kinds.
	ErrNotImplemented = errors.New("pulse: shape kind not implemented")
)
