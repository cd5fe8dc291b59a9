// SPDX-License-Identifier: MIT

// Package fiterr defines the error taxonomy shared by every burstfit package.
//
// Each package declares its own precise sentinels (pulse.ErrOverflow,
// burst.ErrAmplitudeCount, ...) and wraps one of the category sentinels below,
// so callers can branch either on the exact cause or on the category:
//
//	if errors.Is(err, fiterr.ErrDomain) { /* adjust inputs and retry */ }
//
// All failures are local and synchronous. The operations are deterministic, so
// retrying without changing the inputs never helps.
package fiterr

import (
	"errors"
	"fmt"
)

var (
	// ErrDomain marks invalid numeric input: non-positive pulse counts,
	// non-finite times, out-of-range shape parameters, non-finite shape
	// evaluations and degenerate statistic denominators.
	ErrDomain = errors.New("burstfit: domain error")

	// ErrShapeMismatch marks a length disagreement between paired inputs,
	// e.g. an amplitude vector whose length differs from the pulse count.
	ErrShapeMismatch = errors.New("burstfit: shape mismatch")

	// ErrPrecondition marks a statistic requested before a fit was performed.
	ErrPrecondition = errors.New("burstfit: precondition not met")

	// ErrFitQuality marks a fit whose R² fell below the acceptance threshold.
	// It is a policy gate, not a computation failure: the result is attached.
	ErrFitQuality = errors.New("burstfit: fit quality below threshold")
)

// New derives a package-level sentinel that belongs to a category.
// The returned error formats as "<msg>" and matches both itself and category
// under errors.Is.
func New(category error, msg string) error {
	return &classified{msg: msg, category: category}
}

// Wrapf attaches operation context to err, preserving errors.Is/As matching.
// Use only when err != nil.
func Wrapf(op string, err error, format string, args ...any) error {
	if format == "" {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), err)
}

// classified is a sentinel that reports a category through Unwrap.
type classified struct {
	msg      string
	category error
}

func (e *classified) Error() string { return e.msg }

func (e *classified) Unwrap() error { return e.category }
