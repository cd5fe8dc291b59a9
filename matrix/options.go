// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for numeric policy.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that applies setters over defaults.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultRankTolerance is the relative threshold below which a diagonal
	// entry of R is treated as zero: |R[k,k]| <= tol * max_j |R[j,j]|.
	DefaultRankTolerance = 1e-12

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicRankTolInvalid = "matrix: WithRankTolerance: tol must be finite and in [0, 1)"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	rankTol        float64 // relative rank tolerance; DefaultRankTolerance
	validateNaNInf bool    // DefaultValidateNaNInf
}

// WithRankTolerance sets the relative tolerance used by LeastSquares to declare
// a system rank-deficient.
//
// Inputs:
//   - tol: finite value in [0, 1). Zero only rejects exactly-zero pivots.
//
// Errors:
//   - Panics with a stable message when tol is invalid.
func WithRankTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 || tol >= 1 {
		panic(panicRankTolInvalid)
	}

	return func(o *Options) { o.rankTol = tol }
}

// WithValidateNaNInf enables strict finite-value validation (the default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables finite-value validation for matrices built by
// NewDenseFrom and for the right-hand side of LeastSquares.
// Use only for controlled experiments; NaN propagates silently afterwards.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// gatherOptions applies user-provided Option setters on top of defaults.
// Last-writer-wins semantics.
func gatherOptions(user ...Option) Options {
	o := Options{
		rankTol:        DefaultRankTolerance,
		validateNaNInf: DefaultValidateNaNInf,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
