// SPDX-License-Identifier: MIT

package regress

import (
	"fmt"
	"math"

	"github.com/katalvlaran/burstfit/matrix"
)

// Solver selects the least-squares backend.
type Solver int

const (
	// SolverQR factorizes with Householder QR and fails on rank deficiency.
	SolverQR Solver = iota
	// SolverSVD returns the minimum-norm solution via the pseudo-inverse.
	SolverSVD
)

// String returns "qr" or "svd".
func (s Solver) String() string {
	switch s {
	case SolverQR:
		return "qr"
	case SolverSVD:
		return "svd"
	default:
		return fmt.Sprintf("Solver(%d)", int(s))
	}
}

// ParseSolver is the inverse of Solver.String.
func ParseSolver(s string) (Solver, error) {
	switch s {
	case "qr":
		return SolverQR, nil
	case "svd":
		return SolverSVD, nil
	}

	return 0, fmt.Errorf("regress: unknown solver %q", s)
}

const (
	// DefaultThreshold is the R² below which a fit is flagged.
	DefaultThreshold = 0.95
	// DefaultRejectFloor is the R² below which a flagged fit is Severe.
	DefaultRejectFloor = 0.50
	// DefaultSolver is SolverQR.
	DefaultSolver = SolverQR
	// DefaultRankTolerance is the relative singular-value or pivot cutoff.
	DefaultRankTolerance = matrix.DefaultRankTolerance
)

// Option configures a Fitter.
type Option func(*config)

type config struct {
	name        string
	threshold   float64
	rejectFloor float64
	solver      Solver
	rankTol     float64
}

func unitInterval(v float64) bool { return !math.IsNaN(v) && v >= 0 && v <= 1 }

// WithName labels fits in errors and summaries; the trace name is used
// when empty.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithThreshold sets the acceptance threshold. Panics outside [0, 1].
func WithThreshold(t float64) Option {
	if !unitInterval(t) {
		panic("regress: WithThreshold: threshold must be in [0, 1]")
	}

	return func(c *config) { c.threshold = t }
}

// WithRejectFloor sets the Severe cutoff. Panics outside [0, 1]. A floor
// above the threshold is lowered to the threshold.
func WithRejectFloor(f float64) Option {
	if !unitInterval(f) {
		panic("regress: WithRejectFloor: floor must be in [0, 1]")
	}

	return func(c *config) { c.rejectFloor = f }
}

// WithSolver selects the least-squares backend. Panics on an unknown value.
func WithSolver(s Solver) Option {
	if s != SolverQR && s != SolverSVD {
		panic("regress: WithSolver: unknown solver")
	}

	return func(c *config) { c.solver = s }
}

// WithRankTolerance sets the relative rank cutoff for both solvers.
// Panics unless tol is finite and in [0, 1).
func WithRankTolerance(tol float64) Option {
	if math.IsNaN(tol) || tol < 0 || tol >= 1 {
		panic("regress: WithRankTolerance: tol must be finite and in [0, 1)")
	}

	return func(c *config) { c.rankTol = tol }
}

func gatherOptions(opts ...Option) config {
	c := config{
		threshold:   DefaultThreshold,
		rejectFloor: DefaultRejectFloor,
		solver:      DefaultSolver,
		rankTol:     DefaultRankTolerance,
	}
	for _, set := range opts {
		set(&c)
	}
	if c.rejectFloor > c.threshold {
		c.rejectFloor = c.threshold
	}

	return c
}
