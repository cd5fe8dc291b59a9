// SPDX-License-Identifier: MIT

package pulse

import (
	"fmt"
	"math"
)

// Shape evaluates one pulse profile at a time offset t (seconds) relative to
// the pulse center.
type Shape interface {
	// Kind returns the family tag.
	Kind() Kind
	// NumParams returns the required parameter count.
	NumParams() int
	// Eval returns the raw profile value at t.
	Eval(t float64, p *Params) (float64, error)
	// EvalNormalized returns Eval(t)/Eval(0); a shape already normalized to a
	// unit peak returns Eval(t) directly.
	EvalNormalized(t float64, p *Params) (float64, error)
}

// New returns the Shape for kind.
func New(kind Kind, opts ...Option) (Shape, error) {
	cfg := gatherOptions(opts...)
	switch kind {
	case GaussianExpKind:
		return &GaussianExp{fast: cfg.fast}, nil
	case LorentzianExpKind:
		return &LorentzianExp{fast: cfg.fast}, nil
	case LogisticKind, LogNormalKind:
		return nil, fmt.Errorf("New(%s): %w", kind, ErrNotImplemented)
	default:
		return nil, fmt.Errorf("New(%d): %w", int(kind), ErrUnknownKind)
	}
}

// check validates the evaluation preconditions shared by all shapes.
func check(kind Kind, t float64, p *Params) error {
	if p == nil || p.kind != kind {
		return ErrKindMismatch
	}
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("t=%g: %w", t, ErrNonFinite)
	}

	return nil
}

func checkResult(t, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("t=%g: %w", t, ErrNonFinite)
	}

	return nil
}

// tail is the exponential branch shared by every shape: h·exp(−λ(t−Δt)).
func tail(t, lambda float64, p *Params) float64 {
	return p.continuity * math.Exp(-lambda*(t-p.offset))
}
