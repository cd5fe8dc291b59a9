// SPDX-License-Identifier: MIT

package pulse

import "math"

// GaussianExp is a Gaussian core exp(−t²/2σ²) joined at Δt = λσ² to the tail
// h·exp(−λ(t−Δt)). Its peak is 1 at t = 0, so it needs no normalization.
type GaussianExp struct {
	fast bool
}

var _ Shape = (*GaussianExp)(nil)

// NewGaussianExp returns a GaussianExp shape.
func NewGaussianExp(opts ...Option) *GaussianExp {
	return &GaussianExp{fast: gatherOptions(opts...).fast}
}

// Kind returns GaussianExpKind.
func (g *GaussianExp) Kind() Kind { return GaussianExpKind }

// NumParams returns 2 (σ, λ).
func (g *GaussianExp) NumParams() int { return GaussianExpKind.NumParams() }

// Eval evaluates only the branch selected by t, so far-tail inputs never
// compute an overflowing Gaussian and vice versa.
func (g *GaussianExp) Eval(t float64, p *Params) (float64, error) {
	if !g.fast {
		if err := check(GaussianExpKind, t, p); err != nil {
			return 0, err
		}
	}
	var v float64
	if t < p.offset {
		sigma := p.values[0]
		v = math.Exp(-t * t / (2 * sigma * sigma))
	} else {
		v = tail(t, p.values[1], p)
	}
	if !g.fast {
		if err := checkResult(t, v); err != nil {
			return 0, err
		}
	}

	return v, nil
}

// EvalNormalized is Eval: the Gaussian core already peaks at exactly 1.
func (g *GaussianExp) EvalNormalized(t float64, p *Params) (float64, error) {
	return g.Eval(t, p)
}
