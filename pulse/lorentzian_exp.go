// SPDX-License-Identifier: MIT

package pulse

import "math"

// LorentzianExp is a Lorentzian core 1/(πγ(1+(t/γ)²)) joined to an
// exponential tail at Δt = 1/λ + √(1/λ² − γ²).
type LorentzianExp struct {
	fast bool
}

var _ Shape = (*LorentzianExp)(nil)

// NewLorentzianExp returns a LorentzianExp shape.
func NewLorentzianExp(opts ...Option) *LorentzianExp {
	return &LorentzianExp{fast: gatherOptions(opts...).fast}
}

// Kind returns LorentzianExpKind.
func (l *LorentzianExp) Kind() Kind { return LorentzianExpKind }

// NumParams returns 2 (γ, λ).
func (l *LorentzianExp) NumParams() int { return LorentzianExpKind.NumParams() }

// Eval returns the unnormalized profile; its peak is 1/(πγ).
func (l *LorentzianExp) Eval(t float64, p *Params) (float64, error) {
	if !l.fast {
		if err := check(LorentzianExpKind, t, p); err != nil {
			return 0, err
		}
	}
	var v float64
	if t < p.offset {
		gamma := p.values[0]
		r := t / gamma
		v = 1 / (math.Pi * gamma * (1 + r*r))
	} else {
		v = tail(t, p.values[1], p)
	}
	if !l.fast {
		if err := checkResult(t, v); err != nil {
			return 0, err
		}
	}

	return v, nil
}

// EvalNormalized divides by the peak value 1/(πγ).
func (l *LorentzianExp) EvalNormalized(t float64, p *Params) (float64, error) {
	v, err := l.Eval(t, p)
	if err != nil {
		return 0, err
	}

	return v * math.Pi * p.values[0], nil
}
