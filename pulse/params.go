// SPDX-License-Identifier: MIT

package pulse

import (
	"fmt"
	"math"
)

// Nominal shape constants, seconds and inverse seconds.
const (
	// DefaultSigma is the nominal Gaussian core width of a DET10A pulse.
	DefaultSigma = 4.0e-10
	// DefaultLambda is the fitted DET10A tail decay rate.
	DefaultLambda = 5.014747090308123e8
	// DefaultGamma is the nominal Lorentzian half-width.
	DefaultGamma = 4e-10
	// DefaultLorentzLambda is the nominal Lorentzian tail decay rate.
	DefaultLorentzLambda = 5e8
)

// Params is a fixed-size shape parameter vector together with the derived
// split offset Δt and continuity value h. The zero value is not usable;
// build one with NewParams.
type Params struct {
	kind       Kind
	values     []float64
	offset     float64
	continuity float64
}

// NewParams validates values against kind and derives Δt and h.
//
// Errors:
//   - ErrUnknownKind, ErrNotImplemented for kinds without a shape.
//   - ErrParamCount when len(values) != kind.NumParams().
//   - ErrInvalidParams for non-finite or out-of-domain values.
func NewParams(kind Kind, values ...float64) (*Params, error) {
	p := &Params{kind: kind}
	if err := p.Set(values...); err != nil {
		return nil, err
	}

	return p, nil
}

// Set replaces the parameter vector and recomputes the derived constants.
// On error p is left unchanged.
func (p *Params) Set(values ...float64) error {
	offset, continuity, err := derive(p.kind, values)
	if err != nil {
		return fmt.Errorf("Params.Set(%s): %w", p.kind, err)
	}
	p.values = append(p.values[:0:0], values...)
	p.offset, p.continuity = offset, continuity

	return nil
}

// Kind returns the shape family the parameters were built for.
func (p *Params) Kind() Kind { return p.kind }

// Values returns a copy of the parameter vector.
func (p *Params) Values() []float64 { return append([]float64(nil), p.values...) }

// Offset returns the split point Δt in seconds.
func (p *Params) Offset() float64 { return p.offset }

// Continuity returns h, the value of the shape at Δt.
func (p *Params) Continuity() float64 { return p.continuity }

// Len returns the parameter count.
func (p *Params) Len() int { return len(p.values) }

// Clone returns an independent copy.
func (p *Params) Clone() *Params {
	cp := *p
	cp.values = p.Values()

	return &cp
}

// String renders "gaussian-exp(4e-10, 5.01e+08)".
func (p *Params) String() string {
	return fmt.Sprintf("%s%v", p.kind, p.values)
}

func derive(kind Kind, v []float64) (offset, continuity float64, err error) {
	if !kind.Valid() {
		return 0, 0, ErrUnknownKind
	}
	if len(v) != kind.NumParams() {
		return 0, 0, fmt.Errorf("got %d, want %d: %w", len(v), kind.NumParams(), ErrParamCount)
	}
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) || x <= 0 {
			return 0, 0, fmt.Errorf("parameter %d = %g must be finite and > 0: %w", i, x, ErrInvalidParams)
		}
	}

	switch kind {
	case GaussianExpKind:
		sigma, lambda := v[0], v[1]
		offset = lambda * sigma * sigma
		continuity = math.Exp(-offset * offset / (2 * sigma * sigma))
	case LorentzianExpKind:
		gamma, lambda := v[0], v[1]
		if gl := gamma * lambda; gl*gl > 1 {
			return 0, 0, fmt.Errorf("(γλ)² = %g > 1: %w", gl*gl, ErrInvalidParams)
		}
		offset = 1/lambda + math.Sqrt(1/(lambda*lambda)-gamma*gamma)
		r := offset / gamma
		continuity = 1 / (math.Pi * gamma * (1 + r*r))
	default:
		return 0, 0, ErrNotImplemented
	}
	if math.IsNaN(offset) || math.IsInf(offset, 0) || math.IsNaN(continuity) || math.IsInf(continuity, 0) {
		return 0, 0, fmt.Errorf("derived Δt=%g h=%g: %w", offset, continuity, ErrInvalidParams)
	}

	return offset, continuity, nil
}
