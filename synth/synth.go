// SPDX-License-Identifier: MIT

package synth

import (
	"fmt"
	"math"

	"github.com/katalvlaran/burstfit/burst"
	"github.com/katalvlaran/burstfit/fiterr"
	"github.com/katalvlaran/burstfit/trace"
)

// ErrNilModel is returned by BuildTrace for a nil model.
var ErrNilModel = fiterr.New(fiterr.ErrPrecondition, "synth: nil burst model")

// ErrZeroNoise is returned by BuildNoise for an explicit zero sigma.
var ErrZeroNoise = fiterr.New(fiterr.ErrDomain, "synth: noise-only trace needs sigma > 0")

// Times returns the sampling grid selected by opts.
func Times(opts ...Option) []float64 {
	return newConfig(opts...).times()
}

func (c config) times() []float64 {
	n := int(math.Floor((c.tMax-c.tMin)*c.sampleRate+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = c.tMin + float64(i)/c.sampleRate
	}

	return out
}

// BuildTrace samples m with the given amplitudes and adds optional noise.
//
// Errors:
//   - ErrNilModel.
//   - burst.ErrAmplitudeCount and evaluation errors from m.
func BuildTrace(m *burst.Model, amplitudes []float64, opts ...Option) (*trace.Trace, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	c := newConfig(opts...)
	times := c.times()
	values, err := m.Evaluate(times, amplitudes)
	if err != nil {
		return nil, fmt.Errorf("synth.BuildTrace: %w", err)
	}
	if c.noiseSigma > 0 {
		addNoise(values, c.noiseSigma, c)
	}

	return trace.New(times, values, trace.WithName(c.name))
}

// BuildNoise returns a trace holding only Gaussian noise
// (DefaultNoiseSigma unless WithNoise is given).
func BuildNoise(opts ...Option) (*trace.Trace, error) {
	c := newConfig(opts...)
	sigma := DefaultNoiseSigma
	if c.noiseSet {
		sigma = c.noiseSigma
	}
	if sigma == 0 {
		return nil, ErrZeroNoise
	}
	times := c.times()
	values := make([]float64, len(times))
	addNoise(values, sigma, c)

	return trace.New(times, values, trace.WithName(c.name))
}

// MockAmplitudes returns n amplitudes drawn uniformly from
// [DefaultAmplitudeMin, DefaultAmplitudeMax). Returns nil for n < 1.
func MockAmplitudes(n int, opts ...Option) []float64 {
	if n < 1 {
		return nil
	}
	rng := newConfig(opts...).random()
	out := make([]float64, n)
	for i := range out {
		out[i] = DefaultAmplitudeMin + (DefaultAmplitudeMax-DefaultAmplitudeMin)*rng.Float64()
	}

	return out
}

func addNoise(values []float64, sigma float64, c config) {
	rng := c.random()
	for i := range values {
		values[i] += sigma * rng.NormFloat64()
	}
}
