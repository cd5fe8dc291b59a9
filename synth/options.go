// SPDX-License-Identifier: MIT

package synth

import (
	"math"
	"math/rand"
)

const (
	// DefaultSampleRate is the scope sampling rate in samples per second.
	DefaultSampleRate = 4e9
	// DefaultSpanStart and DefaultSpanEnd bound the sampled time span (s).
	DefaultSpanStart = -10e-9
	DefaultSpanEnd   = 200e-9
	// DefaultNoiseSigma is the noise level of BuildNoise when WithNoise is
	// not given: the pre-pulse scope noise estimate in volts.
	DefaultNoiseSigma = 0.001167
	// DefaultSeed seeds noise when no RNG is supplied.
	DefaultSeed int64 = 1
	// DefaultAmplitudeMin and DefaultAmplitudeMax bound MockAmplitudes (V).
	DefaultAmplitudeMin = 0.2
	DefaultAmplitudeMax = 1.0
)

// Option customizes a synthetic trace by mutating config before sampling.
type Option func(*config)

type config struct {
	rng        *rand.Rand
	sampleRate float64
	tMin, tMax float64
	noiseSigma float64
	noiseSet   bool
	name       string
}

func newConfig(opts ...Option) config {
	c := config{
		sampleRate: DefaultSampleRate,
		tMin:       DefaultSpanStart,
		tMax:       DefaultSpanEnd,
	}
	for _, set := range opts {
		set(&c)
	}

	return c
}

// random returns the configured RNG or a fresh DefaultSeed source.
func (c config) random() *rand.Rand {
	if c.rng != nil {
		return c.rng
	}

	return rand.New(rand.NewSource(DefaultSeed))
}

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("synth: WithRand(nil)")
	}

	return func(c *config) { c.rng = r }
}

// WithSeed seeds a new RNG (deterministic).
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithSampleRate sets the sampling rate in samples per second.
// Panics unless rate is finite and > 0.
func WithSampleRate(rate float64) Option {
	if !(rate > 0) || math.IsInf(rate, 0) {
		panic("synth: WithSampleRate: rate must be finite and > 0")
	}

	return func(c *config) { c.sampleRate = rate }
}

// WithSpan sets the sampled interval [tMin, tMax]. Panics unless both are
// finite and tMin < tMax.
func WithSpan(tMin, tMax float64) Option {
	if math.IsNaN(tMin) || math.IsNaN(tMax) || math.IsInf(tMin, 0) || math.IsInf(tMax, 0) || tMin >= tMax {
		panic("synth: WithSpan: need finite tMin < tMax")
	}

	return func(c *config) { c.tMin, c.tMax = tMin, tMax }
}

// WithNoise adds Gaussian noise of standard deviation sigma (V).
// Panics if sigma is negative or not finite; 0 means noiseless.
func WithNoise(sigma float64) Option {
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma < 0 {
		panic("synth: WithNoise: sigma must be finite and >= 0")
	}

	return func(c *config) { c.noiseSigma, c.noiseSet = sigma, true }
}

// WithName labels the produced trace.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}
