// SPDX-License-Identifier: MIT

package timing

import (
	"fmt"
	"math"

	"github.com/katalvlaran/burstfit/fiterr"
)

// GroupSize is the number of pulses in one periodic group.
const GroupSize = 4

var (
	// ErrInvalidConfig is returned by New and Config.Validate for non-finite,
	// non-positive or mutually inconsistent timing constants.
	ErrInvalidConfig = fiterr.New(fiterr.ErrDomain, "timing: invalid configuration")

	// ErrNegativeIndex is returned for pulse indices below zero.
	ErrNegativeIndex = fiterr.New(fiterr.ErrDomain, "timing: negative pulse index")
)

// Config holds the raw timing constants, all in seconds.
type Config struct {
	// Period is the duration of one four-pulse group.
	Period float64 `json:"period"`
	// Deltas are the raw gaps δ₁..δ₄ between consecutive pulses of a group.
	// δ₄ closes the group (pulse 3 to the next group's pulse 0) and is not
	// used to place pulses; Period is authoritative.
	Deltas [GroupSize]float64 `json:"deltas"`
}

// Validate checks that every constant is finite and positive and that the
// last pulse of a group lands strictly before the next group starts.
func (c Config) Validate() error {
	if !finitePositive(c.Period) {
		return fmt.Errorf("period %g: %w", c.Period, ErrInvalidConfig)
	}
	for i, d := range c.Deltas {
		if !finitePositive(d) {
			return fmt.Errorf("delta %d = %g: %w", i+1, d, ErrInvalidConfig)
		}
	}
	if tau3 := c.Deltas[0] + c.Deltas[1] + c.Deltas[2]; tau3 >= c.Period {
		return fmt.Errorf("δ₁+δ₂+δ₃ = %g not below period %g: %w", tau3, c.Period, ErrInvalidConfig)
	}

	return nil
}

// Timing maps pulse indices to offsets from the burst start.
type Timing struct {
	period float64
	tau    [GroupSize]float64
}

// New validates cfg and precomputes the cumulative intra-group offsets.
func New(cfg Config) (*Timing, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &Timing{period: cfg.Period}
	for k := 1; k < GroupSize; k++ {
		t.tau[k] = t.tau[k-1] + cfg.Deltas[k-1]
	}

	return t, nil
}

// Period returns the group period in seconds.
func (t *Timing) Period() float64 { return t.period }

// Tau returns a copy of the cumulative intra-group offsets [0, τ₁, τ₂, τ₃].
func (t *Timing) Tau() [GroupSize]float64 { return t.tau }

// GroupOffset returns Period·⌊n/4⌋.
func (t *Timing) GroupOffset(n int) (float64, error) {
	if n < 0 {
		return 0, fmt.Errorf("GroupOffset(%d): %w", n, ErrNegativeIndex)
	}

	return t.period * float64(n/GroupSize), nil
}

// IntraGroupOffset returns Tau[n mod 4].
func (t *Timing) IntraGroupOffset(n int) (float64, error) {
	if n < 0 {
		return 0, fmt.Errorf("IntraGroupOffset(%d): %w", n, ErrNegativeIndex)
	}

	return t.tau[n%GroupSize], nil
}

// TimeFromStart returns the offset of pulse n from the burst start.
func (t *Timing) TimeFromStart(n int) (float64, error) {
	if n < 0 {
		return 0, fmt.Errorf("TimeFromStart(%d): %w", n, ErrNegativeIndex)
	}

	return t.at(n), nil
}

// TimesFromStart is the element-wise form of TimeFromStart. The first
// negative index aborts the call.
func (t *Timing) TimesFromStart(ns []int) ([]float64, error) {
	out := make([]float64, len(ns))
	for i, n := range ns {
		if n < 0 {
			return nil, fmt.Errorf("TimesFromStart[%d] = %d: %w", i, n, ErrNegativeIndex)
		}
		out[i] = t.at(n)
	}

	return out, nil
}

func (t *Timing) at(n int) float64 {
	return t.period*float64(n/GroupSize) + t.tau[n%GroupSize]
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
