// SPDX-License-Identifier: MIT

package align

import (
	"fmt"
	"math"
)

// Lag estimates how far measured trails modeled, in seconds, for two series
// sampled on the same uniform grid with spacing step. window bounds the
// search to ±window samples (-1 for no bound).
//
// Along the DTW path every pair (i, j) contributes i−j samples, weighted
// by |modeled[j]| so that flat baseline stretches, where any shift matches
// equally well, do not dilute the estimate. A positive result means the
// measured pulses arrive later than the model places them.
func Lag(measured, modeled []float64, step float64, window int) (float64, error) {
	if !(step > 0) || math.IsInf(step, 0) {
		return 0, fmt.Errorf("Lag: step %g: %w", step, ErrBadInput)
	}
	opts := Options{
		Window:       window,
		SlopePenalty: slopePenalty(modeled),
		ReturnPath:   true,
		MemoryMode:   FullMatrix,
	}
	_, path, err := DTW(measured, modeled, &opts)
	if err != nil {
		return 0, fmt.Errorf("Lag: %w", err)
	}
	if path == nil {
		return 0, fmt.Errorf("Lag: window %d leaves no path: %w", window, ErrBadInput)
	}

	var num, den, w float64
	for _, p := range path {
		w = math.Abs(modeled[p.J])
		num += w * float64(p.I-p.J)
		den += w
	}
	if den == 0 {
		return 0, fmt.Errorf("Lag: %w", ErrNoSignal)
	}

	return num / den * step, nil
}

// slopePenalty scales the warping penalty to the model: a small fraction of
// its peak, enough to keep the baseline on the diagonal.
func slopePenalty(modeled []float64) float64 {
	var peak float64
	for _, v := range modeled {
		peak = math.Max(peak, math.Abs(v))
	}

	return 1e-3 * peak
}
