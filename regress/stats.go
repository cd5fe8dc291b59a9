// SPDX-License-Identifier: MIT

package regress

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/burstfit/fiterr"
)

// ChiStats holds the χ² goodness-of-fit statistics of a fit.
type ChiStats struct {
	Chi2    float64 `json:"chi2"`
	Reduced float64 `json:"reduced_chi2"`
	PValue  float64 `json:"p_value"`
	DoF     int     `json:"dof"`
}

// RSquared returns 1 − SS_res/SS_tot for observed against modeled values.
//
// Errors:
//   - ErrLengthMismatch for slices of different length.
//   - ErrConstantObserved when SS_tot is zero (including fewer than two samples).
func RSquared(observed, modeled []float64) (float64, error) {
	if len(observed) != len(modeled) {
		return 0, fiterr.Wrapf("RSquared", ErrLengthMismatch, "%d observed, %d modeled", len(observed), len(modeled))
	}
	if len(observed) < 2 {
		return 0, fiterr.Wrapf("RSquared", ErrConstantObserved, "%d samples", len(observed))
	}

	mean := stat.Mean(observed, nil)
	var ssTot, ssRes, d float64
	for i, o := range observed {
		d = o - mean
		ssTot += d * d
		d = o - modeled[i]
		ssRes += d * d
	}
	if ssTot == 0 {
		return 0, fiterr.Wrapf("RSquared", ErrConstantObserved, "")
	}

	return 1 - ssRes/ssTot, nil
}

// AdjustedRSquared returns 1 − (1−R²)·(n−1)/(n−k+1) with n samples and k
// pulses. The formula keeps the historical denominator n−k+1; see
// ConventionalAdjustedRSquared for the textbook n−k−1.
//
// Errors:
//   - RSquared errors.
//   - ErrDegenerateDoF when k < 1 or k >= n.
func AdjustedRSquared(observed, modeled []float64, k int) (float64, error) {
	n := len(observed)
	if k < 1 || k >= n {
		return 0, fiterr.Wrapf("AdjustedRSquared", ErrDegenerateDoF, "k=%d n=%d", k, n)
	}
	r2, err := RSquared(observed, modeled)
	if err != nil {
		return 0, fmt.Errorf("AdjustedRSquared: %w", err)
	}

	return 1 - (1-r2)*float64(n-1)/float64(n-k+1), nil
}

// ConventionalAdjustedRSquared returns 1 − (1−R²)·(n−1)/(n−k−1).
//
// Errors:
//   - RSquared errors.
//   - ErrDegenerateDoF when k < 1 or n−k−1 <= 0.
func ConventionalAdjustedRSquared(observed, modeled []float64, k int) (float64, error) {
	n := len(observed)
	if k < 1 || n-k-1 <= 0 {
		return 0, fiterr.Wrapf("ConventionalAdjustedRSquared", ErrDegenerateDoF, "k=%d n=%d", k, n)
	}
	r2, err := RSquared(observed, modeled)
	if err != nil {
		return 0, fmt.Errorf("ConventionalAdjustedRSquared: %w", err)
	}

	return 1 - (1-r2)*float64(n-1)/float64(n-k-1), nil
}

// ChiSquared computes χ² = Σ r_i²/σ_i², the reduced χ² and the upper-tail
// p-value 1 − CDF_χ²(χ², dof).
//
// Errors:
//   - ErrLengthMismatch when len(residuals) != len(sigmas).
//   - ErrUncertainty for a σ that is non-finite or <= 0.
//   - ErrDegenerateDoF for dof < 1.
func ChiSquared(residuals, sigmas []float64, dof int) (ChiStats, error) {
	if len(residuals) != len(sigmas) {
		return ChiStats{}, fiterr.Wrapf("ChiSquared", ErrLengthMismatch, "%d residuals, %d uncertainties", len(residuals), len(sigmas))
	}
	if dof < 1 {
		return ChiStats{}, fiterr.Wrapf("ChiSquared", ErrDegenerateDoF, "dof=%d", dof)
	}
	var chi2, z float64
	for i, s := range sigmas {
		if !(s > 0) || math.IsInf(s, 0) {
			return ChiStats{}, fiterr.Wrapf("ChiSquared", ErrUncertainty, "σ[%d]=%g", i, s)
		}
		z = residuals[i] / s
		chi2 += z * z
	}
	dist := distuv.ChiSquared{K: float64(dof)}

	return ChiStats{
		Chi2:    chi2,
		Reduced: chi2 / float64(dof),
		PValue:  dist.Survival(chi2),
		DoF:     dof,
	}, nil
}

// Uniform returns n copies of sigma, the usual uncertainty vector for a
// scope trace with a single noise estimate.
func Uniform(n int, sigma float64) []float64 {
	out := make([]float64, n)
	floats.AddConst(sigma, out)

	return out
}
