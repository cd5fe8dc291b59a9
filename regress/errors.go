// SPDX-License-Identifier: MIT

package regress

import (
	"fmt"

	"github.com/katalvlaran/burstfit/fiterr"
)

var (
	// ErrNoFit is returned by Fitter.ChiSquared before any Fit call.
	ErrNoFit = fiterr.New(fiterr.ErrPrecondition, "regress: no fit performed yet")

	// ErrNilInput indicates a nil trace or model.
	ErrNilInput = fiterr.New(fiterr.ErrPrecondition, "regress: nil trace or model")

	// ErrLengthMismatch indicates paired slices of different lengths.
	ErrLengthMismatch = fiterr.New(fiterr.ErrShapeMismatch, "regress: slice lengths differ")

	// ErrTooFewSamples indicates no more samples than pulses, leaving no
	// residual degrees of freedom.
	ErrTooFewSamples = fiterr.New(fiterr.ErrDomain, "regress: need more samples than pulses")

	// ErrConstantObserved indicates observations with zero total variance,
	// for which R² is undefined.
	ErrConstantObserved = fiterr.New(fiterr.ErrDomain, "regress: observed values have zero variance")

	// ErrDegenerateDoF indicates a non-positive denominator in an adjusted R²
	// or χ² statistic.
	ErrDegenerateDoF = fiterr.New(fiterr.ErrDomain, "regress: degrees of freedom collapse")

	// ErrUncertainty indicates a non-finite or non-positive measurement uncertainty.
	ErrUncertainty = fiterr.New(fiterr.ErrDomain, "regress: uncertainties must be finite and > 0")

	// ErrSolve indicates the SVD factorization did not converge or found no
	// usable singular value.
	ErrSolve = fiterr.New(fiterr.ErrDomain, "regress: least-squares solve failed")
)

// QualityError reports a fit whose R² fell below the acceptance threshold.
// Result holds the full computed fit.
type QualityError struct {
	Name        string
	RSquared    float64
	Threshold   float64
	RejectFloor float64
	// Severe is set when RSquared is below RejectFloor: the fit should not
	// be used at all.
	Severe bool
	Result *Result
}

func (e *QualityError) Error() string {
	name := e.Name
	if name == "" {
		name = "fit"
	}
	if e.Severe {
		return fmt.Sprintf("regress: %s R²=%.3f < %.2f: fit is very poor and should not be used", name, e.RSquared, e.RejectFloor)
	}

	return fmt.Sprintf("regress: %s R²=%.3f < %.2f: inspect the fit before using it", name, e.RSquared, e.Threshold)
}

// Unwrap lets errors.Is(err, fiterr.ErrFitQuality) match.
func (e *QualityError) Unwrap() error { return fiterr.ErrFitQuality }
