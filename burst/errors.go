// SPDX-License-Identifier: MIT

package burst

import "github.com/katalvlaran/burstfit/fiterr"

var (
	// ErrPulseCount indicates a pulse count below one.
	ErrPulseCount = fiterr.New(fiterr.ErrDomain, "burst: pulse count must be >= 1")

	// ErrNonFiniteT0 indicates a NaN or ±Inf start time.
	ErrNonFiniteT0 = fiterr.New(fiterr.ErrDomain, "burst: t0 must be finite")

	// ErrAmplitudeCount indicates an amplitude vector whose length differs
	// from the pulse count.
	ErrAmplitudeCount = fiterr.New(fiterr.ErrShapeMismatch, "burst: amplitude count differs from pulse count")

	// ErrNoSamples indicates an empty sample-time slice.
	ErrNoSamples = fiterr.New(fiterr.ErrDomain, "burst: no sample times")

	// ErrNilCalibration indicates a nil calibration passed to New.
	ErrNilCalibration = fiterr.New(fiterr.ErrPrecondition, "burst: nil calibration")
)
