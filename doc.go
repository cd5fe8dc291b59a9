// SPDX-License-Identifier: MIT

// Package burstfit estimates the amplitude of every pulse in an oscilloscope
// trace of a periodic pulse burst.
//
// What is burstfit?
//
//	A burst is N pulses of one calibrated shape whose arrival times follow a
//	fixed group-of-four timing pattern. Given the first pulse center t0, the
//	shape of each pulse is known and only its height is not, so the burst is
//	linear in the amplitudes: y(t) = Σ_j a_j · h(t − c_j). burstfit builds that
//	regressor matrix, solves the least-squares problem, and gates the result
//	on R² before anyone trusts the amplitudes.
//
// Packages:
//
//	timing/   pulse center offsets: Period·⌊n/4⌋ + τ[n mod 4]
//	pulse/    normalized pulse shapes (Gaussian-exponential, Lorentzian-exponential)
//	trace/    immutable time/value series with units
//	calib/    bench constants, cable delays, per-trace-type shape parameters
//	burst/    the burst signal model: window, centers, regressor matrix
//	matrix/   dense storage and the Householder least-squares solve
//	regress/  the fitter, R²/adjusted R²/χ² statistics, quality gate
//	synth/    deterministic synthetic bursts and noise traces
//	align/    DTW timing-skew diagnostic between fit and measurement
//	ingest/   instrument file loaders (LeCroy CSV, optionally gzipped)
//	report/   amplitude CSVs, JSON fit records, fit and residual plots
//	fiterr/   error categories shared by every package
//
// Quick example:
//
//	cal := calib.Default()
//	m, _ := burst.New(2e-9, 16, calib.Reflected, cal)
//	tr, _ := ingest.Load("C2trc00000.csv")
//	win, _ := m.Restrict(tr)
//	res, err := regress.New().Fit(win, m)
//
// The command-line front end lives in cmd/burstfit.
package burstfit
