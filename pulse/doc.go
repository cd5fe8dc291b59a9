// SPDX-License-Identifier: MIT

// Package pulse evaluates single-pulse shapes: unimodal analytic curves built
// from a symmetric core joined to an exponential tail.
//
// What & Why:
//
//	A fast photodiode pulse rises like a Gaussian (or Lorentzian) and decays
//	exponentially. Each shape splits at an offset Δt chosen so that the core
//	and the tail meet with equal value and equal slope; the tail's leading
//	coefficient h is the core's value at Δt. Both derived constants live in
//	Params and are recomputed on every Set, so an evaluation can never see a
//	stale Δt or h.
//
// Shapes:
//
//	GaussianExp    (σ, λ):  Δt = λσ²,  h = exp(−Δt²/2σ²)
//	               t <  Δt: exp(−t²/2σ²)
//	               t >= Δt: h·exp(−λ(t−Δt))
//	LorentzianExp  (γ, λ):  requires (γλ)² <= 1
//	               Δt = 1/λ + √(1/λ² − γ²),  h = 1/(πγ(1+(Δt/γ)²))
//	               t <  Δt: 1/(πγ(1+(t/γ)²))
//	               t >= Δt: h·exp(−λ(t−Δt))
//	Logistic, LogNormal: declared kinds without an implementation.
//
// Parameters are passed to every evaluation; a Shape holds no parameter state.
//
// Policy:
//   - Non-finite inputs or results fail with ErrNonFinite (a fiterr.ErrDomain)
//     unless the shape was built WithFastMode, in which case the caller owns
//     input hygiene and nothing is checked.
//   - Params reject wrong lengths with ErrParamCount (a fiterr.ErrShapeMismatch)
//     and out-of-domain values with ErrInvalidParams.
package pulse
