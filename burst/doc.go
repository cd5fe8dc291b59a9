// SPDX-License-Identifier: MIT

// Package burst composes the timing model and a pulse shape into the burst
// signal model.
//
// Pulse j of a burst that starts at t0 is centered at
//
//	c_j = t0 − delay + TimeFromStart(j)
//
// where delay is the cable delay of the trace type. The regressor matrix X
// has one row per sample time and one column per pulse, X[i][j] =
// shape.EvalNormalized(t_i − c_j), so a waveform with per-pulse amplitudes a
// is X·a. The model is linear in a and non-linear only in the shape
// parameters and the timing, which are supplied, never fitted.
//
// The valid support of a burst is the closed window
//
//	t_start = t0 − pulseWidth/2
//	t_end   = t_start + TimeFromStart(n)
//
// and is re-derived by every mutator that changes t0 or n.
//
// A Model is not safe for concurrent mutation; build one per fit.
package burst
