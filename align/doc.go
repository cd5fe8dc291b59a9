// SPDX-License-Identifier: MIT

// Package align measures timing skew between a measured trace and its fitted
// model with Dynamic Time Warping (DTW).
//
// What & Why:
//
//	A burst fit assumes the pulse centers are known from t0. When t0 is
//	mis-registered by a few samples the fit quality drops but the amplitudes
//	alone do not say why. DTW warps the model onto the measurement; along the
//	optimal path each matched pair (i, j) says "measured sample i looks like
//	model sample j", so i−j weighted by the model's signal is the sample lag.
//	Lag converts it to seconds.
//
// Features:
//   - full-matrix mode with alignment path, or two-row mode for distance only
//   - Sakoe–Chiba window (|i−j| <= w) to bound the search and the cost
//   - slope penalty on insertion/deletion steps to prefer the diagonal
//
// Complexity:
//   - Time:   O(N·M), or O(N·w) with a window
//   - Memory: O(N·M) (FullMatrix) or O(M) (TwoRows)
package align
