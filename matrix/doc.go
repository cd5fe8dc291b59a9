// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra core used by the burst
// regression: a row-major Dense buffer for regressor matrices, matrix-vector
// products and a Householder least-squares solver for tall systems.
//
// What & Why:
//
//	A regressor matrix has one row per sample time and one column per pulse.
//	Sample counts run into the thousands while pulse counts stay small, so the
//	storage is a single contiguous row-major slice (offset = i*cols + j) and
//	the solver factorizes the tall matrix directly instead of forming the
//	normal equations XᵀX, whose condition number is the square of X's.
//
// Policy:
//   - No panics on user-triggered conditions; sentinel errors (errors.go) are
//     returned and wrapped with an operation tag ("LeastSquares: ...").
//   - Deterministic loop orders everywhere; no map iteration, no randomness.
//   - Finite-only numeric policy by default (WithNoValidateNaNInf relaxes it).
//
// Complexity quicksheet:
//   - NewDense: O(r*c); At/Set: O(1); MatVec: O(r*c); LeastSquares: O(r*c²).
package matrix
