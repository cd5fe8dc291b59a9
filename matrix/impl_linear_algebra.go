// SPDX-License-Identifier: MIT
// Package matrix provides the linear-algebra kernels needed by the burst
// regression: matrix-vector products and least-squares solves.
//
// Notes:
//   - All kernels use central validators and return sentinels wrapped via
//     matrixErrorf with an operation tag.
//   - Fast paths operate on *Dense backing slices; any other Matrix goes
//     through At with a fixed i→j order.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial value for accumulations and substitutions.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opMatVec       = "MatVec"
	opLeastSquares = "LeastSquares"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Fast-path: *Dense performs one pass per row with flat indexing.
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	if d, ok := m.(*Dense); ok {
		var acc float64
		for i := 0; i < d.r; i++ {
			acc = ZeroSum
			row := d.data[i*d.c : (i+1)*d.c]
			for j, xv := range x {
				if xv != 0 { // pulses outside the window contribute exact zeros
					acc += row[j] * xv
				}
			}
			y[i] = acc
		}

		return y, nil
	}

	var mv float64
	var err error
	for i := 0; i < rows; i++ {
		y[i] = ZeroSum
		for j := 0; j < cols; j++ {
			if mv, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMatVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}

// LeastSquares returns the x minimizing ||b − A·x||₂ for a tall A (rows ≥ cols).
//
// Implementation:
//   - Stage 1: validate A (non-nil, tall) and b (len == rows, finite under policy).
//   - Stage 2: copy A into a row-major work buffer and b into a work vector.
//   - Stage 3: for k = 0..cols-1 build the Householder reflector of column k
//     and apply it to the trailing columns of A and to b. A becomes R in its
//     upper triangle and b becomes Qᵀb; Q is never formed.
//   - Stage 4: rank check |R[k,k]| > tol·max|R[j,j]|, then back substitution
//     R·x = (Qᵀb)[:cols].
//
// Behavior highlights:
//   - Conditioning is that of A, not of AᵀA as with the normal equations.
//   - Inputs are never mutated.
//
// Errors:
//   - ErrNilMatrix, ErrUnderdetermined, ErrDimensionMismatch, ErrNaNInf,
//     ErrRankDeficient.
//
// Complexity:
//   - Time O(r·c²), Space O(r·c).
func LeastSquares(a Matrix, b []float64, opts ...Option) ([]float64, error) {
	o := gatherOptions(opts...)
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opLeastSquares, err)
	}
	if err := ValidateTall(a); err != nil {
		return nil, matrixErrorf(opLeastSquares, err)
	}
	if err := ValidateVecLen(b, a.Rows()); err != nil {
		return nil, matrixErrorf(opLeastSquares, err)
	}
	if o.validateNaNInf {
		if err := ValidateFinite(b); err != nil {
			return nil, matrixErrorf(opLeastSquares, err)
		}
	}

	rows, cols := a.Rows(), a.Cols()
	w, err := workCopy(a)
	if err != nil {
		return nil, matrixErrorf(opLeastSquares, err)
	}
	y := make([]float64, rows)
	copy(y, b)

	v := make([]float64, rows) // Householder vector, reused per column
	var (
		norm, alpha, beta, tau, sum float64
		i, j, k                     int
	)
	for k = 0; k < cols; k++ {
		norm = ZeroSum
		for i = k; i < rows; i++ {
			norm += w[i*cols+k] * w[i*cols+k]
		}
		norm = math.Sqrt(norm)
		if norm == ZeroSum {
			continue // zero column: caught by the rank check below
		}
		alpha = -math.Copysign(norm, w[k*cols+k])

		for i = k; i < rows; i++ {
			v[i] = w[i*cols+k]
		}
		v[k] -= alpha
		beta = ZeroSum
		for i = k; i < rows; i++ {
			beta += v[i] * v[i]
		}
		if beta == ZeroSum {
			continue
		}
		tau = 2.0 / beta

		for j = k; j < cols; j++ {
			sum = ZeroSum
			for i = k; i < rows; i++ {
				sum += v[i] * w[i*cols+j]
			}
			sum *= tau
			for i = k; i < rows; i++ {
				w[i*cols+j] -= sum * v[i]
			}
		}
		sum = ZeroSum
		for i = k; i < rows; i++ {
			sum += v[i] * y[i]
		}
		sum *= tau
		for i = k; i < rows; i++ {
			y[i] -= sum * v[i]
		}
	}

	var maxDiag float64
	for k = 0; k < cols; k++ {
		maxDiag = math.Max(maxDiag, math.Abs(w[k*cols+k]))
	}
	if maxDiag == ZeroSum {
		return nil, matrixErrorf(opLeastSquares, ErrRankDeficient)
	}
	limit := o.rankTol * maxDiag
	for k = 0; k < cols; k++ {
		if d := math.Abs(w[k*cols+k]); d == ZeroSum || d <= limit {
			return nil, matrixErrorf(opLeastSquares, fmt.Errorf("column %d: %w", k, ErrRankDeficient))
		}
	}

	x := make([]float64, cols)
	for k = cols - 1; k >= 0; k-- {
		sum = y[k]
		for j = k + 1; j < cols; j++ {
			sum -= w[k*cols+j] * x[j]
		}
		x[k] = sum / w[k*cols+k]
	}

	return x, nil
}

// workCopy returns a fresh row-major copy of m.
func workCopy(m Matrix) ([]float64, error) {
	rows, cols := m.Rows(), m.Cols()
	if d, ok := m.(*Dense); ok {
		out := make([]float64, len(d.data))
		copy(out, d.data)

		return out, nil
	}
	out := make([]float64, rows*cols)
	var err error
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if out[i*cols+j], err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
		}
	}

	return out, nil
}
