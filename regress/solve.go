// SPDX-License-Identifier: MIT

package regress

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/burstfit/matrix"
)

// solve returns the least-squares amplitudes and the numerical rank of x.
func solve(x *matrix.Dense, y []float64, cfg config) ([]float64, int, error) {
	switch cfg.solver {
	case SolverSVD:
		return solveSVD(x, y, cfg.rankTol)
	default:
		a, err := matrix.LeastSquares(x, y, matrix.WithRankTolerance(cfg.rankTol))
		if err != nil {
			return nil, 0, err
		}

		return a, x.Cols(), nil
	}
}

// solveSVD computes the minimum-norm solution pinv(X)·y, discarding
// singular values below rcond·s_max.
func solveSVD(x *matrix.Dense, y []float64, rcond float64) ([]float64, int, error) {
	rows, cols := x.Shape()
	// read-only view of the regressor buffer
	a := mat.NewDense(rows, cols, x.RawData())

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, 0, fmt.Errorf("SVD factorization: %w", ErrSolve)
	}
	rank := svd.Rank(rcond)
	if rank == 0 {
		return nil, 0, fmt.Errorf("SVD rank 0: %w", matrix.ErrRankDeficient)
	}

	var dst mat.VecDense
	svd.SolveVecTo(&dst, mat.NewVecDense(rows, y), rank)
	out := make([]float64, cols)
	for j := range out {
		out[j] = dst.AtVec(j)
	}

	return out, rank, nil
}
