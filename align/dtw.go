// SPDX-License-Identifier: MIT

package align

import (
	"fmt"
	"math"
)

// DTW computes the warping distance between a and b, and the optimal path
// as index pairs from (0,0) to (n−1, m−1) when opts.ReturnPath is set.
// A nil opts means DefaultOptions.
//
// Recurrence over D of size (n+1)×(m+1), D[0][0]=0, borders +Inf:
//
//	D[i][j] = |a[i−1]−b[j−1]| + min(D[i−1][j]+p, D[i][j−1]+p, D[i−1][j−1])
//
// Cells outside the window stay +Inf; if the window makes (n, m)
// unreachable the distance is +Inf and the path is nil.
func DTW(a, b []float64, opts *Options) (distance float64, path []Coord, err error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return 0, nil, ErrEmptyInput
	}
	if o.Window < -1 || o.SlopePenalty < 0 || math.IsNaN(o.SlopePenalty) || math.IsInf(o.SlopePenalty, 0) {
		return 0, nil, fmt.Errorf("window=%d penalty=%g: %w", o.Window, o.SlopePenalty, ErrBadInput)
	}
	switch o.MemoryMode {
	case FullMatrix:
	case TwoRows:
		if o.ReturnPath {
			return 0, nil, ErrPathNeedsMatrix
		}
	default:
		return 0, nil, fmt.Errorf("memory mode %d: %w", o.MemoryMode, ErrBadInput)
	}

	cols := m + 1
	inf := math.Inf(1)
	var d []float64
	if o.MemoryMode == FullMatrix {
		d = make([]float64, (n+1)*cols)
	} else {
		d = make([]float64, 2*cols)
	}
	for j := 1; j < cols; j++ {
		d[j] = inf
	}

	var (
		cur, prev   []float64
		lo, hi, row int
	)
	for i := 1; i <= n; i++ {
		if o.MemoryMode == FullMatrix {
			prev, cur = d[(i-1)*cols:i*cols], d[i*cols:(i+1)*cols]
		} else {
			row = i & 1
			prev, cur = d[(1-row)*cols:(2-row)*cols], d[row*cols:(row+1)*cols]
		}
		lo, hi = 1, m
		if o.Window >= 0 {
			lo, hi = max(1, i-o.Window), min(m, i+o.Window)
		}
		for j := 0; j < cols; j++ {
			if j < lo || j > hi {
				cur[j] = inf
			}
		}
		for j := lo; j <= hi; j++ {
			cur[j] = math.Abs(a[i-1]-b[j-1]) +
				min(prev[j]+o.SlopePenalty, cur[j-1]+o.SlopePenalty, prev[j-1])
		}
	}

	if o.MemoryMode == FullMatrix {
		distance = d[n*cols+m]
	} else {
		distance = d[(n&1)*cols+m]
	}
	if o.ReturnPath && !math.IsInf(distance, 1) {
		path = backtrack(d, cols, n, m, o.SlopePenalty)
	}

	return distance, path, nil
}

// backtrack walks from (n, m) to (1, 1), always stepping to the cheapest
// predecessor (diagonal first on ties), and returns the path in forward order.
func backtrack(d []float64, cols, n, m int, penalty float64) []Coord {
	path := make([]Coord, 0, n+m)
	i, j := n, m
	for i > 0 && j > 0 {
		path = append(path, Coord{I: i - 1, J: j - 1})
		if i == 1 && j == 1 {
			break
		}
		diag := d[(i-1)*cols+j-1]
		up := d[(i-1)*cols+j] + penalty
		left := d[i*cols+j-1] + penalty
		switch {
		case diag <= up && diag <= left:
			i, j = i-1, j-1
		case up <= left:
			i--
		default:
			j--
		}
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}

	return path
}
