// SPDX-License-Identifier: MIT

package align

import "errors"

// MemoryMode controls how DTW stores its cost matrix.
type MemoryMode int

const (
	// FullMatrix keeps the whole (n+1)×(m+1) matrix and supports ReturnPath.
	FullMatrix MemoryMode = iota
	// TwoRows keeps only the previous and current rows; distance only.
	TwoRows
)

// Options configures DTW.
//
//   - Window: maximum |i−j| (Sakoe–Chiba band); -1 disables the band.
//   - SlopePenalty: cost added to every insertion or deletion step (>= 0).
//   - ReturnPath: backtrack and return the optimal path (needs FullMatrix).
//   - MemoryMode: FullMatrix or TwoRows.
type Options struct {
	Window       int
	SlopePenalty float64
	ReturnPath   bool
	MemoryMode   MemoryMode
}

// Coord is one alignment step: a[I] matched with b[J].
type Coord struct {
	I, J int
}

// DefaultOptions returns an unconstrained, penalty-free, distance-only setup.
func DefaultOptions() Options {
	return Options{Window: -1, MemoryMode: FullMatrix}
}

var (
	// ErrEmptyInput indicates an empty sequence.
	ErrEmptyInput = errors.New("align: input sequences must be non-empty")

	// ErrBadInput indicates an invalid option (Window < -1, negative or
	// non-finite SlopePenalty, unknown MemoryMode, sample step <= 0).
	ErrBadInput = errors.New("align: invalid options")

	// ErrPathNeedsMatrix indicates ReturnPath without FullMatrix.
	ErrPathNeedsMatrix = errors.New("align: ReturnPath requires MemoryMode=FullMatrix")

	// ErrNoSignal indicates a model with zero total weight along the path.
	ErrNoSignal = errors.New("align: model has no signal to align on")
)
