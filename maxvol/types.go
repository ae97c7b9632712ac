// SPDX-License-Identifier: MIT
// Package maxvol: options and sentinel error set.
// This file defines the shared Options block and ONLY package-level sentinel
// errors. All algorithms return these sentinels and tests check them via
// errors.Is; no function panics on user-triggered conditions.

package maxvol

import "errors"

var (
	// ErrNilMatrix is returned when the input matrix is nil.
	ErrNilMatrix = errors.New("maxvol: nil matrix")

	// ErrRankKick is returned when the requested rank window is unsatisfiable:
	// a negative MinRankKick, a window with min above max, or a maximal rank
	// exceeding the row count.
	ErrRankKick = errors.New("maxvol: invalid rank kick window")

	// ErrSingular is returned when the seed pivot submatrix cannot be solved
	// against, meaning the input columns are numerically dependent beyond
	// what row swaps can repair.
	ErrSingular = errors.New("maxvol: singular pivot submatrix")
)

// Options bundles the knobs of the square and rectangular selections.
type Options struct {
	// MaxIterations caps the square swap loop.
	MaxIterations int
	// Tol is the square stopping threshold on max |B|; values below 1
	// cannot be met and simply exhaust MaxIterations.
	Tol float64
	// RectTol is the rectangular stopping threshold: growth stops when the
	// best volume-gain score 1+‖B[i]‖² drops to RectTol². Scores never fall
	// below 1, so a RectTol at or below 1 grows to MaxRankKick every time.
	RectTol float64
	// MinRankKick and MaxRankKick bound how many rows Rectangular adds on
	// top of the square selection: the final row count lies in
	// [r+MinRankKick, r+MaxRankKick].
	MinRankKick int
	MaxRankKick int
}

// DefaultOptions mirrors the parameters the cross engine sweeps with:
// ten swap iterations, both tolerances at 1.05 and a (0, 1) kick window.
func DefaultOptions() Options {
	return Options{
		MaxIterations: 10,
		Tol:           1.05,
		RectTol:       1.05,
		MinRankKick:   0,
		MaxRankKick:   1,
	}
}
