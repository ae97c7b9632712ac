// Package grid - interval kinds, sentinel errors and the Interval type.
package grid

import (
	"errors"
	"math"
)

// Sentinel errors.
var (
	// ErrEmptyGrid - a grid needs at least one interval.
	ErrEmptyGrid = errors.New("grid: empty grid")
	// ErrBadInterval - invalid bounds or node count for an interval.
	ErrBadInterval = errors.New("grid: invalid interval")
	// ErrMapShape - index map incompatible with the grid or its own sites.
	ErrMapShape = errors.New("grid: map shape mismatch")
)

// Kind selects the node layout of an interval.
type Kind int

const (
	// Open spaces N nodes uniformly with the right endpoint excluded:
	// x_i = Lo + i·(Hi−Lo)/N.
	Open Kind = iota
	// Closed spaces N nodes uniformly including both endpoints:
	// x_i = Lo + i·(Hi−Lo)/(N−1).
	Closed
	// Chebyshev places the N extrema of the Chebyshev polynomial on
	// [Lo, Hi] in ascending order: x_i = Lo + (Hi−Lo)·(1−cos(iπ/(N−1)))/2.
	Chebyshev
)

// Interval is a discretized 1-D segment with N nodes of the given Kind.
type Interval struct {
	Lo, Hi float64
	N      int
	Kind   Kind
}

// validate reports whether the interval is well formed.
func (iv Interval) validate() error {
	if iv.N < 1 || iv.Hi < iv.Lo {
		return ErrBadInterval
	}
	if iv.Kind == Chebyshev && iv.N < 2 {
		return ErrBadInterval
	}
	return nil
}

// Node returns the coordinate of node i. The index is trusted to lie in
// [0, N); intervals inside a Grid have been validated at construction.
func (iv Interval) Node(i int) float64 {
	switch iv.Kind {
	case Closed:
		if iv.N == 1 {
			return iv.Lo
		}
		return iv.Lo + float64(i)*(iv.Hi-iv.Lo)/float64(iv.N-1)
	case Chebyshev:
		return iv.Lo + (iv.Hi-iv.Lo)*(1-math.Cos(float64(i)*math.Pi/float64(iv.N-1)))/2
	default:
		return iv.Lo + float64(i)*(iv.Hi-iv.Lo)/float64(iv.N)
	}
}

// Nodes materializes all N coordinates in index order.
func (iv Interval) Nodes() []float64 {
	out := make([]float64, iv.N)
	for i := range out {
		out[i] = iv.Node(i)
	}
	return out
}
