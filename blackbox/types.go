// Package blackbox - the Box interface, evaluation counter and sentinels.
package blackbox

import "errors"

// Sentinel errors returned by constructors.
var (
	// ErrNilFunc - the wrapped function or kernel is nil.
	ErrNilFunc = errors.New("blackbox: nil function")
	// ErrDimensionMismatch - incompatible dimensions between collaborators.
	ErrDimensionMismatch = errors.New("blackbox: dimension mismatch")
	// ErrEmptyComposition - a composition needs at least one train.
	ErrEmptyComposition = errors.New("blackbox: empty composition")
	// ErrNilTrain - a composition received a nil train.
	ErrNilTrain = errors.New("blackbox: nil train")
)

// Box is the oracle the cross engine interpolates. Dims lists the per-site
// index ranges, Eval maps a batch of multi-indices to values in batch order
// and Evals reports the cumulative number of evaluations served.
//
// Eval must be deterministic; the counter is its only side effect.
type Box interface {
	Dims() []int
	Eval(batch [][]int) []float64
	Evals() int
}

// counter implements the Evals part of Box for embedding.
type counter struct {
	n int
}

func (c *counter) add(k int) { c.n += k }

// Evals returns the cumulative number of oracle evaluations.
func (c *counter) Evals() int { return c.n }
