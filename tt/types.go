// Package tt - shared types, ordering conventions, sentinel errors and the
// rank-truncation policy for tensor-train containers.
package tt

import (
	"errors"
	"math"
)

// Sentinel errors returned by constructors and Validate.
var (
	// ErrEmptyTrain - a train needs at least one core / one site.
	ErrEmptyTrain = errors.New("tt: empty train")
	// ErrBadDims - a physical dimension is missing or non-positive.
	ErrBadDims = errors.New("tt: physical dimensions must be positive")
	// ErrBoundaryBond - the first left bond and the last right bond must be 1.
	ErrBoundaryBond = errors.New("tt: boundary bond dimension must be 1")
	// ErrBondMismatch - adjacent cores disagree on the shared bond dimension.
	ErrBondMismatch = errors.New("tt: adjacent bond dimensions mismatch")
	// ErrVectorLength - dense input length does not match the dimension product.
	ErrVectorLength = errors.New("tt: vector length does not match dimensions")
	// ErrFactorization - an underlying SVD failed to converge.
	ErrFactorization = errors.New("tt: singular value decomposition failed")
)

// Order selects how a multi-axis block is flattened into a matrix.
type Order int

const (
	// RowMajor groups indices with the last one varying fastest (C order).
	RowMajor Order = iota
	// ColMajor groups indices with the first one varying fastest
	// (Fortran order).
	ColMajor
)

// Truncation is the rank-selection rule applied to a descending singular
// spectrum. A rank r is admissible when the discarded Frobenius tail
// sqrt(σ_r²+σ_{r+1}²+…) does not exceed max(AbsTol, RelTol·‖σ‖₂).
// Rank returns the smallest admissible r, clamped to [1, MaxRank].
type Truncation struct {
	// RelTol bounds the discarded tail relative to the full spectrum norm.
	RelTol float64
	// AbsTol bounds the discarded tail absolutely.
	AbsTol float64
	// MaxRank caps the kept rank regardless of tolerances; 0 means no cap.
	MaxRank int
}

// DefaultTruncation keeps the spectrum essentially intact: the relative
// tail bound sits near float64 precision and no hard rank cap is applied.
func DefaultTruncation() Truncation {
	return Truncation{RelTol: 1e-14, AbsTol: 0, MaxRank: 0}
}

// Rank picks the kept rank for the (descending, non-negative) spectrum sigma.
// At least one direction is always kept so downstream chains never collapse
// to rank zero; MaxRank wins over the tolerance bounds when both apply.
func (t Truncation) Rank(sigma []float64) int {
	if len(sigma) == 0 {
		return 0
	}

	// Stage 1 - resolve the effective tail threshold.
	var total float64
	for _, s := range sigma {
		total += s * s
	}
	thr := t.AbsTol
	if rel := t.RelTol * math.Sqrt(total); rel > thr {
		thr = rel
	}

	// Stage 2 - grow the discarded tail from the back until it overflows.
	var (
		tail float64
		rank int
	)
	for i := len(sigma) - 1; i >= 0; i-- {
		tail += sigma[i] * sigma[i]
		if math.Sqrt(tail) > thr {
			rank = i + 1
			break
		}
	}

	// Stage 3 - clamp to [1, MaxRank].
	if rank < 1 {
		rank = 1
	}
	if t.MaxRank > 0 && rank > t.MaxRank {
		rank = t.MaxRank
	}
	if rank > len(sigma) {
		rank = len(sigma)
	}
	return rank
}
