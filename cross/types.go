// SPDX-License-Identifier: MIT
// Package cross: shared option blocks, result types and sentinel error set.
// This file defines ONLY configuration surface and sentinels. All strategies
// return these sentinels for user-triggered conditions and tests check them
// via errors.Is; numeric degeneracy is avoided structurally by the kernels.

package cross

import (
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/ttcross/maxvol"
	"github.com/katalvlaran/ttcross/tt"
)

var (
	// ErrNilBox - the oracle is nil.
	ErrNilBox = errors.New("cross: nil black box")
	// ErrNoSites - the oracle reports no sites.
	ErrNoSites = errors.New("cross: box has no sites")
	// ErrStartPoint - the starting multi-index has the wrong length or an
	// entry outside the physical range of its site.
	ErrStartPoint = errors.New("cross: invalid starting point")
	// ErrTolerance - negative cost tolerance.
	ErrTolerance = errors.New("cross: tolerance must be non-negative")
	// ErrSweepLimit - the half-sweep budget must be positive.
	ErrSweepLimit = errors.New("cross: max half sweeps must be positive")
	// ErrBondLimit - the bond-dimension ceiling must be positive.
	ErrBondLimit = errors.New("cross: max bond dimension must be positive")
	// ErrCostSamples - the cost sample pool must be non-empty.
	ErrCostSamples = errors.New("cross: cost sample count must be positive")
	// ErrCostOrder - the cost norm order must be at least 1 (or +Inf).
	ErrCostOrder = errors.New("cross: cost norm order must be >= 1")
	// ErrSamplingMode - unknown sampling tag.
	ErrSamplingMode = errors.New("cross: unknown sampling mode")
	// ErrSearchMode - unknown greedy search tag.
	ErrSearchMode = errors.New("cross: unknown search mode")
	// ErrPivotTol - negative greedy residual threshold.
	ErrPivotTol = errors.New("cross: pivot tolerance must be non-negative")
	// ErrPartialBudget - the partial search needs positive pool size and
	// iteration budget.
	ErrPartialBudget = errors.New("cross: partial search budget must be positive")
	// ErrFactorization - an underlying SVD failed to converge.
	ErrFactorization = errors.New("cross: singular value decomposition failed")
)

// StopReason labels why a run ended. Budget exhaustion is a reason, not an
// error: every strategy returns a usable train along with it.
type StopReason int

const (
	// StopNone - the run is still in progress (never returned).
	StopNone StopReason = iota
	// StopConverged - the sampled cost dropped to the tolerance.
	StopConverged
	// StopMaxBond - a bond dimension reached the ceiling.
	StopMaxBond
	// StopMaxTime - the wall-clock budget ran out.
	StopMaxTime
	// StopMaxEvals - the oracle evaluation budget ran out.
	StopMaxEvals
	// StopStagnation - the maximal bond dimension stopped growing.
	StopStagnation
	// StopSweepBudget - the half-sweep budget was exhausted.
	StopSweepBudget
)

// String renders the reason for logs and error messages.
func (r StopReason) String() string {
	switch r {
	case StopConverged:
		return "converged"
	case StopMaxBond:
		return "max bond dimension reached"
	case StopMaxTime:
		return "time budget exhausted"
	case StopMaxEvals:
		return "evaluation budget exhausted"
	case StopStagnation:
		return "bond dimensions stagnated"
	case StopSweepBudget:
		return "sweep budget exhausted"
	default:
		return "none"
	}
}

// SamplingMode selects how the cost evaluator draws its sample pool.
type SamplingMode int

const (
	// SamplingHalton draws a low-discrepancy Halton sequence with a
	// deterministic per-site scramble.
	SamplingHalton SamplingMode = iota
	// SamplingUniform draws independent uniform indices.
	SamplingUniform
)

// SearchMode selects how the greedy strategy scans for residual pivots.
type SearchMode int

const (
	// FullSearch samples the whole superblock and takes the global argmax.
	FullSearch SearchMode = iota
	// PartialSearch samples a random candidate pool and refines it by
	// alternating row/column maximization.
	PartialSearch
)

// CostOptions configures the sampled-cost evaluator. The block is immutable
// configuration: each run builds its own session (and sample cache) from it.
type CostOptions struct {
	// P is the norm order: math.Inf(1) for max-abs (default), finite
	// p ≥ 1 for (mean |·|^p)^(1/p).
	P float64
	// Relative divides the distance by the norm of the cached oracle
	// values (skipped when that norm is zero).
	Relative bool
	// Samples is the pool size.
	Samples int
	// Sampling picks the pool construction.
	Sampling SamplingMode
	// Seed feeds the pool generator; 0 selects the fixed default stream.
	Seed int64
}

// DefaultCostOptions samples 1000 Halton points and reports the absolute
// max-abs deviation.
func DefaultCostOptions() CostOptions {
	return CostOptions{
		P:        math.Inf(1),
		Relative: false,
		Samples:  1000,
		Sampling: SamplingHalton,
		Seed:     0,
	}
}

// Options is the controller configuration shared by all strategies.
type Options struct {
	// Tol is the sampled-cost convergence tolerance.
	Tol float64
	// MaxHalfSweeps caps the number of half sweeps (one directed pass).
	MaxHalfSweeps int
	// MaxBondDim stops the run once any bond reaches this ceiling.
	MaxBondDim int
	// MaxTime stops the run at the first half-sweep boundary past the
	// budget; zero or negative means unlimited.
	MaxTime time.Duration
	// MaxEvals stops the run once the oracle served this many
	// evaluations; zero or negative means unlimited.
	MaxEvals int
	// Cost configures the sampled-cost evaluator.
	Cost CostOptions
	// Logger receives one structured line per half sweep plus the stop
	// line; nil disables logging.
	Logger *zap.Logger
	// Start seeds the initial pivot; nil means the zero multi-index.
	Start []int
}

// DefaultOptions mirrors the reference sweep parameters: tolerance 1e-8,
// 200 half sweeps, bond ceiling 1000, unlimited time and evaluations.
func DefaultOptions() Options {
	return Options{
		Tol:           1e-8,
		MaxHalfSweeps: 200,
		MaxBondDim:    1000,
		Cost:          DefaultCostOptions(),
	}
}

// validate checks the numeric fields; Start is validated against the box
// by NewInterpolant.
func (o *Options) validate() error {
	switch {
	case o.Tol < 0 || math.IsNaN(o.Tol):
		return ErrTolerance
	case o.MaxHalfSweeps < 1:
		return ErrSweepLimit
	case o.MaxBondDim < 1:
		return ErrBondLimit
	case o.Cost.Samples < 1:
		return ErrCostSamples
	case math.IsNaN(o.Cost.P) || (o.Cost.P < 1 && !math.IsInf(o.Cost.P, 1)):
		return ErrCostOrder
	case o.Cost.Sampling != SamplingHalton && o.Cost.Sampling != SamplingUniform:
		return ErrSamplingMode
	}
	return nil
}

// MaxvolOptions configures the one-site maxvol strategy.
type MaxvolOptions struct {
	Options
	// Maxvol drives pivot selection at every site; the kick window
	// controls how fast bonds may grow.
	Maxvol maxvol.Options
}

// DefaultMaxvolOptions combines the controller defaults with the
// (0, 1) rank-kick selection window.
func DefaultMaxvolOptions() MaxvolOptions {
	return MaxvolOptions{Options: DefaultOptions(), Maxvol: maxvol.DefaultOptions()}
}

// DMRGOptions configures the two-site strategy.
type DMRGOptions struct {
	Options
	// Trunc is the superblock SVD truncation policy; bonds can both grow
	// and shrink under it.
	Trunc tt.Truncation
	// Maxvol drives the square pivot selection on the orthonormal
	// factors (only MaxIterations and Tol are consumed).
	Maxvol maxvol.Options
}

// DefaultDMRGOptions keeps the spectrum near float64 precision; tighten
// Trunc.RelTol towards Options.Tol to trade accuracy for smaller bonds.
func DefaultDMRGOptions() DMRGOptions {
	return DMRGOptions{
		Options: DefaultOptions(),
		Trunc:   tt.DefaultTruncation(),
		Maxvol:  maxvol.DefaultOptions(),
	}
}

// GreedyOptions configures single-pivot insertion sweeps.
type GreedyOptions struct {
	Options
	// Search picks full or partial residual search.
	Search SearchMode
	// PivotTol discards candidate pivots with residuals at or below it.
	PivotTol float64
	// PartialIterations bounds the alternating row/column refinement.
	PartialIterations int
	// PartialCandidates sizes the random row and column pools.
	PartialCandidates int
	// Seed feeds the partial-search generator; 0 selects the fixed
	// default stream.
	Seed int64
}

// DefaultGreedyOptions searches the full superblock and discards pivots
// below 1e-12; the partial budgets match the reference (5 rounds over
// pools of 10).
func DefaultGreedyOptions() GreedyOptions {
	return GreedyOptions{
		Options:           DefaultOptions(),
		Search:            FullSearch,
		PivotTol:          1e-12,
		PartialIterations: 5,
		PartialCandidates: 10,
	}
}

// SweepStats is one trajectory record, written at a half-sweep boundary.
// Elapsed and Evals are cumulative since the run started.
type SweepStats struct {
	HalfSweep int
	Cost      float64
	BondDims  []int
	Elapsed   time.Duration
	Evals     int
}

// Results carries the final train, the per-half-sweep trajectory and the
// reason the run stopped. Converged is shorthand for Stop == StopConverged.
type Results struct {
	Train      *tt.Train
	Trajectory []SweepStats
	Stop       StopReason
	Converged  bool
}
