// SPDX-License-Identifier: MIT
// controller.go - the sweep loop shared by every strategy.
//
// Purpose:
//   - Run directed half sweeps, record one trajectory entry per half sweep
//     and decide when to stop.
//
// Stop conditions, checked in order at every half-sweep boundary:
//  1. cost ≤ Tol                    → StopConverged
//  2. max bond ≥ MaxBondDim         → StopMaxBond
//  3. elapsed ≥ MaxTime (if set)    → StopMaxTime
//  4. oracle evals ≥ MaxEvals (set) → StopMaxEvals
//  5. max bond did not grow         → StopStagnation (growth-only
//     strategies; first comparable at the third record)
//  6. half-sweep budget exhausted   → StopSweepBudget (loop exit, no error)

package cross

import (
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/ttcross/blackbox"
	"github.com/katalvlaran/ttcross/tt"
)

// tracker accumulates the trajectory and applies the stop policy.
type tracker struct {
	opts       *Options
	box        blackbox.Box
	cost       *costSession
	log        *zap.Logger
	variant    string
	started    time.Time
	stats      []SweepStats
	stagnation bool
}

// newTracker starts the run clock. stagnation enables stop condition 5 for
// strategies whose bonds can only grow.
func newTracker(variant string, box blackbox.Box, opts *Options, stagnation bool) *tracker {
	var log = opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &tracker{
		opts:       opts,
		box:        box,
		cost:       newCostSession(box, opts.Cost),
		log:        log,
		variant:    variant,
		started:    time.Now(),
		stats:      make([]SweepStats, 0, opts.MaxHalfSweeps),
		stagnation: stagnation,
	}
}

// record appends the trajectory entry for one finished half sweep and
// evaluates the stop conditions. done=true means the run must end with the
// returned reason.
func (t *tracker) record(halfSweep int, train *tt.Train) (StopReason, bool) {
	var (
		c       = t.cost.cost(train)
		bonds   = train.BondDims()
		maxBond = train.MaxBondDim()
		elapsed = time.Since(t.started)
		evals   = t.box.Evals()
	)
	t.stats = append(t.stats, SweepStats{
		HalfSweep: halfSweep,
		Cost:      c,
		BondDims:  bonds,
		Elapsed:   elapsed,
		Evals:     evals,
	})
	t.log.Info("cross half sweep",
		zap.String("variant", t.variant),
		zap.Int("half_sweep", halfSweep),
		zap.Float64("cost", c),
		zap.Float64("tol", t.opts.Tol),
		zap.Int("max_bond", maxBond),
		zap.Ints("bonds", bonds),
		zap.Duration("elapsed", elapsed),
		zap.Int("evals", evals))

	switch {
	case c <= t.opts.Tol:
		return StopConverged, true
	case maxBond >= t.opts.MaxBondDim:
		return StopMaxBond, true
	case t.opts.MaxTime > 0 && elapsed >= t.opts.MaxTime:
		return StopMaxTime, true
	case t.opts.MaxEvals > 0 && evals >= t.opts.MaxEvals:
		return StopMaxEvals, true
	}
	if t.stagnation && halfSweep > 2 && len(t.stats) >= 2 {
		if maxBond <= maxInts(t.stats[len(t.stats)-2].BondDims) {
			return StopStagnation, true
		}
	}

	return StopNone, false
}

// finish logs the terminal line and assembles the results around the live
// train.
func (t *tracker) finish(train *tt.Train, stop StopReason) *Results {
	var (
		cost  float64
		evals int
	)
	if len(t.stats) > 0 {
		cost = t.stats[len(t.stats)-1].Cost
		evals = t.stats[len(t.stats)-1].Evals
	}
	t.log.Info("cross stop",
		zap.String("variant", t.variant),
		zap.Stringer("reason", stop),
		zap.Int("half_sweeps", len(t.stats)),
		zap.Float64("cost", cost),
		zap.Int("evals", evals))

	return &Results{
		Train:      train,
		Trajectory: t.stats,
		Stop:       stop,
		Converged:  stop == StopConverged,
	}
}

// runSweeps alternates directed passes until a stop condition fires.
// pass(true) sweeps left to right, pass(false) right to left; every pass
// must leave the train bond-consistent.
func runSweeps(trk *tracker, ip *Interpolant, pass func(forward bool) error) (*Results, error) {
	var hs int
	for hs = 1; hs <= trk.opts.MaxHalfSweeps; hs++ {
		if err := pass(hs%2 == 1); err != nil {
			return nil, err
		}
		if stop, done := trk.record(hs, ip.train); done {
			return trk.finish(ip.train, stop), nil
		}
	}

	return trk.finish(ip.train, StopSweepBudget), nil
}

// maxInts returns the largest entry of a non-empty slice.
func maxInts(xs []int) int {
	var m = xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}

	return m
}
