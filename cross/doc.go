// Package cross reconstructs low-rank tensor trains from point evaluations
// of a black-box tensor, using cross interpolation sweeps instead of a full
// decomposition.
//
// 🚀 What is cross interpolation?
//
//	A tensor with n sites has exponentially many entries, but a low-rank
//	tensor train is pinned down by a few well-chosen fibers. The engine
//	sweeps over the sites, asks the black box only for those fibers and
//	rebuilds the train from them. Typical uses:
//	  • compressing discretized multivariate functions
//	  • high-dimensional integration and summation
//	  • surrogate models over quantized (binary) grids
//
// ✨ Strategies:
//   - Maxvol: one-site sweeps; maxvol pivoting with a configurable rank
//     kick; bonds only grow. The cheapest oracle footprint.
//   - DMRG: two-site sweeps; superblock SVD with spectrum truncation;
//     bonds grow and shrink. The most accurate per sweep.
//   - Greedy: single-pivot insertion at the largest residual, with full or
//     randomized partial search; fibers are cached and extended in place.
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/ttcross/cross"
//
//	opts := cross.DefaultDMRGOptions()
//	opts.Tol = 1e-10            // sampled-cost target
//	opts.MaxBondDim = 64        // hard rank ceiling
//
//	res, err := cross.DMRG(box, opts) // box implements blackbox.Box
//	if err != nil { ... }
//	fmt.Println(res.Stop, res.Train.BondDims())
//
// Every run returns a usable train plus its trajectory: one record per half
// sweep with the sampled cost, bond dimensions, elapsed time and cumulative
// oracle evaluations. Budget exhaustion (sweeps, time, evaluations, bond
// ceiling, stagnation) is reported as a StopReason, not an error.
//
// ⚠️ Errors:
//
//	Constructors and strategies return sentinel errors (ErrNilBox,
//	ErrStartPoint, ErrTolerance, ...) testable with errors.Is; numeric
//	SVD failure surfaces as ErrFactorization.
//
// Performance:
//
//   - Oracle calls per half sweep: O(n·r²·s) points for Maxvol,
//     O(n·r²·s²) for DMRG, one column and row per accepted pivot for
//     Greedy (plus search samples).
//   - The sampled cost adds Cost.Samples oracle points once per run.
//
// See examples in example_test.go and runnable scenarios under examples/.
package cross
