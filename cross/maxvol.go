// SPDX-License-Identifier: MIT
// maxvol.go - one-site cross interpolation driven by maxvol pivoting.
//
// Implementation outline:
//
//	Forward half sweep (sites 0 … n-2):
//	  Stage 1 - sample the one-site fiber over (I_left[k], I_right[k]).
//	  Stage 2 - orthonormalize its column-major left unfold.
//	  Stage 3 - maxvol.Choose picks well-conditioned rows (plus the
//	            configured rank kick) and returns the interpolation
//	            coefficients with exact unit rows at the pivots.
//	  Stage 4 - the picked rows re-anchor I_left[k+1]; the coefficient
//	            matrix becomes core k. Site n-1 keeps its raw fiber, so
//	            the pass ends with a bond-consistent train that matches
//	            the oracle exactly on the pivot grid.
//	Backward half sweep mirrors the same steps on right unfolds,
//	re-anchoring I_right[k-1] and finishing with the raw fiber at site 0.
//
// Behavior highlights:
//   - Bonds can only grow (by MinRankKick … MaxRankKick per site visit),
//     so stagnating bond dimensions end the run.
//   - Every fiber goes to the oracle as one batch of |I_l|·dim·|I_r| points.
//
// Determinism: fully deterministic for a deterministic oracle; pivot ties
// resolve by the lowest flat index.
//
// AI-Hints:
//   - Prefer MinRankKick=0 (the default window) unless the target is known
//     to need steadily growing bonds; forced kicks inflate oracle cost.
//   - If runs end with StopStagnation before reaching Tol, widen the kick
//     window or switch to DMRG, which can also shrink bonds.

package cross

import (
	"github.com/katalvlaran/ttcross/blackbox"
	"github.com/katalvlaran/ttcross/maxvol"
	"github.com/katalvlaran/ttcross/tt"
)

// Maxvol runs alternating one-site maxvol sweeps until a stop condition
// fires. The returned results always carry a usable train, also on budget
// exhaustion.
//
// Errors: option sentinels from validation, ErrNilBox / ErrNoSites /
// ErrStartPoint from state construction, maxvol.ErrRankKick for a negative
// kick window, ErrFactorization when an SVD fails.
func Maxvol(box blackbox.Box, opts MaxvolOptions) (*Results, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Maxvol.MinRankKick < 0 {
		return nil, maxvol.ErrRankKick
	}

	ip, err := NewInterpolant(box, opts.Start)
	if err != nil {
		return nil, err
	}

	var trk = newTracker("maxvol", box, &opts.Options, true)

	return runSweeps(trk, ip, func(forward bool) error {
		if forward {
			return ip.maxvolForward(opts.Maxvol)
		}

		return ip.maxvolBackward(opts.Maxvol)
	})
}

// maxvolForward sweeps sites 0 … n-2, re-anchoring the left pivot sets, and
// closes the pass with the raw fiber at site n-1.
func (ip *Interpolant) maxvolForward(mo maxvol.Options) error {
	var (
		n = ip.Sites()
		k int
	)
	for k = 0; k < n-1; k++ {
		var fiber = ip.SampleFiber(k)

		q, err := orthonormalColumns(fiber.UnfoldLeft(tt.ColMajor))
		if err != nil {
			return err
		}
		rows, b, err := maxvol.Choose(q, mo)
		if err != nil {
			return err
		}

		// Rows of the (I_left[k] × dim_k) product picked by maxvol
		// become the next left pivot set.
		var (
			prod = productLeft(tt.ColMajor, ip.il[k], ip.dims[k])
			next = make([][]int, len(rows))
		)
		for t, a := range rows {
			next[t] = prod[a]
		}
		ip.il[k+1].Replace(next)

		ip.train.SetCore(k, tt.FoldLeft(b, ip.il[k].Len(), ip.dims[k], len(rows), tt.ColMajor))
	}
	ip.train.SetCore(n-1, ip.SampleFiber(n-1))

	return nil
}

// maxvolBackward sweeps sites n-1 … 1, re-anchoring the right pivot sets,
// and closes the pass with the raw fiber at site 0.
func (ip *Interpolant) maxvolBackward(mo maxvol.Options) error {
	var (
		n = ip.Sites()
		k int
	)
	for k = n - 1; k > 0; k-- {
		var fiber = ip.SampleFiber(k)

		q, err := orthonormalColumns(transposed(fiber.UnfoldRight(tt.ColMajor)))
		if err != nil {
			return err
		}
		cols, b, err := maxvol.Choose(q, mo)
		if err != nil {
			return err
		}

		var (
			prod = productRight(tt.ColMajor, ip.dims[k], ip.ig[k])
			next = make([][]int, len(cols))
		)
		for t, c := range cols {
			next[t] = prod[c]
		}
		ip.ig[k-1].Replace(next)

		ip.train.SetCore(k, tt.FoldRight(transposed(b), len(cols), ip.dims[k], ip.ig[k].Len(), tt.ColMajor))
	}
	ip.train.SetCore(0, ip.SampleFiber(0))

	return nil
}
