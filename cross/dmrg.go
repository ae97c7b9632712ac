// SPDX-License-Identifier: MIT
// dmrg.go - two-site cross interpolation with rank-adaptive SVD splits.
//
// Implementation outline:
//
//	Forward half sweep (bonds 0 … n-2):
//	  Stage 1 - sample the two-site superblock over the bond's pivot sets.
//	  Stage 2 - thin SVD, truncated by the Trunc policy; the kept rank is
//	            the new bond dimension (it can shrink as well as grow).
//	  Stage 3 - square maxvol on the kept left factor picks the pivot rows
//	            that re-anchor I_left[k+1]; its coefficient matrix becomes
//	            core k. At the last bond both cores are written from the
//	            factors directly, leaving the pass bond-consistent.
//	Backward half sweep mirrors the stages on the right factor V,
//	re-anchoring I_right[k] and closing with both cores at bond 0.
//
// Behavior highlights:
//   - The singular factors V (forward) and U (backward) already have
//     orthonormal columns, so maxvol runs on them without an extra
//     orthogonalization pass.
//   - A superblock costs |I_l|·dim_k·dim_{k+1}·|I_r| oracle points, the
//     price of rank adaptivity in both directions.
//
// Determinism: fully deterministic for a deterministic oracle.
//
// AI-Hints:
//   - Trunc is the accuracy/size dial: RelTol near machine precision keeps
//     every meaningful direction, RelTol near Options.Tol keeps bonds lean.
//   - Set Trunc.MaxRank when the oracle budget is tight; it caps the
//     superblock growth ahead of the MaxBondDim stop.

package cross

import (
	"github.com/katalvlaran/ttcross/blackbox"
	"github.com/katalvlaran/ttcross/maxvol"
	"github.com/katalvlaran/ttcross/tt"
)

// DMRG runs alternating two-site sweeps until a stop condition fires. The
// returned results always carry a usable train, also on budget exhaustion.
//
// Errors: option sentinels from validation, ErrNilBox / ErrNoSites /
// ErrStartPoint from state construction, ErrFactorization when an SVD
// fails, maxvol sentinels from pivot selection.
func DMRG(box blackbox.Box, opts DMRGOptions) (*Results, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	ip, err := NewInterpolant(box, opts.Start)
	if err != nil {
		return nil, err
	}

	var trk = newTracker("dmrg", box, &opts.Options, true)

	return runSweeps(trk, ip, func(forward bool) error {
		if forward {
			return ip.dmrgForward(opts.Trunc, opts.Maxvol)
		}

		return ip.dmrgBackward(opts.Trunc, opts.Maxvol)
	})
}

// dmrgForward sweeps bonds 0 … n-2 left to right. A single-site tensor has
// no bonds; its raw fiber is already exact.
func (ip *Interpolant) dmrgForward(tr tt.Truncation, mo maxvol.Options) error {
	var n = ip.Sites()
	if n == 1 {
		ip.train.SetCore(0, ip.SampleFiber(0))

		return nil
	}

	var k int
	for k = 0; k < n-1; k++ {
		f, err := truncatedSVD(ip.SampleSuperblock(k), tr)
		if err != nil {
			return err
		}

		var (
			rl = ip.il[k].Len()
			s1 = ip.dims[k]
			s2 = ip.dims[k+1]
			rg = ip.ig[k+1].Len()
		)
		if k < n-2 {
			rows, g, err := maxvol.Square(f.u, mo.MaxIterations, mo.Tol)
			if err != nil {
				return err
			}

			var (
				prod = productLeft(tt.RowMajor, ip.il[k], s1)
				next = make([][]int, len(rows))
			)
			for t, a := range rows {
				next[t] = prod[a]
			}
			ip.il[k+1].Replace(next)

			ip.train.SetCore(k, tt.FoldLeft(g, rl, s1, f.rank, tt.RowMajor))

			continue
		}

		// Last bond: write both cores from the factors, U on the left
		// and diag(σ)·Vᵀ on the right.
		ip.train.SetCore(k, tt.FoldLeft(f.u, rl, s1, f.rank, tt.RowMajor))
		ip.train.SetCore(k+1, tt.FoldRight(scaledVT(f), f.rank, s2, rg, tt.RowMajor))
	}

	return nil
}

// dmrgBackward sweeps bonds n-2 … 0 right to left.
func (ip *Interpolant) dmrgBackward(tr tt.Truncation, mo maxvol.Options) error {
	var n = ip.Sites()
	if n == 1 {
		ip.train.SetCore(0, ip.SampleFiber(0))

		return nil
	}

	var k int
	for k = n - 2; k >= 0; k-- {
		f, err := truncatedSVD(ip.SampleSuperblock(k), tr)
		if err != nil {
			return err
		}

		var (
			rl = ip.il[k].Len()
			s1 = ip.dims[k]
			s2 = ip.dims[k+1]
			rg = ip.ig[k+1].Len()
		)
		if k > 0 {
			cols, g, err := maxvol.Square(f.v, mo.MaxIterations, mo.Tol)
			if err != nil {
				return err
			}

			var (
				prod = productRight(tt.RowMajor, s2, ip.ig[k+1])
				next = make([][]int, len(cols))
			)
			for t, c := range cols {
				next[t] = prod[c]
			}
			ip.ig[k].Replace(next)

			ip.train.SetCore(k+1, tt.FoldRight(transposed(g), f.rank, s2, rg, tt.RowMajor))

			continue
		}

		// First bond: write both cores, U·diag(σ) on the left and Vᵀ on
		// the right.
		ip.train.SetCore(0, tt.FoldLeft(scaledU(f), rl, s1, f.rank, tt.RowMajor))
		ip.train.SetCore(1, tt.FoldRight(transposed(f.v), f.rank, s2, rg, tt.RowMajor))
	}

	return nil
}
