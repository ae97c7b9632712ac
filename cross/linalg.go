// SPDX-License-Identifier: MIT
// linalg.go - thin SVD helpers shared by the sweep strategies.
//
// Purpose:
//   - Wrap gonum's SVD behind the few shapes the strategies need:
//     orthonormal column bases, truncated factors and scaled remainders.
//
// Notes:
//   - All helpers return fresh matrices; inputs are never written to.
//   - Factorization failure surfaces as ErrFactorization, never a panic.

package cross

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/ttcross/tt"
)

// svdFactors carries the rank-truncated thin factors A ≈ U·diag(σ)·Vᵀ.
// u is m×rank, v is n×rank (columns of V, not Vᵀ), sigma holds the first
// rank singular values.
type svdFactors struct {
	u     *mat.Dense
	sigma []float64
	v     *mat.Dense
	rank  int
}

// orthonormalColumns returns the thin left singular basis of a, an
// m×min(m,n) matrix with orthonormal columns spanning the column space.
//
// Errors: ErrFactorization when the SVD does not converge.
func orthonormalColumns(a *mat.Dense) (*mat.Dense, error) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThinU); !ok {
		return nil, ErrFactorization
	}

	var u mat.Dense
	svd.UTo(&u)

	return &u, nil
}

// truncatedSVD factorizes a and truncates the spectrum with the given
// policy. The returned rank is at least 1 for any non-empty input.
//
// Errors: ErrFactorization when the SVD does not converge.
func truncatedSVD(a *mat.Dense, tr tt.Truncation) (*svdFactors, error) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, ErrFactorization
	}

	var (
		sigma = svd.Values(nil)
		rank  = tr.Rank(sigma)
		u, v  mat.Dense
	)
	svd.UTo(&u)
	svd.VTo(&v)

	var (
		m, _ = u.Dims()
		n, _ = v.Dims()
		f    = &svdFactors{
			u:     mat.DenseCopyOf(u.Slice(0, m, 0, rank)),
			sigma: append([]float64(nil), sigma[:rank]...),
			v:     mat.DenseCopyOf(v.Slice(0, n, 0, rank)),
			rank:  rank,
		}
	)

	return f, nil
}

// scaledVT forms the rank×n product diag(σ)·Vᵀ from truncated factors.
func scaledVT(f *svdFactors) *mat.Dense {
	var (
		n, _ = f.v.Dims()
		out  = mat.NewDense(f.rank, n, nil)
		i, j int
	)
	for i = 0; i < f.rank; i++ {
		for j = 0; j < n; j++ {
			out.Set(i, j, f.sigma[i]*f.v.At(j, i))
		}
	}

	return out
}

// scaledU forms the m×rank product U·diag(σ) from truncated factors.
func scaledU(f *svdFactors) *mat.Dense {
	var (
		m, _ = f.u.Dims()
		out  = mat.NewDense(m, f.rank, nil)
		i, j int
	)
	for i = 0; i < m; i++ {
		for j = 0; j < f.rank; j++ {
			out.Set(i, j, f.u.At(i, j)*f.sigma[j])
		}
	}

	return out
}

// transposed returns an explicit copy of aᵀ.
func transposed(a *mat.Dense) *mat.Dense {
	var out mat.Dense
	out.CloneFrom(a.T())

	return &out
}
