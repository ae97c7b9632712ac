package tt

import "gonum.org/v1/gonum/mat"

// FromVector compresses a dense C-order array into a tensor train by
// successive thin SVDs, keeping at each bond the rank selected by tr.
//
// The sweep peels one site at a time: the remaining data is viewed as a
// (left·dim_k)×tail matrix, its thin SVD U·Σ·Vᵀ is truncated to rank r,
// U becomes the site core and Σ·Vᵀ is carried to the next site.
//
// Errors: ErrEmptyTrain for no dimensions, ErrBadDims for a non-positive
// dimension, ErrVectorLength when len(v) differs from prod(dims) and
// ErrFactorization when an SVD fails to converge.
func FromVector(v []float64, dims []int, tr Truncation) (*Train, error) {
	n := len(dims)
	if n == 0 {
		return nil, ErrEmptyTrain
	}
	total := 1
	for _, d := range dims {
		if d < 1 {
			return nil, ErrBadDims
		}
		total *= d
	}
	if len(v) != total {
		return nil, ErrVectorLength
	}

	// Stage 1 - working copy, peeled site by site.
	carry := make([]float64, len(v))
	copy(carry, v)

	cores := make([]*Core, n)
	left := 1
	tail := total
	var (
		svd     mat.SVD
		u, vmat mat.Dense
		k, i, j int
	)
	for k = 0; k < n-1; k++ {
		d := dims[k]
		tail /= d
		m := mat.NewDense(left*d, tail, carry)

		// Stage 2 - thin SVD and rank selection.
		if ok := svd.Factorize(m, mat.SVDThin); !ok {
			return nil, ErrFactorization
		}
		sigma := svd.Values(nil)
		r := tr.Rank(sigma)
		u.Reset()
		vmat.Reset()
		svd.UTo(&u)
		svd.VTo(&vmat)

		uk := u.Slice(0, left*d, 0, r).(*mat.Dense)
		cores[k] = FoldLeft(uk, left, d, r, RowMajor)

		// Stage 3 - carry Σ·Vᵀ into the next site.
		carry = make([]float64, r*tail)
		for i = 0; i < r; i++ {
			for j = 0; j < tail; j++ {
				carry[i*tail+j] = sigma[i] * vmat.At(j, i)
			}
		}
		left = r
	}

	// Last site absorbs the remaining (left × dim_last) block.
	last := NewCore(left, dims[n-1], 1)
	copy(last.data, carry)
	cores[n-1] = last

	return &Train{cores: cores}, nil
}
