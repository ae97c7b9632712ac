// SPDX-License-Identifier: MIT
// Package maxvol: quasi-maximum-volume row selection kernels.
//
// Purpose:
//   - Square row selection with bounded interpolation coefficients.
//   - Rectangular extension by residual leverage scores.
//   - Choose facade that clamps the rank window and dispatches.
//
// Notes:
//   - All kernels treat the input as read-only and allocate their outputs.
//   - Numeric failures surface as ErrSingular; shape misuse as sentinels.

package maxvol

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// Square selects r rows of the n×r matrix a whose submatrix has close to
// maximal volume and returns the row indices I together with the
// coefficient matrix B = a·a[I]⁻¹ (n×r, satisfying B·a[I] = a and
// B[I[j]] = e_j).
//
// Implementation:
//   - Stage 1: seed I with the pivot rows of a partially pivoted Gaussian
//     elimination, the classical LU warm start.
//   - Stage 2: form B by solving a[I]ᵀ·Bᵀ = aᵀ with a dense LU.
//   - Stage 3: swap loop - while the largest |B| entry exceeds tol, swap
//     that row into I and apply the rank-1 coefficient update, at most
//     maxIter times.
//
// Behavior highlights:
//   - n ≤ r degenerates to keeping every row with B the n×n identity.
//   - tol below 1 is unreachable (pivot rows hold exact ones), so the loop
//     then simply runs its full budget.
//
// Inputs:
//   - a: tall matrix, full column rank for meaningful selections.
//   - maxIter: swap budget.
//   - tol: stopping threshold on max |B|, conventionally 1.05.
//
// Returns: row indices I (len r, pairwise distinct), B (n×len(I)).
//
// Errors: ErrNilMatrix; ErrSingular when the seed submatrix cannot be
// solved against.
//
// Determinism: fully deterministic for a given input.
//
// Complexity: O(n·r²) seed + O(maxIter·n·r) updates.
//
// AI-Hints:
//   - Use Choose instead when the caller may hand over wide matrices or
//     wants rank growth; Square always returns exactly r rows.
//   - B folds straight into an interpolating tensor-train core: rows at I
//     are exact unit vectors, so the cross reproduces its pivots.
func Square(a *mat.Dense, maxIter int, tol float64) ([]int, *mat.Dense, error) {
	if a == nil {
		return nil, nil, ErrNilMatrix
	}
	n, r := a.Dims()
	if n <= r {
		return identityChoice(n)
	}

	// Stage 1 - seed pivot rows via partially pivoted elimination.
	rows := pivotSeed(a)

	// Stage 2 - coefficients B = a·a[I]⁻¹ through a dense solve.
	b, err := interpolationCoeffs(a, rows)
	if err != nil {
		return nil, nil, err
	}

	// Stage 3 - swap loop with rank-1 updates.
	raw := b.RawMatrix()
	bj := make([]float64, n)
	bi := make([]float64, r)
	var it, p, q int
	for it = 0; it < maxIter; it++ {
		pi, pj, pv := argmaxAbs(raw)
		if pv <= tol {
			break
		}
		rows[pj] = pi
		mat.Col(bj, pj, b)
		copy(bi, raw.Data[pi*raw.Stride:pi*raw.Stride+r])
		bi[pj]--
		pivot := b.At(pi, pj)
		for p = 0; p < n; p++ {
			f := bj[p] / pivot
			if f == 0 {
				continue
			}
			row := raw.Data[p*raw.Stride : p*raw.Stride+r]
			for q = 0; q < r; q++ {
				row[q] -= f * bi[q]
			}
		}
	}
	return rows, b, nil
}

// Rectangular extends a square maxvol selection of the n×r matrix a by
// extra rows, one at a time, always taking the row with the largest
// volume-gain score. Growth stops once the row count reaches
// r+MaxRankKick, or earlier when at least r+MinRankKick rows are selected
// and the best remaining score drops to RectTol².
//
// Implementation:
//   - Stage 1: validate the window, run Square for the base selection.
//   - Stage 2: score every unselected row i by 1+‖B[i]‖², the factor by
//     which appending it multiplies the squared 2-volume of the selection.
//   - Stage 3: append the argmax row i, widen B with the column l·v where
//     v = B·B[i]ᵀ and l = 1/(1+v_i), and downdate the scores by l·v².
//   - Stage 4: overwrite the selected rows of B with exact unit vectors.
//
// Returns: row indices I (r ≤ len(I) ≤ r+MaxRankKick), B (n×len(I)) with
// B·a[I] = a and B[I] the identity.
//
// Errors: ErrNilMatrix; ErrRankKick when MinRankKick < 0, the window is
// inverted, or r+MaxRankKick exceeds n; ErrSingular from the base solve.
//
// Complexity: O(n·r²) base + O(kick·n·(r+kick)) growth.
//
// AI-Hints:
//   - Callers that cannot guarantee r+MaxRankKick ≤ n should go through
//     Choose, which clamps the window to the row surplus first.
func Rectangular(a *mat.Dense, opts Options) ([]int, *mat.Dense, error) {
	if a == nil {
		return nil, nil, ErrNilMatrix
	}
	n, r := a.Dims()
	minRank := r + opts.MinRankKick
	maxRank := r + opts.MaxRankKick
	if opts.MinRankKick < 0 || minRank > maxRank || maxRank > n {
		return nil, nil, ErrRankKick
	}

	// Stage 1 - base square selection.
	rows, b, err := Square(a, opts.MaxIterations, opts.Tol)
	if err != nil {
		return nil, nil, err
	}

	// Stage 2 - volume-gain scores of the unselected rows.
	scores := make([]float64, n)
	var p, q, k int
	for p = 0; p < n; p++ {
		acc := 0.0
		for q = 0; q < r; q++ {
			acc += b.At(p, q) * b.At(p, q)
		}
		scores[p] = 1 + acc
	}
	for _, i := range rows {
		scores[i] = 0
	}

	// Stage 3 - grow one row per step.
	v := make([]float64, n)
	tol2 := opts.RectTol * opts.RectTol
	for k = r; k < maxRank; k++ {
		i := argmaxSlice(scores)
		if k >= minRank && scores[i] <= tol2 {
			break
		}

		bi := make([]float64, k)
		copy(bi, b.RawMatrix().Data[i*b.RawMatrix().Stride:i*b.RawMatrix().Stride+k])
		for p = 0; p < n; p++ {
			acc := 0.0
			row := b.RawMatrix().Data[p*b.RawMatrix().Stride : p*b.RawMatrix().Stride+k]
			for q = 0; q < k; q++ {
				acc += row[q] * bi[q]
			}
			v[p] = acc
		}
		l := 1 / (1 + v[i])

		wide := mat.NewDense(n, k+1, nil)
		for p = 0; p < n; p++ {
			for q = 0; q < k; q++ {
				wide.Set(p, q, b.At(p, q)-l*v[p]*bi[q])
			}
			wide.Set(p, k, l*v[p])
		}
		b = wide

		rows = append(rows, i)
		for p = 0; p < n; p++ {
			scores[p] -= l * v[p] * v[p]
		}
		for _, sel := range rows {
			scores[sel] = 0
		}
	}

	// Stage 4 - selected rows become exact unit vectors.
	_, cols := b.Dims()
	for j, i := range rows {
		for q = 0; q < cols; q++ {
			b.Set(i, q, 0)
		}
		b.Set(i, j, 1)
	}
	return rows, b, nil
}

// Choose clamps the requested kick window to the available row surplus and
// dispatches: every row when n ≤ r, Square when the clamped window is
// empty, Rectangular otherwise.
//
// Errors: ErrNilMatrix; ErrRankKick for a negative MinRankKick; ErrSingular
// from the dispatched kernel.
func Choose(a *mat.Dense, opts Options) ([]int, *mat.Dense, error) {
	if a == nil {
		return nil, nil, ErrNilMatrix
	}
	if opts.MinRankKick < 0 {
		return nil, nil, ErrRankKick
	}
	n, r := a.Dims()
	if n <= r {
		return identityChoice(n)
	}
	maxKick := opts.MaxRankKick
	if surplus := n - r; maxKick > surplus {
		maxKick = surplus
	}
	if maxKick == 0 {
		return Square(a, opts.MaxIterations, opts.Tol)
	}
	clamped := opts
	clamped.MaxRankKick = maxKick
	if clamped.MinRankKick > maxKick {
		clamped.MinRankKick = maxKick
	}
	return Rectangular(a, clamped)
}

// Coeffs computes the interpolation coefficients B = a·a[rows]⁻¹ for an
// externally chosen row set, solving a[rows]ᵀ·Bᵀ = aᵀ without forming the
// inverse. rows must list len(rows) == cols(a) distinct row indices.
//
// Errors: ErrNilMatrix; ErrRankKick when len(rows) differs from the column
// count; ErrSingular when the selected submatrix cannot be solved against.
func Coeffs(a *mat.Dense, rows []int) (*mat.Dense, error) {
	if a == nil {
		return nil, ErrNilMatrix
	}
	if _, r := a.Dims(); len(rows) != r {
		return nil, ErrRankKick
	}
	return interpolationCoeffs(a, rows)
}

// identityChoice keeps every row with identity coefficients.
func identityChoice(n int) ([]int, *mat.Dense, error) {
	rows := make([]int, n)
	b := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		rows[i] = i
		b.Set(i, i, 1)
	}
	return rows, b, nil
}

// pivotSeed returns the first r pivot rows of a partially pivoted Gaussian
// elimination of a, in elimination order.
func pivotSeed(a *mat.Dense) []int {
	n, r := a.Dims()
	w := mat.DenseCopyOf(a)
	perm := make([]int, n)
	var i, j, q int
	for i = 0; i < n; i++ {
		perm[i] = i
	}
	for j = 0; j < r; j++ {
		best, bv := j, math.Abs(w.At(perm[j], j))
		for i = j + 1; i < n; i++ {
			if v := math.Abs(w.At(perm[i], j)); v > bv {
				best, bv = i, v
			}
		}
		perm[j], perm[best] = perm[best], perm[j]
		pivot := w.At(perm[j], j)
		if pivot == 0 {
			continue // dependent column, nothing to eliminate
		}
		for i = j + 1; i < n; i++ {
			f := w.At(perm[i], j) / pivot
			if f == 0 {
				continue
			}
			for q = j; q < r; q++ {
				w.Set(perm[i], q, w.At(perm[i], q)-f*w.At(perm[j], q))
			}
		}
	}
	rows := make([]int, r)
	copy(rows, perm[:r])
	return rows
}

// interpolationCoeffs solves a[I]ᵀ·Bᵀ = aᵀ and returns B (n×r).
func interpolationCoeffs(a *mat.Dense, rows []int) (*mat.Dense, error) {
	n, r := a.Dims()
	sub := mat.NewDense(r, r, nil)
	var j, q int
	for j = 0; j < r; j++ {
		for q = 0; q < r; q++ {
			sub.Set(j, q, a.At(rows[j], q))
		}
	}
	var lu mat.LU
	lu.Factorize(sub)
	var bt mat.Dense
	if err := lu.SolveTo(&bt, true, a.T()); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, ErrSingular
		}
		// ill-conditioned but finite solves stay usable; the swap loop
		// repairs poor seeds.
	}
	b := mat.NewDense(n, r, nil)
	b.Copy(bt.T())
	return b, nil
}

// argmaxAbs locates the entry of largest magnitude in raw.
func argmaxAbs(raw blas64.General) (int, int, float64) {
	var (
		bi, bj int
		bv     float64
		i, j   int
	)
	for i = 0; i < raw.Rows; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols]
		for j = 0; j < raw.Cols; j++ {
			if v := math.Abs(row[j]); v > bv {
				bi, bj, bv = i, j, v
			}
		}
	}
	return bi, bj, bv
}

// argmaxSlice returns the index of the largest value, first on ties.
func argmaxSlice(s []float64) int {
	best := 0
	for i, v := range s {
		if v > s[best] {
			best = i
		}
	}
	return best
}
