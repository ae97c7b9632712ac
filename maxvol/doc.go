// Package maxvol selects quasi-maximum-volume row subsets of tall matrices.
//
// The maxvol package provides:
//
//   - Square: picks exactly r rows of an n×r matrix so that the selected
//     submatrix has close to maximal volume, returning the row set together
//     with the interpolation coefficients B = A·A[I]⁻¹ (entries bounded by
//     the tolerance).
//   - Rectangular: extends a square selection with extra rows, greedily
//     adding the row of largest residual leverage until a requested
//     row-count window is reached or the leverage falls below tolerance.
//   - Choose: clamps the requested rank window to the available row surplus
//     and dispatches to Square, Rectangular or the degenerate all-rows case.
//
// Row selections drive pivot choice in cross interpolation: the rows picked
// here become the index sets the interpolation is anchored on, and B folds
// directly into interpolating tensor-train cores.
package maxvol
