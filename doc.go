// Package ttcross is a toolkit for tensor-train cross interpolation —
// compressing high-dimensional functions and tensors from a small,
// adaptively chosen set of samples.
//
// 🚀 What is ttcross?
//
//	A pure-Go engine that brings together:
//		• Tensor trains: 3-index cores, evaluation, exact SVD construction
//		• Black boxes: functions on grids, train algebra, operator kernels
//		• Maxvol pivoting: square and rectangular maximum-volume selection
//		• Cross strategies: one-site maxvol, two-site DMRG, greedy pivots
//		• Quantics grids: binary site maps for exponentially fine axes
//		• Diagnostics: sweep trajectories and convergence plots
//
// ✨ Why choose ttcross?
//
//   - Sample-frugal – sweeps touch rows and columns, never the full tensor
//   - Deterministic – fixed seeds, reproducible pivot walks, stable stops
//   - Composable – every oracle is one interface with batched evaluation
//   - Observable – structured zap logs and per-sweep statistics built in
//
// Under the hood, everything is organized under six subpackages:
//
//	tt/        — tensor-train container: cores, unfoldings, Eval, FromVector
//	grid/      — interval discretizations and quantics (binary) index maps
//	blackbox/  — oracle adapters: FuncBox, ComposeBox, OperatorBox
//	maxvol/    — maximum-volume submatrix selection on dense matrices
//	cross/     — the interpolation engine: Maxvol, DMRG, Greedy drivers
//	crossplot/ — PNG/SVG rendering of cost and bond trajectories
//
// Quick start:
//
//	g, _ := grid.NewGrid(grid.Interval{Lo: -1, Hi: 1, N: 64, Kind: grid.Chebyshev})
//	box, _ := blackbox.NewFuncBox(func(x []float64) float64 {
//		return 1 / (1 + 25*x[0]*x[0])
//	}, g, nil)
//	res, _ := cross.DMRG(box, cross.DefaultDMRGOptions())
//	fmt.Println(res.Train.BondDims())
//
// See examples/ for end-to-end scenarios and each subpackage's doc.go for
// its contract.
//
//	go get github.com/katalvlaran/ttcross
package ttcross
