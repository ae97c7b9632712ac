// Package crossplot renders cross-interpolation run diagnostics as image
// files: the sampled-cost trajectory on a log axis and the bond-dimension
// evolution over half sweeps.
//
// ⚙️ Usage:
//
//	res, _ := cross.DMRG(box, opts)
//	_ = crossplot.Cost(res, "cost.png")
//	_ = crossplot.Bonds(res, "bonds.png")
//
// The output format follows the file extension (.png, .pdf, .svg, ...),
// as supported by gonum/plot.
package crossplot
