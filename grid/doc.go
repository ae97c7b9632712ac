// Package grid discretizes rectangular domains for mesh-backed oracles.
//
// 🚀 What is grid?
//
// A Grid is a Cartesian product of one-dimensional Intervals. Each interval
// turns an integer node index into a coordinate (open-uniform,
// closed-uniform or Chebyshev spacing), and the grid combines one index per
// axis into a point of the domain.
//
// A Map translates tensor multi-indices into grid indices through an
// integer matrix, idx_grid = idx_tensor · M. The identity map assigns one
// tensor site per axis; binary maps split every axis of size 2^b into b
// two-valued sites (quantized grids), either dimension-major (Serial) or
// bit-major (Interleaved).
//
// ⚙️ Types at a glance
//
//   - Interval: {Lo, Hi, N, Kind} with Node(i) and Nodes().
//   - Grid: NewGrid(intervals...), Dims, Point, Points.
//   - Map: IdentityMap, BinaryMap, Apply, Validate.
//
// Construction validates shapes through sentinel errors; Node and Point
// trust their inputs the way gonum containers do.
package grid
