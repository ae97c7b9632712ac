// Package blackbox defines the oracle abstraction consumed by the cross
// interpolation engine.
//
// 🚀 What is a black box?
//
// The engine never sees a formula. It sees a Box: something with fixed
// per-site dimensions that maps batches of integer multi-indices to values
// and counts how many evaluations it has served. Everything the engine
// learns about a tensor goes through Box.Eval.
//
// ✨ Implementations
//
//   - FuncBox samples a scalar function on a grid.Grid, optionally through
//     a grid.Map (quantized/binary index layouts).
//   - ComposeBox applies a scalar function pointwise to the values of one
//     or more tensor trains sharing the same dimensions.
//   - OperatorBox samples a two-argument kernel f(x, y); the full mode
//     fuses the row and column index of each site into one axis of size s²,
//     the diagonal mode samples f(x, x).
//
// ⚙️ Contract
//
// Eval must be deterministic and side-effect-free apart from the counter,
// which grows by exactly len(batch) per call. Indices handed to Eval are
// trusted to be within Dims(); constructors validate configuration and
// return sentinel errors.
package blackbox
