// Package tt provides the tensor-train container used across ttcross.
//
// 🚀 What is a tensor train?
//
// A tensor train (TT, also known as a matrix-product state) represents a
// d-dimensional array F[x₀, …, x_{d-1}] as a chain of small 3-index cores
//
//	F[x₀, …, x_{d-1}] = C₀[x₀] · C₁[x₁] · … · C_{d-1}[x_{d-1}],
//
// where each C_k[x_k] is an r_{k-1}×r_k matrix slice of the core at site k.
// The r_k are the bond dimensions; boundary bonds are always 1, so the chain
// product collapses to a scalar. Storage is linear in d instead of
// exponential, as long as the bond dimensions stay moderate.
//
// ✨ Why use tt?
//
//   - Compact: a d-dimensional grid function of low TT rank costs
//     O(d·s·r²) memory instead of O(sᵈ).
//   - Fast point access: Train.Eval contracts the chain in O(d·r²) per
//     multi-index, batched over many indices at once.
//   - Exact algebra: FromVector compresses a dense array into TT form by
//     successive thin SVDs under a configurable Truncation policy.
//
// ⚙️ Core types at a glance
//
//   - Core: one 3-index block with C-order backing storage, plus the
//     unfold/fold conversions (RowMajor and ColMajor) used when a core is
//     treated as a matrix.
//   - Train: the chain of cores with Eval, Dense, Clone, BondDims and the
//     chain-consistency check Validate.
//   - Truncation: the rank-selection rule applied to singular spectra
//     (relative and absolute Frobenius tails, optional hard rank cap).
//
// ⚠️ Conventions
//
// Constructors and Validate report misuse through sentinel errors. Hot-path
// accessors (Core.At, Core.Set, Train.Eval, fold helpers) follow the gonum
// convention instead: shapes are trusted and violations panic. Multi-indices
// and dense arrays are always enumerated in C order, meaning the last index
// varies fastest.
package tt
