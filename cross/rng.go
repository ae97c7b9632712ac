// SPDX-License-Identifier: MIT
// rng.go - deterministic randomness for sampling and partial search.
//
// All stochastic pieces of the package (uniform cost pools, Halton
// scrambles, partial pivot search) draw from seeds resolved here, so a run
// is reproducible from its option block alone. Seed 0 is reserved as "use
// the fixed default stream"; pass any non-zero seed to change the stream.

package cross

import "math/rand"

// defaultRNGSeed keeps zero-valued option blocks deterministic.
const defaultRNGSeed int64 = 1

// rngFromSeed builds a *rand.Rand from a user seed, mapping 0 to the
// package default.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// deriveSeed expands (parent, stream) into an independent child seed with a
// SplitMix64 finalizer, so subsystems never share a stream by accident.
func deriveSeed(parent int64, stream uint64) int64 {
	var z = uint64(parent) + 0x9e3779b97f4a7c15*(stream+1)
	z ^= z >> 30
	z *= 0xbf58476d1ce4e5b9
	z ^= z >> 27
	z *= 0x94d049bb133111eb
	z ^= z >> 31

	var s = int64(z)
	if s == 0 {
		s = defaultRNGSeed
	}

	return s
}

// deriveRNG is a convenience wrapper over deriveSeed + rngFromSeed.
func deriveRNG(parent int64, stream uint64) *rand.Rand {
	return rngFromSeed(deriveSeed(parent, stream))
}
