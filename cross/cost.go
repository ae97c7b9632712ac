// SPDX-License-Identifier: MIT
// cost.go - sampled interpolation cost with a per-run reference cache.
//
// Purpose:
//   - Measure how far the current train is from the oracle on a fixed pool
//     of sample points, as a max-abs or mean-p deviation, optionally
//     relative to the oracle norm on the same pool.
//
// Notes:
//   - A session belongs to exactly one run. The pool and the oracle values
//     on it are drawn once, on first use; later cost calls evaluate only
//     the train, so the oracle counter grows by Samples exactly once.
//   - Halton pools use one prime base per site with a deterministic
//     per-site offset scramble, so low-discrepancy pools are reproducible
//     from the seed alone.

package cross

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/ttcross/blackbox"
	"github.com/katalvlaran/ttcross/tt"
)

// costSession caches the sample pool and the oracle reference values for
// one run.
type costSession struct {
	box   blackbox.Box
	opts  CostOptions
	pool  [][]int
	ref   []float64
	norm  float64
	ready bool
}

// newCostSession binds a fresh session to the oracle; nothing is sampled
// until the first cost call.
func newCostSession(box blackbox.Box, opts CostOptions) *costSession {
	return &costSession{box: box, opts: opts}
}

// cost evaluates the train on the cached pool and returns its deviation
// from the cached oracle values. The first call primes the cache.
func (cs *costSession) cost(train *tt.Train) float64 {
	if !cs.ready {
		cs.prime()
	}

	var d = cs.distance(train.Eval(cs.pool))
	if cs.opts.Relative && cs.norm > 0 {
		d /= cs.norm
	}

	return d
}

// prime draws the sample pool, evaluates the oracle on it and caches the
// reference norm.
func (cs *costSession) prime() {
	var dims = cs.box.Dims()
	if cs.opts.Sampling == SamplingUniform {
		cs.pool = uniformPool(dims, cs.opts.Samples, cs.opts.Seed)
	} else {
		cs.pool = haltonPool(dims, cs.opts.Samples, cs.opts.Seed)
	}
	cs.ref = cs.box.Eval(cs.pool)
	cs.norm = pNorm(cs.ref, cs.opts.P)
	cs.ready = true
}

// distance is the p-deviation between the train values and the reference:
// max |v-r| for P=+Inf, (mean |v-r|^p)^(1/p) for finite p.
func (cs *costSession) distance(vals []float64) float64 {
	if math.IsInf(cs.opts.P, 1) {
		return floats.Distance(vals, cs.ref, math.Inf(1))
	}

	var n = float64(len(cs.ref))

	return floats.Distance(vals, cs.ref, cs.opts.P) / math.Pow(n, 1/cs.opts.P)
}

// pNorm matches the distance scaling: max-abs for P=+Inf, mean-p otherwise.
func pNorm(v []float64, p float64) float64 {
	if math.IsInf(p, 1) {
		return floats.Norm(v, math.Inf(1))
	}

	return floats.Norm(v, p) / math.Pow(float64(len(v)), 1/p)
}

// uniformPool draws samples independent uniform multi-indices.
func uniformPool(dims []int, samples int, seed int64) [][]int {
	var (
		rng  = rngFromSeed(seed)
		pool = make([][]int, samples)
		t, d int
	)
	for t = 0; t < samples; t++ {
		var row = make([]int, len(dims))
		for d = range dims {
			row[d] = rng.Intn(dims[d])
		}
		pool[t] = row
	}

	return pool
}

// haltonPool maps a scrambled Halton sequence onto the index grid: site d
// uses the d-th prime base and a seed-derived start offset.
func haltonPool(dims []int, samples int, seed int64) [][]int {
	var (
		bases   = firstPrimes(len(dims))
		offsets = make([]int, len(dims))
		pool    = make([][]int, samples)
		t, d    int
	)
	for d = range dims {
		offsets[d] = deriveRNG(seed, uint64(d)).Intn(1 << 16)
	}
	for t = 0; t < samples; t++ {
		var row = make([]int, len(dims))
		for d = range dims {
			var u = radicalInverse(bases[d], offsets[d]+1+t)
			row[d] = int(u * float64(dims[d]))
			if row[d] >= dims[d] {
				row[d] = dims[d] - 1
			}
		}
		pool[t] = row
	}

	return pool
}

// radicalInverse reflects k about the radix point in the given base.
func radicalInverse(base, k int) float64 {
	var (
		inv = 1 / float64(base)
		f   = inv
		u   float64
	)
	for k > 0 {
		u += f * float64(k%base)
		k /= base
		f *= inv
	}

	return u
}

// firstPrimes returns the first n primes by trial division.
func firstPrimes(n int) []int {
	var (
		out  = make([]int, 0, n)
		cand = 2
	)
	for len(out) < n {
		var prime = true
		for _, p := range out {
			if p*p > cand {
				break
			}
			if cand%p == 0 {
				prime = false
				break
			}
		}
		if prime {
			out = append(out, cand)
		}
		cand++
	}

	return out
}
