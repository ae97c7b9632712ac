// SPDX-License-Identifier: MIT
// interpolant.go - shared sweep state: pivot sets, live train, fiber oracle.
//
// Purpose:
//   - Hold the nested pivot structure I_left[k], I_right[k] together with
//     the train being built, and turn pivot sets into oracle batches.
//
// Notes:
//   - Fibers and superblocks are assembled in C order (right index fastest),
//     so their flat layouts line up with tt row-major unfolds directly and
//     with column-major unfolds via the product helpers in indexset.go.
//   - Sampling methods panic on an out-of-range site; the strategies drive
//     them with loop bounds derived from Sites().

package cross

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/ttcross/blackbox"
	"github.com/katalvlaran/ttcross/tt"
)

// Interpolant is the state every strategy sweeps over: the oracle, the pivot
// sets on both sides of each site and the train under construction.
type Interpolant struct {
	box  blackbox.Box
	dims []int

	// il[k] holds partial multi-indices of width k anchoring the left
	// side of site k; ig[k] holds width n-1-k suffixes for the right
	// side. Boundary sets (widths 0) hold a single empty row.
	il []*indexSet
	ig []*indexSet

	train *tt.Train
}

// NewInterpolant validates the oracle and the optional starting point and
// seeds every pivot set with the corresponding slice of the start index.
// A nil start means the all-zero multi-index.
//
// Returns: the ready state with a constant rank-one train.
// Errors: ErrNilBox, ErrNoSites, ErrStartPoint.
func NewInterpolant(box blackbox.Box, start []int) (*Interpolant, error) {
	if box == nil {
		return nil, ErrNilBox
	}

	// Stage 1 - copy and validate the shape.
	var dims = append([]int(nil), box.Dims()...)
	if len(dims) == 0 {
		return nil, ErrNoSites
	}
	var k int
	for k = range dims {
		if dims[k] < 1 {
			return nil, fmt.Errorf("%w: site %d has extent %d", ErrNoSites, k, dims[k])
		}
	}

	// Stage 2 - resolve and validate the starting multi-index.
	var n = len(dims)
	if start == nil {
		start = make([]int, n)
	} else if len(start) != n {
		return nil, fmt.Errorf("%w: got %d entries, want %d", ErrStartPoint, len(start), n)
	}
	for k = range start {
		if start[k] < 0 || start[k] >= dims[k] {
			return nil, fmt.Errorf("%w: index %d out of range at site %d", ErrStartPoint, start[k], k)
		}
	}

	// Stage 3 - seed the nested pivot sets from the start index.
	var ip = &Interpolant{
		box:  box,
		dims: dims,
		il:   make([]*indexSet, n),
		ig:   make([]*indexSet, n),
	}
	for k = 0; k < n; k++ {
		ip.il[k] = newIndexSet(k)
		ip.il[k].Append(start[:k])
		ip.ig[k] = newIndexSet(n - 1 - k)
		ip.ig[k].Append(start[k+1:])
	}

	var err error
	if ip.train, err = tt.Constant(dims, 1); err != nil {
		return nil, err
	}

	return ip, nil
}

// Sites reports the number of tensor sites.
func (ip *Interpolant) Sites() int { return len(ip.dims) }

// Dims returns a copy of the per-site extents.
func (ip *Interpolant) Dims() []int { return append([]int(nil), ip.dims...) }

// Train exposes the live train. Strategies mutate it in place; callers who
// need a stable snapshot should Clone it.
func (ip *Interpolant) Train() *tt.Train { return ip.train }

// SampleFiber evaluates the one-site fiber at site k over the current pivot
// sets and returns it as a |I_left[k]| × dims[k] × |I_right[k]| core.
// The whole fiber goes to the oracle as a single batch.
func (ip *Interpolant) SampleFiber(k int) *tt.Core {
	var (
		rl    = ip.il[k].Len()
		s     = ip.dims[k]
		rg    = ip.ig[k].Len()
		n     = len(ip.dims)
		batch = make([][]int, 0, rl*s*rg)

		a, i, g int
	)
	for a = 0; a < rl; a++ {
		for i = 0; i < s; i++ {
			for g = 0; g < rg; g++ {
				var row = make([]int, n)
				copy(row, ip.il[k].Row(a))
				row[k] = i
				copy(row[k+1:], ip.ig[k].Row(g))
				batch = append(batch, row)
			}
		}
	}

	return tt.NewCoreFrom(rl, s, rg, ip.box.Eval(batch))
}

// SampleSuperblock evaluates the two-site block at bond k (sites k, k+1)
// as a (|I_left[k]|·dims[k]) × (dims[k+1]·|I_right[k+1]|) matrix with
// row-major pairing on both axes.
func (ip *Interpolant) SampleSuperblock(k int) *mat.Dense {
	return ip.SampleSuperblockAt(k, nil, nil)
}

// SampleSuperblockAt evaluates the superblock at bond k restricted to the
// given flat row and column positions; nil selects a full axis. Row ρ
// decodes as (ρ÷dims[k], ρ mod dims[k]) into (left pivot, site k index);
// column γ decodes as (γ÷|I_right[k+1]|, γ mod |I_right[k+1]|) into
// (site k+1 index, right pivot).
func (ip *Interpolant) SampleSuperblockAt(k int, rows, cols []int) *mat.Dense {
	var (
		s1 = ip.dims[k]
		s2 = ip.dims[k+1]
		rg = ip.ig[k+1].Len()
		n  = len(ip.dims)
	)
	if rows == nil {
		rows = iotaInts(ip.il[k].Len() * s1)
	}
	if cols == nil {
		cols = iotaInts(s2 * rg)
	}

	var (
		batch = make([][]int, 0, len(rows)*len(cols))
		t, u  int
	)
	for t = 0; t < len(rows); t++ {
		for u = 0; u < len(cols); u++ {
			var (
				row = make([]int, n)
				a   = rows[t] / s1
				i1  = rows[t] % s1
				i2  = cols[u] / rg
				g   = cols[u] % rg
			)
			copy(row, ip.il[k].Row(a))
			row[k] = i1
			row[k+1] = i2
			copy(row[k+2:], ip.ig[k+1].Row(g))
			batch = append(batch, row)
		}
	}

	return mat.NewDense(len(rows), len(cols), ip.box.Eval(batch))
}

// iotaInts returns [0, 1, ..., n-1].
func iotaInts(n int) []int {
	var out = make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}
