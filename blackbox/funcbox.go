package blackbox

import (
	"fmt"

	"github.com/katalvlaran/ttcross/grid"
)

// FuncBox samples a scalar function of a continuous argument on the nodes
// of a grid. An optional index map translates tensor multi-indices into
// grid indices first, which is how quantized (binary) tensor layouts
// address large grids with two-valued sites.
type FuncBox struct {
	counter
	f func(x []float64) float64
	g grid.Grid
	m *grid.Map
}

// NewFuncBox wraps f over g. A nil m defaults to the identity map (one
// tensor site per grid axis). Errors: ErrNilFunc, grid.ErrEmptyGrid for a
// zero-value grid and ErrDimensionMismatch when the map does not fit g.
func NewFuncBox(f func(x []float64) float64, g grid.Grid, m *grid.Map) (*FuncBox, error) {
	if f == nil {
		return nil, ErrNilFunc
	}
	if g.Dim() == 0 {
		return nil, grid.ErrEmptyGrid
	}
	if m == nil {
		m = grid.IdentityMap(g.Dims())
	}
	if err := m.Validate(g); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDimensionMismatch, err)
	}
	return &FuncBox{f: f, g: g, m: m}, nil
}

// Dims returns the per-site dimensions of the tensor layout.
func (b *FuncBox) Dims() []int { return b.m.Dims() }

// Eval maps every multi-index through the grid and samples f.
func (b *FuncBox) Eval(batch [][]int) []float64 {
	out := make([]float64, len(batch))
	var (
		gi []int
		x  []float64
	)
	for p, idx := range batch {
		gi = b.m.Apply(gi, idx)
		x = b.g.Point(x, gi)
		out[p] = b.f(x)
	}
	b.add(len(batch))
	return out
}
