package blackbox

import "github.com/katalvlaran/ttcross/grid"

// OperatorBox samples a two-argument kernel f(x, y) with both arguments
// running over the same grid. In full mode every site carries a fused
// row/column index of size N² decoded as (k÷N, k mod N); in diagonal mode
// the box reduces to sampling f(x, x) on the plain grid dimensions.
type OperatorBox struct {
	counter
	f    func(x, y []float64) float64
	g    grid.Grid
	diag bool
	dims []int
}

// NewOperatorBox wraps the kernel over g. Errors: ErrNilFunc and
// grid.ErrEmptyGrid for a zero-value grid.
func NewOperatorBox(f func(x, y []float64) float64, g grid.Grid, diagonal bool) (*OperatorBox, error) {
	if f == nil {
		return nil, ErrNilFunc
	}
	if g.Dim() == 0 {
		return nil, grid.ErrEmptyGrid
	}
	dims := g.Dims()
	if !diagonal {
		for d := range dims {
			dims[d] *= dims[d]
		}
	}
	return &OperatorBox{f: f, g: g, diag: diagonal, dims: dims}, nil
}

// Dims returns the per-site dimensions (squared node counts in full mode).
func (b *OperatorBox) Dims() []int {
	out := make([]int, len(b.dims))
	copy(out, b.dims)
	return out
}

// Eval decodes fused indices where needed and samples the kernel.
func (b *OperatorBox) Eval(batch [][]int) []float64 {
	out := make([]float64, len(batch))
	n := b.g.Dim()
	rows := make([]int, n)
	cols := make([]int, n)
	var (
		x, y []float64
		p, d int
	)
	for p = 0; p < len(batch); p++ {
		idx := batch[p]
		if b.diag {
			x = b.g.Point(x, idx)
			out[p] = b.f(x, x)
			continue
		}
		for d = 0; d < n; d++ {
			size := b.g.Interval(d).N
			rows[d] = idx[d] / size
			cols[d] = idx[d] % size
		}
		x = b.g.Point(x, rows)
		y = b.g.Point(y, cols)
		out[p] = b.f(x, y)
	}
	b.add(len(batch))
	return out
}
