package blackbox

import (
	"slices"

	"github.com/katalvlaran/ttcross/tt"
)

// ComposeBox evaluates a scalar function of the pointwise values of one or
// more tensor trains, f(t₀[idx], t₁[idx], …). All trains must share the
// same physical dimensions.
type ComposeBox struct {
	counter
	f      func(v []float64) float64
	trains []*tt.Train
	dims   []int
}

// NewComposeBox validates the composition. Errors: ErrNilFunc,
// ErrEmptyComposition, ErrNilTrain and ErrDimensionMismatch when the
// trains disagree on their dimensions.
func NewComposeBox(f func(v []float64) float64, trains []*tt.Train) (*ComposeBox, error) {
	if f == nil {
		return nil, ErrNilFunc
	}
	if len(trains) == 0 {
		return nil, ErrEmptyComposition
	}
	for _, tr := range trains {
		if tr == nil {
			return nil, ErrNilTrain
		}
	}
	dims := trains[0].Dims()
	for _, tr := range trains[1:] {
		if !slices.Equal(dims, tr.Dims()) {
			return nil, ErrDimensionMismatch
		}
	}
	own := make([]*tt.Train, len(trains))
	copy(own, trains)
	return &ComposeBox{f: f, trains: own, dims: dims}, nil
}

// Dims returns the shared physical dimensions of the composed trains.
func (b *ComposeBox) Dims() []int { return b.dims }

// Eval contracts every train over the batch once, then applies f pointwise.
func (b *ComposeBox) Eval(batch [][]int) []float64 {
	vals := make([][]float64, len(b.trains))
	for ti, tr := range b.trains {
		vals[ti] = tr.Eval(batch)
	}
	out := make([]float64, len(batch))
	arg := make([]float64, len(b.trains))
	var p, ti int
	for p = 0; p < len(batch); p++ {
		for ti = 0; ti < len(b.trains); ti++ {
			arg[ti] = vals[ti][p]
		}
		out[p] = b.f(arg)
	}
	b.add(len(batch))
	return out
}
