package grid

// Grid is the Cartesian product of validated intervals.
type Grid struct {
	ivs []Interval
}

// NewGrid validates the intervals and assembles the product domain.
// Errors: ErrEmptyGrid without intervals, ErrBadInterval otherwise.
func NewGrid(ivs ...Interval) (Grid, error) {
	if len(ivs) == 0 {
		return Grid{}, ErrEmptyGrid
	}
	for _, iv := range ivs {
		if err := iv.validate(); err != nil {
			return Grid{}, err
		}
	}
	own := make([]Interval, len(ivs))
	copy(own, ivs)
	return Grid{ivs: own}, nil
}

// Dim returns the number of axes.
func (g Grid) Dim() int { return len(g.ivs) }

// Dims returns the node count per axis.
func (g Grid) Dims() []int {
	out := make([]int, len(g.ivs))
	for d, iv := range g.ivs {
		out[d] = iv.N
	}
	return out
}

// Interval returns the interval of axis d.
func (g Grid) Interval(d int) Interval { return g.ivs[d] }

// Point translates one grid index per axis into a coordinate vector.
// dst is reused when it has the right length, otherwise a fresh slice is
// allocated. len(idx) must equal Dim().
func (g Grid) Point(dst []float64, idx []int) []float64 {
	if len(idx) != len(g.ivs) {
		panic("grid: index length mismatch")
	}
	if len(dst) != len(g.ivs) {
		dst = make([]float64, len(g.ivs))
	}
	for d, iv := range g.ivs {
		dst[d] = iv.Node(idx[d])
	}
	return dst
}

// Points translates a batch of grid indices into coordinate vectors.
func (g Grid) Points(batch [][]int) [][]float64 {
	out := make([][]float64, len(batch))
	for p, idx := range batch {
		out[p] = g.Point(nil, idx)
	}
	return out
}
