package tt

import "gonum.org/v1/gonum/mat"

// Train is a chain of tensor-train cores. The zero value is not usable;
// build trains with New, Constant or FromVector.
type Train struct {
	cores []*Core
}

// New wraps cores into a train after checking the chain invariant:
// at least one core, boundary bonds equal to 1 and matching bond
// dimensions between neighbours.
//
// The train takes ownership of the slice and of the cores it holds.
func New(cores []*Core) (*Train, error) {
	if len(cores) == 0 {
		return nil, ErrEmptyTrain
	}
	t := &Train{cores: cores}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Constant builds the rank-1 train whose dense reconstruction holds v at
// every multi-index: the first (1, dim, 1) core carries v and every other
// core carries ones.
func Constant(dims []int, v float64) (*Train, error) {
	if len(dims) == 0 {
		return nil, ErrEmptyTrain
	}
	cores := make([]*Core, len(dims))
	var k, s int
	for k = 0; k < len(dims); k++ {
		if dims[k] < 1 {
			return nil, ErrBadDims
		}
		c := NewCore(1, dims[k], 1)
		fill := 1.0
		if k == 0 {
			fill = v
		}
		for s = 0; s < dims[k]; s++ {
			c.Set(0, s, 0, fill)
		}
		cores[k] = c
	}
	return &Train{cores: cores}, nil
}

// Len returns the number of sites.
func (t *Train) Len() int { return len(t.cores) }

// Dims returns the per-site physical dimensions.
func (t *Train) Dims() []int {
	out := make([]int, len(t.cores))
	for k, c := range t.cores {
		out[k] = c.phys
	}
	return out
}

// Core returns the core at site k. Out-of-range sites panic.
func (t *Train) Core(k int) *Core { return t.cores[k] }

// SetCore replaces the core at site k without revalidating the chain;
// engines that rewrite several neighbouring cores call Validate once the
// chain is complete again. Out-of-range sites panic.
func (t *Train) SetCore(k int, c *Core) { t.cores[k] = c }

// BondDims returns the n+1 bond dimensions including the boundary ones.
func (t *Train) BondDims() []int {
	out := make([]int, len(t.cores)+1)
	out[0] = t.cores[0].left
	for k, c := range t.cores {
		out[k+1] = c.right
	}
	return out
}

// MaxBondDim returns the largest bond dimension of the chain.
func (t *Train) MaxBondDim() int {
	max := 0
	for _, b := range t.BondDims() {
		if b > max {
			max = b
		}
	}
	return max
}

// Validate checks the chain invariant and returns the first violation.
func (t *Train) Validate() error {
	if len(t.cores) == 0 {
		return ErrEmptyTrain
	}
	if t.cores[0].left != 1 || t.cores[len(t.cores)-1].right != 1 {
		return ErrBoundaryBond
	}
	var k int
	for k = 0; k < len(t.cores); k++ {
		if t.cores[k].phys < 1 {
			return ErrBadDims
		}
		if k > 0 && t.cores[k-1].right != t.cores[k].left {
			return ErrBondMismatch
		}
	}
	return nil
}

// Eval contracts the chain at each multi-index of the batch and returns the
// scalar values in batch order. Each multi-index must hold Len() site
// indices within the physical ranges; violations panic.
//
// Complexity: O(len(batch) · n · r²) for maximal bond dimension r.
func (t *Train) Eval(batch [][]int) []float64 {
	out := make([]float64, len(batch))
	var (
		w, next []float64
		p, k    int
		i, j    int
	)
	for p = 0; p < len(batch); p++ {
		idx := batch[p]
		if len(idx) != len(t.cores) {
			panic("tt: multi-index length mismatch")
		}
		w = append(w[:0], 1)
		for k = 0; k < len(t.cores); k++ {
			c := t.cores[k]
			next = next[:0]
			for j = 0; j < c.right; j++ {
				acc := 0.0
				for i = 0; i < c.left; i++ {
					acc += w[i] * c.At(i, idx[k], j)
				}
				next = append(next, acc)
			}
			w, next = next, w
		}
		out[p] = w[0]
	}
	return out
}

// Dense reconstructs the full array in C order (last site index varies
// fastest). The result has prod(Dims()) entries; callers are responsible
// for keeping that product small enough to materialize.
func (t *Train) Dense() []float64 {
	res := []float64{1}
	rows, cols := 1, 1
	var prod mat.Dense
	for _, c := range t.cores {
		m := c.UnfoldRight(RowMajor)
		prod.Reset()
		prod.Mul(mat.NewDense(rows, cols, res), m)
		rows *= c.phys
		cols = c.right
		raw := prod.RawMatrix()
		res = make([]float64, rows*cols)
		copy(res, raw.Data)
	}
	return res
}

// Clone returns a deep copy of the train.
func (t *Train) Clone() *Train {
	cores := make([]*Core, len(t.cores))
	for k, c := range t.cores {
		cores[k] = c.Clone()
	}
	return &Train{cores: cores}
}
