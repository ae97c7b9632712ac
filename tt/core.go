package tt

import "gonum.org/v1/gonum/mat"

// Core is one 3-index tensor-train block of shape (left, phys, right).
// Values are stored in C order: the right bond index varies fastest,
// the left bond index slowest.
type Core struct {
	left  int
	phys  int
	right int
	data  []float64
}

// NewCore allocates a zero core of shape (left, phys, right).
// Panics when any extent is non-positive.
func NewCore(left, phys, right int) *Core {
	if left < 1 || phys < 1 || right < 1 {
		panic("tt: non-positive core dimension")
	}
	return &Core{
		left:  left,
		phys:  phys,
		right: right,
		data:  make([]float64, left*phys*right),
	}
}

// NewCoreFrom wraps a copy of data, laid out in C order, into a core of
// shape (left, phys, right). Panics when the length does not match.
func NewCoreFrom(left, phys, right int, data []float64) *Core {
	c := NewCore(left, phys, right)
	if len(data) != len(c.data) {
		panic("tt: core data length mismatch")
	}
	copy(c.data, data)
	return c
}

// Left returns the left bond dimension.
func (c *Core) Left() int { return c.left }

// Phys returns the physical (site alphabet) dimension.
func (c *Core) Phys() int { return c.phys }

// Right returns the right bond dimension.
func (c *Core) Right() int { return c.right }

// At returns the element (il, is, ig). Out-of-range indices panic.
func (c *Core) At(il, is, ig int) float64 {
	return c.data[(il*c.phys+is)*c.right+ig]
}

// Set stores v at (il, is, ig). Out-of-range indices panic.
func (c *Core) Set(il, is, ig int, v float64) {
	c.data[(il*c.phys+is)*c.right+ig] = v
}

// Clone returns a deep copy of the core.
func (c *Core) Clone() *Core {
	out := &Core{left: c.left, phys: c.phys, right: c.right, data: make([]float64, len(c.data))}
	copy(out.data, c.data)
	return out
}

// UnfoldLeft flattens the core into a (left·phys)×right matrix. The row
// pairing follows o: RowMajor pairs row a = il·phys+is, ColMajor pairs
// row a = il+left·is. The result never aliases the core storage.
func (c *Core) UnfoldLeft(o Order) *mat.Dense {
	rows := c.left * c.phys
	out := mat.NewDense(rows, c.right, nil)
	if o == RowMajor {
		copy(out.RawMatrix().Data, c.data)
		return out
	}
	var il, is, ig int
	for il = 0; il < c.left; il++ {
		for is = 0; is < c.phys; is++ {
			for ig = 0; ig < c.right; ig++ {
				out.Set(il+c.left*is, ig, c.At(il, is, ig))
			}
		}
	}
	return out
}

// UnfoldRight flattens the core into a left×(phys·right) matrix. The column
// pairing follows o: RowMajor pairs column b = is·right+ig, ColMajor pairs
// column b = is+phys·ig. The result never aliases the core storage.
func (c *Core) UnfoldRight(o Order) *mat.Dense {
	cols := c.phys * c.right
	out := mat.NewDense(c.left, cols, nil)
	if o == RowMajor {
		copy(out.RawMatrix().Data, c.data)
		return out
	}
	var il, is, ig int
	for il = 0; il < c.left; il++ {
		for is = 0; is < c.phys; is++ {
			for ig = 0; ig < c.right; ig++ {
				out.Set(il, is+c.phys*ig, c.At(il, is, ig))
			}
		}
	}
	return out
}

// FoldLeft rebuilds a core of shape (left, phys, right) from a
// (left·phys)×right matrix, inverting UnfoldLeft under the same ordering.
// Panics when the matrix shape disagrees with the requested extents.
func FoldLeft(m *mat.Dense, left, phys, right int, o Order) *Core {
	r, g := m.Dims()
	if r != left*phys || g != right {
		panic("tt: fold shape mismatch")
	}
	out := NewCore(left, phys, right)
	if o == RowMajor {
		var i, j int
		for i = 0; i < r; i++ {
			for j = 0; j < g; j++ {
				out.data[i*right+j] = m.At(i, j)
			}
		}
		return out
	}
	var il, is, ig int
	for il = 0; il < left; il++ {
		for is = 0; is < phys; is++ {
			for ig = 0; ig < right; ig++ {
				out.Set(il, is, ig, m.At(il+left*is, ig))
			}
		}
	}
	return out
}

// FoldRight rebuilds a core of shape (left, phys, right) from a
// left×(phys·right) matrix, inverting UnfoldRight under the same ordering.
// Panics when the matrix shape disagrees with the requested extents.
func FoldRight(m *mat.Dense, left, phys, right int, o Order) *Core {
	l, b := m.Dims()
	if l != left || b != phys*right {
		panic("tt: fold shape mismatch")
	}
	out := NewCore(left, phys, right)
	var il, is, ig int
	for il = 0; il < left; il++ {
		for is = 0; is < phys; is++ {
			for ig = 0; ig < right; ig++ {
				if o == RowMajor {
					out.Set(il, is, ig, m.At(il, is*right+ig))
				} else {
					out.Set(il, is, ig, m.At(il, is+phys*ig))
				}
			}
		}
	}
	return out
}

// AppendRight returns a copy of the core with one extra right-bond slice.
// vals holds the new slice enumerated over (il, is) pairs in RowMajor order,
// so len(vals) must equal left·phys.
func (c *Core) AppendRight(vals []float64) *Core {
	if len(vals) != c.left*c.phys {
		panic("tt: appended slice length mismatch")
	}
	out := NewCore(c.left, c.phys, c.right+1)
	var a int
	for a = 0; a < c.left*c.phys; a++ {
		copy(out.data[a*out.right:a*out.right+c.right], c.data[a*c.right:(a+1)*c.right])
		out.data[a*out.right+c.right] = vals[a]
	}
	return out
}

// AppendLeft returns a copy of the core with one extra left-bond slice
// appended after the existing ones. vals holds the new slice enumerated over
// (is, ig) pairs in RowMajor order, so len(vals) must equal phys·right.
func (c *Core) AppendLeft(vals []float64) *Core {
	if len(vals) != c.phys*c.right {
		panic("tt: appended slice length mismatch")
	}
	out := NewCore(c.left+1, c.phys, c.right)
	copy(out.data, c.data)
	copy(out.data[c.left*c.phys*c.right:], vals)
	return out
}
