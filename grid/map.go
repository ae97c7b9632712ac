package grid

// BitOrder selects the site layout of a quantized (binary) map.
type BitOrder int

const (
	// Serial groups sites dimension by dimension, most significant bit
	// first within each dimension.
	Serial BitOrder = iota
	// Interleaved cycles through the dimensions at each bit level, most
	// significant bits first. All dimensions must carry the same number
	// of bits.
	Interleaved
)

// Map is an integer matrix translating tensor multi-indices into grid
// indices, idx_grid = idx_tensor · M. It also records the physical
// dimension (alphabet size) of every tensor site.
type Map struct {
	rows [][]int // sites × grid axes
	dims []int   // per-site physical dimensions
}

// IdentityMap assigns one tensor site per grid axis with the given
// physical dimensions. Entries are trusted to be positive; grids hand in
// their validated Dims().
func IdentityMap(dims []int) *Map {
	m := &Map{rows: make([][]int, len(dims)), dims: make([]int, len(dims))}
	copy(m.dims, dims)
	for s := range dims {
		row := make([]int, len(dims))
		row[s] = 1
		m.rows[s] = row
	}
	return m
}

// BinaryMap splits axis d of size 2^bits[d] into bits[d] two-valued sites.
// Serial lays the sites out dimension-major, Interleaved bit-major; the
// interleaved layout requires a uniform bit count across dimensions.
// Errors: ErrMapShape for an empty or non-positive bit vector, or for an
// interleaved request with unequal bit counts.
func BinaryMap(bits []int, order BitOrder) (*Map, error) {
	if len(bits) == 0 {
		return nil, ErrMapShape
	}
	sites := 0
	for _, b := range bits {
		if b < 1 {
			return nil, ErrMapShape
		}
		if order == Interleaved && b != bits[0] {
			return nil, ErrMapShape
		}
		sites += b
	}

	m := &Map{rows: make([][]int, sites), dims: make([]int, sites)}
	for s := range m.dims {
		m.dims[s] = 2
		m.rows[s] = make([]int, len(bits))
	}
	if order == Serial {
		at := 0
		for d, b := range bits {
			for j := 0; j < b; j++ {
				m.rows[at][d] = 1 << (b - 1 - j)
				at++
			}
		}
		return m, nil
	}
	b := bits[0]
	for j := 0; j < b; j++ {
		for d := range bits {
			m.rows[j*len(bits)+d][d] = 1 << (b - 1 - j)
		}
	}
	return m, nil
}

// Sites returns the number of tensor sites the map expects.
func (m *Map) Sites() int { return len(m.rows) }

// Dims returns the per-site physical dimensions.
func (m *Map) Dims() []int {
	out := make([]int, len(m.dims))
	copy(out, m.dims)
	return out
}

// Apply translates one tensor multi-index into a grid index vector.
// dst is reused when it has the right length. len(idx) must equal Sites().
func (m *Map) Apply(dst, idx []int) []int {
	if len(idx) != len(m.rows) {
		panic("grid: tensor index length mismatch")
	}
	cols := 0
	if len(m.rows) > 0 {
		cols = len(m.rows[0])
	}
	if len(dst) != cols {
		dst = make([]int, cols)
	} else {
		for d := range dst {
			dst[d] = 0
		}
	}
	var s, d int
	for s = 0; s < len(m.rows); s++ {
		for d = 0; d < cols; d++ {
			dst[d] += idx[s] * m.rows[s][d]
		}
	}
	return dst
}

// Validate checks that the map lands inside g: one matrix column per grid
// axis and every reachable index within the axis node count.
func (m *Map) Validate(g Grid) error {
	dims := g.Dims()
	for _, row := range m.rows {
		if len(row) != len(dims) {
			return ErrMapShape
		}
	}
	var s, d int
	for d = 0; d < len(dims); d++ {
		reach := 0
		for s = 0; s < len(m.rows); s++ {
			reach += m.rows[s][d] * (m.dims[s] - 1)
		}
		if reach > dims[d]-1 {
			return ErrMapShape
		}
	}
	return nil
}
