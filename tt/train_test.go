package tt_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ttcross/tt"
)

// enumerate lists all multi-indices of dims in C order (last fastest).
func enumerate(dims []int) [][]int {
	total := 1
	for _, d := range dims {
		total *= d
	}
	out := make([][]int, total)
	for p := 0; p < total; p++ {
		idx := make([]int, len(dims))
		rem := p
		for k := len(dims) - 1; k >= 0; k-- {
			idx[k] = rem % dims[k]
			rem /= dims[k]
		}
		out[p] = idx
	}
	return out
}

// randTrain builds a random train with the given dims and bond dims.
func randTrain(t *testing.T, rng *rand.Rand, dims, bonds []int) *tt.Train {
	t.Helper()
	cores := make([]*tt.Core, len(dims))
	for k := range dims {
		c := tt.NewCore(bonds[k], dims[k], bonds[k+1])
		for il := 0; il < bonds[k]; il++ {
			for is := 0; is < dims[k]; is++ {
				for ig := 0; ig < bonds[k+1]; ig++ {
					c.Set(il, is, ig, rng.NormFloat64())
				}
			}
		}
		cores[k] = c
	}
	tr, err := tt.New(cores)
	require.NoError(t, err)
	return tr
}

// TestNew_Validation exercises every chain-invariant violation.
func TestNew_Validation(t *testing.T) {
	_, err := tt.New(nil)
	assert.ErrorIs(t, err, tt.ErrEmptyTrain)

	_, err = tt.New([]*tt.Core{tt.NewCore(2, 3, 1)})
	assert.ErrorIs(t, err, tt.ErrBoundaryBond)

	_, err = tt.New([]*tt.Core{tt.NewCore(1, 3, 2)})
	assert.ErrorIs(t, err, tt.ErrBoundaryBond)

	_, err = tt.New([]*tt.Core{tt.NewCore(1, 2, 3), tt.NewCore(2, 2, 1)})
	assert.ErrorIs(t, err, tt.ErrBondMismatch)

	tr, err := tt.New([]*tt.Core{tt.NewCore(1, 2, 3), tt.NewCore(3, 2, 1)})
	require.NoError(t, err)
	assert.NoError(t, tr.Validate())
}

// TestConstant checks shape bookkeeping and the constant reconstruction.
func TestConstant(t *testing.T) {
	dims := []int{2, 3, 2}
	tr, err := tt.Constant(dims, 2.5)
	require.NoError(t, err)

	assert.Equal(t, 3, tr.Len())
	assert.Equal(t, dims, tr.Dims())
	assert.Equal(t, []int{1, 1, 1, 1}, tr.BondDims())
	assert.Equal(t, 1, tr.MaxBondDim())

	for _, v := range tr.Dense() {
		assert.InDelta(t, 2.5, v, 1e-15)
	}

	_, err = tt.Constant(nil, 1)
	assert.ErrorIs(t, err, tt.ErrEmptyTrain)
	_, err = tt.Constant([]int{2, 0}, 1)
	assert.ErrorIs(t, err, tt.ErrBadDims)
}

// TestTrain_EvalMatchesDense cross-checks the two contraction paths on a
// random train: pointwise Eval must agree with the dense reconstruction.
func TestTrain_EvalMatchesDense(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	dims := []int{2, 3, 2, 2}
	tr := randTrain(t, rng, dims, []int{1, 2, 3, 2, 1})

	batch := enumerate(dims)
	got := tr.Eval(batch)
	want := tr.Dense()
	require.Len(t, got, len(want))
	for p := range want {
		assert.InDelta(t, want[p], got[p], 1e-12)
	}
}

// TestTrain_Clone ensures cores are copied, not shared.
func TestTrain_Clone(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tr := randTrain(t, rng, []int{2, 2}, []int{1, 2, 1})
	cp := tr.Clone()

	cp.Core(0).Set(0, 0, 0, 1234)
	assert.NotEqual(t, 1234.0, tr.Core(0).At(0, 0, 0))
}

// TestFromVector_RoundTrip compresses a random dense array losslessly.
func TestFromVector_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	dims := []int{2, 3, 2, 2}
	v := make([]float64, 24)
	for i := range v {
		v[i] = rng.NormFloat64()
	}

	tr, err := tt.FromVector(v, dims, tt.DefaultTruncation())
	require.NoError(t, err)
	require.NoError(t, tr.Validate())
	assert.Equal(t, dims, tr.Dims())

	back := tr.Dense()
	for i := range v {
		assert.InDelta(t, v[i], back[i], 1e-10)
	}
}

// TestFromVector_RankOne expects a separable array to compress to bond 1.
func TestFromVector_RankOne(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{4, 5}
	v := make([]float64, 0, 6)
	for _, x := range a {
		for _, y := range b {
			v = append(v, x*y)
		}
	}

	tr, err := tt.FromVector(v, []int{3, 2}, tt.DefaultTruncation())
	require.NoError(t, err)
	assert.Equal(t, 1, tr.MaxBondDim())

	back := tr.Dense()
	for i := range v {
		assert.InDelta(t, v[i], back[i], 1e-12)
	}
}

// TestFromVector_MaxRank verifies the hard cap wins over tolerances.
func TestFromVector_MaxRank(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	dims := []int{4, 4}
	v := make([]float64, 16)
	for i := range v {
		v[i] = rng.NormFloat64()
	}

	tr, err := tt.FromVector(v, dims, tt.Truncation{RelTol: 0, AbsTol: 0, MaxRank: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, tr.MaxBondDim())
}

// TestFromVector_Validation covers the input checks.
func TestFromVector_Validation(t *testing.T) {
	_, err := tt.FromVector(nil, nil, tt.DefaultTruncation())
	assert.ErrorIs(t, err, tt.ErrEmptyTrain)

	_, err = tt.FromVector([]float64{1, 2}, []int{2, 0}, tt.DefaultTruncation())
	assert.ErrorIs(t, err, tt.ErrBadDims)

	_, err = tt.FromVector([]float64{1, 2, 3}, []int{2, 2}, tt.DefaultTruncation())
	assert.ErrorIs(t, err, tt.ErrVectorLength)
}

// TestTruncation_Rank walks the rank rule through its regimes.
func TestTruncation_Rank(t *testing.T) {
	sigma := []float64{4, 2, 1e-9}

	assert.Equal(t, 3, tt.DefaultTruncation().Rank(sigma))
	assert.Equal(t, 2, tt.Truncation{AbsTol: 1e-6}.Rank(sigma))
	assert.Equal(t, 1, tt.Truncation{RelTol: 0.5}.Rank(sigma))
	assert.Equal(t, 1, tt.Truncation{MaxRank: 1}.Rank(sigma))
	assert.Equal(t, 0, tt.Truncation{}.Rank(nil))

	// A spectrum entirely below the absolute bound still keeps one value.
	assert.Equal(t, 1, tt.Truncation{AbsTol: math.Inf(1)}.Rank(sigma))
}
