// cross_test.go - end-to-end sweeps: convergence on low-rank oracles, exact
// rank discovery, stop-condition precedence and reproducibility.

package cross_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ttcross/blackbox"
	"github.com/katalvlaran/ttcross/cross"
	"github.com/katalvlaran/ttcross/grid"
	"github.com/katalvlaran/ttcross/tt"
)

// indexBox is a plain index-space oracle with the counting contract of
// blackbox.Box.
type indexBox struct {
	dims  []int
	fn    func(idx []int) float64
	evals int
}

func newIndexBox(dims []int, fn func(idx []int) float64) *indexBox {
	return &indexBox{dims: dims, fn: fn}
}

func (b *indexBox) Dims() []int { return b.dims }

func (b *indexBox) Eval(batch [][]int) []float64 {
	b.evals += len(batch)
	var out = make([]float64, len(batch))
	for t, idx := range batch {
		out[t] = b.fn(idx)
	}

	return out
}

func (b *indexBox) Evals() int { return b.evals }

// sinSumBox is sin(scale·Σ idx): tensor-train rank exactly 2 on every bond.
func sinSumBox(dims []int, scale float64) *indexBox {
	return newIndexBox(dims, func(idx []int) float64 {
		var sum int
		for _, v := range idx {
			sum += v
		}

		return math.Sin(scale * float64(sum))
	})
}

// kroneckerBox is the n×n identity: rank exactly n, so low-bond skeletons
// provably miss some diagonal entry with residual 1.
func kroneckerBox(n int) *indexBox {
	return newIndexBox([]int{n, n}, func(idx []int) float64 {
		if idx[0] == idx[1] {
			return 1
		}

		return 0
	})
}

// enumerate lists all multi-indices of the shape in C order.
func enumerate(dims []int) [][]int {
	var total = 1
	for _, d := range dims {
		total *= d
	}

	var out = make([][]int, total)
	for t := 0; t < total; t++ {
		var (
			row  = make([]int, len(dims))
			rest = t
		)
		for k := len(dims) - 1; k >= 0; k-- {
			row[k] = rest % dims[k]
			rest /= dims[k]
		}
		out[t] = row
	}

	return out
}

// assertMatchesOracle validates the train and compares it pointwise with
// the oracle function over the full index space.
func assertMatchesOracle(t *testing.T, train *tt.Train, box *indexBox, tol float64) {
	t.Helper()
	require.NotNil(t, train)
	require.NoError(t, train.Validate())

	var (
		batch = enumerate(box.dims)
		got   = train.Eval(batch)
	)
	for i, idx := range batch {
		require.InDelta(t, box.fn(idx), got[i], tol, "mismatch at %v", idx)
	}
}

// assertTrajectory checks the bookkeeping every run must satisfy.
func assertTrajectory(t *testing.T, res *cross.Results, box *indexBox) {
	t.Helper()
	require.NotEmpty(t, res.Trajectory)
	var prev = res.Trajectory[0]
	assert.Equal(t, 1, prev.HalfSweep)
	for i, rec := range res.Trajectory[1:] {
		assert.Equal(t, prev.HalfSweep+1, rec.HalfSweep)
		assert.GreaterOrEqual(t, rec.Evals, prev.Evals, "record %d", i+1)
		assert.GreaterOrEqual(t, rec.Elapsed, prev.Elapsed, "record %d", i+1)
		prev = rec
	}
	assert.Equal(t, box.Evals(), prev.Evals, "last record must account for all oracle calls")
	assert.Len(t, prev.BondDims, len(box.dims)+1)
}

// TestMaxvol_ConvergesLowRank drives the one-site strategy to convergence
// on a rank-2 oracle over four sites.
func TestMaxvol_ConvergesLowRank(t *testing.T) {
	var (
		box  = sinSumBox([]int{6, 6, 6, 6}, 0.4)
		opts = cross.DefaultMaxvolOptions()
	)
	opts.Tol = 1e-10

	res, err := cross.Maxvol(box, opts)
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.Equal(t, cross.StopConverged, res.Stop)
	assert.LessOrEqual(t, res.Train.MaxBondDim(), 4)
	assertMatchesOracle(t, res.Train, box, 1e-8)
	assertTrajectory(t, res, box)
}

// TestMaxvol_ForcedKick exercises the rectangular growth path through the
// strategy layer.
func TestMaxvol_ForcedKick(t *testing.T) {
	var (
		box  = sinSumBox([]int{4, 4, 4}, 0.4)
		opts = cross.DefaultMaxvolOptions()
	)
	opts.Tol = 1e-10
	opts.Maxvol.MinRankKick = 1
	opts.Maxvol.MaxRankKick = 2

	res, err := cross.Maxvol(box, opts)
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.GreaterOrEqual(t, res.Train.MaxBondDim(), 2)
	assertMatchesOracle(t, res.Train, box, 1e-8)
}

// TestDMRG_FindsExactRank checks that superblock truncation settles on the
// true bond dimensions of a rank-2 oracle.
func TestDMRG_FindsExactRank(t *testing.T) {
	var (
		box  = sinSumBox([]int{8, 8, 8}, 0.3)
		opts = cross.DefaultDMRGOptions()
	)
	opts.Tol = 1e-10

	res, err := cross.DMRG(box, opts)
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.Equal(t, []int{1, 2, 2, 1}, res.Train.BondDims())
	assertMatchesOracle(t, res.Train, box, 1e-8)
	assertTrajectory(t, res, box)
}

// TestDMRG_SeparableStaysRankOne integrates with grid + blackbox: a product
// gaussian on a Chebyshev grid is exactly rank one and must stay there.
func TestDMRG_SeparableStaysRankOne(t *testing.T) {
	g, err := grid.NewGrid(
		grid.Interval{Lo: -1.5, Hi: 1.5, N: 16, Kind: grid.Chebyshev},
		grid.Interval{Lo: -1.5, Hi: 1.5, N: 16, Kind: grid.Chebyshev},
	)
	require.NoError(t, err)

	box, err := blackbox.NewFuncBox(func(x []float64) float64 {
		return math.Exp(-(x[0]*x[0] + x[1]*x[1]))
	}, g, nil)
	require.NoError(t, err)

	var opts = cross.DefaultDMRGOptions()
	opts.Tol = 1e-12

	res, err := cross.DMRG(box, opts)
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.Equal(t, 1, res.Train.MaxBondDim())

	// Spot-check the interpolant against the function on raw grid points.
	var (
		batch = [][]int{{0, 0}, {3, 11}, {15, 15}, {7, 2}}
		vals  = res.Train.Eval(batch)
		x     = make([]float64, 2)
	)
	for i, idx := range batch {
		g.Point(x, idx)
		assert.InDelta(t, math.Exp(-(x[0]*x[0]+x[1]*x[1])), vals[i], 1e-10)
	}
}

// TestMaxvol_GaussianGrid covers the classic mesh scenario: a product
// gaussian on a regular 32×32 grid must interpolate to well below 1e-6
// with bonds far under the grid size.
func TestMaxvol_GaussianGrid(t *testing.T) {
	g, err := grid.NewGrid(
		grid.Interval{Lo: -2, Hi: 2, N: 32, Kind: grid.Closed},
		grid.Interval{Lo: -2, Hi: 2, N: 32, Kind: grid.Closed},
	)
	require.NoError(t, err)

	var fn = func(x []float64) float64 {
		return math.Exp(-(x[0]*x[0] + x[1]*x[1]))
	}
	box, err := blackbox.NewFuncBox(fn, g, nil)
	require.NoError(t, err)

	res, err := cross.Maxvol(box, cross.DefaultMaxvolOptions())
	require.NoError(t, err)
	require.True(t, res.Converged)
	assert.LessOrEqual(t, res.Train.MaxBondDim(), 6)

	var (
		batch = enumerate([]int{32, 32})
		got   = res.Train.Eval(batch)
		x     = make([]float64, 2)
		worst float64
	)
	for p, idx := range batch {
		g.Point(x, idx)
		if d := math.Abs(got[p] - fn(x)); d > worst {
			worst = d
		}
	}
	assert.Less(t, worst, 1e-6)
}

// TestCompose_Ramp interpolates f(v) = v₀ + sin(v₁) + cos(v₂) over three
// identical single-site trains holding a discretized ramp and compares
// against direct evaluation of f on the ramp values.
func TestCompose_Ramp(t *testing.T) {
	const n = 64
	var ramp = make([]float64, n)
	for i := range ramp {
		ramp[i] = float64(i) / float64(n-1)
	}
	base, err := tt.FromVector(ramp, []int{n}, tt.DefaultTruncation())
	require.NoError(t, err)

	box, err := blackbox.NewComposeBox(func(v []float64) float64 {
		return v[0] + math.Sin(v[1]) + math.Cos(v[2])
	}, []*tt.Train{base, base, base})
	require.NoError(t, err)

	res, err := cross.DMRG(box, cross.DefaultDMRGOptions())
	require.NoError(t, err)
	require.True(t, res.Converged)

	var got = res.Train.Eval(enumerate([]int{n}))
	for i, v := range ramp {
		assert.InDelta(t, v+math.Sin(v)+math.Cos(v), got[i], 1e-6, "node %d", i)
	}
}

// TestGreedy_FullRecovery grows one pivot at a time until the identity is
// reproduced at full rank.
func TestGreedy_FullRecovery(t *testing.T) {
	var (
		box  = kroneckerBox(5)
		opts = cross.DefaultGreedyOptions()
	)
	opts.Tol = 1e-10

	res, err := cross.Greedy(box, opts)
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.Equal(t, []int{1, 5, 1}, res.Train.BondDims())
	assertMatchesOracle(t, res.Train, box, 1e-10)
	assertTrajectory(t, res, box)
}

// TestGreedy_PartialSearch converges with randomized pivot hunting under a
// fixed seed.
func TestGreedy_PartialSearch(t *testing.T) {
	var (
		box  = sinSumBox([]int{6, 6, 6}, 0.4)
		opts = cross.DefaultGreedyOptions()
	)
	opts.Tol = 1e-10
	opts.Search = cross.PartialSearch
	opts.Seed = 5

	res, err := cross.Greedy(box, opts)
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.Equal(t, []int{1, 2, 2, 1}, res.Train.BondDims())
	assertMatchesOracle(t, res.Train, box, 1e-8)
}

// TestGreedy_Deterministic repeats a seeded partial-search run and compares
// the trajectories field by field.
func TestGreedy_Deterministic(t *testing.T) {
	var run = func() *cross.Results {
		var opts = cross.DefaultGreedyOptions()
		opts.Tol = 1e-10
		opts.Search = cross.PartialSearch
		opts.Seed = 11

		res, err := cross.Greedy(sinSumBox([]int{5, 5, 5}, 0.5), opts)
		require.NoError(t, err)

		return res
	}

	var a, b = run(), run()
	require.Equal(t, len(a.Trajectory), len(b.Trajectory))
	for i := range a.Trajectory {
		assert.Equal(t, a.Trajectory[i].Cost, b.Trajectory[i].Cost, "record %d", i)
		assert.Equal(t, a.Trajectory[i].BondDims, b.Trajectory[i].BondDims, "record %d", i)
		assert.Equal(t, a.Trajectory[i].Evals, b.Trajectory[i].Evals, "record %d", i)
	}
	assert.Equal(t, a.Stop, b.Stop)
}

// TestMaxvol_StopStagnation pins the stagnation stop: a zero kick window
// cannot grow bonds, so the third record must end the run.
func TestMaxvol_StopStagnation(t *testing.T) {
	var (
		box  = sinSumBox([]int{4, 4}, 0.4)
		opts = cross.DefaultMaxvolOptions()
	)
	opts.Tol = 1e-10
	opts.Maxvol.MaxRankKick = 0

	res, err := cross.Maxvol(box, opts)
	require.NoError(t, err)

	assert.Equal(t, cross.StopStagnation, res.Stop)
	assert.False(t, res.Converged)
	assert.Len(t, res.Trajectory, 3)
	assert.Equal(t, []int{1, 1, 1}, res.Train.BondDims())
	assert.NoError(t, res.Train.Validate())
}

// TestGreedy_StopMaxBond hits the bond ceiling on a full-rank oracle.
func TestGreedy_StopMaxBond(t *testing.T) {
	var (
		box  = kroneckerBox(4)
		opts = cross.DefaultGreedyOptions()
	)
	opts.MaxBondDim = 2

	res, err := cross.Greedy(box, opts)
	require.NoError(t, err)

	assert.Equal(t, cross.StopMaxBond, res.Stop)
	assert.Len(t, res.Trajectory, 1)
	assert.Equal(t, []int{1, 2, 1}, res.Train.BondDims())
	assert.NoError(t, res.Train.Validate())
}

// TestGreedy_StopSweepBudget exhausts a one-half-sweep budget without
// converging.
func TestGreedy_StopSweepBudget(t *testing.T) {
	var (
		box  = kroneckerBox(4)
		opts = cross.DefaultGreedyOptions()
	)
	opts.MaxHalfSweeps = 1

	res, err := cross.Greedy(box, opts)
	require.NoError(t, err)

	assert.Equal(t, cross.StopSweepBudget, res.Stop)
	assert.False(t, res.Converged)
	assert.Len(t, res.Trajectory, 1)
	assert.NoError(t, res.Train.Validate())
}

// TestMaxvol_StopMaxEvals stops at the first boundary once the oracle
// budget is burnt (the cost pool alone exceeds it).
func TestMaxvol_StopMaxEvals(t *testing.T) {
	var (
		box  = kroneckerBox(4)
		opts = cross.DefaultMaxvolOptions()
	)
	opts.Tol = 1e-300
	opts.MaxEvals = 1

	res, err := cross.Maxvol(box, opts)
	require.NoError(t, err)

	assert.Equal(t, cross.StopMaxEvals, res.Stop)
	assert.Len(t, res.Trajectory, 1)
	assert.GreaterOrEqual(t, res.Trajectory[0].Evals, opts.Cost.Samples)
}

// TestMaxvol_StopMaxTime stops at the first boundary past a vanishing time
// budget.
func TestMaxvol_StopMaxTime(t *testing.T) {
	var (
		box  = sinSumBox([]int{4, 4}, 0.4)
		opts = cross.DefaultMaxvolOptions()
	)
	opts.Tol = 1e-300
	opts.Maxvol.MaxRankKick = 0
	opts.MaxTime = time.Nanosecond

	res, err := cross.Maxvol(box, opts)
	require.NoError(t, err)

	assert.Equal(t, cross.StopMaxTime, res.Stop)
	assert.Len(t, res.Trajectory, 1)
}

// TestSingleSite covers the no-bond edge: the raw fiber is exact, so every
// strategy converges at the first record.
func TestSingleSite(t *testing.T) {
	var fn = func(idx []int) float64 { return 1 / float64(1+idx[0]) }

	var cases = map[string]func(*indexBox) (*cross.Results, error){
		"maxvol": func(b *indexBox) (*cross.Results, error) {
			return cross.Maxvol(b, cross.DefaultMaxvolOptions())
		},
		"dmrg": func(b *indexBox) (*cross.Results, error) {
			return cross.DMRG(b, cross.DefaultDMRGOptions())
		},
		"greedy": func(b *indexBox) (*cross.Results, error) {
			return cross.Greedy(b, cross.DefaultGreedyOptions())
		},
	}
	for name, run := range cases {
		t.Run(name, func(t *testing.T) {
			var box = newIndexBox([]int{7}, fn)
			res, err := run(box)
			require.NoError(t, err)

			assert.True(t, res.Converged)
			assert.Len(t, res.Trajectory, 1)
			assert.Equal(t, []int{1, 1}, res.Train.BondDims())
			assertMatchesOracle(t, res.Train, box, 1e-14)
		})
	}
}

// TestOptions_Validation walks the sentinel table through a strategy entry
// point.
func TestOptions_Validation(t *testing.T) {
	var box = sinSumBox([]int{2, 2}, 0.4)

	var cases = []struct {
		name string
		mut  func(*cross.MaxvolOptions)
		want error
	}{
		{"negative tolerance", func(o *cross.MaxvolOptions) { o.Tol = -1 }, cross.ErrTolerance},
		{"zero sweeps", func(o *cross.MaxvolOptions) { o.MaxHalfSweeps = 0 }, cross.ErrSweepLimit},
		{"zero bond ceiling", func(o *cross.MaxvolOptions) { o.MaxBondDim = 0 }, cross.ErrBondLimit},
		{"zero samples", func(o *cross.MaxvolOptions) { o.Cost.Samples = 0 }, cross.ErrCostSamples},
		{"bad norm order", func(o *cross.MaxvolOptions) { o.Cost.P = 0.5 }, cross.ErrCostOrder},
		{"bad sampling", func(o *cross.MaxvolOptions) { o.Cost.Sampling = 99 }, cross.ErrSamplingMode},
		{"bad start", func(o *cross.MaxvolOptions) { o.Start = []int{5, 0} }, cross.ErrStartPoint},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var opts = cross.DefaultMaxvolOptions()
			tc.mut(&opts)
			_, err := cross.Maxvol(box, opts)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := cross.Maxvol(nil, cross.DefaultMaxvolOptions())
	assert.ErrorIs(t, err, cross.ErrNilBox)

	var gopts = cross.DefaultGreedyOptions()
	gopts.Search = 99
	_, err = cross.Greedy(box, gopts)
	assert.ErrorIs(t, err, cross.ErrSearchMode)

	gopts = cross.DefaultGreedyOptions()
	gopts.PivotTol = -1
	_, err = cross.Greedy(box, gopts)
	assert.ErrorIs(t, err, cross.ErrPivotTol)

	gopts = cross.DefaultGreedyOptions()
	gopts.Search = cross.PartialSearch
	gopts.PartialCandidates = 0
	_, err = cross.Greedy(box, gopts)
	assert.ErrorIs(t, err, cross.ErrPartialBudget)
}

// TestStopReason_String keeps the labels stable for logs.
func TestStopReason_String(t *testing.T) {
	assert.Equal(t, "converged", cross.StopConverged.String())
	assert.Equal(t, "sweep budget exhausted", cross.StopSweepBudget.String())
	assert.Equal(t, "none", cross.StopNone.String())
}
