package cross_test

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ttcross/cross"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleDMRG
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	Reconstruct sin(0.3·(i+j+k)) on an 8×8×8 index grid. The oracle has
//	tensor-train rank exactly 2 on every bond, so the two-site strategy
//	should discover the bonds [1 2 2 1] and converge in a few sweeps.
//
// Options:
//   - Tol = 1e-10 (sampled max-abs deviation target)
//   - everything else at defaults
//
// Use case:
//
//	Compressing a smooth multivariate function without ever materializing
//	the full tensor.
func ExampleDMRG() {
	box := sinSumBox([]int{8, 8, 8}, 0.3)
	opts := cross.DefaultDMRGOptions()
	opts.Tol = 1e-10

	res, err := cross.DMRG(box, opts)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Println("stop:", res.Stop)
	fmt.Println("bonds:", res.Train.BondDims())
	// Output:
	// stop: converged
	// bonds: [1 2 2 1]
}

// //////////////////////////////////////////////////////////////////////////////
// ExampleGreedy
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	The 5×5 identity matrix has full rank: rank-one insertion must add one
//	pivot per visit until the bond saturates at 5, then reproduce the
//	matrix exactly.
//
// Use case:
//
//	Oracles where every evaluation is expensive: greedy touches one column
//	and one row per accepted pivot.
func ExampleGreedy() {
	box := kroneckerBox(5)
	opts := cross.DefaultGreedyOptions()
	opts.Tol = 1e-10

	res, err := cross.Greedy(box, opts)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	vals := res.Train.Eval([][]int{{2, 2}, {2, 3}})
	fmt.Println("bonds:", res.Train.BondDims())
	fmt.Printf("diagonal=%.2f off<1e-9: %v\n", vals[0], math.Abs(vals[1]) < 1e-9)
	// Output:
	// bonds: [1 5 1]
	// diagonal=1.00 off<1e-9: true
}

// //////////////////////////////////////////////////////////////////////////////
// ExampleMaxvol
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	One-site sweeps on a rank-2 oracle over four sites, with the default
//	(0, 1) kick window: bonds grow only while the pivot quality demands it.
func ExampleMaxvol() {
	box := sinSumBox([]int{6, 6, 6, 6}, 0.4)
	opts := cross.DefaultMaxvolOptions()
	opts.Tol = 1e-10

	res, err := cross.Maxvol(box, opts)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	idx := []int{1, 4, 2, 5}
	want := math.Sin(0.4 * 12)
	got := res.Train.Eval([][]int{idx})[0]
	fmt.Println("converged:", res.Converged)
	fmt.Printf("f(1,4,2,5): want %.6f got %.6f\n", want, got)
	// Output:
	// converged: true
	// f(1,4,2,5): want -0.996165 got -0.996165
}
