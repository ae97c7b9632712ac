// plot.go - trajectory renderers built on gonum/plot.

package crossplot

import (
	"errors"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/ttcross/cross"
)

// ErrEmptyTrajectory - nothing to plot: nil results or an empty trajectory.
var ErrEmptyTrajectory = errors.New("crossplot: empty trajectory")

// costFloor clamps zero costs so the log axis stays finite.
const costFloor = 1e-16

// Cost writes the sampled-cost trajectory to path, one point per half
// sweep, with a logarithmic cost axis.
func Cost(res *cross.Results, path string) error {
	if res == nil || len(res.Trajectory) == 0 {
		return ErrEmptyTrajectory
	}

	var pts = make(plotter.XYs, len(res.Trajectory))
	for i, rec := range res.Trajectory {
		var y = rec.Cost
		if y < costFloor {
			y = costFloor
		}
		pts[i] = plotter.XY{X: float64(rec.HalfSweep), Y: y}
	}

	var p = plot.New()
	p.Title.Text = "cross interpolation cost"
	p.X.Label.Text = "half sweep"
	p.Y.Label.Text = "sampled cost"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	if err := plotutil.AddLinePoints(p, "cost", pts); err != nil {
		return err
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// Bonds writes the bond-dimension evolution to path: the maximal and the
// mean interior bond per half sweep.
func Bonds(res *cross.Results, path string) error {
	if res == nil || len(res.Trajectory) == 0 {
		return ErrEmptyTrajectory
	}

	var (
		maxPts  = make(plotter.XYs, len(res.Trajectory))
		meanPts = make(plotter.XYs, len(res.Trajectory))
	)
	for i, rec := range res.Trajectory {
		var x = float64(rec.HalfSweep)
		maxPts[i] = plotter.XY{X: x, Y: float64(maxBond(rec.BondDims))}
		meanPts[i] = plotter.XY{X: x, Y: meanInteriorBond(rec.BondDims)}
	}

	var p = plot.New()
	p.Title.Text = "bond dimensions"
	p.X.Label.Text = "half sweep"
	p.Y.Label.Text = "bond dimension"
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	if err := plotutil.AddLinePoints(p, "max", maxPts, "mean", meanPts); err != nil {
		return err
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// maxBond returns the largest entry of a non-empty bond list.
func maxBond(bonds []int) int {
	var m = bonds[0]
	for _, b := range bonds[1:] {
		if b > m {
			m = b
		}
	}

	return m
}

// meanInteriorBond averages the bonds between neighboring sites, skipping
// the two outer boundaries; a single-site train reports 1.
func meanInteriorBond(bonds []int) float64 {
	if len(bonds) <= 2 {
		return 1
	}

	var sum float64
	for _, b := range bonds[1 : len(bonds)-1] {
		sum += float64(b)
	}

	return sum / float64(len(bonds)-2)
}
