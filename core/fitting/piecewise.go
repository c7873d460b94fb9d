package fitting

import (
	"math"
	"sort"
)

// DefaultTolerance is the residual, in value units, above which the piecewise
// fitter opens a new segment.
const DefaultTolerance = 2.0

// PiecewiseFactory builds the default piecewise-linear least-squares fitter.
// A zero Tolerance means DefaultTolerance.
type PiecewiseFactory struct {
	Tolerance float64
}

// New implements Factory.
func (f PiecewiseFactory) New(notIncreasing bool) Fitter {
	tol := f.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	return &piecewiseFitter{tolerance: tol, notIncreasing: notIncreasing}
}

// piecewiseFitter fits continuous linear segments. Each segment is an
// anchored least-squares line starting at the end of the previous one; a new
// segment opens when the running fit's worst residual exceeds the tolerance.
type piecewiseFitter struct {
	tolerance     float64
	notIncreasing bool
	xs, ys        []float64
}

func (f *piecewiseFitter) AddPoint(t, v float64) {
	f.xs = append(f.xs, t)
	f.ys = append(f.ys, v)
}

func (f *piecewiseFitter) Finish() (Curve, error) {
	n := len(f.xs)
	if n == 0 {
		return nil, ErrNoPoints
	}
	knotX := []float64{f.xs[0]}
	knotY := []float64{f.ys[0]}
	start := 1 // first point of the running segment
	for i := 1; i < n; i++ {
		ax, ay := knotX[len(knotX)-1], knotY[len(knotY)-1]
		m := f.anchoredSlope(ax, ay, start, i+1)
		if i == start || f.maxResidual(ax, ay, m, start, i+1) <= f.tolerance {
			continue
		}
		// Refit without the offending point and close the segment at its
		// predecessor.
		m = f.anchoredSlope(ax, ay, start, i)
		if kx := f.xs[i-1]; kx > ax {
			knotX = append(knotX, kx)
			knotY = append(knotY, ay+m*(kx-ax))
		}
		start = i
	}
	ax, ay := knotX[len(knotX)-1], knotY[len(knotY)-1]
	m := f.anchoredSlope(ax, ay, start, n)
	if kx := f.xs[n-1]; kx > ax {
		knotX = append(knotX, kx)
		knotY = append(knotY, ay+m*(kx-ax))
	}
	return &polyline{xs: knotX, ys: knotY}, nil
}

// anchoredSlope returns the least-squares slope of points [from,to) for a
// line forced through (ax, ay).
func (f *piecewiseFitter) anchoredSlope(ax, ay float64, from, to int) float64 {
	var num, den float64
	for i := from; i < to; i++ {
		dx := f.xs[i] - ax
		num += dx * (f.ys[i] - ay)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	m := num / den
	if f.notIncreasing && m > 0 {
		m = 0
	}
	return m
}

func (f *piecewiseFitter) maxResidual(ax, ay, m float64, from, to int) float64 {
	worst := 0.0
	for i := from; i < to; i++ {
		if r := math.Abs(f.ys[i] - (ay + m*(f.xs[i]-ax))); r > worst {
			worst = r
		}
	}
	return worst
}

// polyline is a continuous piecewise-linear curve over strictly increasing
// knots.
type polyline struct {
	xs, ys []float64
}

// At evaluates the curve at t. Outside the knot range the first or last
// segment is extrapolated.
func (p *polyline) At(t float64) float64 {
	n := len(p.xs)
	if n == 1 {
		return p.ys[0]
	}
	j := sort.SearchFloat64s(p.xs, t) - 1
	if j < 0 {
		j = 0
	}
	if j > n-2 {
		j = n - 2
	}
	dx := p.xs[j+1] - p.xs[j]
	if dx == 0 {
		return p.ys[j]
	}
	m := (p.ys[j+1] - p.ys[j]) / dx
	return p.ys[j] + m*(t-p.xs[j])
}
