package fitting

// InterpolatorFactory builds fitters whose curve passes through every point.
// Useful in tests and when no smoothing is wanted.
type InterpolatorFactory struct{}

// New implements Factory.
func (InterpolatorFactory) New(notIncreasing bool) Fitter {
	return &interpolator{notIncreasing: notIncreasing}
}

type interpolator struct {
	notIncreasing bool
	xs, ys        []float64
}

// AddPoint records the point. A repeated time replaces the previous value so
// the curve stays a function; with notIncreasing set, values are clamped to
// never rise.
func (f *interpolator) AddPoint(t, v float64) {
	if f.notIncreasing && len(f.ys) > 0 && v > f.ys[len(f.ys)-1] {
		v = f.ys[len(f.ys)-1]
	}
	if n := len(f.xs); n > 0 && f.xs[n-1] == t {
		f.ys[n-1] = v
		return
	}
	f.xs = append(f.xs, t)
	f.ys = append(f.ys, v)
}

func (f *interpolator) Finish() (Curve, error) {
	if len(f.xs) == 0 {
		return nil, ErrNoPoints
	}
	return &polyline{xs: f.xs, ys: f.ys}, nil
}
