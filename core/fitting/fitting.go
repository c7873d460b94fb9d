package fitting

import "errors"

// ErrNoPoints is returned by Finish when no points were added.
var ErrNoPoints = errors.New("no points added")

// Curve is a fitted trajectory evaluable at an arbitrary time. Evaluation
// outside the fitted domain extrapolates the nearest segment.
type Curve interface {
	At(t float64) float64
}

// Fitter accumulates (time, value) points, fed in increasing time order, and
// produces a Curve.
type Fitter interface {
	AddPoint(t, v float64)
	// Finish fits the accumulated points. It returns ErrNoPoints when the
	// fitter received no data.
	Finish() (Curve, error)
}

// Factory creates fitters. When notIncreasing is set the produced curve never
// rises with time.
type Factory interface {
	New(notIncreasing bool) Fitter
}
