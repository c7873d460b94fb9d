package lives

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/phm-tools/rulkit/core/fitting"
	"github.com/phm-tools/rulkit/core/model"
)

// Options configure the construction of a FittedLife.
type Options struct {
	// Threshold marks the RUL value below which degradation is observable.
	// Nil means the whole life is observable.
	Threshold *float64
	// NotIncreasing constrains the fitted curves to never rise with time.
	NotIncreasing bool
	// Time supplies an explicit time axis. When nil the axis is
	// reconstructed from the true RUL values.
	Time []float64
	// Fitter builds the fitted curves. Nil selects the default
	// piecewise-linear fitter.
	Fitter fitting.Factory
	// WeightClamp bounds true values from below in relative weighting; zero
	// selects model.DefaultWeightClamp.
	WeightClamp float64
}

// FittedLife is one run-to-failure life with its time axis and the curves
// fitted to the true and predicted RUL trajectories.
type FittedLife struct {
	YTrue []float64
	YPred []float64
	// Time is the time axis, reconstructed from YTrue unless supplied.
	Time []float64
	// DegradingStart is the first index where degradation is observable.
	DegradingStart int
	Threshold      *float64
	TrueCurve      fitting.Curve
	PredCurve      fitting.Curve

	weightClamp float64
}

// New builds a FittedLife from aligned true and predicted RUL values of a
// single life.
func New(yTrue, yPred []float64, opts Options) (*FittedLife, error) {
	if len(yTrue) != len(yPred) {
		return nil, fmt.Errorf("length mismatch: %d true vs %d predicted", len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return nil, errors.New("empty life")
	}
	ds := DegradingStart(yTrue, opts.Threshold)
	tm := opts.Time
	if tm == nil {
		tm = TimeFromRUL(yTrue, ds)
	} else if len(tm) != len(yTrue) {
		return nil, fmt.Errorf("time axis length %d does not match %d samples", len(tm), len(yTrue))
	}
	factory := opts.Fitter
	if factory == nil {
		factory = fitting.PiecewiseFactory{}
	}
	predCurve, err := fitCurve(factory, opts.NotIncreasing, tm, yPred)
	if err != nil {
		return nil, fmt.Errorf("fit predicted curve: %w", err)
	}
	trueCurve, err := fitCurve(factory, opts.NotIncreasing, tm, yTrue)
	if err != nil {
		return nil, fmt.Errorf("fit true curve: %w", err)
	}
	return &FittedLife{
		YTrue:          yTrue,
		YPred:          yPred,
		Time:           tm,
		DegradingStart: ds,
		Threshold:      opts.Threshold,
		TrueCurve:      trueCurve,
		PredCurve:      predCurve,
		weightClamp:    opts.WeightClamp,
	}, nil
}

func fitCurve(factory fitting.Factory, notIncreasing bool, tm, y []float64) (fitting.Curve, error) {
	f := factory.New(notIncreasing)
	for i := range y {
		f.AddPoint(tm[i], y[i])
	}
	return f.Finish()
}

// DegradingStart returns the first index where y falls below the threshold,
// or 0 when the threshold is nil or never crossed.
func DegradingStart(yTrue []float64, threshold *float64) int {
	if threshold == nil {
		return 0
	}
	for i, v := range yTrue {
		if v < *threshold {
			return i
		}
	}
	return 0
}

// TimeFromRUL reconstructs the implied time axis of a life from its true RUL
// values. Elapsed time between samples is the first difference of the
// reversed observable tail; the censored prefix, if any, advances by the
// median observed step (1 when no steps were observed). The axis is the
// cumulative sum of those steps.
func TimeFromRUL(yTrue []float64, degradingStart int) []float64 {
	n := len(yTrue)
	t := make([]float64, n)
	if n == 0 {
		return t
	}
	tail := yTrue[degradingStart:]
	diff := make([]float64, 0, len(tail))
	for i := len(tail) - 1; i > 0; i-- {
		diff = append(diff, tail[i-1]-tail[i])
	}
	if degradingStart > 0 {
		fill := 1.0
		if len(diff) > 0 {
			fill = median(diff)
		}
		for i := 0; i <= degradingStart; i++ {
			t[i] = fill
		}
	}
	copy(t[degradingStart+1:], diff)
	return floats.CumSum(t, t)
}

// median matches the numpy definition: the midpoint of the two central
// values for even-length input.
func median(v []float64) float64 {
	s := append([]float64(nil), v...)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// RMSE returns the root mean squared error between true and predicted RUL
// under the given weighting.
func (l *FittedLife) RMSE(w model.Weighting) float64 {
	sw := model.SampleWeights(w, l.weightClamp, l.YTrue, l.YPred)
	sum := 0.0
	for i := range l.YTrue {
		e := l.YTrue[i] - l.YPred[i]
		sum += sw[i] * e * e
	}
	return math.Sqrt(sum / float64(len(l.YTrue)))
}

// MAE returns the mean absolute error between true and predicted RUL under
// the given weighting.
func (l *FittedLife) MAE(w model.Weighting) float64 {
	sw := model.SampleWeights(w, l.weightClamp, l.YTrue, l.YPred)
	sum := 0.0
	for i := range l.YTrue {
		sum += sw[i] * math.Abs(l.YTrue[i]-l.YPred[i])
	}
	return sum / float64(len(l.YTrue))
}

// EndOfLife returns the time at which the true RUL reaches zero. When the
// recorded life ends before that, the remaining life is extrapolated past
// the last observation.
func (l *FittedLife) EndOfLife() float64 { return endOfLife(l.YTrue, l.Time) }

// PredictedEndOfLife is EndOfLife on the predicted trajectory.
func (l *FittedLife) PredictedEndOfLife() float64 { return endOfLife(l.YPred, l.Time) }

func endOfLife(y, tm []float64) float64 {
	for i, v := range y {
		if v == 0 {
			return tm[i]
		}
	}
	return tm[len(tm)-1] + y[len(y)-1]
}

// MaintenancePoint returns the time maintenance would be scheduled when
// keeping a fault horizon of m time units before the predicted end of life.
func (l *FittedLife) MaintenancePoint(m float64) float64 {
	return l.PredictedEndOfLife() - m
}

// UnexploitedLifetime returns the lifetime given up by maintaining at the
// maintenance point for horizon m, or 0 when maintenance would come at or
// after the true end of life.
func (l *FittedLife) UnexploitedLifetime(m float64) float64 {
	if mp := l.MaintenancePoint(m); mp < l.EndOfLife() {
		return l.EndOfLife() - mp
	}
	return 0
}

// UnexpectedBreak reports whether the unit breaks before the scheduled
// maintenance for horizon m.
func (l *FittedLife) UnexpectedBreak(m float64) bool {
	return l.MaintenancePoint(m) >= l.EndOfLife()
}
