package horizon

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/phm-tools/rulkit/core/lives"
	"github.com/phm-tools/rulkit/core/model"
)

// DefaultEpsilon guards the per-fold normalization of MetricJ against
// division by zero when a fold has no breaks or no unexploited lifetime.
const DefaultEpsilon = 1e-10

// Sweep is a maintenance metric evaluated over evenly spaced fault horizons.
type Sweep struct {
	// Windows holds the swept fault horizons.
	Windows []float64 `json:"windows"`
	// Values holds the cross-fold mean of the metric at each horizon.
	Values model.Floats `json:"values"`
	// FoldStd holds the population standard deviation of the metric across
	// the lives of each fold, indexed by horizon then fold. Diagnostic only;
	// it does not feed Values.
	FoldStd []model.Floats `json:"fold_std,omitempty"`
}

// UnexploitedLifetime sweeps the mean unexploited lifetime over n horizons
// evenly spaced in [0, windowSize]. folds holds the fitted lives of each
// cross-validation fold.
func UnexploitedLifetime(folds [][]*lives.FittedLife, windowSize float64, n int) (*Sweep, error) {
	return sweep(folds, windowSize, n, func(l *lives.FittedLife, m float64) float64 {
		return l.UnexploitedLifetime(m)
	})
}

// UnexpectedBreaks sweeps the fraction of lives breaking before their
// scheduled maintenance over n horizons evenly spaced in [0, windowSize].
func UnexpectedBreaks(folds [][]*lives.FittedLife, windowSize float64, n int) (*Sweep, error) {
	return sweep(folds, windowSize, n, func(l *lives.FittedLife, m float64) float64 {
		if l.UnexpectedBreak(m) {
			return 1
		}
		return 0
	})
}

// MetricJ sweeps the combined maintenance cost. Per fold, the break
// indicators and unexploited lifetimes are each normalized by their fold
// maximum (guarded by epsilon), scaled by q1 and q2, and summed per life;
// the fold means are then averaged. epsilon <= 0 selects DefaultEpsilon.
func MetricJ(folds [][]*lives.FittedLife, windowSize float64, n int, q1, q2, epsilon float64) (*Sweep, error) {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	windows, err := span(windowSize, n)
	if err != nil {
		return nil, err
	}
	s := &Sweep{Windows: windows, Values: make(model.Floats, n), FoldStd: make([]model.Floats, n)}
	for wi, m := range windows {
		foldJ := make([]float64, 0, len(folds))
		stds := make(model.Floats, 0, len(folds))
		for _, fold := range folds {
			if len(fold) == 0 {
				foldJ = append(foldJ, math.NaN())
				stds = append(stds, math.NaN())
				continue
			}
			ub := make([]float64, len(fold))
			ul := make([]float64, len(fold))
			for i, l := range fold {
				if l.UnexpectedBreak(m) {
					ub[i] = 1
				}
				ul[i] = l.UnexploitedLifetime(m)
			}
			ubScale := q1 / (floats.Max(ub) + epsilon)
			ulScale := q2 / (floats.Max(ul) + epsilon)
			values := make([]float64, len(fold))
			for i := range values {
				values[i] = ub[i]*ubScale + ul[i]*ulScale
			}
			foldJ = append(foldJ, stat.Mean(values, nil))
			stds = append(stds, stat.PopStdDev(values, nil))
		}
		s.Values[wi] = stat.Mean(foldJ, nil)
		s.FoldStd[wi] = stds
	}
	return s, nil
}

func sweep(folds [][]*lives.FittedLife, windowSize float64, n int, metric func(*lives.FittedLife, float64) float64) (*Sweep, error) {
	windows, err := span(windowSize, n)
	if err != nil {
		return nil, err
	}
	s := &Sweep{Windows: windows, Values: make(model.Floats, n), FoldStd: make([]model.Floats, n)}
	for wi, m := range windows {
		foldMeans := make([]float64, 0, len(folds))
		stds := make(model.Floats, 0, len(folds))
		for _, fold := range folds {
			vals := make([]float64, 0, len(fold))
			for _, l := range fold {
				vals = append(vals, metric(l, m))
			}
			foldMeans = append(foldMeans, stat.Mean(vals, nil))
			stds = append(stds, stat.PopStdDev(vals, nil))
		}
		s.Values[wi] = stat.Mean(foldMeans, nil)
		s.FoldStd[wi] = stds
	}
	return s, nil
}

func span(windowSize float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 sweep steps, got %d", n)
	}
	w := make([]float64, n)
	floats.Span(w, 0, windowSize)
	return w, nil
}
