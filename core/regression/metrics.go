package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/phm-tools/rulkit/core/model"
)

// FoldMetrics holds the error metrics of one fold. Weighted variants are
// weighted averages under the relative scheme, so samples mispredicted near
// the end of life count more.
type FoldMetrics struct {
	MAEWeighted model.Float `json:"mae_weighted"`
	MAE         model.Float `json:"mae"`
	MSEWeighted model.Float `json:"mse_weighted"`
	MSE         model.Float `json:"mse"`
}

// MetricSummary pairs a mean with the sample standard deviation across folds.
type MetricSummary struct {
	Mean model.Float `json:"mean"`
	Std  model.Float `json:"std"`
}

// String renders the summary rounded to two decimals.
func (s MetricSummary) String() string {
	return fmt.Sprintf("%.2f ± %.2f", s.Mean, s.Std)
}

// Summary aggregates each metric of a model across its folds.
type Summary struct {
	MAEWeighted MetricSummary `json:"mae_weighted"`
	MAE         MetricSummary `json:"mae"`
	MSEWeighted MetricSummary `json:"mse_weighted"`
	MSE         MetricSummary `json:"mse"`
}

// CV computes per-fold regression metrics for every model, restricted to
// samples whose true RUL is at or below threshold. Pass math.Inf(1) to keep
// every sample. clamp bounds true values from below in the relative weights;
// 0 selects the default. A fold left without samples yields NaN metrics.
func CV(rs model.ResultSet, threshold, clamp float64) (map[string][]FoldMetrics, error) {
	out := make(map[string][]FoldMetrics, len(rs))
	for _, name := range rs.Models() {
		folds := rs[name]
		fm := make([]FoldMetrics, 0, len(folds))
		for i, f := range folds {
			if len(f.True) != len(f.Predicted) {
				return nil, fmt.Errorf("model %s fold %d: length mismatch: %d true vs %d predicted", name, i, len(f.True), len(f.Predicted))
			}
			var yt, yp []float64
			for k, v := range f.True {
				if v <= threshold {
					yt = append(yt, v)
					yp = append(yp, f.Predicted[k])
				}
			}
			fm = append(fm, metricsFor(yt, yp, clamp))
		}
		out[name] = fm
	}
	return out, nil
}

// HoldOut computes the regression metrics of a single fold index across all
// models, without threshold filtering.
func HoldOut(rs model.ResultSet, fold int, clamp float64) (map[string]FoldMetrics, error) {
	out := make(map[string]FoldMetrics, len(rs))
	for _, name := range rs.Models() {
		folds := rs[name]
		if fold < 0 || fold >= len(folds) {
			return nil, fmt.Errorf("model %s has no fold %d", name, fold)
		}
		f := folds[fold]
		if len(f.True) != len(f.Predicted) {
			return nil, fmt.Errorf("model %s fold %d: length mismatch: %d true vs %d predicted", name, fold, len(f.True), len(f.Predicted))
		}
		out[name] = metricsFor(f.True, f.Predicted, clamp)
	}
	return out, nil
}

func metricsFor(yTrue, yPred []float64, clamp float64) FoldMetrics {
	sw := model.SampleWeights(model.WeightRelative, clamp, yTrue, yPred)
	absErr := make([]float64, len(yTrue))
	sqErr := make([]float64, len(yTrue))
	for i := range yTrue {
		e := yTrue[i] - yPred[i]
		absErr[i] = math.Abs(e)
		sqErr[i] = e * e
	}
	return FoldMetrics{
		MAEWeighted: model.Float(stat.Mean(absErr, sw)),
		MAE:         model.Float(stat.Mean(absErr, nil)),
		MSEWeighted: model.Float(stat.Mean(sqErr, sw)),
		MSE:         model.Float(stat.Mean(sqErr, nil)),
	}
}

// Summarize reduces per-fold metrics to per-metric mean and sample standard
// deviation. A single fold yields NaN deviations.
func Summarize(folds []FoldMetrics) Summary {
	col := func(get func(FoldMetrics) model.Float) MetricSummary {
		vals := make([]float64, len(folds))
		for i, f := range folds {
			vals[i] = float64(get(f))
		}
		return MetricSummary{Mean: model.Float(stat.Mean(vals, nil)), Std: model.Float(stat.StdDev(vals, nil))}
	}
	return Summary{
		MAEWeighted: col(func(f FoldMetrics) model.Float { return f.MAEWeighted }),
		MAE:         col(func(f FoldMetrics) model.Float { return f.MAE }),
		MSEWeighted: col(func(f FoldMetrics) model.Float { return f.MSEWeighted }),
		MSE:         col(func(f FoldMetrics) model.Float { return f.MSE }),
	}
}

// SummarizeAll summarizes the per-fold metrics of every model.
func SummarizeAll(byModel map[string][]FoldMetrics) map[string]Summary {
	out := make(map[string]Summary, len(byModel))
	for name, folds := range byModel {
		out[name] = Summarize(folds)
	}
	return out
}
