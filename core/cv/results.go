package cv

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/phm-tools/rulkit/core/model"
)

// Results aggregates the prediction errors of one model across
// cross-validation folds, stratified by true-RUL magnitude bins.
type Results struct {
	NFolds   int       `json:"n_folds"`
	NBins    int       `json:"n_bins"`
	BinEdges []float64 `json:"bin_edges"`
	// MeanError, MAE and MSE are fold-by-bin matrices of the signed mean
	// error, mean absolute error and mean squared error. Bins a fold never
	// populated stay zero.
	MeanError []model.Floats `json:"mean_error"`
	MAE       []model.Floats `json:"mae"`
	MSE       []model.Floats `json:"mse"`
	// Errors retains the raw signed errors (true - predicted) of every
	// populated bin, fold-major then bin-minor.
	Errors []model.Floats `json:"errors"`
}

// New bins the errors of one model's folds. When edges is nil, nbins equal
// bins are laid from 0 to the largest true value across the folds; otherwise
// the given edges are used verbatim and nbins is ignored. Both edges of a
// bin are inclusive, so a sample sitting exactly on an interior edge counts
// in the two bins sharing it.
func New(folds []model.FoldResult, nbins int, edges []float64) (*Results, error) {
	for i, f := range folds {
		if len(f.True) != len(f.Predicted) {
			return nil, fmt.Errorf("fold %d: length mismatch: %d true vs %d predicted", i, len(f.True), len(f.Predicted))
		}
	}
	if edges == nil {
		if nbins < 1 {
			return nil, fmt.Errorf("nbins must be >= 1, got %d", nbins)
		}
		max, ok := maxTrue(folds)
		if !ok {
			return nil, errors.New("cannot derive bin edges from empty folds")
		}
		edges = make([]float64, nbins+1)
		floats.Span(edges, 0, max)
	} else if len(edges) < 2 {
		return nil, fmt.Errorf("need at least 2 bin edges, got %d", len(edges))
	}
	r := &Results{
		NFolds:   len(folds),
		NBins:    len(edges) - 1,
		BinEdges: edges,
	}
	r.MeanError = zeros(r.NFolds, r.NBins)
	r.MAE = zeros(r.NFolds, r.NBins)
	r.MSE = zeros(r.NFolds, r.NBins)
	for i, f := range folds {
		r.addFold(i, f)
	}
	return r, nil
}

func (r *Results) addFold(fold int, f model.FoldResult) {
	for j := 0; j < r.NBins; j++ {
		lo, hi := r.BinEdges[j], r.BinEdges[j+1]
		var errs []float64
		for i, yt := range f.True {
			if yt >= lo && yt <= hi {
				errs = append(errs, yt-f.Predicted[i])
			}
		}
		if len(errs) == 0 {
			continue
		}
		r.MeanError[fold][j] = stat.Mean(errs, nil)
		r.MAE[fold][j] = meanAbs(errs)
		r.MSE[fold][j] = meanSq(errs)
		r.Errors = append(r.Errors, model.Floats(errs))
	}
}

func maxTrue(folds []model.FoldResult) (float64, bool) {
	max, any := 0.0, false
	for _, f := range folds {
		for _, v := range f.True {
			if !any || v > max {
				max, any = v, true
			}
		}
	}
	return max, any
}

func zeros(rows, cols int) []model.Floats {
	m := make([]model.Floats, rows)
	for i := range m {
		m[i] = make(model.Floats, cols)
	}
	return m
}

func meanAbs(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += math.Abs(x)
	}
	return sum / float64(len(v))
}

func meanSq(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return sum / float64(len(v))
}

// SharedEdges derives bin edges every model of the set can be binned
// against: nbins equal bins from 0 to the largest true value in the set.
func SharedEdges(rs model.ResultSet, nbins int) ([]float64, error) {
	if nbins < 1 {
		return nil, fmt.Errorf("nbins must be >= 1, got %d", nbins)
	}
	if rs.NumSamples() == 0 {
		return nil, errors.New("cannot derive bin edges from an empty result set")
	}
	edges := make([]float64, nbins+1)
	floats.Span(edges, 0, rs.MaxTrue())
	return edges, nil
}

// PerModel bins every model of the set against shared edges, completing the
// two-phase protocol started by SharedEdges. The returned map is keyed by
// model name.
func PerModel(rs model.ResultSet, nbins int) ([]float64, map[string]*Results, error) {
	edges, err := SharedEdges(rs, nbins)
	if err != nil {
		return nil, nil, err
	}
	out := make(map[string]*Results, len(rs))
	for _, name := range rs.Models() {
		r, err := New(rs[name], nbins, edges)
		if err != nil {
			return nil, nil, fmt.Errorf("model %s: %w", name, err)
		}
		out[name] = r
	}
	return edges, out, nil
}
