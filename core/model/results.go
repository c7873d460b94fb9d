package model

import "sort"

// FoldResult holds one cross-validation fold of a model: the true remaining
// useful life and the predicted one, index-aligned. Within a fold several
// run-to-failure lives may be concatenated back to back. The slices are
// Floats so that JSON null round-trips as NaN.
type FoldResult struct {
	True      Floats `json:"true"`
	Predicted Floats `json:"predicted"`
}

// ResultSet maps a model name to its per-fold results.
type ResultSet map[string][]FoldResult

// Models returns the model names in sorted order so that iteration over the
// set is deterministic.
func (rs ResultSet) Models() []string {
	names := make([]string, 0, len(rs))
	for name := range rs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Transform applies fn to every true and predicted value in the set, in
// place. Useful to undo target scaling before evaluation.
func (rs ResultSet) Transform(fn func(float64) float64) {
	for _, folds := range rs {
		for _, fold := range folds {
			for i, v := range fold.True {
				fold.True[i] = fn(v)
			}
			for i, v := range fold.Predicted {
				fold.Predicted[i] = fn(v)
			}
		}
	}
}

// MaxTrue returns the largest true value across all models and folds, or 0
// when the set holds no samples.
func (rs ResultSet) MaxTrue() float64 {
	max := 0.0
	for _, folds := range rs {
		for _, fold := range folds {
			for _, v := range fold.True {
				if v > max {
					max = v
				}
			}
		}
	}
	return max
}

// NumSamples returns the total number of true samples across all models and
// folds.
func (rs ResultSet) NumSamples() int {
	n := 0
	for _, folds := range rs {
		for _, fold := range folds {
			n += len(fold.True)
		}
	}
	return n
}
