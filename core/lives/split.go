package lives

import (
	"fmt"
	"math"
)

// SkipReason explains why a life was left out of a split.
type SkipReason string

const (
	// SkipNaN marks lives whose predicted range contains NaN.
	SkipNaN SkipReason = "nan_prediction"
	// SkipFitError marks lives rejected while fitting.
	SkipFitError SkipReason = "fit_error"
)

// Skipped records one life left out of a split and why.
type Skipped struct {
	Range  Range      `json:"range"`
	Reason SkipReason `json:"reason"`
	Err    error      `json:"-"`
}

// SplitReport holds the outcome of splitting a fold into lives. Ranges
// carries the sample range of each fitted life, parallel to Lives.
type SplitReport struct {
	Lives   []*FittedLife
	Ranges  []Range
	Skipped []Skipped
}

// Split divides a fold of concatenated lives into FittedLife values. Lives
// whose predicted range contains NaN are skipped, as are lives the fitter
// rejects; both end up in the report's skip list instead of failing the
// whole fold.
func Split(yTrue, yPred []float64, opts Options) (SplitReport, error) {
	if len(yTrue) != len(yPred) {
		return SplitReport{}, fmt.Errorf("length mismatch: %d true vs %d predicted", len(yTrue), len(yPred))
	}
	var rep SplitReport
	for _, r := range SplitIndices(yTrue) {
		lt := yTrue[r.Start:r.End]
		lp := yPred[r.Start:r.End]
		if hasNaN(lp) {
			rep.Skipped = append(rep.Skipped, Skipped{Range: r, Reason: SkipNaN})
			continue
		}
		life, err := New(lt, lp, opts)
		if err != nil {
			rep.Skipped = append(rep.Skipped, Skipped{Range: r, Reason: SkipFitError, Err: err})
			continue
		}
		rep.Lives = append(rep.Lives, life)
		rep.Ranges = append(rep.Ranges, r)
	}
	return rep, nil
}

func hasNaN(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) {
			return true
		}
	}
	return false
}
