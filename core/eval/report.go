package eval

import (
	"time"

	"github.com/phm-tools/rulkit/core/cv"
	"github.com/phm-tools/rulkit/core/horizon"
	"github.com/phm-tools/rulkit/core/model"
	"github.com/phm-tools/rulkit/core/regression"
	"github.com/phm-tools/rulkit/core/report"
)

// Report is the artifact of one evaluation run, serializable as a single
// JSON document.
type Report struct {
	RunID    string         `json:"run_id"`
	Started  time.Time      `json:"started"`
	Duration time.Duration  `json:"duration"`
	BinEdges []float64      `json:"bin_edges"`
	Models   []*ModelReport `json:"models"`
}

// ModelReport collects every evaluation product of a single model.
type ModelReport struct {
	Name    string       `json:"name"`
	Folds   int          `json:"folds"`
	Lives   int          `json:"lives"`
	Skipped []SkipRecord `json:"skipped,omitempty"`
	// MAE and RMSE aggregate the unweighted fold metrics, restricted by the
	// configured error threshold.
	MAE  model.Float `json:"mae"`
	RMSE model.Float `json:"rmse"`

	CV          *cv.Results              `json:"cv"`
	Sweeps      Sweeps                   `json:"sweeps"`
	FoldMetrics []regression.FoldMetrics `json:"fold_metrics"`
	Regression  regression.Summary       `json:"regression"`
	HoldOut     *regression.FoldMetrics  `json:"hold_out,omitempty"`
	Curves      []LifeCurve              `json:"curves,omitempty"`
}

// SkipRecord is one life excluded from the evaluation of a model.
type SkipRecord struct {
	Fold   int    `json:"fold"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Reason string `json:"reason"`
}

// Sweeps groups the maintenance horizon sweeps of a model.
type Sweeps struct {
	UnexploitedLifetime *horizon.Sweep `json:"unexploited_lifetime"`
	UnexpectedBreaks    *horizon.Sweep `json:"unexpected_breaks"`
	MetricJ             *horizon.Sweep `json:"metric_j"`
}

// LifeCurve is one life's trajectory sampled on its time axis, with the raw
// observations next to the fitted curve values.
type LifeCurve struct {
	Fold   int          `json:"fold"`
	Life   int          `json:"life"`
	Start  int          `json:"start"`
	End    int          `json:"end"`
	Points []CurvePoint `json:"points"`
}

// CurvePoint is one sample of a LifeCurve.
type CurvePoint struct {
	Time      float64     `json:"time"`
	True      model.Float `json:"true"`
	TrueFit   model.Float `json:"true_fit"`
	Predicted model.Float `json:"predicted"`
	PredFit   model.Float `json:"pred_fit"`
}

// Records flattens the report into run-summary rows for the report store.
func (r *Report) Records() []report.Record {
	out := make([]report.Record, 0, len(r.Models))
	for _, m := range r.Models {
		out = append(out, report.Record{
			RunID:   r.RunID,
			Model:   m.Name,
			Started: r.Started,
			Folds:   m.Folds,
			Lives:   m.Lives,
			Skipped: len(m.Skipped),
			MAE:     float64(m.MAE),
			RMSE:    float64(m.RMSE),
		})
	}
	return out
}
