package metrics

import "time"

// LifeFitEvent represents a per-life fitting outcome to be recorded.
type LifeFitEvent struct {
	RunID   string
	Model   string
	Fold    int
	Start   int
	End     int
	Samples int
	Skipped bool
	Reason  string
	Time    time.Time
}

// MetricsSink records life fitting outcomes for observability purposes.
type MetricsSink interface {
	RecordLifeFits(events []LifeFitEvent) error
}

// RunSummaryEvent captures the aggregate outcome of one evaluation run
// for a single model.
type RunSummaryEvent struct {
	RunID    string
	Model    string
	Folds    int
	Lives    int
	Skipped  int
	MAE      float64
	RMSE     float64
	Duration time.Duration
	Time     time.Time
}

// RunSummaryRecorder records per-model run summaries.
type RunSummaryRecorder interface {
	RecordRunSummary(ev RunSummaryEvent) error
}

// SweepPointEvent is one point of a maintenance window sweep.
type SweepPointEvent struct {
	RunID  string
	Model  string
	Metric string
	Window float64
	Value  float64
	Time   time.Time
}

// SweepRecorder records maintenance window sweep curves.
type SweepRecorder interface {
	RecordSweepPoints(points []SweepPointEvent) error
}

// BinnedErrorEvent carries the error statistics of one histogram bin
// of one cross-validation fold.
type BinnedErrorEvent struct {
	RunID     string
	Model     string
	Fold      int
	Bin       int
	BinLow    float64
	BinHigh   float64
	MeanError float64
	MAE       float64
	MSE       float64
	Time      time.Time
}

// BinnedErrorRecorder records binned error statistics.
type BinnedErrorRecorder interface {
	RecordBinnedErrors(events []BinnedErrorEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordLifeFits([]LifeFitEvent) error { return nil }

func (NopSink) RecordRunSummary(RunSummaryEvent) error      { return nil }
func (NopSink) RecordSweepPoints([]SweepPointEvent) error   { return nil }
func (NopSink) RecordBinnedErrors([]BinnedErrorEvent) error { return nil }
