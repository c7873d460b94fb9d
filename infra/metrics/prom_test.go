package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/phm-tools/rulkit/core/metrics"
)

func TestPromSink_RecordLifeFits(t *testing.T) {
	reg := prometheus.NewRegistry()
	sinkIf, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sink, ok := sinkIf.(*PromSink)
	if !ok {
		t.Fatalf("expected PromSink")
	}
	now := time.Now()
	events := []coremetrics.LifeFitEvent{
		{RunID: "r1", Model: "lstm", Fold: 0, Samples: 5, Time: now},
		{RunID: "r1", Model: "lstm", Fold: 1, Samples: 4, Time: now},
		{RunID: "r1", Model: "lstm", Fold: 1, Samples: 3, Skipped: true, Reason: "nan_prediction", Time: now},
	}
	if err := sink.RecordLifeFits(events); err != nil {
		t.Fatalf("record error: %v", err)
	}

	expected := `
# HELP evaluation_lives_total Total number of degradation lives processed
# TYPE evaluation_lives_total counter
evaluation_lives_total{model="lstm",reason="",skipped="false"} 2
evaluation_lives_total{model="lstm",reason="nan_prediction",skipped="true"} 1
`
	if err := testutil.CollectAndCompare(sink.lives, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
}

func TestPromSink_RecordRunSummary(t *testing.T) {
	reg := prometheus.NewRegistry()
	sinkIf, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sink := sinkIf.(*PromSink)
	ev := coremetrics.RunSummaryEvent{
		RunID:    "r1",
		Model:    "lstm",
		Folds:    2,
		Lives:    4,
		MAE:      1.5,
		RMSE:     2.25,
		Duration: 300 * time.Millisecond,
		Time:     time.Now(),
	}
	if err := sink.RecordRunSummary(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}

	expectedMAE := `
# HELP evaluation_model_mae Mean absolute error of the latest evaluation run
# TYPE evaluation_model_mae gauge
evaluation_model_mae{model="lstm"} 1.5
`
	if err := testutil.CollectAndCompare(sink.mae, strings.NewReader(expectedMAE)); err != nil {
		t.Errorf("unexpected mae metric: %v", err)
	}
	if c := testutil.CollectAndCount(sink.duration); c == 0 {
		t.Errorf("duration not recorded")
	}
}

func TestNewPromSinkTwiceReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("first create: %v", err)
	}
	// A second sink on the same registry must pick up the existing collectors
	// instead of failing registration.
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("second create: %v", err)
	}
}
