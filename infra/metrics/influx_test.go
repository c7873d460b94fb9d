package metrics

import (
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/phm-tools/rulkit/core/metrics"
)

func captureServer(t *testing.T, body *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		*body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestInfluxSink_RecordLifeFits(t *testing.T) {
	var body string
	srv := captureServer(t, &body)

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	now := time.Now()
	events := []coremetrics.LifeFitEvent{
		{RunID: "r1", Model: "lstm", Fold: 0, Start: 1, End: 6, Samples: 5, Time: now},
		{RunID: "r1", Model: "lstm", Fold: 1, Start: 1, End: 4, Samples: 3, Skipped: true, Reason: "nan_prediction", Time: now},
	}
	if err := sink.RecordLifeFits(events); err != nil {
		t.Fatalf("record error: %v", err)
	}
	p1 := write.NewPointWithMeasurement("life_fit").
		AddTag("run_id", "r1").
		AddTag("model", "lstm").
		AddTag("fold", "0").
		AddTag("skipped", "false").
		AddField("start", 1).
		AddField("end", 6).
		AddField("samples", 5).
		AddField("reason", "").
		SetTime(now)
	p2 := write.NewPointWithMeasurement("life_fit").
		AddTag("run_id", "r1").
		AddTag("model", "lstm").
		AddTag("fold", "1").
		AddTag("skipped", "true").
		AddField("start", 1).
		AddField("end", 4).
		AddField("samples", 3).
		AddField("reason", "nan_prediction").
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p1, time.Nanosecond)) + "\n" +
		strings.TrimSpace(write.PointToLineProtocol(p2, time.Nanosecond))
	if strings.TrimSpace(body) != expected {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestInfluxSink_RecordRunSummaryDropsNaN(t *testing.T) {
	var body string
	srv := captureServer(t, &body)

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	now := time.Now()
	ev := coremetrics.RunSummaryEvent{
		RunID:    "r1",
		Model:    "lstm",
		Folds:    2,
		Lives:    4,
		Skipped:  1,
		MAE:      math.NaN(),
		RMSE:     2.5,
		Duration: 1500 * time.Millisecond,
		Time:     now,
	}
	if err := sink.RecordRunSummary(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}
	p := write.NewPointWithMeasurement("run_summary").
		AddTag("run_id", "r1").
		AddTag("model", "lstm").
		AddField("folds", 2).
		AddField("lives", 4).
		AddField("skipped", 1).
		AddField("rmse", 2.5).
		AddField("duration_s", 1.5).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if strings.TrimSpace(body) != expected {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestInfluxSink_RecordSweepPointsSkipsNaN(t *testing.T) {
	var body string
	srv := captureServer(t, &body)

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	now := time.Now()
	points := []coremetrics.SweepPointEvent{
		{RunID: "r1", Model: "lstm", Metric: "metric_j", Window: 0, Value: 1, Time: now},
		{RunID: "r1", Model: "lstm", Metric: "metric_j", Window: 1, Value: math.NaN(), Time: now},
		{RunID: "r1", Model: "lstm", Metric: "metric_j", Window: 2, Value: 0.75, Time: now},
	}
	if err := sink.RecordSweepPoints(points); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if n := len(strings.Split(strings.TrimSpace(body), "\n")); n != 2 {
		t.Fatalf("expected 2 lines, got %d: %s", n, body)
	}
	if strings.Contains(body, "window=1") {
		t.Errorf("NaN point should have been dropped: %s", body)
	}
}

func TestInfluxSink_RecordBinnedErrors(t *testing.T) {
	var body string
	srv := captureServer(t, &body)

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	now := time.Now()
	events := []coremetrics.BinnedErrorEvent{{
		RunID:     "r1",
		Model:     "lstm",
		Fold:      0,
		Bin:       1,
		BinLow:    2.5,
		BinHigh:   5,
		MeanError: 0.25,
		MAE:       0.5,
		MSE:       0.75,
		Time:      now,
	}}
	if err := sink.RecordBinnedErrors(events); err != nil {
		t.Fatalf("record error: %v", err)
	}
	p := write.NewPointWithMeasurement("binned_error").
		AddTag("run_id", "r1").
		AddTag("model", "lstm").
		AddTag("fold", "0").
		AddTag("bin", "1").
		AddField("bin_low", 2.5).
		AddField("bin_high", 5.0).
		AddField("mean_error", 0.25).
		AddField("mae", 0.5).
		AddField("mse", 0.75).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if strings.TrimSpace(body) != expected {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(srv.URL+"/api/v2/write", "tok", "org", "bucket")
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}
