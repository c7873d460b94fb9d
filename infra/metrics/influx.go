package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/phm-tools/rulkit/core/metrics"
	"github.com/phm-tools/rulkit/infra/logger"
)

// InfluxSink writes evaluation events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordLifeFits writes each fit outcome as a life_fit measurement.
func (s *InfluxSink) RecordLifeFits(events []coremetrics.LifeFitEvent) error {
	if len(events) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	points := make([]*write.Point, 0, len(events))
	for _, ev := range events {
		p := write.NewPointWithMeasurement("life_fit").
			AddTag("run_id", ev.RunID).
			AddTag("model", ev.Model).
			AddTag("fold", strconv.Itoa(ev.Fold)).
			AddTag("skipped", strconv.FormatBool(ev.Skipped)).
			AddField("start", ev.Start).
			AddField("end", ev.End).
			AddField("samples", ev.Samples).
			AddField("reason", ev.Reason).
			SetTime(ev.Time)
		points = append(points, p)
	}
	return s.writeAPI.WritePoint(ctx, points...)
}

// RecordRunSummary persists the aggregate outcome of one model's run.
// NaN aggregates are left out, keeping the line protocol valid.
func (s *InfluxSink) RecordRunSummary(ev coremetrics.RunSummaryEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("run_summary").
		AddTag("run_id", ev.RunID).
		AddTag("model", ev.Model).
		AddField("folds", ev.Folds).
		AddField("lives", ev.Lives).
		AddField("skipped", ev.Skipped)
	if !math.IsNaN(ev.MAE) {
		p.AddField("mae", round3(ev.MAE))
	}
	if !math.IsNaN(ev.RMSE) {
		p.AddField("rmse", round3(ev.RMSE))
	}
	p = p.AddField("duration_s", round3(ev.Duration.Seconds())).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordSweepPoints writes a horizon_sweep measurement per window. Windows
// without a defined value are dropped.
func (s *InfluxSink) RecordSweepPoints(points []coremetrics.SweepPointEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	out := make([]*write.Point, 0, len(points))
	for _, ev := range points {
		if math.IsNaN(ev.Value) {
			continue
		}
		p := write.NewPointWithMeasurement("horizon_sweep").
			AddTag("run_id", ev.RunID).
			AddTag("model", ev.Model).
			AddTag("metric", ev.Metric).
			AddField("window", round3(ev.Window)).
			AddField("value", round3(ev.Value)).
			SetTime(ev.Time)
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil
	}
	return s.writeAPI.WritePoint(ctx, out...)
}

// RecordBinnedErrors writes a binned_error measurement per fold and bin.
// Bins whose statistics are undefined are dropped.
func (s *InfluxSink) RecordBinnedErrors(events []coremetrics.BinnedErrorEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	out := make([]*write.Point, 0, len(events))
	for _, ev := range events {
		if math.IsNaN(ev.MeanError) || math.IsNaN(ev.MAE) || math.IsNaN(ev.MSE) {
			continue
		}
		p := write.NewPointWithMeasurement("binned_error").
			AddTag("run_id", ev.RunID).
			AddTag("model", ev.Model).
			AddTag("fold", strconv.Itoa(ev.Fold)).
			AddTag("bin", strconv.Itoa(ev.Bin)).
			AddField("bin_low", round3(ev.BinLow)).
			AddField("bin_high", round3(ev.BinHigh)).
			AddField("mean_error", round3(ev.MeanError)).
			AddField("mae", round3(ev.MAE)).
			AddField("mse", round3(ev.MSE)).
			SetTime(ev.Time)
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil
	}
	return s.writeAPI.WritePoint(ctx, out...)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
