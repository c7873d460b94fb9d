package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/phm-tools/rulkit/core/metrics"
)

// PromSink records evaluation events in Prometheus metrics.
type PromSink struct {
	lives    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	mae      *prometheus.GaugeVec
	rmse     *prometheus.GaugeVec
}

// NewPromSink registers evaluation metrics on the default Prometheus
// registerer. The Prometheus server should be started separately with
// StartPromServer.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	lives := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evaluation_lives_total",
		Help: "Total number of degradation lives processed",
	}, []string{"model", "skipped", "reason"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "evaluation_duration_seconds",
		Help:    "Wall time of evaluation runs",
		Buckets: prometheus.DefBuckets,
	}, []string{"model"})
	mae := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "evaluation_model_mae",
		Help: "Mean absolute error of the latest evaluation run",
	}, []string{"model"})
	rmse := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "evaluation_model_rmse",
		Help: "Root mean squared error of the latest evaluation run",
	}, []string{"model"})

	if err := reg.Register(lives); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			lives = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(mae); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			mae = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(rmse); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			rmse = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{lives: lives, duration: duration, mae: mae, rmse: rmse}, nil
}

// RecordLifeFits increments the life counter for each fit outcome.
func (s *PromSink) RecordLifeFits(events []coremetrics.LifeFitEvent) error {
	for _, ev := range events {
		s.lives.WithLabelValues(ev.Model, strconv.FormatBool(ev.Skipped), ev.Reason).Inc()
	}
	return nil
}

// RecordRunSummary observes the run duration and refreshes the per-model
// error gauges.
func (s *PromSink) RecordRunSummary(ev coremetrics.RunSummaryEvent) error {
	s.duration.WithLabelValues(ev.Model).Observe(ev.Duration.Seconds())
	s.mae.WithLabelValues(ev.Model).Set(ev.MAE)
	s.rmse.WithLabelValues(ev.Model).Set(ev.RMSE)
	return nil
}
