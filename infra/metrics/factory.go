package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/phm-tools/rulkit/core/factory"
	coremetrics "github.com/phm-tools/rulkit/core/metrics"
)

// The builtin sink types selectable from configuration.
func init() {
	_ = coremetrics.RegisterMetricsSink("nop", nopFactory)
	_ = coremetrics.RegisterMetricsSink("prometheus", promFactory)
	_ = coremetrics.RegisterMetricsSink("influx", influxFactory)
}

func nopFactory(map[string]any) (coremetrics.MetricsSink, error) {
	return coremetrics.NopSink{}, nil
}

func promFactory(map[string]any) (coremetrics.MetricsSink, error) {
	// The conf block's port belongs to the /metrics server the app starts,
	// not to the sink.
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

func influxFactory(conf map[string]any) (coremetrics.MetricsSink, error) {
	var c struct {
		URL    string `json:"url"`
		Token  string `json:"token"`
		Org    string `json:"org"`
		Bucket string `json:"bucket"`
	}
	if err := factory.Decode(conf, &c); err != nil {
		return nil, err
	}
	return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
}
