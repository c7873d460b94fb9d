// Package metrics defines the events an evaluation run emits and the sink
// interfaces that record them. Sinks like PromSink and InfluxSink live in
// infra/metrics and can be combined with NewMultiSink. The factory helpers
// return a MultiSink automatically when multiple sinks are configured.
package metrics
