package metrics

// MultiSink fanouts recorded events to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordLifeFits forwards the events to all sinks, returning the first error encountered.
func (m *MultiSink) RecordLifeFits(events []LifeFitEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordLifeFits(events); err != nil {
			return err
		}
	}
	return nil
}

// RecordRunSummary forwards run summaries when supported by the sink.
func (m *MultiSink) RecordRunSummary(ev RunSummaryEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(RunSummaryRecorder); ok {
			if err := rec.RecordRunSummary(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordSweepPoints forwards sweep curves when supported by the sink.
func (m *MultiSink) RecordSweepPoints(points []SweepPointEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(SweepRecorder); ok {
			if err := rec.RecordSweepPoints(points); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordBinnedErrors forwards binned error statistics when supported by the sink.
func (m *MultiSink) RecordBinnedErrors(events []BinnedErrorEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(BinnedErrorRecorder); ok {
			if err := rec.RecordBinnedErrors(events); err != nil {
				return err
			}
		}
	}
	return nil
}
