package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/phm-tools/rulkit/config"
	"github.com/phm-tools/rulkit/core/eval"
	coremetrics "github.com/phm-tools/rulkit/core/metrics"
	"github.com/phm-tools/rulkit/core/report"
	"github.com/phm-tools/rulkit/infra/logger"
	"github.com/phm-tools/rulkit/infra/metrics"
	"github.com/phm-tools/rulkit/infra/results"
	_ "github.com/phm-tools/rulkit/infra/store" // registers store backends
	"github.com/phm-tools/rulkit/pkg/export"
)

const defaultPromAddr = ":2112"

// Service wires the evaluator, metric sinks and report store from the
// configuration.
type Service struct {
	Evaluator *eval.Evaluator
	Store     report.Store
	log       logger.Logger
	promAddr  string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	st, err := report.NewStore(cfg.Store.Module())
	if err != nil {
		return nil, fmt.Errorf("report store: %w", err)
	}
	ev, err := eval.New(cfg.Evaluation, cfg.Fitting.Factory(), sink, logg)
	if err != nil {
		return nil, err
	}
	return &Service{Evaluator: ev, Store: st, log: logg, promAddr: promAddr(cfg)}, nil
}

// promAddr resolves the /metrics listen address, empty when no prometheus
// sink is configured.
func promAddr(cfg *config.Config) string {
	for _, s := range cfg.Metrics.Sinks {
		if s.Type != "prometheus" {
			continue
		}
		p, _ := s.Conf["port"].(string)
		if p == "" {
			return defaultPromAddr
		}
		if !strings.Contains(p, ":") {
			p = ":" + p
		}
		return p
	}
	return ""
}

// RunOptions control a single evaluation run.
type RunOptions struct {
	// ResultsPath locates the JSON results file to evaluate.
	ResultsPath string
	// OutDir receives the report artifacts; empty disables the export.
	OutDir string
	// CSV also writes the CSV tables next to the report JSON.
	CSV bool
}

// Run evaluates a results file, exports the report and stores the run
// summaries. When a prometheus sink is configured the /metrics server runs
// for the duration of the context.
func (s *Service) Run(ctx context.Context, opts RunOptions) (*eval.Report, error) {
	if s.promAddr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	rs, err := results.Load(opts.ResultsPath)
	if err != nil {
		return nil, err
	}
	rep, err := s.Evaluator.Evaluate(ctx, rs)
	if err != nil {
		return nil, err
	}
	if opts.OutDir != "" {
		if err := export.WriteDir(rep, opts.OutDir, opts.CSV); err != nil {
			return nil, err
		}
		s.log.Infof("report %s written to %s", rep.RunID, opts.OutDir)
	}
	for _, rec := range rep.Records() {
		if err := s.Store.Add(rec); err != nil {
			return nil, fmt.Errorf("store record: %w", err)
		}
	}
	return rep, nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if c, ok := s.Store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
