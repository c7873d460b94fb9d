package scenarios

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/phm-tools/rulkit/core/eval"
	"github.com/phm-tools/rulkit/infra/logger"
	"github.com/phm-tools/rulkit/infra/metrics"
)

func RunScenario(t *testing.T, sc *Scenario) {
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}

	e, err := eval.New(sc.Config.Eval(), nil, sink, logger.NopLogger{})
	if err != nil {
		t.Fatalf("evaluator: %v", err)
	}
	rep, err := e.Evaluate(context.Background(), sc.ResultSet())
	if err != nil {
		t.Fatalf("scenario %s: evaluate: %v", sc.Name, err)
	}

	byName := make(map[string]*eval.ModelReport, len(rep.Models))
	for _, m := range rep.Models {
		byName[m.Name] = m
	}
	for name, exp := range sc.Expected.Models {
		m, ok := byName[name]
		if !ok {
			t.Errorf("scenario %s: model %s missing from report", sc.Name, name)
			continue
		}
		if m.Lives != exp.Lives {
			t.Errorf("scenario %s: model %s expected %d lives, got %d", sc.Name, name, exp.Lives, m.Lives)
		}
		if len(m.Skipped) != exp.Skipped {
			t.Errorf("scenario %s: model %s expected %d skipped, got %d", sc.Name, name, exp.Skipped, len(m.Skipped))
		}
		if exp.MaxMAE != nil && float64(m.MAE) > *exp.MaxMAE {
			t.Errorf("scenario %s: model %s MAE %.4f above bound %.4f", sc.Name, name, float64(m.MAE), *exp.MaxMAE)
		}
		if exp.MinMAE != nil && float64(m.MAE) < *exp.MinMAE {
			t.Errorf("scenario %s: model %s MAE %.4f below bound %.4f", sc.Name, name, float64(m.MAE), *exp.MinMAE)
		}
	}
}
