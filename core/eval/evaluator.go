package eval

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/phm-tools/rulkit/core/cv"
	"github.com/phm-tools/rulkit/core/fitting"
	"github.com/phm-tools/rulkit/core/horizon"
	"github.com/phm-tools/rulkit/core/lives"
	"github.com/phm-tools/rulkit/core/logger"
	"github.com/phm-tools/rulkit/core/metrics"
	"github.com/phm-tools/rulkit/core/model"
	"github.com/phm-tools/rulkit/core/regression"
)

// Evaluator turns a ResultSet into a Report.
type Evaluator struct {
	cfg    Config
	fitter fitting.Factory
	sink   metrics.MetricsSink
	log    logger.Logger
}

// New creates an Evaluator. A nil fitter selects the piecewise-linear
// default and a nil sink discards events.
func New(cfg Config, fitter fitting.Factory, sink metrics.MetricsSink, log logger.Logger) (*Evaluator, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("eval config: %w", err)
	}
	if log == nil {
		return nil, errors.New("eval: nil logger provided to New")
	}
	if fitter == nil {
		fitter = fitting.PiecewiseFactory{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Evaluator{cfg: cfg, fitter: fitter, sink: sink, log: log}, nil
}

// Evaluate runs the full evaluation of every model in the set. Bin edges are
// shared across models so their binned errors stay comparable.
func (e *Evaluator) Evaluate(ctx context.Context, rs model.ResultSet) (*Report, error) {
	if rs.NumSamples() == 0 {
		return nil, errors.New("eval: empty result set")
	}
	started := time.Now()
	rep := &Report{RunID: uuid.NewString(), Started: started}

	edges, err := cv.SharedEdges(rs, e.cfg.NBins)
	if err != nil {
		return nil, fmt.Errorf("bin edges: %w", err)
	}
	rep.BinEdges = edges

	foldMetrics, err := regression.CV(rs, e.cfg.ErrorThreshold, e.cfg.WeightClamp)
	if err != nil {
		return nil, fmt.Errorf("regression metrics: %w", err)
	}
	var holdOut map[string]regression.FoldMetrics
	if e.cfg.HoldOutFold != nil {
		holdOut, err = regression.HoldOut(rs, *e.cfg.HoldOutFold, e.cfg.WeightClamp)
		if err != nil {
			return nil, fmt.Errorf("hold-out metrics: %w", err)
		}
	}

	opts := lives.Options{
		Threshold:     e.cfg.RULThreshold,
		NotIncreasing: e.cfg.FitNotIncreasing,
		Fitter:        e.fitter,
		WeightClamp:   e.cfg.WeightClamp,
	}
	for _, name := range rs.Models() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		mr, err := e.evaluateModel(rep.RunID, name, rs[name], edges, opts)
		if err != nil {
			return nil, err
		}
		mr.FoldMetrics = foldMetrics[name]
		mr.Regression = regression.Summarize(mr.FoldMetrics)
		mr.MAE = mr.Regression.MAE.Mean
		mr.RMSE = model.Float(math.Sqrt(float64(mr.Regression.MSE.Mean)))
		if holdOut != nil {
			ho := holdOut[name]
			mr.HoldOut = &ho
		}
		rep.Models = append(rep.Models, mr)
	}
	rep.Duration = time.Since(started)

	e.emitSummaries(rep)
	e.log.Infof("evaluated %d models in %s", len(rep.Models), rep.Duration)
	return rep, nil
}

func (e *Evaluator) evaluateModel(runID, name string, folds []model.FoldResult, edges []float64, opts lives.Options) (*ModelReport, error) {
	mr := &ModelReport{Name: name, Folds: len(folds)}
	perFold := make([][]*lives.FittedLife, len(folds))
	var fits []metrics.LifeFitEvent
	now := time.Now()
	for i, f := range folds {
		sr, err := lives.Split(f.True, f.Predicted, opts)
		if err != nil {
			return nil, fmt.Errorf("model %s fold %d: %w", name, i, err)
		}
		perFold[i] = sr.Lives
		mr.Lives += len(sr.Lives)
		for li, life := range sr.Lives {
			r := sr.Ranges[li]
			fits = append(fits, metrics.LifeFitEvent{
				RunID:   runID,
				Model:   name,
				Fold:    i,
				Start:   r.Start,
				End:     r.End,
				Samples: len(life.YTrue),
				Time:    now,
			})
			if !e.cfg.SkipCurves {
				mr.Curves = append(mr.Curves, sampleCurves(i, li, r, life))
			}
		}
		for _, sk := range sr.Skipped {
			mr.Skipped = append(mr.Skipped, SkipRecord{
				Fold:   i,
				Start:  sk.Range.Start,
				End:    sk.Range.End,
				Reason: string(sk.Reason),
			})
			fits = append(fits, metrics.LifeFitEvent{
				RunID:   runID,
				Model:   name,
				Fold:    i,
				Start:   sk.Range.Start,
				End:     sk.Range.End,
				Samples: sk.Range.Len(),
				Skipped: true,
				Reason:  string(sk.Reason),
				Time:    now,
			})
			if sk.Err != nil {
				e.log.Warnf("model %s fold %d: life %d:%d skipped: %v", name, i, sk.Range.Start, sk.Range.End, sk.Err)
			}
		}
	}
	if err := e.sink.RecordLifeFits(fits); err != nil {
		e.log.Errorf("metrics error: %v", err)
	}

	cvRes, err := cv.New(folds, e.cfg.NBins, edges)
	if err != nil {
		return nil, fmt.Errorf("model %s: bin errors: %w", name, err)
	}
	mr.CV = cvRes

	ul, err := horizon.UnexploitedLifetime(perFold, e.cfg.WindowSize, e.cfg.Steps)
	if err != nil {
		return nil, fmt.Errorf("model %s: unexploited lifetime sweep: %w", name, err)
	}
	ub, err := horizon.UnexpectedBreaks(perFold, e.cfg.WindowSize, e.cfg.Steps)
	if err != nil {
		return nil, fmt.Errorf("model %s: unexpected breaks sweep: %w", name, err)
	}
	j, err := horizon.MetricJ(perFold, e.cfg.WindowSize, e.cfg.Steps, e.cfg.Q1, e.cfg.Q2, e.cfg.Epsilon)
	if err != nil {
		return nil, fmt.Errorf("model %s: metric J sweep: %w", name, err)
	}
	mr.Sweeps = Sweeps{UnexploitedLifetime: ul, UnexpectedBreaks: ub, MetricJ: j}

	e.emitModelEvents(runID, mr)
	return mr, nil
}

func sampleCurves(fold, life int, r lives.Range, l *lives.FittedLife) LifeCurve {
	c := LifeCurve{Fold: fold, Life: life, Start: r.Start, End: r.End}
	c.Points = make([]CurvePoint, len(l.Time))
	for i, t := range l.Time {
		c.Points[i] = CurvePoint{
			Time:      t,
			True:      model.Float(l.YTrue[i]),
			TrueFit:   model.Float(l.TrueCurve.At(t)),
			Predicted: model.Float(l.YPred[i]),
			PredFit:   model.Float(l.PredCurve.At(t)),
		}
	}
	return c
}

// emitModelEvents pushes the sweep and binned-error products of one model to
// the optional recorder interfaces. Sink failures are logged, never fatal.
func (e *Evaluator) emitModelEvents(runID string, mr *ModelReport) {
	now := time.Now()
	if rec, ok := e.sink.(metrics.SweepRecorder); ok {
		var points []metrics.SweepPointEvent
		sweeps := []struct {
			metric string
			sweep  *horizon.Sweep
		}{
			{"unexploited_lifetime", mr.Sweeps.UnexploitedLifetime},
			{"unexpected_breaks", mr.Sweeps.UnexpectedBreaks},
			{"metric_j", mr.Sweeps.MetricJ},
		}
		for _, sw := range sweeps {
			for i, w := range sw.sweep.Windows {
				points = append(points, metrics.SweepPointEvent{
					RunID:  runID,
					Model:  mr.Name,
					Metric: sw.metric,
					Window: w,
					Value:  sw.sweep.Values[i],
					Time:   now,
				})
			}
		}
		if err := rec.RecordSweepPoints(points); err != nil {
			e.log.Errorf("metrics error: %v", err)
		}
	}
	if rec, ok := e.sink.(metrics.BinnedErrorRecorder); ok {
		var events []metrics.BinnedErrorEvent
		for fold := 0; fold < mr.CV.NFolds; fold++ {
			for bin := 0; bin < mr.CV.NBins; bin++ {
				events = append(events, metrics.BinnedErrorEvent{
					RunID:     runID,
					Model:     mr.Name,
					Fold:      fold,
					Bin:       bin,
					BinLow:    mr.CV.BinEdges[bin],
					BinHigh:   mr.CV.BinEdges[bin+1],
					MeanError: mr.CV.MeanError[fold][bin],
					MAE:       mr.CV.MAE[fold][bin],
					MSE:       mr.CV.MSE[fold][bin],
					Time:      now,
				})
			}
		}
		if err := rec.RecordBinnedErrors(events); err != nil {
			e.log.Errorf("metrics error: %v", err)
		}
	}
}

func (e *Evaluator) emitSummaries(rep *Report) {
	rec, ok := e.sink.(metrics.RunSummaryRecorder)
	if !ok {
		return
	}
	for _, m := range rep.Models {
		ev := metrics.RunSummaryEvent{
			RunID:    rep.RunID,
			Model:    m.Name,
			Folds:    m.Folds,
			Lives:    m.Lives,
			Skipped:  len(m.Skipped),
			MAE:      float64(m.MAE),
			RMSE:     float64(m.RMSE),
			Duration: rep.Duration,
			Time:     rep.Started,
		}
		if err := rec.RecordRunSummary(ev); err != nil {
			e.log.Errorf("metrics error: %v", err)
		}
	}
}
