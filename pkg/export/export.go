// Package export writes evaluation reports to disk as JSON and CSV tables.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/phm-tools/rulkit/core/eval"
	"github.com/phm-tools/rulkit/core/horizon"
)

// Filenames written by WriteDir.
const (
	ReportFile      = "report.json"
	SummariesFile   = "summaries.csv"
	SweepsFile      = "sweeps.csv"
	BinnedFile      = "binned_errors.csv"
	FoldMetricsFile = "fold_metrics.csv"
	CurvesFile      = "curves.csv"
)

// WriteJSON writes the full evaluation report to w in JSON format. NaN values
// become JSON null and read back as NaN.
func WriteJSON(w io.Writer, rep *eval.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// WriteDir writes report.json into dir, plus the CSV tables when csvTables is
// set. The directory is created if needed.
func WriteDir(rep *eval.Report, dir string, csvTables bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := writeFile(filepath.Join(dir, ReportFile), rep, WriteJSON); err != nil {
		return err
	}
	if !csvTables {
		return nil
	}
	tables := []struct {
		name  string
		write func(io.Writer, *eval.Report) error
	}{
		{SummariesFile, WriteSummariesCSV},
		{SweepsFile, WriteSweepsCSV},
		{BinnedFile, WriteBinnedErrorsCSV},
		{FoldMetricsFile, WriteFoldMetricsCSV},
		{CurvesFile, WriteCurvesCSV},
	}
	for _, tb := range tables {
		if err := writeFile(filepath.Join(dir, tb.name), rep, tb.write); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, rep *eval.Report, write func(io.Writer, *eval.Report) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, rep); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// WriteSummariesCSV writes one row per model with its run aggregates.
func WriteSummariesCSV(w io.Writer, rep *eval.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"run_id", "model", "folds", "lives", "skipped", "mae", "rmse"}); err != nil {
		return err
	}
	for _, m := range rep.Models {
		rec := []string{
			rep.RunID,
			m.Name,
			strconv.Itoa(m.Folds),
			strconv.Itoa(m.Lives),
			strconv.Itoa(len(m.Skipped)),
			ff(float64(m.MAE)),
			ff(float64(m.RMSE)),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSweepsCSV writes the horizon sweeps of every model, one row per
// metric and window.
func WriteSweepsCSV(w io.Writer, rep *eval.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"model", "metric", "window", "value"}); err != nil {
		return err
	}
	for _, m := range rep.Models {
		sweeps := []struct {
			metric string
			sweep  *horizon.Sweep
		}{
			{"unexploited_lifetime", m.Sweeps.UnexploitedLifetime},
			{"unexpected_breaks", m.Sweeps.UnexpectedBreaks},
			{"metric_j", m.Sweeps.MetricJ},
		}
		for _, sw := range sweeps {
			if sw.sweep == nil {
				continue
			}
			for i, window := range sw.sweep.Windows {
				rec := []string{m.Name, sw.metric, ff(window), ff(sw.sweep.Values[i])}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteBinnedErrorsCSV writes the fold-by-bin error statistics of every model.
func WriteBinnedErrorsCSV(w io.Writer, rep *eval.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"model", "fold", "bin", "bin_low", "bin_high", "mean_error", "mae", "mse"}); err != nil {
		return err
	}
	for _, m := range rep.Models {
		if m.CV == nil {
			continue
		}
		for fold := 0; fold < m.CV.NFolds; fold++ {
			for bin := 0; bin < m.CV.NBins; bin++ {
				rec := []string{
					m.Name,
					strconv.Itoa(fold),
					strconv.Itoa(bin),
					ff(m.CV.BinEdges[bin]),
					ff(m.CV.BinEdges[bin+1]),
					ff(m.CV.MeanError[fold][bin]),
					ff(m.CV.MAE[fold][bin]),
					ff(m.CV.MSE[fold][bin]),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFoldMetricsCSV writes the per-fold regression metrics of every model.
func WriteFoldMetricsCSV(w io.Writer, rep *eval.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"model", "fold", "mae_weighted", "mae", "mse_weighted", "mse"}); err != nil {
		return err
	}
	for _, m := range rep.Models {
		for i, fm := range m.FoldMetrics {
			rec := []string{
				m.Name,
				strconv.Itoa(i),
				ff(float64(fm.MAEWeighted)),
				ff(float64(fm.MAE)),
				ff(float64(fm.MSEWeighted)),
				ff(float64(fm.MSE)),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCurvesCSV writes the sampled life trajectories of every model, one row
// per point.
func WriteCurvesCSV(w io.Writer, rep *eval.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"model", "fold", "life", "time", "true", "true_fit", "predicted", "pred_fit"}); err != nil {
		return err
	}
	for _, m := range rep.Models {
		for _, c := range m.Curves {
			for _, p := range c.Points {
				rec := []string{
					m.Name,
					strconv.Itoa(c.Fold),
					strconv.Itoa(c.Life),
					ff(p.Time),
					ff(float64(p.True)),
					ff(float64(p.TrueFit)),
					ff(float64(p.Predicted)),
					ff(float64(p.PredFit)),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func ff(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
