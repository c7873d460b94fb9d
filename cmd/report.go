package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/phm-tools/rulkit/core/eval"
	"github.com/phm-tools/rulkit/core/report"
	"github.com/phm-tools/rulkit/infra/logger"
	_ "github.com/phm-tools/rulkit/infra/store" // registers store backends
)

var (
	sinceStr     string
	modelFilter  string
	backfillPath string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "List stored run summaries",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&sinceStr, "since", "", "only rows newer than a duration (24h) or date (2026-01-02)")
	reportCmd.Flags().StringVar(&modelFilter, "model", "", "only rows of one model")
	reportCmd.Flags().StringVar(&backfillPath, "backfill", "", "re-ingest a previously exported report JSON")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	st, err := report.NewStore(cfg.Store.Module())
	if err != nil {
		return fmt.Errorf("report store: %w", err)
	}
	defer func() {
		if c, ok := st.(io.Closer); ok {
			if err := c.Close(); err != nil {
				logger.New("report-command").Errorf("store close: %v", err)
			}
		}
	}()

	if backfillPath != "" {
		n, err := backfill(st, backfillPath)
		if err != nil {
			return err
		}
		fmt.Printf("backfilled %d rows from %s\n", n, backfillPath)
	}

	since, err := report.ParseSince(sinceStr, time.Now())
	if err != nil {
		return err
	}
	rows, err := st.Query(modelFilter, since)
	if err != nil {
		return err
	}
	for _, r := range rows {
		fmt.Printf("%s  %-16s  %s  folds=%d lives=%d skipped=%d mae=%.2f rmse=%.2f\n",
			r.RunID, r.Model, r.Started.Format(time.RFC3339), r.Folds, r.Lives, r.Skipped, r.MAE, r.RMSE)
	}
	return nil
}

func backfill(st report.Store, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read report: %w", err)
	}
	var rep eval.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return 0, fmt.Errorf("parse report: %w", err)
	}
	recs := rep.Records()
	for _, rec := range recs {
		if err := st.Add(rec); err != nil {
			return 0, err
		}
	}
	return len(recs), nil
}
