package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/phm-tools/rulkit/app"
	"github.com/phm-tools/rulkit/infra/logger"
)

var (
	resultsPath string
	outDir      string
	csvTables   bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a model results file",
	RunE:  runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVarP(&resultsPath, "results", "r", "", "JSON results file")
	evaluateCmd.Flags().StringVarP(&outDir, "out", "o", "reports", "output directory for report artifacts")
	evaluateCmd.Flags().BoolVar(&csvTables, "csv", false, "also write the CSV tables")
	_ = evaluateCmd.MarkFlagRequired("results")
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("evaluate-command").Errorf("service close: %v", err)
		}
	}()

	rep, err := svc.Run(ctx, app.RunOptions{ResultsPath: resultsPath, OutDir: outDir, CSV: csvTables})
	if err != nil {
		return err
	}
	for _, m := range rep.Models {
		fmt.Printf("%s: %d folds, %d lives (%d skipped), MAE %.2f, RMSE %.2f\n",
			m.Name, m.Folds, m.Lives, len(m.Skipped), m.MAE, m.RMSE)
	}
	return nil
}
