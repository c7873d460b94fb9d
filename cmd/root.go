package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phm-tools/rulkit/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:          "rulkit",
	Short:        "RUL prediction evaluation toolkit",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (defaults apply when omitted)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.Load(cfgPath)
}
