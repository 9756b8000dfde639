package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jonesrussell/gojobs/internal/bootstrap"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Run one full import cycle and exit",
	Long: `Runs the same import cycle the scheduler triggers daily: every portal
against every provider, followed by the staleness sweep. Useful for manual
backfills and cron-less deployments.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return bootstrap.RunImport(cfgFile, debug)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
