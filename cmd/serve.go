package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jonesrussell/gojobs/internal/bootstrap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the scheduled import cycle",
	RunE: func(_ *cobra.Command, _ []string) error {
		return bootstrap.Start(cfgFile, debug)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
