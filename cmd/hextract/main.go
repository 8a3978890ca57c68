// Package main provides the hextract CLI: it reads an Excel workbook,
// runs the heat-exchanger extraction pipeline, and prints the session
// or report as text or JSON.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Atlashz/hextract/internal/config"
	"github.com/Atlashz/hextract/internal/logging"
)

var cfg *config.Config

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err == nil {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	rootCmd := &cobra.Command{
		Use:   "hextract",
		Short: "Extract heat-exchanger data from Excel workbooks",
		Long: `hextract scores the worksheets of a workbook for heat-exchanger
relevance, selects or merges the best candidates, maps columns onto
canonical fields, and emits normalized equipment records.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
			return nil
		},
	}

	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newScoreCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
