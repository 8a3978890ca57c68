package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Atlashz/hextract/internal/hex"
	"github.com/Atlashz/hextract/internal/xlsx"
)

func newScoreCmd() *cobra.Command {
	var (
		format   string
		taxonomy string
	)

	cmd := &cobra.Command{
		Use:   "score [workbook.xlsx]",
		Short: "Print per-sheet relevance scores without extracting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(args[0], format, taxonomy)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or json")
	cmd.Flags().StringVar(&taxonomy, "taxonomy", "", "YAML file overriding keyword tables")

	return cmd
}

func runScore(path, format, taxonomyPath string) error {
	tables, err := xlsx.ReadFile(path, xlsx.Options{
		Sheets:  cfg.Input.Sheets,
		MaxRows: cfg.Input.MaxRows,
	})
	if err != nil {
		return err
	}

	tax := hex.DefaultTaxonomy()
	if taxonomyPath == "" {
		taxonomyPath = cfg.Extraction.TaxonomyPath
	}
	if taxonomyPath != "" {
		if tax, err = hex.LoadTaxonomy(taxonomyPath); err != nil {
			return fmt.Errorf("load taxonomy: %w", err)
		}
	}

	scores := tax.ScoreTables(tables)

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(scores)
	}

	for _, sc := range scores {
		fmt.Printf("%-24s %d/%d\n", sc.Table, sc.Score, hex.MaxScore)
		for _, m := range sc.Matches {
			fmt.Printf("    %s: %q in column %q\n", m.Category, m.Keyword, m.Column)
		}
	}
	return nil
}
