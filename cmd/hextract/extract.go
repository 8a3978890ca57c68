package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Atlashz/hextract/internal/hex"
	"github.com/Atlashz/hextract/internal/logging"
	"github.com/Atlashz/hextract/internal/xlsx"
)

type extractFlags struct {
	output    string
	format    string
	sessionID string
	threshold int
	sheets    []string
	maxRows   int
	taxonomy  string
	verbose   bool
}

func newExtractCmd() *cobra.Command {
	var flags extractFlags

	cmd := &cobra.Command{
		Use:   "extract [workbook.xlsx]",
		Short: "Run the extraction pipeline over a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flags.sessionID, "session", "", "Session ID (default: generated)")
	cmd.Flags().IntVar(&flags.threshold, "threshold", -1, "Minimum standalone relevance score (default: from config)")
	cmd.Flags().StringSliceVar(&flags.sheets, "sheet", nil, "Restrict to named worksheets (repeatable)")
	cmd.Flags().IntVar(&flags.maxRows, "max-rows", -1, "Cap data rows per sheet (default: from config)")
	cmd.Flags().StringVar(&flags.taxonomy, "taxonomy", "", "YAML file overriding keyword tables")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Include the session log in text output")

	return cmd
}

func runExtract(cmd *cobra.Command, path string, flags extractFlags) error {
	tables, err := readTables(path, flags.sheets, flags.maxRows)
	if err != nil {
		return err
	}

	ext, err := buildExtractor(flags.threshold, flags.taxonomy)
	if err != nil {
		return err
	}

	session, err := ext.Extract(flags.sessionID, tables)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	ctx := logging.WithSession(cmd.Context(), session.ID)
	logging.FromContext(ctx).Info("extraction finished",
		"records", len(session.Records),
		"total_duty_kw", session.TotalDuty,
		"total_area_m2", session.TotalArea,
	)

	out, closeOut, err := openOutput(flags.output)
	if err != nil {
		return err
	}
	defer closeOut()

	if flags.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(session)
	}
	return writeSessionText(out, session, flags.verbose)
}

// readTables collects the workbook's sheets, applying CLI overrides on
// top of the environment configuration.
func readTables(path string, sheets []string, maxRows int) ([]hex.RawTable, error) {
	opts := xlsx.Options{
		Sheets:  cfg.Input.Sheets,
		MaxRows: cfg.Input.MaxRows,
	}
	if len(sheets) > 0 {
		opts.Sheets = sheets
	}
	if maxRows >= 0 {
		opts.MaxRows = maxRows
	}
	return xlsx.ReadFile(path, opts)
}

func buildExtractor(threshold int, taxonomyPath string) (*hex.Extractor, error) {
	ext := hex.NewExtractor()
	ext.Threshold = cfg.Extraction.Threshold
	ext.InclusionFloor = cfg.Extraction.InclusionFloor
	ext.NamePrefix = cfg.Extraction.NamePrefix

	if threshold >= 0 {
		ext.Threshold = threshold
	}

	path := cfg.Extraction.TaxonomyPath
	if taxonomyPath != "" {
		path = taxonomyPath
	}
	if path != "" {
		tax, err := hex.LoadTaxonomy(path)
		if err != nil {
			return nil, fmt.Errorf("load taxonomy: %w", err)
		}
		ext.Taxonomy = tax
	}
	return ext, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// writeSessionText renders a human-readable extraction summary.
func writeSessionText(w io.Writer, s *hex.Session, verbose bool) error {
	rep := s.Report

	fmt.Fprintf(w, "Session %s\n", s.ID)
	if rep != nil {
		if rep.Merged {
			fmt.Fprintf(w, "Selected: %s (merged from %s)\n",
				rep.SelectedTable, strings.Join(rep.Sources, ", "))
		} else {
			fmt.Fprintf(w, "Selected: %s\n", rep.SelectedTable)
		}
		fmt.Fprintf(w, "Columns mapped: %d/%d\n", rep.MappedColumns, rep.TotalColumns)
	}
	fmt.Fprintf(w, "Records: %d\n", len(s.Records))
	fmt.Fprintf(w, "Total duty: %.2f kW\n", s.TotalDuty)
	fmt.Fprintf(w, "Total area: %.2f m2\n", s.TotalArea)

	if len(s.FieldCounts) > 0 {
		fmt.Fprintln(w, "\nField coverage:")
		for _, f := range sortedFields(s.FieldCounts) {
			fmt.Fprintf(w, "  %-18s %d\n", f, s.FieldCounts[f])
		}
	}

	fmt.Fprintln(w, "\nRecords:")
	for i := range s.Records {
		writeRecordLine(w, &s.Records[i])
	}

	if rep != nil {
		if len(rep.Suggestions) > 0 {
			fmt.Fprintln(w, "\nUnmapped column suggestions:")
			for _, sug := range rep.Suggestions {
				fmt.Fprintf(w, "  %q: did you mean %q (%s)?\n", sug.Column, sug.Keyword, sug.Field)
			}
		}
		if len(rep.Recommendations) > 0 {
			fmt.Fprintln(w, "\nRecommendations:")
			for _, r := range rep.Recommendations {
				fmt.Fprintf(w, "  - %s\n", r)
			}
		}
	}

	if verbose && len(s.Log) > 0 {
		fmt.Fprintln(w, "\nLog:")
		for _, line := range s.Log {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	return nil
}

func writeRecordLine(w io.Writer, r *hex.Record) {
	fmt.Fprintf(w, "  %-12s", r.Name)
	if r.Duty != nil {
		fmt.Fprintf(w, "  duty=%.2f kW", *r.Duty)
	}
	if r.Area != nil {
		fmt.Fprintf(w, "  area=%.2f m2", *r.Area)
	}
	fmt.Fprintf(w, "  [%s]", r.Quality)
	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "  %d warning(s)", len(r.Warnings))
	}
	fmt.Fprintln(w)
	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "      ! %s\n", warn)
	}
}

func sortedFields(m map[hex.Field]int) []hex.Field {
	fields := make([]hex.Field, 0, len(m))
	for f := range m {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}
