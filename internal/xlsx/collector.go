// Package xlsx reads Excel workbooks into the raw tables the extraction
// engine consumes. Each worksheet becomes one hex.RawTable: the first
// non-empty row is taken as the header row, everything below it as data.
// The package is a thin adapter; no extraction logic lives here.
package xlsx

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Atlashz/hextract/internal/hex"
)

// Options controls which parts of a workbook are collected.
type Options struct {
	// Sheets restricts collection to the named worksheets
	// (case-insensitive). Empty means every sheet.
	Sheets []string

	// MaxRows caps the number of data rows read per sheet. Zero means
	// no cap.
	MaxRows int
}

// ReadFile opens the workbook at path and collects its sheets.
func ReadFile(path string, opts Options) ([]hex.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()
	return collect(f, opts)
}

// Read collects the sheets of a workbook streamed from r.
func Read(r io.Reader, opts Options) ([]hex.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return collect(f, opts)
}

func collect(f *excelize.File, opts Options) ([]hex.RawTable, error) {
	wanted := sheetFilter(opts.Sheets)

	var tables []hex.RawTable
	for _, sheet := range f.GetSheetList() {
		if wanted != nil && !wanted[strings.ToLower(sheet)] {
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		tbl, ok := buildTable(sheet, rows, opts.MaxRows)
		if !ok {
			continue
		}
		tables = append(tables, tbl)
	}
	return tables, nil
}

func sheetFilter(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[strings.ToLower(strings.TrimSpace(n))] = true
	}
	return m
}

// buildTable converts one sheet's string grid into a RawTable. The first
// row with any non-blank cell becomes the header; sheets with no such row
// are skipped. Fully blank data rows are dropped.
func buildTable(name string, rows [][]string, maxRows int) (hex.RawTable, bool) {
	headerIdx := -1
	for i, row := range rows {
		if rowHasData(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return hex.RawTable{}, false
	}

	tbl := hex.RawTable{
		Name:    name,
		Headers: toCells(rows[headerIdx]),
	}
	width := len(tbl.Headers)

	for _, row := range rows[headerIdx+1:] {
		if maxRows > 0 && len(tbl.Rows) >= maxRows {
			break
		}
		if !rowHasData(row) {
			continue
		}
		cells := toCells(row)
		// GetRows trims trailing empties; pad so every data row spans
		// the header width.
		for len(cells) < width {
			cells = append(cells, hex.Missing())
		}
		tbl.Rows = append(tbl.Rows, cells)
	}
	return tbl, true
}

func rowHasData(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

func toCells(row []string) []hex.Cell {
	cells := make([]hex.Cell, len(row))
	for i, v := range row {
		cells[i] = parseCell(v)
	}
	return cells
}

// parseCell maps an excelize string value onto the engine's cell variant.
// Numbers are recognised by a strict float parse; everything else stays
// text so downstream coercion can decide what to do with annotated values.
func parseCell(v string) hex.Cell {
	s := strings.TrimSpace(v)
	if s == "" {
		return hex.Missing()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return hex.Number(f)
	}
	return hex.Text(s)
}
