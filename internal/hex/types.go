// Package hex provides the heat-exchanger table extraction engine.
//
// The engine turns raw, schema-unknown spreadsheet tables into typed,
// unit-normalized heat-exchanger records. It has no I/O dependencies and
// can be used by any frontend: callers supply in-memory RawTables (from an
// Excel reader, a test fixture, anything) and receive a Session containing
// the extracted records, running totals, a diagnostic log, and a report.
//
// The pipeline runs in fixed stages: score each table's relevance, select
// or merge tables, classify columns into canonical fields, extract one
// candidate record per row, validate each record, then aggregate a report.
// Every stage is a pure function of its inputs; independent extractions
// may run in parallel with no coordination.
package hex

import (
	"fmt"
	"strings"
)

// CellKind discriminates the variants of a Cell.
type CellKind int

const (
	CellMissing CellKind = iota
	CellNumber
	CellText
)

// Cell is a tagged spreadsheet value: a number, a text string, or missing.
// There is no implicit coercion between variants; all coercion happens in
// the extractor and is logged.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
}

// Number returns a numeric cell.
func Number(v float64) Cell { return Cell{Kind: CellNumber, Number: v} }

// Text returns a text cell.
func Text(s string) Cell { return Cell{Kind: CellText, Text: s} }

// Missing returns an absent cell.
func Missing() Cell { return Cell{Kind: CellMissing} }

// IsEmpty reports whether the cell carries no usable content:
// it is missing, or it is text that is blank after trimming.
func (c Cell) IsEmpty() bool {
	switch c.Kind {
	case CellMissing:
		return true
	case CellText:
		return trimmed(c.Text) == ""
	default:
		return false
	}
}

// String renders the cell for display and name extraction.
// Numbers use the shortest representation that round-trips.
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return formatFloat(c.Number)
	case CellText:
		return trimmed(c.Text)
	default:
		return ""
	}
}

// RawTable is one candidate source table: a provenance name, an ordered
// header row, and data rows aligned to the headers. Rows may be ragged;
// cells past the end of a row are treated as missing.
type RawTable struct {
	Name    string
	Headers []Cell
	Rows    [][]Cell
}

// Header returns the display text of header i, or "" if out of range.
func (t RawTable) Header(i int) string {
	if i < 0 || i >= len(t.Headers) {
		return ""
	}
	return t.Headers[i].String()
}

// HeaderTexts returns the display text of every header, in column order.
func (t RawTable) HeaderTexts() []string {
	texts := make([]string, len(t.Headers))
	for i := range t.Headers {
		texts[i] = t.Headers[i].String()
	}
	return texts
}

// Cell returns the cell at (row, col), or a missing cell when the
// coordinates fall outside the table.
func (t RawTable) Cell(row, col int) Cell {
	if row < 0 || row >= len(t.Rows) {
		return Missing()
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return Missing()
	}
	return r[col]
}

// SourceColumn is the reserved header used to tag rows with their
// originating table when multiple tables are merged.
const SourceColumn = "source_table"

// Field is a canonical semantic category a raw column may be classified
// into. The set is closed; string values are stable for serialization.
type Field string

const (
	FieldEquipmentName  Field = "equipment_name"
	FieldDuty           Field = "duty"
	FieldArea           Field = "area"
	FieldHotStreamName  Field = "hot_stream_name"
	FieldColdStreamName Field = "cold_stream_name"
	FieldHotInletTemp   Field = "hot_inlet_temp"
	FieldHotOutletTemp  Field = "hot_outlet_temp"
	FieldColdInletTemp  Field = "cold_inlet_temp"
	FieldColdOutletTemp Field = "cold_outlet_temp"
	FieldHotFlow        Field = "hot_flow"
	FieldColdFlow       Field = "cold_flow"
	FieldTemperature    Field = "temperature"
	FieldPressure       Field = "pressure"
	FieldGenericFlow    Field = "generic_flow"
	FieldGenericStream  Field = "generic_stream"
)

// Fields lists every canonical field in classification order.
// The order is significant: classification passes visit categories in this
// order, so it decides which field is discovered first for a column that
// matches several.
var Fields = []Field{
	FieldEquipmentName,
	FieldDuty,
	FieldArea,
	FieldTemperature,
	FieldPressure,
	FieldHotStreamName,
	FieldColdStreamName,
	FieldHotInletTemp,
	FieldHotOutletTemp,
	FieldColdInletTemp,
	FieldColdOutletTemp,
	FieldHotFlow,
	FieldColdFlow,
	FieldGenericFlow,
	FieldGenericStream,
}

// ColumnMapping records which canonical fields each column matched.
// A column may match several fields; per field, candidate columns are kept
// in discovery order (earlier classification passes win tie-breaks).
type ColumnMapping struct {
	headers  []string
	byColumn map[int][]Field
	byField  map[Field][]int
}

// NewColumnMapping creates an empty mapping over the given headers.
func NewColumnMapping(headers []string) *ColumnMapping {
	return &ColumnMapping{
		headers:  headers,
		byColumn: make(map[int][]Field),
		byField:  make(map[Field][]int),
	}
}

// Add records that column col matched field f. Duplicate pairs are ignored,
// so earlier passes keep their position in the discovery order.
func (m *ColumnMapping) Add(col int, f Field) {
	for _, existing := range m.byColumn[col] {
		if existing == f {
			return
		}
	}
	m.byColumn[col] = append(m.byColumn[col], f)
	m.byField[f] = append(m.byField[f], col)
}

// FieldsFor returns the fields column col matched, in discovery order.
func (m *ColumnMapping) FieldsFor(col int) []Field { return m.byColumn[col] }

// Columns returns the candidate columns for field f, in discovery order.
func (m *ColumnMapping) Columns(f Field) []int { return m.byField[f] }

// Header returns the header text of column col.
func (m *ColumnMapping) Header(col int) string {
	if col < 0 || col >= len(m.headers) {
		return ""
	}
	return m.headers[col]
}

// Mapped reports whether column col matched at least one field.
func (m *ColumnMapping) Mapped(col int) bool { return len(m.byColumn[col]) > 0 }

// MappedCount returns the number of columns with at least one match.
func (m *ColumnMapping) MappedCount() int { return len(m.byColumn) }

// TotalColumns returns the number of classifiable columns. The reserved
// provenance column added by a merge is bookkeeping, not data, so it is
// excluded here and from Unmapped.
func (m *ColumnMapping) TotalColumns() int {
	n := 0
	for _, h := range m.headers {
		if !isReservedHeader(h) {
			n++
		}
	}
	return n
}

// Unmapped returns the headers of columns that matched no field after all
// classification passes, in column order.
func (m *ColumnMapping) Unmapped() []string {
	var out []string
	for i, h := range m.headers {
		if !m.Mapped(i) && !isReservedHeader(h) {
			out = append(out, h)
		}
	}
	return out
}

func isReservedHeader(h string) bool {
	return strings.EqualFold(trimmed(h), SourceColumn)
}

// Quality tags how much evidence backed an extracted record.
type Quality string

const (
	// QualityExtracted means a core numeric field (duty or area) parsed.
	QualityExtracted Quality = "extracted"
	// QualityPartial means the record was retained on weaker evidence.
	QualityPartial Quality = "partial"
)

// Provenance identifies where a record came from.
type Provenance struct {
	Table string `json:"table"`
	Row   int    `json:"row"`
}

func (p Provenance) String() string {
	return fmt.Sprintf("%s[%d]", p.Table, p.Row)
}

// Record is one extracted heat-exchanger specification. Numeric fields are
// pointers so that "absent" is distinguishable from zero; duty is in kW and
// area in m² after unit normalization. A record is built once by the
// extractor and afterwards only annotated with validation warnings.
type Record struct {
	Name string `json:"name"`

	Duty *float64 `json:"duty,omitempty"`
	Area *float64 `json:"area,omitempty"`

	HotStreamName  string `json:"hot_stream_name,omitempty"`
	ColdStreamName string `json:"cold_stream_name,omitempty"`

	HotInletTemp   *float64 `json:"hot_inlet_temp,omitempty"`
	HotOutletTemp  *float64 `json:"hot_outlet_temp,omitempty"`
	ColdInletTemp  *float64 `json:"cold_inlet_temp,omitempty"`
	ColdOutletTemp *float64 `json:"cold_outlet_temp,omitempty"`

	HotFlow  *float64 `json:"hot_flow,omitempty"`
	ColdFlow *float64 `json:"cold_flow,omitempty"`

	// Temperatures and Pressures collect every numeric value found in
	// columns classified only as generic temperature/pressure, keyed by
	// header text. They back the inclusion heuristic and diagnostics.
	Temperatures map[string]float64 `json:"temperatures,omitempty"`
	Pressures    map[string]float64 `json:"pressures,omitempty"`

	Quality  Quality    `json:"quality"`
	Warnings []string   `json:"warnings,omitempty"`
	Source   Provenance `json:"source"`
}

// HasTemperature reports whether any temperature value was extracted,
// named or generic.
func (r *Record) HasTemperature() bool {
	return r.HotInletTemp != nil || r.HotOutletTemp != nil ||
		r.ColdInletTemp != nil || r.ColdOutletTemp != nil ||
		len(r.Temperatures) > 0
}

// Session is the result of one extraction call. It is append-only while
// the call runs and owned exclusively by the caller afterwards; no state
// is shared across calls.
type Session struct {
	ID      string   `json:"id"`
	Records []Record `json:"records"`

	FieldCounts map[Field]int `json:"field_counts"`
	TotalDuty   float64       `json:"total_duty_kw"`
	TotalArea   float64       `json:"total_area_m2"`

	Report *Report `json:"report,omitempty"`

	// Log is the append-only diagnostic trail: table scores, selection
	// decisions, mapping statistics, and per-cell coercion failures.
	Log []string `json:"log,omitempty"`
}

// Logf appends a formatted entry to the session's diagnostic log.
func (s *Session) Logf(format string, args ...any) {
	s.Log = append(s.Log, fmt.Sprintf(format, args...))
}

func (s *Session) countField(f Field) {
	if s.FieldCounts == nil {
		s.FieldCounts = make(map[Field]int)
	}
	s.FieldCounts[f]++
}
