package hex

// record.go builds one candidate record per source row. Numeric coercion
// is deliberately forgiving: a direct parse is tried first, then the first
// signed decimal / scientific-notation token is pulled out of text cells
// that carry units or annotations ("1.2e3 kW (est.)"). Failures never
// abort a row; the field is left absent and the failure goes to the
// session log.

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// numericTokenRegex extracts the first numeric token from a text cell,
// including scientific notation.
var numericTokenRegex = regexp.MustCompile(`[-+]?(?:\d*\.?\d+)(?:[eE][-+]?\d+)?`)

// coerceNumeric attempts to read a cell as a float. Number cells pass
// through; text cells are parsed directly, then by token extraction.
// The bool reports success; missing and unparseable cells fail.
func coerceNumeric(c Cell) (float64, bool) {
	switch c.Kind {
	case CellNumber:
		return c.Number, true
	case CellText:
		s := trimmed(c.Text)
		if s == "" {
			return 0, false
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v, true
		}
		if tok := numericTokenRegex.FindString(s); tok != "" {
			if v, err := strconv.ParseFloat(tok, 64); err == nil {
				return v, true
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

// rowContext carries everything a single row extraction needs.
type rowContext struct {
	table   RawTable
	mapping *ColumnMapping
	merged  bool
	row     int
	cells   []Cell
}

// sourceTag returns the row's originating table name when the working
// table is a merge, else "".
func (rc rowContext) sourceTag() string {
	if !rc.merged {
		return ""
	}
	for col, h := range rc.table.HeaderTexts() {
		if strings.EqualFold(h, SourceColumn) {
			return rc.table.Cell(rc.row, col).String()
		}
	}
	return ""
}

// nonEmptyCells counts cells in the row with usable content, excluding the
// reserved source tag column.
func (rc rowContext) nonEmptyCells() int {
	n := 0
	for col, c := range rc.cells {
		if strings.EqualFold(rc.mapping.Header(col), SourceColumn) {
			continue
		}
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// extractRow builds the candidate record for one row. The second return is
// false when the row fails the inclusion predicate and no record should be
// emitted. Parse failures are logged to the session, never raised.
func (e *Extractor) extractRow(rc rowContext, session *Session) (Record, bool) {
	rec := Record{
		Quality: QualityPartial,
		Source:  Provenance{Table: rc.table.Name, Row: rc.row},
	}
	if tag := rc.sourceTag(); tag != "" {
		rec.Source.Table = tag
	}

	coreParsed := false

	// Name: first non-empty equipment-name column, else synthesized from
	// the row index (plus the source tag after a merge).
	for _, col := range rc.mapping.Columns(FieldEquipmentName) {
		if c := rc.table.Cell(rc.row, col); !c.IsEmpty() {
			rec.Name = c.String()
			break
		}
	}
	if rec.Name == "" {
		rec.Name = fmt.Sprintf("%s-%03d", e.namePrefix(), rc.row)
		if tag := rc.sourceTag(); tag != "" {
			rec.Name += "-" + tag
		}
	}

	// Duty and area: first mapped column that parses, unit-normalized
	// against the header of the column the value came from.
	if v, col, ok := rc.firstNumeric(FieldDuty, session); ok {
		rec.Duty = floatPtr(NormalizeDuty(v, rc.mapping.Header(col)))
		coreParsed = true
	}
	if v, col, ok := rc.firstNumeric(FieldArea, session); ok {
		rec.Area = floatPtr(NormalizeArea(v, rc.mapping.Header(col)))
		coreParsed = true
	}

	// Stream names: deterministic tie-break among candidates. Prefer a
	// header naming "stream", then the side word itself, then table order.
	rec.HotStreamName = rc.streamName(FieldHotStreamName, "hot")
	rec.ColdStreamName = rc.streamName(FieldColdStreamName, "cold")

	// Named temperatures and flows accept Number cells only; text in these
	// columns is treated as absent rather than coerced.
	rec.HotInletTemp = rc.firstNumberCell(FieldHotInletTemp)
	rec.HotOutletTemp = rc.firstNumberCell(FieldHotOutletTemp)
	rec.ColdInletTemp = rc.firstNumberCell(FieldColdInletTemp)
	rec.ColdOutletTemp = rc.firstNumberCell(FieldColdOutletTemp)
	rec.HotFlow = rc.firstNumberCell(FieldHotFlow)
	rec.ColdFlow = rc.firstNumberCell(FieldColdFlow)

	// Generic temperature/pressure columns are collected by header for
	// diagnostics and the inclusion floor.
	rec.Temperatures = rc.collectNumbers(FieldTemperature)
	rec.Pressures = rc.collectNumbers(FieldPressure)

	if coreParsed {
		rec.Quality = QualityExtracted
	}

	include := (rec.Duty != nil && *rec.Duty != 0) ||
		(rec.Area != nil && *rec.Area != 0) ||
		rec.HotStreamName != "" || rec.ColdStreamName != "" ||
		rec.HasTemperature() ||
		rc.nonEmptyCells() >= e.inclusionFloor()

	return rec, include
}

// firstNumeric walks field f's candidate columns in discovery order and
// returns the first value that coerces to a number, along with the column
// it came from. Cells that fail to parse are logged with header and row
// index.
func (rc rowContext) firstNumeric(f Field, session *Session) (float64, int, bool) {
	for _, col := range rc.mapping.Columns(f) {
		c := rc.table.Cell(rc.row, col)
		if c.IsEmpty() {
			continue
		}
		if v, ok := coerceNumeric(c); ok {
			return v, col, true
		}
		session.Logf("failed to convert %q in column %q to numeric (row %d)",
			c.String(), rc.mapping.Header(col), rc.row)
	}
	return 0, 0, false
}

// streamName resolves the hot/cold stream name with the documented
// tie-break: a candidate header containing "stream" wins, then one
// containing the side word, then the first candidate in table order.
func (rc rowContext) streamName(f Field, side string) string {
	candidates := rc.mapping.Columns(f)
	if len(candidates) == 0 {
		return ""
	}

	col := pickByToken(rc.mapping, candidates, "stream")
	if col < 0 {
		col = pickByToken(rc.mapping, candidates, side)
	}
	if col < 0 {
		// Final fallback is table order, not discovery order.
		col = candidates[0]
		for _, c := range candidates[1:] {
			if c < col {
				col = c
			}
		}
	}

	cell := rc.table.Cell(rc.row, col)
	if cell.IsEmpty() {
		return ""
	}
	return cell.String()
}

// pickByToken returns the first candidate column whose header contains the
// literal token, or -1.
func pickByToken(m *ColumnMapping, candidates []int, token string) int {
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(m.Header(c)), token) {
			return c
		}
	}
	return -1
}

// firstNumberCell returns the first mapped column's value for f when that
// cell is a Number variant, else nil.
func (rc rowContext) firstNumberCell(f Field) *float64 {
	cols := rc.mapping.Columns(f)
	if len(cols) == 0 {
		return nil
	}
	c := rc.table.Cell(rc.row, cols[0])
	if c.Kind != CellNumber {
		return nil
	}
	return floatPtr(c.Number)
}

// collectNumbers gathers Number values from every column mapped to f,
// keyed by header text.
func (rc rowContext) collectNumbers(f Field) map[string]float64 {
	var out map[string]float64
	for _, col := range rc.mapping.Columns(f) {
		c := rc.table.Cell(rc.row, col)
		if c.Kind != CellNumber {
			continue
		}
		if out == nil {
			out = make(map[string]float64)
		}
		out[rc.mapping.Header(col)] = c.Number
	}
	return out
}
