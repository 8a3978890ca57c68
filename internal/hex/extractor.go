package hex

// extractor.go orchestrates the pipeline: score, select, classify,
// extract, validate, report. One Extract call owns one Session; the
// Extractor itself holds only immutable configuration, so a single
// instance is safe for concurrent use across independent extractions.

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// DefaultInclusionFloor is the minimum number of non-empty cells that
// keeps a row with no recognized field data. The value is a heuristic
// guard against dropping sparse-but-relevant rows; tune per dataset.
const DefaultInclusionFloor = 2

// DefaultNamePrefix prefixes synthesized record names.
const DefaultNamePrefix = "HEX"

// Extractor runs the extraction pipeline. Zero-value fields fall back to
// package defaults; a nil Taxonomy uses the built-in keyword tables.
type Extractor struct {
	Taxonomy       *Taxonomy
	Threshold      int
	InclusionFloor int
	NamePrefix     string
	Logger         *slog.Logger
}

// NewExtractor returns an extractor with the default taxonomy, selection
// threshold, inclusion floor, and name prefix.
func NewExtractor() *Extractor {
	return &Extractor{
		Taxonomy:       DefaultTaxonomy(),
		Threshold:      DefaultThreshold,
		InclusionFloor: DefaultInclusionFloor,
		NamePrefix:     DefaultNamePrefix,
		Logger:         slog.Default(),
	}
}

// Extract runs the full pipeline over the supplied tables and returns a
// new Session. sessionID keys the session for downstream consumers; pass
// "" to generate one. The only fatal error is a TableAccessError for an
// empty table list; every other failure is recovered and logged.
func (e *Extractor) Extract(sessionID string, tables []RawTable) (*Session, error) {
	if len(tables) == 0 {
		return nil, &TableAccessError{Reason: "empty table list"}
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	session := &Session{
		ID:          sessionID,
		FieldCounts: make(map[Field]int),
	}
	logger := e.logger().With("session_id", sessionID)

	// Score.
	scores := e.taxonomy().ScoreTables(tables)
	for _, sc := range scores {
		session.Logf("relevance score for %s: %d/%d", sc.Table, sc.Score, MaxScore)
	}

	// Select or merge.
	sel, err := SelectTable(tables, scores, e.threshold())
	if err != nil {
		return nil, err
	}
	if sel.Merged {
		session.Logf("no table met threshold %d; merged %d tables (%s)",
			e.threshold(), len(sel.Sources), strings.Join(sel.Sources, ", "))
	} else {
		session.Logf("selected table: %s", sel.Table.Name)
	}
	logger.Info("table selected",
		"table", sel.Table.Name,
		"merged", sel.Merged,
		"rows", len(sel.Table.Rows),
	)

	// Classify columns.
	mapping := e.taxonomy().ClassifyColumns(sel.Table.HeaderTexts())
	session.Logf("column mapping: %d/%d columns mapped",
		mapping.MappedCount(), mapping.TotalColumns())
	if unmapped := mapping.Unmapped(); len(unmapped) > 0 {
		session.Logf("unmapped columns: %s", strings.Join(unmapped, ", "))
	}

	// Extract and validate rows.
	for row := range sel.Table.Rows {
		e.processRow(rowContext{
			table:   sel.Table,
			mapping: mapping,
			merged:  sel.Merged,
			row:     row,
			cells:   sel.Table.Rows[row],
		}, session)
	}

	logger.Info("extraction complete",
		"records", len(session.Records),
		"total_duty_kw", session.TotalDuty,
		"total_area_m2", session.TotalArea,
	)

	session.Report = e.buildReport(session, scores, sel, mapping)
	return session, nil
}

// processRow extracts, validates, and accumulates one row. Any panic while
// processing the row is recovered and treated as the row failing the
// inclusion predicate, so one malformed row cannot abort the batch.
func (e *Extractor) processRow(rc rowContext, session *Session) {
	defer func() {
		if r := recover(); r != nil {
			session.Logf("row %d: internal failure, row skipped: %v", rc.row, r)
			e.logger().Warn("row processing failed", "row", rc.row, "panic", fmt.Sprint(r))
		}
	}()

	rec, include := e.extractRow(rc, session)
	if !include {
		session.Logf("row %d skipped: %d non-empty cells, no recognizable exchanger data",
			rc.row, rc.nonEmptyCells())
		return
	}

	AnnotateRecord(&rec)
	e.accumulate(session, &rec)
	session.Records = append(session.Records, rec)
}

// accumulate updates the session's per-field counts and running totals
// from a freshly extracted record.
func (e *Extractor) accumulate(s *Session, rec *Record) {
	if rec.Duty != nil {
		s.countField(FieldDuty)
		s.TotalDuty += *rec.Duty
	}
	if rec.Area != nil {
		s.countField(FieldArea)
		s.TotalArea += *rec.Area
	}
	if rec.HotStreamName != "" {
		s.countField(FieldHotStreamName)
	}
	if rec.ColdStreamName != "" {
		s.countField(FieldColdStreamName)
	}
	for f, v := range map[Field]*float64{
		FieldHotInletTemp:   rec.HotInletTemp,
		FieldHotOutletTemp:  rec.HotOutletTemp,
		FieldColdInletTemp:  rec.ColdInletTemp,
		FieldColdOutletTemp: rec.ColdOutletTemp,
		FieldHotFlow:        rec.HotFlow,
		FieldColdFlow:       rec.ColdFlow,
	} {
		if v != nil {
			s.countField(f)
		}
	}
	if len(rec.Temperatures) > 0 {
		s.countField(FieldTemperature)
	}
	if len(rec.Pressures) > 0 {
		s.countField(FieldPressure)
	}
}

func (e *Extractor) taxonomy() *Taxonomy {
	if e.Taxonomy != nil {
		return e.Taxonomy
	}
	return DefaultTaxonomy()
}

func (e *Extractor) inclusionFloor() int {
	if e.InclusionFloor > 0 {
		return e.InclusionFloor
	}
	return DefaultInclusionFloor
}

func (e *Extractor) namePrefix() string {
	if e.NamePrefix != "" {
		return e.NamePrefix
	}
	return DefaultNamePrefix
}

func (e *Extractor) threshold() int {
	if e.Threshold > 0 {
		return e.Threshold
	}
	return DefaultThreshold
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
