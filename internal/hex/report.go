package hex

// report.go aggregates the extraction outcome for diagnosis: per-field
// success counts, per-table relevance scores, unmapped columns with
// nearest-keyword suggestions, and plain-text recommendations for the
// common "nothing extracted" failure modes.

import (
	"fmt"
	"strings"
	"time"

	"github.com/agext/levenshtein"
)

// suggestionFloor is the minimum similarity for an unmapped-column
// suggestion to be worth reporting.
const suggestionFloor = 0.5

// fewRecordsFloor is the record count under which the report advises
// reviewing the filtering criteria.
const fewRecordsFloor = 5

// Suggestion proposes the nearest known keyword for an unmapped column.
// Suggestions are diagnostics only; they never feed back into mapping.
type Suggestion struct {
	Column     string  `json:"column"`
	Keyword    string  `json:"keyword"`
	Field      Field   `json:"field"`
	Similarity float64 `json:"similarity"`
}

// Report summarizes one extraction for human review.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`

	TableScores   []TableScore `json:"table_scores"`
	SelectedTable string       `json:"selected_table"`
	Merged        bool         `json:"merged"`
	Sources       []string     `json:"sources"`

	RecordCount      int             `json:"record_count"`
	QualityBreakdown map[Quality]int `json:"quality_breakdown"`
	FieldCounts      map[Field]int   `json:"field_counts"`
	TotalDuty        float64         `json:"total_duty_kw"`
	TotalArea        float64         `json:"total_area_m2"`

	MappedColumns   int          `json:"mapped_columns"`
	TotalColumns    int          `json:"total_columns"`
	UnmappedColumns []string     `json:"unmapped_columns,omitempty"`
	Suggestions     []Suggestion `json:"suggestions,omitempty"`

	Recommendations []string `json:"recommendations,omitempty"`
}

// buildReport assembles the report from the finished session and the
// intermediate pipeline artifacts.
func (e *Extractor) buildReport(s *Session, scores []TableScore, sel Selection, mapping *ColumnMapping) *Report {
	rep := &Report{
		GeneratedAt:      time.Now(),
		TableScores:      scores,
		SelectedTable:    sel.Table.Name,
		Merged:           sel.Merged,
		Sources:          sel.Sources,
		RecordCount:      len(s.Records),
		QualityBreakdown: make(map[Quality]int),
		FieldCounts:      s.FieldCounts,
		TotalDuty:        s.TotalDuty,
		TotalArea:        s.TotalArea,
		MappedColumns:    mapping.MappedCount(),
		TotalColumns:     mapping.TotalColumns(),
		UnmappedColumns:  mapping.Unmapped(),
	}

	for i := range s.Records {
		rep.QualityBreakdown[s.Records[i].Quality]++
	}

	for _, col := range rep.UnmappedColumns {
		if sug, ok := e.suggestKeyword(col); ok {
			rep.Suggestions = append(rep.Suggestions, sug)
		}
	}

	rep.Recommendations = e.recommendations(rep)
	return rep
}

// suggestKeyword finds the known keyword closest to an unmapped header
// using Levenshtein similarity over the normalized texts.
func (e *Extractor) suggestKeyword(column string) (Suggestion, bool) {
	target := strings.ToLower(trimmed(column))
	if target == "" {
		return Suggestion{}, false
	}

	best := Suggestion{Column: column}
	for _, fk := range e.taxonomy().AllKeywords() {
		kw := strings.ToLower(fk.Keyword.Text)
		if kw == "" {
			continue
		}
		dist := levenshtein.Distance(target, kw, nil)
		// Distance counts runes, so the normalizing length must too, or
		// multi-byte keywords skew the similarity.
		maxLen := len([]rune(target))
		if n := len([]rune(kw)); n > maxLen {
			maxLen = n
		}
		sim := 1.0 - float64(dist)/float64(maxLen)
		if sim > best.Similarity {
			best.Keyword = fk.Keyword.Text
			best.Field = fk.Field
			best.Similarity = sim
		}
	}

	if best.Similarity < suggestionFloor {
		return Suggestion{}, false
	}
	return best, true
}

// recommendations generates advisory text for zero-yield field categories
// and mapping gaps.
func (e *Extractor) recommendations(rep *Report) []string {
	var recs []string

	switch {
	case rep.RecordCount == 0:
		recs = append(recs, "No heat exchanger data was extracted. Check column names and data format.")
	case rep.RecordCount < fewRecordsFloor:
		recs = append(recs, "Very few heat exchangers extracted. Consider relaxing filtering criteria.")
	}

	if len(rep.UnmappedColumns) > 0 {
		recs = append(recs, "Some columns could not be mapped. Review column naming conventions.")
	}
	if rep.TotalDuty == 0 {
		recs = append(recs, "No heat duty data extracted. Check duty column identification and units.")
	}
	if rep.TotalArea == 0 {
		recs = append(recs, "No heat transfer area data extracted. Check area column identification.")
	}

	for _, f := range []struct {
		field Field
		what  string
	}{
		{FieldHotStreamName, "hot stream names"},
		{FieldColdStreamName, "cold stream names"},
	} {
		if rep.RecordCount > 0 && rep.FieldCounts[f.field] == 0 {
			recs = append(recs, fmt.Sprintf(
				"No %s extracted. Review %s column naming.", f.what, f.field))
		}
	}

	return recs
}
