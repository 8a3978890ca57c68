package hex

// selector.go picks the working table the rest of the pipeline runs on.
// The fallback ladder trades completeness for graceful degradation: a clear
// winner is used alone, ambiguous inputs are merged, and a universe where
// nothing matches still yields the first table rather than nothing at all.

import "strings"

// DefaultThreshold is the minimum relevance score for a table to be
// selected on its own.
const DefaultThreshold = 3

// Selection is the outcome of table selection: the working table plus how
// it was obtained.
type Selection struct {
	Table RawTable
	// Merged is true when the working table is a concatenation of several
	// source tables. Rows then carry a reserved SourceColumn tag.
	Merged bool
	// Sources lists the names of the tables that contributed rows.
	Sources []string
}

// SelectTable applies the selection ladder to the scored tables:
//
//  1. If the best score meets the threshold, that table is used alone.
//  2. Otherwise all tables scoring above zero are merged: rows are
//     concatenated and tagged with their source table name, and headers
//     are unioned by name (first occurrence wins).
//  3. If nothing scores above zero, the first table in input order is used.
//  4. An empty table list is a TableAccessError.
//
// scores must be aligned to tables (as returned by ScoreTables).
func SelectTable(tables []RawTable, scores []TableScore, threshold int) (Selection, error) {
	if len(tables) == 0 {
		return Selection{}, &TableAccessError{Reason: "empty table list"}
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	best := 0
	for i := range scores {
		if scores[i].Score > scores[best].Score {
			best = i
		}
	}
	if scores[best].Score >= threshold {
		return Selection{
			Table:   tables[best],
			Sources: []string{tables[best].Name},
		}, nil
	}

	var candidates []int
	for i := range tables {
		if scores[i].Score > 0 {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		// Nothing matches at all; fall back to the first table.
		return Selection{
			Table:   tables[0],
			Sources: []string{tables[0].Name},
		}, nil
	}
	// Even a single sub-threshold candidate goes through the merge path so
	// its rows carry the source tag.
	merged, sources := mergeTables(tables, candidates)
	return Selection{Table: merged, Merged: true, Sources: sources}, nil
}

// mergeTables concatenates the candidate tables into one working table.
// Headers are unioned case-insensitively by display text, keeping the first
// occurrence; every row gains a trailing SourceColumn cell naming its
// origin. Rows are re-aligned to the union header order.
func mergeTables(tables []RawTable, candidates []int) (RawTable, []string) {
	merged := RawTable{Name: "merged"}

	headerPos := make(map[string]int)
	var sources []string

	for _, idx := range candidates {
		src := tables[idx]
		sources = append(sources, src.Name)
		for _, h := range src.Headers {
			key := strings.ToLower(h.String())
			if _, seen := headerPos[key]; seen {
				continue
			}
			headerPos[key] = len(merged.Headers)
			merged.Headers = append(merged.Headers, h)
		}
	}

	sourceCol := len(merged.Headers)
	merged.Headers = append(merged.Headers, Text(SourceColumn))

	for _, idx := range candidates {
		src := tables[idx]
		for _, row := range src.Rows {
			out := make([]Cell, sourceCol+1)
			for i := range out {
				out[i] = Missing()
			}
			for c, cell := range row {
				if c >= len(src.Headers) {
					break
				}
				pos := headerPos[strings.ToLower(src.Headers[c].String())]
				if out[pos].Kind == CellMissing {
					out[pos] = cell
				}
			}
			out[sourceCol] = Text(src.Name)
			merged.Rows = append(merged.Rows, out)
		}
	}

	return merged, sources
}
