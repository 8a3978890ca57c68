package hex

// score.go implements table relevance scoring. Each candidate table gets a
// 0-10 score from the taxonomy's weighted keyword categories; the selector
// then uses the scores to pick or merge tables.

import "strings"

// MaxScore is the ceiling for a table relevance score.
const MaxScore = 10

// KeywordMatch records one (category, keyword, column) hit found while
// scoring a table.
type KeywordMatch struct {
	Category string `json:"category"`
	Keyword  string `json:"keyword"`
	Column   string `json:"column"`
}

// TableScore is the relevance verdict for one table.
type TableScore struct {
	Table   string         `json:"table"`
	Score   int            `json:"score"`
	Matches []KeywordMatch `json:"matches,omitempty"`
}

// ScoreTable rates how likely the table is to contain heat-exchanger data.
// Every header is lower-cased and substring-matched against every keyword
// in every relevance category; a category contributes its weight at most
// once per table no matter how many headers hit. The total is capped at
// MaxScore. The result depends only on the set of header texts, never on
// row content or order.
func (t *Taxonomy) ScoreTable(tbl RawTable) TableScore {
	result := TableScore{Table: tbl.Name}

	headers := tbl.HeaderTexts()
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(h)
	}

	for _, cat := range t.Relevance {
		matched := false
		for _, kw := range cat.Keywords {
			needle := strings.ToLower(kw.Text)
			if needle == "" {
				continue
			}
			for i, h := range lowered {
				if strings.Contains(h, needle) {
					matched = true
					result.Matches = append(result.Matches, KeywordMatch{
						Category: cat.Name,
						Keyword:  kw.Text,
						Column:   headers[i],
					})
				}
			}
		}
		if matched {
			result.Score += cat.Weight
		}
	}

	if result.Score > MaxScore {
		result.Score = MaxScore
	}
	return result
}

// ScoreTables scores every table, preserving input order.
func (t *Taxonomy) ScoreTables(tables []RawTable) []TableScore {
	scores := make([]TableScore, len(tables))
	for i, tbl := range tables {
		scores[i] = t.ScoreTable(tbl)
	}
	return scores
}
