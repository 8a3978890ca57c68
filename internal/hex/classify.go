package hex

// classify.go maps raw columns to canonical fields. Three ordered passes,
// each only adding matches a column does not already have:
//
//	pass 1: plain substring match against every field keyword
//	pass 2: token match, stricter for single words, looser for multi-word
//	        keywords whose words may appear in any order
//	pass 3: pattern inference for columns still unmatched (unit tokens,
//	        short tag-like headers)
//
// Because passes are additive and ordered, the discovery order inside a
// ColumnMapping encodes which pass found each match; first-discovered wins
// downstream tie-breaks.

import "strings"

// ClassifyColumns builds the column mapping for the given header texts.
// The reserved SourceColumn header is never classified; it exists only to
// carry row provenance through a merge.
func (t *Taxonomy) ClassifyColumns(headers []string) *ColumnMapping {
	m := NewColumnMapping(headers)

	lowered := make([]string, len(headers))
	tokens := make([][]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(trimmed(h))
		// Parenthesized unit annotations are not words of the header;
		// dropping them keeps "(C)" from token-matching keywords like c_in.
		tokens[i] = tokenize(stripParens(h))
	}

	// Pass 1: exact substring matching.
	for _, f := range Fields {
		for col := range headers {
			if lowered[col] == SourceColumn {
				continue
			}
			for _, kw := range t.Fields[f] {
				if kw.Text == "" {
					continue
				}
				if strings.Contains(lowered[col], strings.ToLower(kw.Text)) {
					m.Add(col, f)
					break
				}
			}
		}
	}

	// Pass 2: tokenized matching. Multi-word keywords match when every
	// keyword word appears among the header's words in any order; single
	// words must match a whole token, which catches headers like
	// "Hot T in" that substring search misses for "hot_in".
	for col := range headers {
		if lowered[col] == SourceColumn {
			continue
		}
		for _, f := range Fields {
			for _, kw := range t.Fields[f] {
				kwTokens := tokenize(kw.Text)
				switch {
				case len(kwTokens) > 1:
					if containsAllTokens(tokens[col], kwTokens) {
						m.Add(col, f)
					}
				case len(kwTokens) == 1:
					if containsToken(tokens[col], kwTokens[0]) {
						m.Add(col, f)
					}
				}
			}
		}
	}

	// Pass 3: inference for columns no earlier pass could place.
	for col := range headers {
		if m.Mapped(col) || lowered[col] == SourceColumn {
			continue
		}
		h := lowered[col]
		if containsDigit(h) {
			switch {
			case strings.Contains(h, "temp") || strings.Contains(h, "°") || strings.Contains(h, "deg"):
				m.Add(col, FieldTemperature)
			case strings.Contains(h, "bar") || strings.Contains(h, "psi") || strings.Contains(h, "pa"):
				m.Add(col, FieldPressure)
			case strings.Contains(h, "kg") || strings.Contains(h, "flow") || strings.Contains(h, "rate"):
				m.Add(col, FieldGenericFlow)
			}
			// Short tag-like headers ("E101", "HX-2") read as equipment names.
			if len([]rune(h)) <= 5 {
				m.Add(col, FieldEquipmentName)
			}
		}
	}

	return m
}

// containsAllTokens reports whether every want token appears in have.
func containsAllTokens(have, want []string) bool {
	for _, w := range want {
		if !containsToken(have, w) {
			return false
		}
	}
	return true
}

func containsToken(have []string, tok string) bool {
	for _, h := range have {
		if h == tok {
			return true
		}
	}
	return false
}
