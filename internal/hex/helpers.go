package hex

import (
	"strconv"
	"strings"
)

// trimmed strips surrounding whitespace, including the UTF-8 BOM that
// spreadsheet exports sometimes leave on the first header.
func trimmed(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	return strings.TrimSpace(s)
}

// formatFloat renders a float the way spreadsheet values read: integers
// without a decimal point, everything else in the shortest round-trip form.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// tokenize splits a header (or keyword) on every non-alphanumeric rune,
// lower-cased. CJK characters count as letters, so multi-language headers
// tokenize the same way as Latin ones.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !isAlphanumeric(r)
	})
}

// stripParens removes parenthesized segments, which in spreadsheet headers
// carry unit annotations ("Hot T in (C)") rather than words of the name.
// Dropping them keeps single-letter unit symbols out of token matching.
func stripParens(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isAlphanumeric(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r > 127:
		// Non-ASCII letters (e.g. CJK) are treated as word characters.
		return r != '°' && r != '²' && r != '³'
	default:
		return false
	}
}

// containsDigit reports whether s contains at least one ASCII digit.
func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

func floatPtr(v float64) *float64 { return &v }
