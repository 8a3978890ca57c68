package hex

import (
	"reflect"
	"testing"
)

// ============================================================================
// trimmed Tests
// ============================================================================

func TestTrimmed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "Duty", want: "Duty"},
		{name: "surrounding space", input: "  Duty  ", want: "Duty"},
		{name: "leading byte order mark", input: "\ufeffHX Tag", want: "HX Tag"},
		{name: "byte order mark and space", input: "\ufeff  Name ", want: "Name"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trimmed(tt.input); got != tt.want {
				t.Errorf("trimmed(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ============================================================================
// tokenize / stripParens Tests
// ============================================================================

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "words and separators", input: "Hot T in (C)", want: []string{"hot", "t", "in", "c"}},
		{name: "unit symbols excluded", input: "Area m²", want: []string{"area", "m"}},
		{name: "chinese counts as letters", input: "换热器 负荷", want: []string{"换热器", "负荷"}},
		{name: "empty", input: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripParens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "unit annotation", input: "Hot T in (C)", want: "Hot T in "},
		{name: "nested", input: "Duty ((kW))", want: "Duty "},
		{name: "unbalanced close", input: "a) b", want: "a b"},
		{name: "no parens", input: "Area", want: "Area"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripParens(tt.input); got != tt.want {
				t.Errorf("stripParens(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
