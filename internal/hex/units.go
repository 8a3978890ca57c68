package hex

// units.go converts raw numeric values to canonical units using the
// originating header text as the unit hint. Canonical units: duty in kW,
// area in m². Temperatures, pressures and flows pass through unchanged.
//
// Duty and area are returned as absolute values; the sign, and with it the
// heating-vs-cooling distinction, is discarded. See DESIGN.md.

import (
	"math"
	"strings"
)

// unitRule is one header-token to scale-factor entry. Rules are checked in
// order, so more specific tokens ("kj/h") must precede their substrings
// ("j/h").
type unitRule struct {
	tokens []string
	factor float64
	// excludes vetoes the rule when any of these tokens is also present,
	// e.g. a bare "w" must not fire on a "kW" header.
	excludes []string
}

var dutyRules = []unitRule{
	{tokens: []string{"kj/h", "kj/hr"}, factor: 1.0 / 3600},
	{tokens: []string{"mj/h", "mj/hr"}, factor: 1000.0 / 3600},
	{tokens: []string{"j/h", "j/hr"}, factor: 1.0 / 3600000},
	{tokens: []string{"btu/h", "btu/hr"}, factor: 0.000293071},
	{tokens: []string{"kcal/h", "kcal/hr"}, factor: 0.001163},
	{tokens: []string{"mw", "megawatt"}, factor: 1000},
	{tokens: []string{"w", "watt"}, factor: 1.0 / 1000, excludes: []string{"kw"}},
}

var areaRules = []unitRule{
	{tokens: []string{"ft2", "ft²", "sq_ft", "sqft"}, factor: 0.092903},
	{tokens: []string{"in2", "in²", "sq_in", "sqin"}, factor: 0.00064516},
	{tokens: []string{"cm2", "cm²"}, factor: 1.0 / 10000},
	{tokens: []string{"mm2", "mm²"}, factor: 1.0 / 1000000},
}

// NormalizeDuty converts a duty value to kW based on unit tokens in the
// header. Headers naming no known unit are assumed to already be in kW.
func NormalizeDuty(value float64, header string) float64 {
	return normalize(value, header, dutyRules)
}

// NormalizeArea converts an area value to m² based on unit tokens in the
// header. Headers naming no known unit are assumed to already be in m².
func NormalizeArea(value float64, header string) float64 {
	return normalize(value, header, areaRules)
}

// Normalize converts a raw value to field f's canonical unit. Fields other
// than duty and area have no unit table and pass through unchanged.
func Normalize(f Field, value float64, header string) float64 {
	switch f {
	case FieldDuty:
		return NormalizeDuty(value, header)
	case FieldArea:
		return NormalizeArea(value, header)
	default:
		return value
	}
}

func normalize(value float64, header string, rules []unitRule) float64 {
	if value == 0 {
		return 0
	}
	h := strings.ToLower(header)
	for _, rule := range rules {
		if !containsAny(h, rule.tokens) {
			continue
		}
		if containsAny(h, rule.excludes) {
			continue
		}
		return math.Abs(value * rule.factor)
	}
	return math.Abs(value)
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}
