package hex

import (
	"math"
	"testing"
)

// ============================================================================
// NormalizeDuty Tests
// ============================================================================

func TestNormalizeDuty(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		header string
		want   float64
	}{
		// Conversions
		{name: "kJ/h to kW", value: 1800000, header: "Load Kj/h", want: 500},
		{name: "MJ/h to kW", value: 36, header: "Duty (MJ/h)", want: 10},
		{name: "J/h to kW", value: 3600000, header: "Q j/h", want: 1},
		{name: "BTU/h to kW", value: 100000, header: "Duty BTU/h", want: 29.3071},
		{name: "kcal/h to kW", value: 1000, header: "Load kcal/h", want: 1.163},
		{name: "MW to kW", value: 1.5, header: "Power MW", want: 1500},
		{name: "bare W to kW", value: 2500, header: "Duty (W)", want: 2.5},

		// The /hr spellings are accepted too
		{name: "kJ/hr spelling", value: 3600, header: "Duty kJ/hr", want: 1},

		// kW headers must not trip the bare-watt rule
		{name: "kW passes through", value: 500, header: "Duty (kW)", want: 500},
		{name: "unknown unit passes through", value: 750, header: "Heat Duty", want: 750},

		// Sign is discarded
		{name: "negative duty becomes absolute", value: -500, header: "Duty (kW)", want: 500},
		{name: "negative with conversion", value: -1800000, header: "Load kJ/h", want: 500},

		// Zero is preserved
		{name: "zero stays zero", value: 0, header: "Duty (kW)", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDuty(tt.value, tt.header)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("NormalizeDuty(%v, %q) = %v, want %v", tt.value, tt.header, got, tt.want)
			}
		})
	}
}

// ============================================================================
// NormalizeArea Tests
// ============================================================================

func TestNormalizeArea(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		header string
		want   float64
	}{
		{name: "ft2 to m2", value: 100, header: "Area ft2", want: 9.2903},
		{name: "ft² unicode to m2", value: 100, header: "Area (ft²)", want: 9.2903},
		{name: "in2 to m2", value: 1000, header: "Surface in2", want: 0.64516},
		{name: "cm2 to m2", value: 10000, header: "Area cm2", want: 1},
		{name: "mm2 to m2", value: 1000000, header: "Area mm2", want: 1},
		{name: "m2 passes through", value: 125, header: "Area m2", want: 125},
		{name: "unlabeled passes through", value: 125, header: "Area", want: 125},
		{name: "negative becomes absolute", value: -125, header: "Area m2", want: 125},
		{name: "zero stays zero", value: 0, header: "Area ft2", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeArea(tt.value, tt.header)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("NormalizeArea(%v, %q) = %v, want %v", tt.value, tt.header, got, tt.want)
			}
		})
	}
}

// ============================================================================
// Normalize Dispatch Tests
// ============================================================================

func TestNormalizePassThroughFields(t *testing.T) {
	// Temperatures, pressures and flows keep their raw value regardless of
	// unit-looking header text.
	for _, f := range []Field{FieldHotInletTemp, FieldPressure, FieldGenericFlow} {
		if got := Normalize(f, -42.5, "whatever (kJ/h)"); got != -42.5 {
			t.Errorf("Normalize(%s) = %v, want -42.5", f, got)
		}
	}

	if got := Normalize(FieldDuty, 3600, "Duty kJ/h"); got != 1 {
		t.Errorf("Normalize(duty) = %v, want 1", got)
	}
	if got := Normalize(FieldArea, 10000, "Area cm2"); got != 1 {
		t.Errorf("Normalize(area) = %v, want 1", got)
	}
}
