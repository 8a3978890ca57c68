package hex

import (
	"strings"
	"testing"
)

// ============================================================================
// Validate Tests
// ============================================================================

func TestValidateConsistentRecordHasNoWarnings(t *testing.T) {
	rec := &Record{
		Name:           "E-101",
		Duty:           floatPtr(500),
		Area:           floatPtr(125),
		HotInletTemp:   floatPtr(200),
		HotOutletTemp:  floatPtr(150),
		ColdInletTemp:  floatPtr(30),
		ColdOutletTemp: floatPtr(90),
		HotFlow:        floatPtr(1000),
		ColdFlow:       floatPtr(1200),
	}

	if warnings := Validate(rec); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestValidateWarnings(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{
			name: "hot stream must cool",
			rec:  Record{HotInletTemp: floatPtr(100), HotOutletTemp: floatPtr(150)},
			want: "Hot stream inlet temp (100°C) should be > outlet temp (150°C)",
		},
		{
			name: "cold stream must heat",
			rec:  Record{ColdInletTemp: floatPtr(90), ColdOutletTemp: floatPtr(40)},
			want: "Cold stream outlet temp (40°C) should be > inlet temp (90°C)",
		},
		{
			name: "hot inlet must exceed cold outlet",
			rec:  Record{HotInletTemp: floatPtr(80), ColdOutletTemp: floatPtr(95)},
			want: "Hot inlet (80°C) should be > cold outlet (95°C) for heat transfer",
		},
		{
			name: "hot outlet must exceed cold inlet",
			rec:  Record{HotOutletTemp: floatPtr(20), ColdInletTemp: floatPtr(25)},
			want: "Hot outlet (20°C) should be > cold inlet (25°C) for heat transfer",
		},
		{
			name: "unrealistic hot inlet",
			rec:  Record{HotInletTemp: floatPtr(1500)},
			want: "Hot inlet temperature (1500°C) seems unrealistic",
		},
		{
			name: "unrealistic cold inlet",
			rec:  Record{ColdInletTemp: floatPtr(-150)},
			want: "Cold inlet temperature (-150°C) seems unrealistic",
		},
		{
			name: "non-positive hot flow",
			rec:  Record{HotFlow: floatPtr(-5)},
			want: "Hot stream flow rate (-5) should be positive",
		},
		{
			name: "non-positive cold flow",
			rec:  Record{ColdFlow: floatPtr(0)},
			want: "Cold stream flow rate (0) should be positive",
		},
		{
			name: "duty without area",
			rec:  Record{Duty: floatPtr(500)},
			want: "Heat duty specified but no heat transfer area",
		},
		{
			name: "area without duty",
			rec:  Record{Area: floatPtr(125)},
			want: "Heat transfer area specified but no heat duty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := Validate(&tt.rec)
			for _, w := range warnings {
				if w == tt.want {
					return
				}
			}
			t.Errorf("missing warning %q in %v", tt.want, warnings)
		})
	}
}

func TestValidateChecksAreIndependent(t *testing.T) {
	// A thoroughly broken record accumulates warnings from every check.
	rec := &Record{
		Duty:           floatPtr(500), // duty without area
		HotInletTemp:   floatPtr(1500),
		HotOutletTemp:  floatPtr(2000), // inlet <= outlet
		ColdInletTemp:  floatPtr(-150),
		ColdOutletTemp: floatPtr(-200), // outlet <= inlet
		HotFlow:        floatPtr(-1),
		ColdFlow:       floatPtr(-1),
	}

	warnings := Validate(rec)
	if len(warnings) < 7 {
		t.Errorf("expected at least 7 independent warnings, got %d: %v",
			len(warnings), warnings)
	}
}

func TestValidateBoundaryTemperatures(t *testing.T) {
	// Values exactly on the bounds are acceptable.
	ok := &Record{HotInletTemp: floatPtr(1000), ColdInletTemp: floatPtr(-100)}
	for _, w := range Validate(ok) {
		if strings.Contains(w, "unrealistic") {
			t.Errorf("boundary temperature flagged: %v", w)
		}
	}
}

func TestAnnotateRecordAppends(t *testing.T) {
	rec := &Record{
		Duty:     floatPtr(500),
		Warnings: []string{"existing"},
	}
	AnnotateRecord(rec)

	if len(rec.Warnings) != 2 || rec.Warnings[0] != "existing" {
		t.Errorf("AnnotateRecord must append, got %v", rec.Warnings)
	}
}
