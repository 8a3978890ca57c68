package hex

// validate.go attaches physical-consistency warnings to extracted records.
// Every check is independent and non-fatal: a record can accumulate any
// number of warnings and is never dropped or modified beyond annotation.

import "fmt"

// Realistic inlet temperature bounds in °C. Values outside these ranges
// are flagged, not rejected.
const (
	hotInletMin  = -50.0
	hotInletMax  = 1000.0
	coldInletMin = -100.0
	coldInletMax = 500.0
)

// Validate runs all consistency checks over the record and returns the
// warnings. Callers normally use AnnotateRecord, which also attaches them.
func Validate(r *Record) []string {
	var warnings []string

	hotIn, hotOut := r.HotInletTemp, r.HotOutletTemp
	coldIn, coldOut := r.ColdInletTemp, r.ColdOutletTemp

	// Hot stream should cool down across the exchanger.
	if hotIn != nil && hotOut != nil && *hotIn <= *hotOut {
		warnings = append(warnings, fmt.Sprintf(
			"Hot stream inlet temp (%s°C) should be > outlet temp (%s°C)",
			formatFloat(*hotIn), formatFloat(*hotOut)))
	}

	// Cold stream should heat up.
	if coldIn != nil && coldOut != nil && *coldOut <= *coldIn {
		warnings = append(warnings, fmt.Sprintf(
			"Cold stream outlet temp (%s°C) should be > inlet temp (%s°C)",
			formatFloat(*coldOut), formatFloat(*coldIn)))
	}

	// Heat transfer feasibility: the hot side must stay hotter.
	if hotIn != nil && coldOut != nil && *hotIn <= *coldOut {
		warnings = append(warnings, fmt.Sprintf(
			"Hot inlet (%s°C) should be > cold outlet (%s°C) for heat transfer",
			formatFloat(*hotIn), formatFloat(*coldOut)))
	}
	if hotOut != nil && coldIn != nil && *hotOut <= *coldIn {
		warnings = append(warnings, fmt.Sprintf(
			"Hot outlet (%s°C) should be > cold inlet (%s°C) for heat transfer",
			formatFloat(*hotOut), formatFloat(*coldIn)))
	}

	// Inlet temperatures outside plant-realistic ranges.
	if hotIn != nil && (*hotIn < hotInletMin || *hotIn > hotInletMax) {
		warnings = append(warnings, fmt.Sprintf(
			"Hot inlet temperature (%s°C) seems unrealistic", formatFloat(*hotIn)))
	}
	if coldIn != nil && (*coldIn < coldInletMin || *coldIn > coldInletMax) {
		warnings = append(warnings, fmt.Sprintf(
			"Cold inlet temperature (%s°C) seems unrealistic", formatFloat(*coldIn)))
	}

	// Flow rates must be positive when present.
	if r.HotFlow != nil && *r.HotFlow <= 0 {
		warnings = append(warnings, fmt.Sprintf(
			"Hot stream flow rate (%s) should be positive", formatFloat(*r.HotFlow)))
	}
	if r.ColdFlow != nil && *r.ColdFlow <= 0 {
		warnings = append(warnings, fmt.Sprintf(
			"Cold stream flow rate (%s) should be positive", formatFloat(*r.ColdFlow)))
	}

	// Duty and area should come as a pair.
	duty := 0.0
	if r.Duty != nil {
		duty = *r.Duty
	}
	area := 0.0
	if r.Area != nil {
		area = *r.Area
	}
	if duty > 0 && area <= 0 {
		warnings = append(warnings, "Heat duty specified but no heat transfer area")
	}
	if area > 0 && duty <= 0 {
		warnings = append(warnings, "Heat transfer area specified but no heat duty")
	}

	return warnings
}

// AnnotateRecord validates r and appends the resulting warnings to it.
func AnnotateRecord(r *Record) {
	r.Warnings = append(r.Warnings, Validate(r)...)
}
