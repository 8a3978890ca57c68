package hex

// TableAccessError is the only fatal error the engine produces. It is
// returned when the caller supplies no tables at all; every other failure
// is recovered row-locally and recorded in the session log instead.
type TableAccessError struct {
	Reason string
}

func (e *TableAccessError) Error() string {
	if e.Reason != "" {
		return "table access: " + e.Reason
	}
	return "table access: no tables supplied"
}
