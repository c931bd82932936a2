package types

import "fmt"

// Warning codes. Anomalies in legacy source data are surfaced as data, not
// raised as errors; each code identifies one well-defined degradation.
const (
	WarnIncompleteBatch   = "incomplete_batch"
	WarnDuplicateIndex    = "duplicate_index"
	WarnListCountMismatch = "list_count_mismatch"
	WarnListSumMismatch   = "list_sum_mismatch"
)

// Warning records a non-fatal anomaly with enough coordinates to attribute
// it to a specific client, form, section, and field.
type Warning struct {
	Code    string
	Client  string
	Form    string
	Section int
	Field   string
	Message string
}

func (w Warning) String() string {
	loc := w.Client
	if w.Form != "" {
		loc += "/form " + w.Form
	}
	if w.Section != 0 {
		loc += fmt.Sprintf("/section %d", w.Section)
	}
	if w.Field != "" {
		loc += "/field " + w.Field
	}
	return fmt.Sprintf("%s [%s]: %s", w.Code, loc, w.Message)
}
