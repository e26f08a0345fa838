// Package report correlates dump entries with a start date and builds the
// event report.
package report

import "time"

// Event is one recognized event record.
type Event struct {
	// Number is the 1-based position among events.
	Number int `json:"number"`

	// Value is the raw seconds offset from the dump.
	Value int64 `json:"value"`

	// Date is the start date plus Value seconds.
	Date time.Time `json:"date"`

	// DateString is Date rendered with the report's date layout.
	DateString string `json:"date_string"`

	// Elapsed is the magnitude of the span between the start date and Date.
	Elapsed Duration `json:"elapsed"`

	// LineNum is the 1-based line number in the dump file.
	LineNum int `json:"line"`
}

// SkippedEntry is a malformed record dropped under MalformedSkip.
type SkippedEntry struct {
	LineNum int    `json:"line"`
	Line    string `json:"content"`
	Reason  string `json:"reason"`
}

// Report is the complete result of reading one dump.
type Report struct {
	// StartDate is the start date as given.
	StartDate string `json:"start_date"`

	// Source is the dump file the report was built from.
	Source string `json:"source,omitempty"`

	// HeaderMode is the layout the dump was read with.
	HeaderMode HeaderMode `json:"header_mode"`

	// LastReset is the device clock at last memory reset. Only set in
	// HeaderModeAware when the reset record was read.
	LastReset *Duration `json:"last_reset,omitempty"`

	// Events holds the recognized events in file order.
	Events []Event `json:"events"`

	// Skipped holds malformed records dropped under MalformedSkip.
	Skipped []SkippedEntry `json:"skipped,omitempty"`

	// FinalState is the generator state when reading stopped.
	FinalState State `json:"final_state"`

	// SentinelLine is the line of the terminating zero record, 0 if the
	// dump ended without one.
	SentinelLine int `json:"sentinel_line,omitempty"`
}

// HasEvents returns true if at least one event was recognized.
func (r *Report) HasEvents() bool {
	return len(r.Events) > 0
}

// StoppedAtSentinel returns true if reading ended on a zero record.
func (r *Report) StoppedAtSentinel() bool {
	return r.FinalState == StateDone
}
