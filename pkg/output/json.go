package output

import (
	"context"
	"encoding/json"
	"io"

	"traindump/pkg/report"
)

// JSONFormatter formats reports as JSON.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Summary is the quiet-mode JSON document.
type Summary struct {
	StartDate    string       `json:"start_date"`
	Events       int          `json:"events"`
	Skipped      int          `json:"skipped"`
	FinalState   report.State `json:"final_state"`
	SentinelLine int          `json:"sentinel_line,omitempty"`
}

// Format renders the report as JSON.
func (f *JSONFormatter) Format(ctx context.Context, r *report.Report, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if f.opts.Quiet {
		return encoder.Encode(Summary{
			StartDate:    r.StartDate,
			Events:       len(r.Events),
			Skipped:      len(r.Skipped),
			FinalState:   r.FinalState,
			SentinelLine: r.SentinelLine,
		})
	}

	return encoder.Encode(r)
}
