// Package output provides formatting of dump reports.
package output

import (
	"context"
	"io"

	"traindump/pkg/report"
)

// Formatter renders a dump report in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, r *report.Report, w io.Writer) error

	// Name returns the format name (text, json).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose appends skipped entries and the stop reason.
	Verbose bool

	// Quiet enables minimal summary-only output.
	Quiet bool
}

// New returns the formatter registered under name.
func New(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "text", "":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	default:
		return nil, &UnknownFormatError{Name: name}
	}
}

// UnknownFormatError is returned by New for an unsupported format name.
type UnknownFormatError struct {
	Name string
}

func (e *UnknownFormatError) Error() string {
	return "unknown output format \"" + e.Name + "\" (use text or json)"
}
