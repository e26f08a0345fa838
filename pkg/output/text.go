package output

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"traindump/pkg/report"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, r *report.Report, w io.Writer) error {
	bw := bufio.NewWriter(w)
	if f.opts.Quiet {
		f.formatQuiet(r, bw)
	} else {
		f.formatFull(r, bw)
	}
	return bw.Flush()
}

func (f *TextFormatter) formatQuiet(r *report.Report, w io.Writer) {
	fmt.Fprintf(w, "Start date: %s, %d event(s), %s\n", r.StartDate, len(r.Events), stopReason(r))
}

func (f *TextFormatter) formatFull(r *report.Report, w io.Writer) {
	fmt.Fprintf(w, "Start date: %s\n", r.StartDate)

	if r.LastReset != nil {
		fmt.Fprintf(w, "Last timestamp: %s\n", r.LastReset)
	}

	for _, e := range r.Events {
		fmt.Fprintf(w, "Event no #%d date: %s (%s)\n", e.Number, e.DateString, e.Elapsed)
	}

	if !f.opts.Verbose {
		return
	}

	fmt.Fprintln(w, "---")
	if r.Source != "" {
		fmt.Fprintf(w, "Source: %s\n", r.Source)
	}
	fmt.Fprintf(w, "Header mode: %s\n", r.HeaderMode)
	fmt.Fprintf(w, "Events: %d\n", len(r.Events))
	for _, s := range r.Skipped {
		fmt.Fprintf(w, "Skipped line %d: %s (%s)\n", s.LineNum, s.Line, s.Reason)
	}
	fmt.Fprintf(w, "Stopped: %s\n", stopReason(r))
}

func stopReason(r *report.Report) string {
	if r.StoppedAtSentinel() {
		return fmt.Sprintf("sentinel at line %d", r.SentinelLine)
	}
	return "end of input"
}
