// Package detector inspects a dump file and suggests the header layout it
// was written with.
package detector

import (
	"context"
	"os"

	"traindump/pkg/dump"
	"traindump/pkg/report"
)

// DetectionResult holds the result of inspecting a dump file.
type DetectionResult struct {
	SampledLines   int // Physical lines sampled
	RecordLines    int // Lines starting with '['
	MalformedLines int // Records whose value is not an integer
	HeaderRecords  int // Records among the first two physical lines
	SentinelLine   int // Line of the first zero record, 0 if none sampled

	Suggested report.HeaderMode // Empty when there is nothing to go on
	Ambiguous bool              // True when the header lines are a mix of records and text
	Reason    string
}

// HasSuggestion returns true if a header mode was suggested.
func (r *DetectionResult) HasSuggestion() bool {
	return r.Suggested != ""
}

// Detector inspects dump files.
type Detector struct {
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// New creates a new Detector.
func New(opts ...Option) *Detector {
	d := &Detector{sampleSize: 100}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile inspects the head of a dump file.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	lines, err := d.sampleFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.DetectFromLines(lines), nil
}

// DetectFromLines inspects a slice of physical dump lines.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	result := &DetectionResult{SampledLines: len(lines)}

	for i, line := range lines {
		entry, ok, err := dump.ParseLine(line)
		if !ok {
			continue
		}
		result.RecordLines++
		if i < report.HeaderLines {
			result.HeaderRecords++
		}
		if err != nil {
			result.MalformedLines++
			continue
		}
		if entry.IsSentinel() && result.SentinelLine == 0 {
			result.SentinelLine = i + 1
		}
	}

	switch {
	case result.RecordLines == 0:
		result.Reason = "no records found"
	case result.HeaderRecords == report.HeaderLines:
		result.Suggested = report.HeaderModeAware
		result.Reason = "the first two lines are records: reset timestamp and event index"
	case result.HeaderRecords == 0:
		result.Suggested = report.HeaderModeSkipLines
		result.Reason = "the first two lines are not records"
	default:
		result.Suggested = report.HeaderModeAware
		result.Ambiguous = true
		result.Reason = "only one of the first two lines is a record"
	}

	return result
}

// sampleFile reads up to sampleSize physical lines from a file, blank lines
// included, since the skip layout counts them.
func (d *Detector) sampleFile(_ context.Context, path string) ([]string, error) {
	// #nosec G304 - path is provided by user via CLI
	file, err := os.Open(path)
	if err != nil {
		return nil, &dump.FileAccessError{Path: path, Err: err}
	}
	defer file.Close()

	var lines []string
	scanner := dump.NewScanner(file)

	for len(lines) < d.sampleSize && scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, &dump.FileAccessError{Path: path, Err: err}
	}

	return lines, nil
}
