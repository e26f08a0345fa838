package report

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"traindump/pkg/dump"
)

// Generator runs the report state machine over dump entries.
// A Generator is single use: create one per dump.
type Generator struct {
	start      StartDate
	layout     string
	headerMode HeaderMode
	policy     MalformedPolicy
	logger     *zerolog.Logger

	state  State
	report *Report
}

// Option configures a Generator.
type Option func(*Generator)

// WithHeaderMode sets the dump layout (default HeaderModeAware).
func WithHeaderMode(mode HeaderMode) Option {
	return func(g *Generator) {
		g.headerMode = mode
	}
}

// WithMalformedPolicy sets the policy for malformed records (default MalformedFail).
func WithMalformedPolicy(policy MalformedPolicy) Option {
	return func(g *Generator) {
		g.policy = policy
	}
}

// WithDateLayout sets the layout event dates are rendered with.
func WithDateLayout(layout string) Option {
	return func(g *Generator) {
		if layout != "" {
			g.layout = layout
		}
	}
}

// WithLogger sets the logger used for skip warnings. Without it the
// logger is taken from the context passed to Run.
func WithLogger(logger *zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a Generator for the given start date.
func NewGenerator(start StartDate, opts ...Option) (*Generator, error) {
	g := &Generator{
		start:      start,
		layout:     DefaultDateLayout,
		headerMode: HeaderModeAware,
		policy:     MalformedFail,
	}
	for _, opt := range opts {
		opt(g)
	}

	if !g.headerMode.Valid() {
		return nil, fmt.Errorf("invalid header mode %q (use %s or %s)", g.headerMode, HeaderModeAware, HeaderModeSkipLines)
	}
	if !g.policy.Valid() {
		return nil, fmt.Errorf("invalid malformed policy %q (use %s or %s)", g.policy, MalformedFail, MalformedSkip)
	}

	g.state = g.headerMode.InitialState()
	g.report = &Report{
		StartDate:  start.Raw,
		HeaderMode: g.headerMode,
		Events:     []Event{},
		FinalState: g.state,
	}
	return g, nil
}

// SourceOptions returns the dump.Source options the header mode requires.
func (g *Generator) SourceOptions() []dump.SourceOption {
	if g.headerMode == HeaderModeSkipLines {
		return []dump.SourceOption{dump.WithSkipLines(HeaderLines)}
	}
	return nil
}

// State returns the current state.
func (g *Generator) State() State {
	return g.state
}

// Report returns the report built so far.
func (g *Generator) Report() *Report {
	return g.report
}

// Step feeds one entry through the state machine and returns the event it
// produced, if any. Entries fed after StateDone are ignored.
// An event whose date cannot be represented yields a *dump.MalformedEntryError
// and leaves the state unchanged.
func (g *Generator) Step(entry *dump.Entry) (*Event, error) {
	if g.state == StateDone {
		return nil, nil
	}

	if entry.IsSentinel() {
		g.transition(StateDone)
		g.report.SentinelLine = entry.LineNum
		return nil, nil
	}

	switch g.state {
	case StateExpectReset:
		reset := DecomposeSeconds(entry.Value)
		g.report.LastReset = &reset
		g.transition(StateExpectIndex)
		return nil, nil

	case StateExpectIndex:
		g.transition(StateEvents)
		return nil, nil
	}

	date, err := g.start.Offset(entry.Value)
	if err != nil {
		return nil, &dump.MalformedEntryError{LineNum: entry.LineNum, Line: entry.Raw, Err: err}
	}
	event := Event{
		Number:     len(g.report.Events) + 1,
		Value:      entry.Value,
		Date:       date,
		DateString: date.Format(g.layout),
		Elapsed:    DecomposeSeconds(date.Unix() - g.start.Unix()),
		LineNum:    entry.LineNum,
	}
	g.report.Events = append(g.report.Events, event)
	return &event, nil
}

// Run drives every entry from src through the state machine and returns the
// finished report. Reading stops at the sentinel record or end of input.
func (g *Generator) Run(ctx context.Context, src dump.Source) (*Report, error) {
	logger := g.logger
	if logger == nil {
		logger = zerolog.Ctx(ctx)
	}

	if g.report.Source == "" {
		g.report.Source = src.Name()
	}

	for g.state != StateDone {
		entry, err := src.Next(ctx)
		if err == io.EOF {
			break
		}
		if err == nil {
			_, err = g.Step(entry)
		}
		if err != nil && !g.skip(logger, err) {
			return nil, err
		}
	}

	return g.report, nil
}

// skip records err as a skipped entry when it is a malformed entry and the
// policy allows it.
func (g *Generator) skip(logger *zerolog.Logger, err error) bool {
	var malformed *dump.MalformedEntryError
	if g.policy != MalformedSkip || !errors.As(err, &malformed) {
		return false
	}

	logger.Warn().
		Int("line", malformed.LineNum).
		Str("content", malformed.Line).
		Err(malformed.Err).
		Msg("skipping malformed dump entry")
	g.report.Skipped = append(g.report.Skipped, SkippedEntry{
		LineNum: malformed.LineNum,
		Line:    malformed.Line,
		Reason:  malformed.Err.Error(),
	})
	return true
}

func (g *Generator) transition(next State) {
	g.state = next
	g.report.FinalState = next
}
