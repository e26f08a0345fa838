package report

import "fmt"

// State is a position in the report state machine.
type State int

const (
	// StateExpectReset waits for the last-reset timestamp record.
	StateExpectReset State = iota
	// StateExpectIndex waits for the event index record, which is discarded.
	StateExpectIndex
	// StateEvents treats every record as an event.
	StateEvents
	// StateDone is terminal; reached on the sentinel record.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateExpectReset:
		return "expect_reset"
	case StateExpectIndex:
		return "expect_index"
	case StateEvents:
		return "events"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(text []byte) error {
	for c := StateExpectReset; c <= StateDone; c++ {
		if c.String() == string(text) {
			*s = c
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}

// HeaderMode selects how the start of a dump is interpreted.
type HeaderMode string

const (
	// HeaderModeAware treats the first two records as the last-reset
	// timestamp and the event index.
	HeaderModeAware HeaderMode = "aware"
	// HeaderModeSkipLines drops the first two physical lines and treats
	// every following record as an event.
	HeaderModeSkipLines HeaderMode = "skip-first-two-lines"
)

// HeaderLines is the number of physical lines HeaderModeSkipLines drops.
const HeaderLines = 2

// Valid reports whether m is a known header mode.
func (m HeaderMode) Valid() bool {
	return m == HeaderModeAware || m == HeaderModeSkipLines
}

// InitialState returns the state a generator in this mode starts in.
func (m HeaderMode) InitialState() State {
	if m == HeaderModeSkipLines {
		return StateEvents
	}
	return StateExpectReset
}

// MalformedPolicy selects what happens to records whose value is not an integer.
type MalformedPolicy string

const (
	// MalformedFail aborts the run with the *dump.MalformedEntryError.
	MalformedFail MalformedPolicy = "fail"
	// MalformedSkip logs a warning and records the entry in Report.Skipped.
	MalformedSkip MalformedPolicy = "skip"
)

// Valid reports whether p is a known policy.
func (p MalformedPolicy) Valid() bool {
	return p == MalformedFail || p == MalformedSkip
}
