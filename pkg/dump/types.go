// Package dump provides reading and parsing of train detector memory dumps.
//
// A dump is plain text with one record per line:
//
//	[0] = 1000 # timestamp since last memory reset
//	[4] = 16   # index of the current event address
//	[8] = 128  # first event
//
// Lines that do not start with '[' are ignored.
package dump

// Entry is a single record parsed from a "[<offset>] = <value>" line.
type Entry struct {
	// Offset is the bracketed index. It is informational only and is 0
	// when the bracket does not hold a non-negative integer.
	Offset int64

	// Value is the signed payload, a count of seconds.
	Value int64

	// Raw is the line content with trailing whitespace removed.
	Raw string

	// LineNum is the 1-based line number in the source file.
	LineNum int
}

// IsSentinel reports whether the entry marks the end of recorded events.
func (e *Entry) IsSentinel() bool {
	return e.Value == 0
}
