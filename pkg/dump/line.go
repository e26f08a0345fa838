package dump

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Separator splits the bracketed offset from the value.
const Separator = " = "

var errNoSeparator = errors.New("missing \" = \" separator")

// ParseLine parses a single dump line.
// Returns ok=false for lines that are not records (they do not start with '[').
// Returns a *MalformedEntryError when a record's value is not an integer.
func ParseLine(line string) (entry *Entry, ok bool, err error) {
	if len(line) == 0 || line[0] != '[' {
		return nil, false, nil
	}

	raw := strings.TrimRight(line, " \t\r\n")

	idx := strings.Index(raw, Separator)
	if idx < 0 {
		return nil, true, &MalformedEntryError{Line: raw, Err: errNoSeparator}
	}

	valueStr := raw[idx+len(Separator):]
	if hash := strings.IndexByte(valueStr, '#'); hash >= 0 {
		valueStr = valueStr[:hash]
	}
	valueStr = strings.TrimSpace(valueStr)

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return nil, true, &MalformedEntryError{
			Line: raw,
			Err:  fmt.Errorf("invalid value %q: %w", valueStr, errors.Unwrap(err)),
		}
	}

	return &Entry{
		Offset: parseOffset(raw[:idx]),
		Value:  value,
		Raw:    raw,
	}, true, nil
}

// parseOffset extracts the integer between the brackets, or 0.
func parseOffset(s string) int64 {
	end := strings.IndexByte(s, ']')
	if end < 1 {
		return 0
	}
	n, err := strconv.ParseUint(strings.TrimSpace(s[1:end]), 10, 63)
	if err != nil {
		return 0
	}
	return int64(n)
}
