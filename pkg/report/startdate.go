package report

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// DefaultDateLayout is the YYYY-MM-DD HH:MM:SS layout used for start dates
// and for rendering event dates.
const DefaultDateLayout = "2006-01-02 15:04:05"

// FormatError is returned when a start date does not match the expected layout.
type FormatError struct {
	Input  string
	Layout string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("start date %q does not match layout %q: %v", e.Input, e.Layout, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// StartDate is the reference point all event offsets are added to.
type StartDate struct {
	// Raw is the string as given, echoed in the report header.
	Raw string

	// Time is the parsed instant, truncated to whole seconds.
	Time time.Time
}

// ParseStartDate parses s with layout in loc.
// An empty layout selects DefaultDateLayout; a nil loc selects time.Local.
func ParseStartDate(s, layout string, loc *time.Location) (StartDate, error) {
	if layout == "" {
		layout = DefaultDateLayout
	}
	if loc == nil {
		loc = time.Local
	}

	t, err := time.ParseInLocation(layout, s, loc)
	if err != nil {
		return StartDate{}, &FormatError{Input: s, Layout: layout, Err: err}
	}

	return StartDate{Raw: s, Time: t.Truncate(time.Second)}, nil
}

// Unix returns the start date as POSIX seconds.
func (s StartDate) Unix() int64 {
	return s.Time.Unix()
}

// Latest and earliest years an event date may fall in; the date layouts
// render the year with four digits.
const (
	minEventYear = 0
	maxEventYear = 9999
)

// Offset returns the instant value seconds after the start date, in the
// start date's location. Offsets that overflow the POSIX seconds range or
// land outside years 0000-9999 return an error wrapping strconv.ErrRange.
func (s StartDate) Offset(value int64) (time.Time, error) {
	start := s.Time.Unix()
	if (value > 0 && start > math.MaxInt64-value) || (value < 0 && start < math.MinInt64-value) {
		return time.Time{}, fmt.Errorf("offset %d from %s: %w", value, s.Raw, strconv.ErrRange)
	}

	t := time.Unix(start+value, 0).In(s.Time.Location())
	if y := t.Year(); y < minEventYear || y > maxEventYear {
		return time.Time{}, fmt.Errorf("offset %d from %s lands in year %d: %w", value, s.Raw, y, strconv.ErrRange)
	}
	return t, nil
}
