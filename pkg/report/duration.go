package report

import (
	"fmt"
	"time"
)

// Duration is an elapsed magnitude split into days, hours, minutes and seconds.
type Duration struct {
	Days    uint64 `json:"days"`
	Hours   uint64 `json:"hours"`
	Minutes uint64 `json:"minutes"`
	Seconds uint64 `json:"seconds"`
}

// DecomposeSeconds splits the magnitude of secs into a Duration.
func DecomposeSeconds(secs int64) Duration {
	total := absSeconds(secs)

	minutes, seconds := total/60, total%60
	hours, minutes := minutes/60, minutes%60
	days, hours := hours/24, hours%24

	return Duration{Days: days, Hours: hours, Minutes: minutes, Seconds: seconds}
}

// Decompose splits the magnitude of d into a Duration, discarding
// sub-second precision.
func Decompose(d time.Duration) Duration {
	return DecomposeSeconds(int64(d / time.Second))
}

// TotalSeconds reassembles the duration into seconds.
func (d Duration) TotalSeconds() uint64 {
	return ((d.Days*24+d.Hours)*60+d.Minutes)*60 + d.Seconds
}

// String renders the duration as "{d}d {h}h {m}m {s}s".
func (d Duration) String() string {
	return fmt.Sprintf("%dd %dh %dm %ds", d.Days, d.Hours, d.Minutes, d.Seconds)
}

// FormatDuration renders the magnitude of d. The sign is never shown.
func FormatDuration(d time.Duration) string {
	return Decompose(d).String()
}

// FormatSeconds renders the magnitude of secs.
func FormatSeconds(secs int64) string {
	return DecomposeSeconds(secs).String()
}

func absSeconds(secs int64) uint64 {
	if secs < 0 {
		// -(secs+1) cannot overflow, even for math.MinInt64.
		return uint64(-(secs + 1)) + 1
	}
	return uint64(secs)
}
