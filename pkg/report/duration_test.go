package report

import (
	"math"
	"testing"
	"time"
)

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{0, "0d 0h 0m 0s"},
		{59, "0d 0h 0m 59s"},
		{60, "0d 0h 1m 0s"},
		{128, "0d 0h 2m 8s"},
		{1000, "0d 0h 16m 40s"},
		{3600, "0d 1h 0m 0s"},
		{86399, "0d 23h 59m 59s"},
		{86400, "1d 0h 0m 0s"},
		{90061, "1d 1h 1m 1s"},
		{-90061, "1d 1h 1m 1s"},
	}

	for _, tt := range tests {
		if got := FormatSeconds(tt.secs); got != tt.want {
			t.Errorf("FormatSeconds(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestFormatDuration_DiscardsSubSecond(t *testing.T) {
	d := 90*time.Second + 999*time.Millisecond
	if got := FormatDuration(d); got != "0d 0h 1m 30s" {
		t.Errorf("FormatDuration(%v) = %q, want %q", d, got, "0d 0h 1m 30s")
	}
	if got := FormatDuration(-d); got != "0d 0h 1m 30s" {
		t.Errorf("FormatDuration(%v) = %q, want %q", -d, got, "0d 0h 1m 30s")
	}
}

func TestDecomposeSeconds_SignSymmetricAndReassembles(t *testing.T) {
	samples := []int64{0, 1, 59, 60, 61, 3599, 3600, 86399, 86400, 1000, 1234567, 987654321, math.MaxInt64}

	for _, s := range samples {
		pos := DecomposeSeconds(s)
		neg := DecomposeSeconds(-s)
		if pos != neg {
			t.Errorf("DecomposeSeconds(%d) = %+v, DecomposeSeconds(%d) = %+v", s, pos, -s, neg)
		}
		if pos.TotalSeconds() != uint64(s) {
			t.Errorf("DecomposeSeconds(%d).TotalSeconds() = %d", s, pos.TotalSeconds())
		}
		if pos.Seconds >= 60 || pos.Minutes >= 60 || pos.Hours >= 24 {
			t.Errorf("DecomposeSeconds(%d) = %+v has an out-of-range field", s, pos)
		}
	}
}

func TestDecomposeSeconds_MinInt64(t *testing.T) {
	d := DecomposeSeconds(math.MinInt64)
	if d.TotalSeconds() != uint64(math.MaxInt64)+1 {
		t.Errorf("TotalSeconds() = %d, want %d", d.TotalSeconds(), uint64(math.MaxInt64)+1)
	}
}
