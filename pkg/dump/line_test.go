package dump

import (
	"errors"
	"fmt"
	"strconv"
	"testing"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantOK     bool
		wantOffset int64
		wantValue  int64
		wantErr    bool
	}{
		{"simple", "[8] = 128", true, 8, 128, false},
		{"trailing newline", "[16] = 196\n", true, 16, 196, false},
		{"trailing crlf", "[16] = 196\r\n", true, 16, 196, false},
		{"trailing comment", "[0] = 1000 # Actual timestamp", true, 0, 1000, false},
		{"padded comment", "[4] = 16   # Index of the actual event address", true, 4, 16, false},
		{"negative value", "[8] = -42", true, 8, -42, false},
		{"zero", "[24] = 0", true, 24, 0, false},
		{"non-numeric offset", "[x] = 5", true, 0, 5, false},
		{"blank line", "", false, 0, 0, false},
		{"comment line", "# dump of 2020-12-04", false, 0, 0, false},
		{"leading space", " [8] = 128", false, 0, 0, false},
		{"bracketless", "8 = 128", false, 0, 0, false},
		{"malformed value", "[8] = abc", true, 0, 0, true},
		{"missing separator", "[8]=128", true, 0, 0, true},
		{"empty value", "[8] = ", true, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, ok, err := ParseLine(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ParseLine(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLine(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
			if !ok || tt.wantErr {
				if entry != nil {
					t.Errorf("ParseLine(%q) entry = %+v, want nil", tt.line, entry)
				}
				return
			}
			if entry.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", entry.Offset, tt.wantOffset)
			}
			if entry.Value != tt.wantValue {
				t.Errorf("Value = %d, want %d", entry.Value, tt.wantValue)
			}
		})
	}
}

func TestParseLine_ValueIndependentOfOffset(t *testing.T) {
	values := []int64{1, 128, 196, -1, 1 << 40}
	offsets := []int{0, 4, 8, 1024}
	suffixes := []string{"", "  ", "\t", " # note", "   # another # note"}

	for _, v := range values {
		for _, i := range offsets {
			for _, suffix := range suffixes {
				line := fmt.Sprintf("[%d] = %d%s", i, v, suffix)
				entry, ok, err := ParseLine(line)
				if !ok || err != nil {
					t.Fatalf("ParseLine(%q) ok=%v err=%v", line, ok, err)
				}
				if entry.Value != v {
					t.Errorf("ParseLine(%q) Value = %d, want %d", line, entry.Value, v)
				}
			}
		}
	}
}

func TestParseLine_MalformedError(t *testing.T) {
	_, _, err := ParseLine("[8] = abc")

	var malformed *MalformedEntryError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *MalformedEntryError, got %T", err)
	}
	if malformed.Line != "[8] = abc" {
		t.Errorf("Line = %q, want %q", malformed.Line, "[8] = abc")
	}
	if !errors.Is(err, strconv.ErrSyntax) {
		t.Errorf("expected error to wrap strconv.ErrSyntax, got %v", err)
	}
}

func TestParseLine_Overflow(t *testing.T) {
	_, _, err := ParseLine("[8] = 99999999999999999999")
	if !errors.Is(err, strconv.ErrRange) {
		t.Errorf("expected strconv.ErrRange, got %v", err)
	}
}

func TestEntry_IsSentinel(t *testing.T) {
	if !(&Entry{Value: 0}).IsSentinel() {
		t.Error("value 0 should be a sentinel")
	}
	if (&Entry{Value: -1}).IsSentinel() {
		t.Error("value -1 should not be a sentinel")
	}
}
