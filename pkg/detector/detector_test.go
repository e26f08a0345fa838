package detector

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"traindump/pkg/dump"
	"traindump/pkg/report"
)

func TestDetector_DetectFromLines(t *testing.T) {
	tests := []struct {
		name          string
		lines         []string
		want          report.HeaderMode
		wantAmbiguous bool
	}{
		{
			name:  "bracket header",
			lines: []string{"[0] = 1000", "[4] = 16", "[8] = 128", "[16] = 0"},
			want:  report.HeaderModeAware,
		},
		{
			name:  "text header",
			lines: []string{"Train detector v2", "2020-12-04 20:54:00", "[8] = 128", "[16] = 196"},
			want:  report.HeaderModeSkipLines,
		},
		{
			name:          "mixed header",
			lines:         []string{"dump", "[0] = 1000", "[4] = 16", "[8] = 128"},
			want:          report.HeaderModeAware,
			wantAmbiguous: true,
		},
		{
			name:  "no records",
			lines: []string{"hello", "world"},
			want:  "",
		},
	}

	d := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := d.DetectFromLines(tt.lines)
			if result.Suggested != tt.want {
				t.Errorf("Suggested = %q, want %q", result.Suggested, tt.want)
			}
			if result.Ambiguous != tt.wantAmbiguous {
				t.Errorf("Ambiguous = %v, want %v", result.Ambiguous, tt.wantAmbiguous)
			}
			if result.HasSuggestion() != (tt.want != "") {
				t.Errorf("HasSuggestion() = %v", result.HasSuggestion())
			}
			if result.Reason == "" {
				t.Error("Reason is empty")
			}
		})
	}
}

func TestDetector_DetectFromLines_Counts(t *testing.T) {
	lines := []string{
		"[0] = 1000",
		"[4] = 16",
		"",
		"[8] = 128",
		"[16] = abc",
		"[24] = 0",
		"[32] = 0",
	}

	result := New().DetectFromLines(lines)
	if result.SampledLines != 7 {
		t.Errorf("SampledLines = %d, want 7", result.SampledLines)
	}
	if result.RecordLines != 6 {
		t.Errorf("RecordLines = %d, want 6", result.RecordLines)
	}
	if result.MalformedLines != 1 {
		t.Errorf("MalformedLines = %d, want 1", result.MalformedLines)
	}
	if result.SentinelLine != 6 {
		t.Errorf("SentinelLine = %d, want 6", result.SentinelLine)
	}
}

func TestDetector_DetectFromLines_EmptyInput(t *testing.T) {
	result := New().DetectFromLines(nil)
	if result.HasSuggestion() {
		t.Error("expected no suggestion for empty input")
	}
	if result.SampledLines != 0 {
		t.Errorf("SampledLines = %d, want 0", result.SampledLines)
	}
}

func TestDetector_WithSampleSize(t *testing.T) {
	d := New(WithSampleSize(500))
	if d.sampleSize != 500 {
		t.Errorf("sampleSize = %d, want 500", d.sampleSize)
	}
}

func TestDetector_WithSampleSize_Invalid(t *testing.T) {
	d := New(WithSampleSize(-1))
	if d.sampleSize != 100 {
		t.Errorf("sampleSize = %d, want default 100", d.sampleSize)
	}
}

func TestDetector_DetectFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "station.dump")
	content := "[0] = 1000\n[4] = 16\n[8] = 128\n[16] = 196\n[24] = 0\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := New(WithSampleSize(3)).DetectFromFile(context.Background(), path)
	if err != nil {
		t.Fatalf("DetectFromFile() error = %v", err)
	}
	if result.SampledLines != 3 {
		t.Errorf("SampledLines = %d, want 3", result.SampledLines)
	}
	if result.Suggested != report.HeaderModeAware {
		t.Errorf("Suggested = %q, want %q", result.Suggested, report.HeaderModeAware)
	}
}

func TestDetector_DetectFromFile_LongLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "long.dump")
	content := "firmware " + strings.Repeat("x", 200*1024) + "\nsensor v1\n[8] = 128\n[16] = 196\n[24] = 0\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := New().DetectFromFile(context.Background(), path)
	if err != nil {
		t.Fatalf("DetectFromFile() error = %v", err)
	}
	if result.Suggested != report.HeaderModeSkipLines {
		t.Errorf("Suggested = %q, want %q", result.Suggested, report.HeaderModeSkipLines)
	}

	// The report reader accepts the same file.
	if _, err := dump.Open(path); err != nil {
		t.Errorf("dump.Open() error = %v", err)
	}
}

func TestDetector_DetectFromFile_NotFound(t *testing.T) {
	_, err := New().DetectFromFile(context.Background(), "/nonexistent/station.dump")
	if err == nil {
		t.Error("expected error for missing file")
	}
}
