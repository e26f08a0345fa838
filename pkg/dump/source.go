package dump

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
)

// Source provides an iterator over dump entries.
// Implementations must be safe for sequential access (not concurrent).
type Source interface {
	// Next returns the next entry.
	// Returns io.EOF when no more entries are available.
	// Lines that are not records are skipped. A malformed record yields a
	// *MalformedEntryError; the source has advanced past it, so the caller
	// may keep calling Next.
	Next(ctx context.Context) (*Entry, error)

	// Name identifies the source, typically the file path.
	Name() string
}

// SourceOption configures a LineSource.
type SourceOption func(*LineSource)

// WithSkipLines drops the first n physical lines before parsing starts,
// whatever their content.
func WithSkipLines(n int) SourceOption {
	return func(s *LineSource) {
		if n > 0 {
			s.skip = n
		}
	}
}

// LineSource implements Source over lines held in memory.
type LineSource struct {
	name  string
	lines []string
	skip  int
	pos   int
}

// MaxLineSize bounds a single dump line.
const MaxLineSize = 1024 * 1024

// Open reads the dump file at path in full and returns a source over its lines.
// The file is closed before Open returns.
func Open(path string, opts ...SourceOption) (*LineSource, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}

	return newLineSource(path, lines, opts), nil
}

// NewReaderSource reads r in full and returns a source over its lines.
func NewReaderSource(name string, r io.Reader, opts ...SourceOption) (*LineSource, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return newLineSource(name, lines, opts), nil
}

func newLineSource(name string, lines []string, opts []SourceOption) *LineSource {
	s := &LineSource{name: name, lines: lines}
	for _, opt := range opts {
		opt(s)
	}
	s.pos = s.skip
	return s
}

// NewScanner returns a line scanner over r that accepts lines up to MaxLineSize.
func NewScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return scanner
}

func readLines(r io.Reader) ([]string, error) {
	scanner := NewScanner(r)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// Next returns the next entry.
func (s *LineSource) Next(ctx context.Context) (*Entry, error) {
	for s.pos < len(s.lines) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		line := s.lines[s.pos]
		s.pos++

		entry, ok, err := ParseLine(line)
		if !ok {
			continue
		}
		if err != nil {
			if me, isMalformed := err.(*MalformedEntryError); isMalformed {
				me.LineNum = s.pos
			}
			return nil, err
		}

		entry.LineNum = s.pos
		return entry, nil
	}
	return nil, io.EOF
}

// Name returns the source name.
func (s *LineSource) Name() string {
	return s.name
}

// Lines returns the number of physical lines read, including skipped ones.
func (s *LineSource) Lines() int {
	return len(s.lines)
}
