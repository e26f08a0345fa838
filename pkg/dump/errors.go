package dump

import "fmt"

// FileAccessError is returned when a dump file cannot be opened or read.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("reading dump file %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// MalformedEntryError is returned when a line starts with '[' but its value
// segment is not a valid integer.
type MalformedEntryError struct {
	LineNum int
	Line    string
	Err     error
}

func (e *MalformedEntryError) Error() string {
	if e.LineNum > 0 {
		return fmt.Sprintf("malformed entry at line %d %q: %v", e.LineNum, e.Line, e.Err)
	}
	return fmt.Sprintf("malformed entry %q: %v", e.Line, e.Err)
}

func (e *MalformedEntryError) Unwrap() error {
	return e.Err
}
