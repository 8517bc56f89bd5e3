package sales

import "fmt"

// SourceNotFoundError reports that the configured extract does not exist.
type SourceNotFoundError struct {
	Name string
	Err  error
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("sales source %q not found", e.Name)
}

func (e *SourceNotFoundError) Unwrap() error { return e.Err }

// MalformedRecordError reports the first row that could not be coerced into
// a valid record. Loading is fail-fast: the error carries the 1-based row
// number within the source (the header is row 1) and, when known, the
// offending column.
type MalformedRecordError struct {
	Row    int
	Column string
	Reason string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("malformed record at row %d, column %s: %s", e.Row, e.Column, e.Reason)
	}
	return fmt.Sprintf("malformed record at row %d: %s", e.Row, e.Reason)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }
