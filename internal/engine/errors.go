package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord is returned when the input table cannot be loaded.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrShortHeader is returned when the header cannot hold both an id and a price column.
	ErrShortHeader = errors.New("header needs at least an id and a price column")
)

// MalformedRecordError describes the first row that failed to load.
// Row is 1-based over data rows (the header is row 0).
type MalformedRecordError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("malformed record at row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("malformed record at row %d: column %s value %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() []error {
	return []error{ErrMalformedRecord, e.Err}
}
