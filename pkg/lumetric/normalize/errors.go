package normalize

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewRows indicates the matrix lacks a header row plus a data row.
	ErrTooFewRows = errors.New("data invalid: need headers (row 1) and data (row 2+)")
	// ErrNoHeaderRow indicates no row qualifies as a header.
	ErrNoHeaderRow = errors.New("could not identify a header row: ensure column A has a category name")
	// ErrNoSeriesColumns indicates the header row has no named column after column A.
	ErrNoSeriesColumns = errors.New("no series columns found: row 1 must be [Category, Series1, Series2, ...]")
	// ErrNoDataRows indicates every row after the header was skipped.
	ErrNoDataRows = errors.New("no valid data rows detected")
)

// ValidationError reports a matrix that does not have the minimum table shape.
type ValidationError struct {
	// HeaderRow is the 0-based header row index, or -1 when none was found.
	HeaderRow int
	Err       error
}

func (e *ValidationError) Error() string {
	if e.HeaderRow < 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v (header row %d)", e.Err, e.HeaderRow+1)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(headerRow int, err error) *ValidationError {
	return &ValidationError{HeaderRow: headerRow, Err: err}
}
