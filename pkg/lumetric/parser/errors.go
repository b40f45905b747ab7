package parser

import (
	"errors"
	"fmt"
)

// ErrEmptyFile indicates the input buffer holds no bytes.
var ErrEmptyFile = errors.New("file is empty")

// ErrNoSheets indicates the container decoded to zero sheets.
var ErrNoSheets = errors.New("no sheets found in file")

// ErrCodecUnavailable indicates the decoder was built without any spreadsheet codec.
var ErrCodecUnavailable = errors.New("spreadsheet codec not available")

// ErrUnsupportedFormat indicates content no codec recognizes.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// DecodeError reports bytes that could not be read as any tabular container.
type DecodeError struct {
	Format string // "rtf", "xlsx", "xls", "text", or "" when undetermined
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("decode failed: %v", e.Err)
	}
	return fmt.Sprintf("decode failed (%s): %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError creates a new DecodeError.
func NewDecodeError(format string, err error) *DecodeError {
	return &DecodeError{
		Format: format,
		Err:    err,
	}
}
