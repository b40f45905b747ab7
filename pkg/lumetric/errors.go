package lumetric

import (
	"errors"
	"fmt"

	"github.com/ukaji3/lumetric-go/pkg/lumetric/normalize"
	"github.com/ukaji3/lumetric-go/pkg/lumetric/parser"
)

// ErrFileTooLarge indicates the input exceeds Options.MaxFileSize.
var ErrFileTooLarge = errors.New("file too large")

// DecodeError reports bytes that are not any supported tabular container.
type DecodeError = parser.DecodeError

// ValidationError reports a decoded matrix without the minimum table shape.
type ValidationError = normalize.ValidationError

// ReadError reports that the byte source itself could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to read file: %v", e.Err)
	}
	return fmt.Sprintf("failed to read file %q: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// NewReadError creates a new ReadError.
func NewReadError(path string, err error) *ReadError {
	return &ReadError{
		Path: path,
		Err:  err,
	}
}
