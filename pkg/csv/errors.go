// Package csv provides error types and recovery modes for CSV reading and writing.
package csv

import (
	"errors"
	"fmt"

	"github.com/shapestone/shape-rowcsv/internal/parser"
)

// BadLineMode specifies how the reader handles records of the wrong width.
type BadLineMode int

const (
	// BadLineModeError returns an error on malformed lines (default).
	BadLineModeError BadLineMode = iota
	// BadLineModeWarn calls the warning callback and skips the record.
	BadLineModeWarn
	// BadLineModeSkip silently skips malformed lines.
	BadLineModeSkip
)

// String returns the string representation of BadLineMode.
func (m BadLineMode) String() string {
	switch m {
	case BadLineModeError:
		return "error"
	case BadLineModeWarn:
		return "warn"
	case BadLineModeSkip:
		return "skip"
	default:
		return fmt.Sprintf("BadLineMode(%d)", m)
	}
}

var (
	// ErrReaderClosed is returned by Read after the reader was closed or
	// after it already reported io.EOF.
	ErrReaderClosed = errors.New("csv: reader already closed")

	// ErrUnsupportedEncoding is returned when opening a file with an encoding other than UTF-8.
	ErrUnsupportedEncoding = errors.New("csv: unsupported encoding")

	// ErrFieldCount indicates a record has the wrong number of fields.
	ErrFieldCount = parser.ErrFieldCount
)

// IOError reports a failure to open, read, write or close a CSV source or destination.
// It is fatal for the operation that returned it.
type IOError struct {
	// Op is one of "open", "read", "write" or "close".
	Op string
	// Path is the file name, empty for caller-supplied readers.
	Path string
	// Err is the underlying error.
	Err error
}

// Error returns the operation, path and cause.
func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("csv: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("csv: %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents a record rejected by width validation.
type ParseError struct {
	// Line is the line where the record started (1-indexed).
	Line int
	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	return fmt.Sprintf("csv: parse error on line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// wrapParseError converts parser errors into *ParseError; other errors pass through.
func wrapParseError(err error) error {
	var fce *parser.FieldCountError
	if errors.As(err, &fce) {
		return &ParseError{
			Line: fce.Line,
			Err:  fmt.Errorf("%w (got %d, expected %d)", ErrFieldCount, fce.Got, fce.Expected),
		}
	}
	return err
}
