package documents

import (
	"errors"
	"fmt"
)

// Document input errors
var (
	// ErrEmptyFile is returned when the input has no header line or cannot be read as CSV.
	ErrEmptyFile = errors.New("Empty or malformed CSV file.")

	// ErrMalformedHeader is returned when the header line does not carry the expected labels.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrMissingField is returned when a required column is blank.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidFieldValue is returned when a column does not match its pattern.
	ErrInvalidFieldValue = errors.New("invalid field value")

	// ErrUnsupportedFormat is returned when a file extension maps to no row source.
	ErrUnsupportedFormat = errors.New("unsupported document file format")
)

// HeaderError reports the first header column that does not carry the expected label.
type HeaderError struct {
	Column   int // 1-based
	Expected string
}

// Error implements the error interface.
func (e *HeaderError) Error() string {
	return fmt.Sprintf("Cannot parse CSV file: Invalid header value at column %d. Expected %q", e.Column, e.Expected)
}

// Unwrap returns ErrMalformedHeader.
func (e *HeaderError) Unwrap() error {
	return ErrMalformedHeader
}

// MissingFieldError reports a blank required column.
type MissingFieldError struct {
	Column string
	Row    int
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing required value for %q column at row %d", e.Column, e.Row)
}

// Unwrap returns ErrMissingField.
func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// InvalidFieldError reports a value that does not match the column pattern.
type InvalidFieldError struct {
	Column  string
	Row     int
	Pattern string
}

// Error implements the error interface.
func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf(`Invalid value for column %q at row %d. Expected value must match the pattern "%s"`,
		e.Column, e.Row, e.Pattern)
}

// Unwrap returns ErrInvalidFieldValue.
func (e *InvalidFieldError) Unwrap() error {
	return ErrInvalidFieldValue
}

// RowError attaches a row number to an error raised while decoding a row,
// such as an unknown currency.
type RowError struct {
	Row int
	Err error
}

// Error implements the error interface.
func (e *RowError) Error() string {
	return fmt.Sprintf("%v (row %d)", e.Err, e.Row)
}

// Unwrap returns the underlying error.
func (e *RowError) Unwrap() error {
	return e.Err
}
