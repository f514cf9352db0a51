package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownType is matched by UnknownTypeError.
	ErrUnknownType = errors.New("unknown trade type")

	// ErrRegistrationConflict is matched by RegistrationConflictError.
	ErrRegistrationConflict = errors.New("trade type registration conflict")

	// ErrInvalidPlugin is returned when a plugin has no name or no tokens.
	ErrInvalidPlugin = errors.New("invalid plugin")

	// ErrMissingField is wrapped by ParseError when a required column is blank or absent.
	ErrMissingField = errors.New("missing field")

	// ErrNoHeader is returned for an empty file.
	ErrNoHeader = errors.New("CSV file has no header row")
)

// UnknownTypeError reports a trade type token that no registered plugin accepts.
type UnknownTypeError struct {
	Token string
	Line  int
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("line %d: unknown trade type %q", e.Line, e.Token)
}

func (e *UnknownTypeError) Is(target error) bool { return target == ErrUnknownType }

// RegistrationConflictError reports two plugins claiming the same normalized token.
type RegistrationConflictError struct {
	Token       string
	Existing    string
	Conflicting string
}

func (e *RegistrationConflictError) Error() string {
	return fmt.Sprintf("trade type %q claimed by both %s and %s", e.Token, e.Existing, e.Conflicting)
}

func (e *RegistrationConflictError) Is(target error) bool { return target == ErrRegistrationConflict }

// ParseError reports a field that is missing or cannot be decoded.
//
// Field is empty when the failure concerns the row as a whole, such as a
// domain invariant violated by otherwise well-formed values.
type ParseError struct {
	Line  int
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: field %q: %v", e.Line, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func fieldError(row CsvRow, field string, err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return err
	}
	return &ParseError{Line: row.Line(), Field: field, Err: err}
}

func rowError(row CsvRow, err error) error {
	return fieldError(row, "", err)
}
