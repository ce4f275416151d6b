package normalize

import (
	"errors"
	"fmt"
)

// Error definitions for the normalize package.
var (
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("failed to parse model response")

	// ErrNoArray is returned when the text contains no bracketed array at all.
	ErrNoArray = errors.New("no JSON array found in response")

	// ErrNotArray is returned when the text is valid JSON but not an array.
	ErrNotArray = errors.New("response is not a JSON array")

	// ErrEmptyArray is returned when the array holds no elements.
	ErrEmptyArray = errors.New("response array is empty")

	// ErrNotObject is returned when an array element is not a JSON object.
	ErrNotObject = errors.New("array element is not a JSON object")

	// ErrNoObject is returned by DecodeObject when the text contains no braces.
	ErrNoObject = errors.New("no JSON object found in response")
)

// ParseError reports that no recovery stage could produce valid records.
// Err holds the underlying parse failure kept for diagnostics.
type ParseError struct {
	Reason string
	Err    error
}

func newParseError(reason string, err error) *ParseError {
	return &ParseError{Reason: reason, Err: err}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

// Unwrap returns the underlying parse failure.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes every ParseError match ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
