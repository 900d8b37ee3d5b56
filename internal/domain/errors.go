package domain

import "errors"

// ParseError represents a classify/extract failure the host can present
// without an internal-error stack trace: extractor exit codes, empty or
// malformed output, explicit extractor errors, and empty results. Anything
// else that escapes a classifier is an unexpected internal fault.
type ParseError struct {
	Message string
}

// Error returns the human-readable failure message
func (e *ParseError) Error() string {
	return e.Message
}

// NewParseError creates a new parse-time failure
func NewParseError(message string) *ParseError {
	return &ParseError{Message: message}
}

// IsParseError reports whether err is a parse-time failure rather than an
// unexpected internal fault
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
