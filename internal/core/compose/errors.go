// Package compose contains pure functions for loading Docker Compose documents.
// This is part of the Functional Core - all functions are pure with no I/O.
//
// Loading turns raw YAML text into the canonical document.Document: it parses
// with yaml.v3 (keeping key order), resolves anchors and merge keys, optionally
// interpolates ${VAR} placeholders, and migrates legacy schema shapes to the
// common compose specification.
package compose

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Input validation errors
	ErrEmptyInput = errors.New("compose document is empty")

	// YAML parsing errors
	ErrInvalidYAML = errors.New("invalid YAML syntax")

	// Compose structure errors
	ErrNotMapping = errors.New("compose document must be a mapping")

	// Interpolation errors
	ErrInterpolation = errors.New("invalid variable interpolation")
)

// ParseError wraps errors with context about where loading failed.
type ParseError struct {
	Field   string // e.g., "services.web.environment[0]"
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(field, message string, err error) *ParseError {
	return &ParseError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
