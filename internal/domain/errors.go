package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTimeRange   = errors.New("invalid time range")
	ErrInvalidRecordID    = errors.New("invalid record ID")
	ErrInvalidPlatform    = errors.New("invalid platform")
	ErrNegativeCounter    = errors.New("metric counters must be non-negative")
	ErrMissingPublishTime = errors.New("record is missing a publish timestamp")
	ErrMalformedRecord    = errors.New("malformed metric record")
	ErrRecordFetchFailed  = errors.New("failed to fetch metric records")
	ErrDatabaseError      = errors.New("database error")
)

// ValidationError is a fatal, structural failure. FieldErrors maps the
// offending input field to a human-readable explanation; the wrapped
// sentinel says which class of input failed.
type ValidationError struct {
	Message     string
	FieldErrors map[string]string
	sentinel    error
}

func (e *ValidationError) Error() string {
	if len(e.FieldErrors) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.FieldErrors))
	for field, detail := range e.FieldErrors {
		parts = append(parts, fmt.Sprintf("%s: %s", field, detail))
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return e.sentinel
}

func NewValidationError(sentinel error, message string, fieldErrors map[string]string) *ValidationError {
	return &ValidationError{
		Message:     message,
		FieldErrors: fieldErrors,
		sentinel:    sentinel,
	}
}
