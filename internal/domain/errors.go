package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrAuthRequired    = errors.New("User must be signed in")
	ErrProfileNotFound = errors.New("User not found")
	ErrListingNotFound = errors.New("Listing not found")
	ErrForbidden       = errors.New("User is Forbidden from performing this action")
)

// ValidationError reports caller-supplied input that failed validation.
// Fields maps the offending JSON field to a short reason.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for f, reason := range e.Fields {
		parts = append(parts, f+" "+reason)
	}
	sort.Strings(parts)
	return e.Message + ": " + strings.Join(parts, ", ")
}

// NewValidationError returns a ValidationError without field detail.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

