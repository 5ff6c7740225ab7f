// Package apperr holds the error categories shared by repositories, services
// and handlers. Concrete errors wrap one of the sentinels so callers can branch
// on the category with errors.Is.
package apperr

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned on lookup misses (unknown username, missing product or category).
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned on uniqueness violations.
	ErrConflict = errors.New("conflict")
	// ErrAuthentication is returned when credentials do not match.
	ErrAuthentication = errors.New("authentication failed")
	// ErrValidation is the category matched by every *ValidationError.
	ErrValidation = errors.New("validation error")
)

// ValidationError carries field-level messages for malformed or missing input.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a message for field. The first message for a field wins.
func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = message
}

// HasErrors reports whether any field message was recorded.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil returns e when it holds messages, nil otherwise.
func (e *ValidationError) OrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidation) match any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// FieldError is a shortcut for a ValidationError with a single field.
func FieldError(field, message string) *ValidationError {
	e := NewValidationError()
	e.Add(field, message)
	return e
}

type categorized struct {
	category error
	msg      string
}

func (e *categorized) Error() string { return e.msg }
func (e *categorized) Unwrap() error { return e.category }

// New returns an error with message msg that matches category under errors.Is.
func New(category error, msg string) error {
	return &categorized{category: category, msg: msg}
}
