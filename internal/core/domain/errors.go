package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTaskNotFound covers both a missing id and an id owned by someone
	// else; callers cannot tell the two apart.
	ErrTaskNotFound = errors.New("task not found")
	ErrEmptyBatch   = errors.New("task ids are required")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every failed field at once; it is always raised
// before any mutation is attempted.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}
