package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	TitleMaxLen       = 200
	DescriptionMaxLen = 500
)

// Validate normalizes the input (trimming title and description) and checks
// the entity invariants. On failure it returns a *ValidationError listing
// every offending field.
func (in *CreateTaskInput) Validate() error {
	var fields []FieldError

	in.Title = strings.TrimSpace(in.Title)
	if msg, ok := checkTitle(in.Title); !ok {
		fields = append(fields, FieldError{Field: "title", Message: msg})
	}

	in.Description = strings.TrimSpace(in.Description)
	if msg, ok := checkDescription(in.Description); !ok {
		fields = append(fields, FieldError{Field: "description", Message: msg})
	}

	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if !in.Priority.Valid() {
		fields = append(fields, FieldError{Field: "priority", Message: priorityMessage})
	}

	if len(fields) > 0 {
		return NewValidationError(fields...)
	}
	return nil
}

// Validate checks only the fields the patch actually sets, with the same
// rules the creation path uses. An empty patch is rejected outright.
func (p *TaskPatch) Validate() error {
	if p.Empty() {
		return NewValidationError(FieldError{Field: "patch", Message: "at least one field is required"})
	}

	var fields []FieldError

	if p.Title != nil {
		trimmed := strings.TrimSpace(*p.Title)
		if msg, ok := checkTitle(trimmed); !ok {
			fields = append(fields, FieldError{Field: "title", Message: msg})
		} else {
			p.Title = &trimmed
		}
	}

	if p.Description != nil {
		trimmed := strings.TrimSpace(*p.Description)
		if msg, ok := checkDescription(trimmed); !ok {
			fields = append(fields, FieldError{Field: "description", Message: msg})
		} else {
			p.Description = &trimmed
		}
	}

	if p.Priority != nil && !p.Priority.Valid() {
		fields = append(fields, FieldError{Field: "priority", Message: priorityMessage})
	}

	if len(fields) > 0 {
		return NewValidationError(fields...)
	}
	return nil
}

var priorityMessage = fmt.Sprintf("priority must be %s, %s, or %s", PriorityLow, PriorityMedium, PriorityHigh)

func checkTitle(title string) (string, bool) {
	if title == "" {
		return fmt.Sprintf("title must be between 1 and %d characters", TitleMaxLen), false
	}
	if utf8.RuneCountInString(title) > TitleMaxLen {
		return fmt.Sprintf("title must be between 1 and %d characters", TitleMaxLen), false
	}
	return "", true
}

func checkDescription(description string) (string, bool) {
	if utf8.RuneCountInString(description) > DescriptionMaxLen {
		return fmt.Sprintf("description cannot be more than %d characters", DescriptionMaxLen), false
	}
	return "", true
}
