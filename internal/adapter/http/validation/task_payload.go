package validation

import (
	"bytes"
	"encoding/json"
	"time"

	"todolist/internal/adapter/http/dto"
	"todolist/internal/core/domain"
)

// Due dates are accepted either as full RFC3339 timestamps or as bare
// calendar dates.
var dueDateLayouts = []string{time.RFC3339, "2006-01-02"}

// BuildCreateTaskInput converts a decoded create request into a domain
// input. Entity invariants are checked later by the domain validator; only
// shape concerns (date parsing) live here.
func BuildCreateTaskInput(req dto.CreateTaskRequest) (domain.CreateTaskInput, error) {
	input := domain.CreateTaskInput{
		Title: req.Title,
		Tags:  req.Tags,
	}

	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Priority != nil {
		input.Priority = domain.Priority(*req.Priority)
	}

	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			return domain.CreateTaskInput{}, invalidDueDate()
		}
		input.DueDate = dueDate
	}

	return input, nil
}

// BuildTaskPatch converts a decoded update request into a patch. The raw
// message map distinguishes an absent field from one set to null: a null
// dueDate or tags clears the field, a null anywhere else is rejected.
func BuildTaskPatch(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.TaskPatch, error) {
	patch := domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}

	for _, field := range []string{"title", "description", "priority", "completed"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return domain.TaskPatch{}, domain.NewValidationError(domain.FieldError{
				Field:   field,
				Message: field + " cannot be null",
			})
		}
	}

	if req.Priority != nil {
		value := domain.Priority(*req.Priority)
		patch.Priority = &value
	}

	if hasJSONField(raw, "dueDate") {
		patch.DueDateSet = true
		if !isJSONNull(raw["dueDate"]) {
			if req.DueDate == nil {
				return domain.TaskPatch{}, invalidDueDate()
			}
			dueDate, err := parseDueDate(*req.DueDate)
			if err != nil {
				return domain.TaskPatch{}, invalidDueDate()
			}
			patch.DueDate = dueDate
		}
	}

	if hasJSONField(raw, "tags") {
		patch.TagsSet = true
		patch.Tags = req.Tags
		if patch.Tags == nil {
			patch.Tags = []string{}
		}
	}

	return patch, nil
}

func parseDueDate(value string) (*time.Time, error) {
	var lastErr error
	for _, layout := range dueDateLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return &parsed, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func invalidDueDate() error {
	return domain.NewValidationError(domain.FieldError{
		Field:   "dueDate",
		Message: "due date must be a valid date",
	})
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
