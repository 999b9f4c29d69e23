package dto

import (
	"encoding/json"

	"todolist/internal/core/domain"
)

// Envelope is the common response shape: a success flag, a human-readable
// message and the payload.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type TaskItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Completed   bool     `json:"completed"`
	DueDate     *string  `json:"dueDate,omitempty"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Priority    *string  `json:"priority"`
	DueDate     *string  `json:"dueDate"`
	Tags        []string `json:"tags"`
}

type UpdateTaskRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Priority    *string  `json:"priority"`
	Completed   *bool    `json:"completed"`
	DueDate     *string  `json:"dueDate"`
	Tags        []string `json:"tags"`
}

// BulkUpdateRequest keeps Updates raw so the handler can tell absent
// fields from fields explicitly set to null.
type BulkUpdateRequest struct {
	TaskIDs []string        `json:"taskIds"`
	Updates json.RawMessage `json:"updates"`
}

type BulkDeleteRequest struct {
	TaskIDs []string `json:"taskIds"`
}

type TaskData struct {
	Task TaskItem `json:"task"`
}

type TaskListData struct {
	Tasks      []TaskItem        `json:"tasks"`
	Pagination domain.Pagination `json:"pagination"`
	Stats      domain.TaskStats  `json:"stats"`
}

type BulkUpdateData struct {
	ModifiedCount int64 `json:"modifiedCount"`
}

type BulkDeleteData struct {
	DeletedCount int64 `json:"deletedCount"`
}

type StatsData struct {
	Stats             domain.TaskStats     `json:"stats"`
	CompletionByMonth []domain.MonthBucket `json:"completionByMonth"`
}
