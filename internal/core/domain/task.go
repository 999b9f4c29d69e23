package domain

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a single user-owned to-do item. ID and OwnerID are assigned at
// creation and never change afterwards.
type Task struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Priority    Priority
	Completed   bool
	DueDate     *time.Time
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateTaskInput struct {
	Title       string
	Description string
	Priority    Priority
	DueDate     *time.Time
	Tags        []string
}

// TaskPatch is a partial update applied to one task or to a batch of tasks.
// Nil pointers mean "leave the field alone". DueDateSet and TagsSet
// distinguish clearing a field from not touching it.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *Priority
	Completed   *bool
	DueDate     *time.Time
	DueDateSet  bool
	Tags        []string
	TagsSet     bool
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.Priority == nil &&
		p.Completed == nil &&
		!p.DueDateSet &&
		!p.TagsSet
}

const (
	StatusAll       = "all"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// ListQuery is the request-scoped query descriptor for task listings.
// Zero values fall back to the documented defaults; it is never persisted.
type ListQuery struct {
	Page      int
	PageSize  int
	Status    string
	Priority  string
	SortBy    string
	SortOrder string
	Search    string
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalTasks  int64 `json:"totalTasks"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// TaskStats is a point-in-time aggregate over the full owned set.
// Overdue is evaluated against the clock at computation time, so repeated
// calls that straddle a due date legitimately disagree.
type TaskStats struct {
	Total          int64 `json:"total"`
	Completed      int64 `json:"completed"`
	Active         int64 `json:"active"`
	HighPriority   int64 `json:"highPriority"`
	MediumPriority int64 `json:"mediumPriority"`
	LowPriority    int64 `json:"lowPriority"`
	Overdue        int64 `json:"overdue"`
}

// MonthBucket is one (year, month) bucket of the completion trend,
// keyed by task creation date.
type MonthBucket struct {
	Year      int   `json:"year"`
	Month     int   `json:"month"`
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
}

type StatsReport struct {
	Stats             TaskStats
	CompletionByMonth []MonthBucket
}

// TaskPage is the composed result of a listing call: one page of tasks plus
// pagination metadata and statistics over the whole owned set.
type TaskPage struct {
	Tasks      []Task
	Pagination Pagination
	Stats      TaskStats
}
