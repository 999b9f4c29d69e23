package ports

import (
	"context"

	"todolist/internal/core/domain"
	"todolist/internal/core/query"
)

// TaskRepository is the record-store boundary. Every method that reaches
// records by id also takes the owner id; a record owned by someone else is
// treated exactly like a missing one.
type TaskRepository interface {
	Insert(ctx context.Context, task domain.Task) error
	FindByID(ctx context.Context, ownerID, taskID string) (domain.Task, error)
	FindPage(ctx context.Context, filter query.Predicate, page query.Page) ([]domain.Task, error)
	Count(ctx context.Context, filter query.Predicate) (int64, error)
	Update(ctx context.Context, ownerID, taskID string, patch domain.TaskPatch) (domain.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
	UpdateMany(ctx context.Context, ownerID string, taskIDs []string, patch domain.TaskPatch) (int64, error)
	DeleteMany(ctx context.Context, ownerID string, taskIDs []string) (int64, error)
	Summarize(ctx context.Context, ownerID string) (domain.TaskStats, error)
	CompletionByMonth(ctx context.Context, ownerID string, months int) ([]domain.MonthBucket, error)
}

type TaskService interface {
	List(ctx context.Context, ownerID string, q domain.ListQuery) (domain.TaskPage, error)
	Get(ctx context.Context, ownerID, taskID string) (domain.Task, error)
	Create(ctx context.Context, ownerID string, input domain.CreateTaskInput) (domain.Task, error)
	Update(ctx context.Context, ownerID, taskID string, patch domain.TaskPatch) (domain.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
	Toggle(ctx context.Context, ownerID, taskID string) (domain.Task, error)
	BulkUpdate(ctx context.Context, ownerID string, taskIDs []string, patch domain.TaskPatch) (int64, error)
	BulkDelete(ctx context.Context, ownerID string, taskIDs []string) (int64, error)
	Stats(ctx context.Context, ownerID string) (domain.StatsReport, error)
}
