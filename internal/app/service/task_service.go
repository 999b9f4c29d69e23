package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"todolist/internal/core/domain"
	"todolist/internal/core/ports"
	"todolist/internal/core/query"
)

const trendMonths = 6

type TaskService struct {
	taskRepository ports.TaskRepository
}

func NewTaskService(taskRepository ports.TaskRepository) *TaskService {
	return &TaskService{taskRepository: taskRepository}
}

var _ ports.TaskService = (*TaskService)(nil)

// List returns one page of the owner's tasks for the given query descriptor,
// together with pagination metadata and statistics. Statistics always cover
// the full owned set, independent of the listing filter and page.
func (s *TaskService) List(ctx context.Context, ownerID string, q domain.ListQuery) (domain.TaskPage, error) {
	page, err := query.PlanPage(q)
	if err != nil {
		return domain.TaskPage{}, err
	}
	filter := query.BuildFilter(ownerID, q)

	total, err := s.taskRepository.Count(ctx, filter)
	if err != nil {
		return domain.TaskPage{}, err
	}

	tasks, err := s.taskRepository.FindPage(ctx, filter, page)
	if err != nil {
		return domain.TaskPage{}, err
	}

	stats, err := s.taskRepository.Summarize(ctx, ownerID)
	if err != nil {
		return domain.TaskPage{}, err
	}

	return domain.TaskPage{
		Tasks:      tasks,
		Pagination: query.PageMeta(page, total),
		Stats:      stats,
	}, nil
}

func (s *TaskService) Get(ctx context.Context, ownerID, taskID string) (domain.Task, error) {
	return s.taskRepository.FindByID(ctx, ownerID, taskID)
}

func (s *TaskService) Create(ctx context.Context, ownerID string, input domain.CreateTaskInput) (domain.Task, error) {
	if err := input.Validate(); err != nil {
		return domain.Task{}, err
	}

	now := time.Now()
	task := domain.Task{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		Tags:        input.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}

	if err := s.taskRepository.Insert(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, patch domain.TaskPatch) (domain.Task, error) {
	if err := patch.Validate(); err != nil {
		return domain.Task{}, err
	}
	return s.taskRepository.Update(ctx, ownerID, taskID, patch)
}

func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	return s.taskRepository.Delete(ctx, ownerID, taskID)
}

// Toggle reads the task and writes back the flipped completion flag. The
// read-then-flip is not transactional: if two toggles race, the last write
// wins.
func (s *TaskService) Toggle(ctx context.Context, ownerID, taskID string) (domain.Task, error) {
	task, err := s.taskRepository.FindByID(ctx, ownerID, taskID)
	if err != nil {
		return domain.Task{}, err
	}

	completed := !task.Completed
	return s.taskRepository.Update(ctx, ownerID, taskID, domain.TaskPatch{Completed: &completed})
}

// BulkUpdate applies the patch to every listed task the owner actually owns.
// The patch is validated before anything is touched; ids owned by someone
// else are silently left out of the affected set.
func (s *TaskService) BulkUpdate(ctx context.Context, ownerID string, taskIDs []string, patch domain.TaskPatch) (int64, error) {
	ids, err := normalizeBatchIDs(taskIDs)
	if err != nil {
		return 0, err
	}
	if err := patch.Validate(); err != nil {
		return 0, err
	}
	return s.taskRepository.UpdateMany(ctx, ownerID, ids, patch)
}

func (s *TaskService) BulkDelete(ctx context.Context, ownerID string, taskIDs []string) (int64, error) {
	ids, err := normalizeBatchIDs(taskIDs)
	if err != nil {
		return 0, err
	}
	return s.taskRepository.DeleteMany(ctx, ownerID, ids)
}

func (s *TaskService) Stats(ctx context.Context, ownerID string) (domain.StatsReport, error) {
	stats, err := s.taskRepository.Summarize(ctx, ownerID)
	if err != nil {
		return domain.StatsReport{}, err
	}

	trend, err := s.taskRepository.CompletionByMonth(ctx, ownerID, trendMonths)
	if err != nil {
		return domain.StatsReport{}, err
	}

	return domain.StatsReport{Stats: stats, CompletionByMonth: trend}, nil
}

// normalizeBatchIDs enforces set semantics on a bulk id list: the list must
// be non-empty, blank ids are rejected, duplicates collapse to one.
func normalizeBatchIDs(taskIDs []string) ([]string, error) {
	if len(taskIDs) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	seen := make(map[string]struct{}, len(taskIDs))
	ids := make([]string, 0, len(taskIDs))
	for _, id := range taskIDs {
		if strings.TrimSpace(id) == "" {
			return nil, domain.NewValidationError(domain.FieldError{
				Field:   "taskIds",
				Message: "task ids must be non-empty strings",
			})
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
