package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"todolist/internal/core/domain"
	"todolist/internal/core/ports"
	"todolist/internal/core/query"
)

const taskColumns = "id, user_id, title, description, priority, completed, due_date, tags, created_at, updated_at"

type TaskRepository struct {
	db *sqlx.DB
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

type taskRow struct {
	ID          string       `db:"id"`
	UserID      string       `db:"user_id"`
	Title       string       `db:"title"`
	Description string       `db:"description"`
	Priority    string       `db:"priority"`
	Completed   bool         `db:"completed"`
	DueDate     sql.NullTime `db:"due_date"`
	Tags        tagsJSON     `db:"tags"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

// tagsJSON stores the ordered tag list as a JSON array in a single column.
type tagsJSON []string

func (t tagsJSON) Value() (driver.Value, error) {
	if t == nil {
		t = tagsJSON{}
	}
	return json.Marshal(t)
}

func (t *tagsJSON) Scan(src any) error {
	switch value := src.(type) {
	case []byte:
		return json.Unmarshal(value, t)
	case string:
		return json.Unmarshal([]byte(value), t)
	case nil:
		*t = tagsJSON{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into tags", src)
	}
}

func (r *TaskRepository) Insert(ctx context.Context, task domain.Task) error {
	const insertTaskQuery = `
INSERT INTO tasks (id, user_id, title, description, priority, completed, due_date, tags, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(
		ctx,
		insertTaskQuery,
		task.ID,
		task.OwnerID,
		task.Title,
		task.Description,
		string(task.Priority),
		task.Completed,
		nullTime(task.DueDate),
		tagsJSON(task.Tags),
		task.CreatedAt,
		task.UpdatedAt,
	)
	return err
}

func (r *TaskRepository) FindByID(ctx context.Context, ownerID, taskID string) (domain.Task, error) {
	var row taskRow
	err := r.db.GetContext(
		ctx,
		&row,
		"SELECT "+taskColumns+" FROM tasks WHERE id = ? AND user_id = ?",
		taskID,
		ownerID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	if err != nil {
		return domain.Task{}, err
	}
	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) FindPage(ctx context.Context, filter query.Predicate, page query.Page) ([]domain.Task, error) {
	where, whereArgs, err := compilePredicate(filter)
	if err != nil {
		return nil, err
	}
	order, orderArgs, err := orderClause(page)
	if err != nil {
		return nil, err
	}

	var rows []taskRow
	q := "SELECT " + taskColumns + " FROM tasks WHERE " + where + order
	if err := r.db.SelectContext(ctx, &rows, q, append(whereArgs, orderArgs...)...); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}
	return tasks, nil
}

func (r *TaskRepository) Count(ctx context.Context, filter query.Predicate) (int64, error) {
	where, args, err := compilePredicate(filter)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM tasks WHERE "+where, args...); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *TaskRepository) Update(ctx context.Context, ownerID, taskID string, patch domain.TaskPatch) (domain.Task, error) {
	set, args := patchSetClause(patch)

	args = append(args, taskID, ownerID)
	_, err := r.db.ExecContext(ctx, "UPDATE tasks SET "+set+" WHERE id = ? AND user_id = ?", args...)
	if err != nil {
		return domain.Task{}, err
	}

	// Re-read instead of trusting RowsAffected: MySQL reports zero affected
	// rows when the new values equal the old ones.
	return r.FindByID(ctx, ownerID, taskID)
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID, taskID string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ? AND user_id = ?", taskID, ownerID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// UpdateMany applies the patch to every listed task owned by ownerID in a
// single statement; ids that do not exist or belong to someone else simply
// do not match.
func (r *TaskRepository) UpdateMany(ctx context.Context, ownerID string, taskIDs []string, patch domain.TaskPatch) (int64, error) {
	set, setArgs := patchSetClause(patch)

	q, args, err := sqlx.In(
		"UPDATE tasks SET "+set+" WHERE id IN (?) AND user_id = ?",
		append(setArgs, taskIDs, ownerID)...,
	)
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *TaskRepository) DeleteMany(ctx context.Context, ownerID string, taskIDs []string) (int64, error) {
	q, args, err := sqlx.In("DELETE FROM tasks WHERE id IN (?) AND user_id = ?", taskIDs, ownerID)
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type statsRow struct {
	Total          int64 `db:"total"`
	Completed      int64 `db:"completed"`
	Active         int64 `db:"active"`
	HighPriority   int64 `db:"high_priority"`
	MediumPriority int64 `db:"medium_priority"`
	LowPriority    int64 `db:"low_priority"`
	Overdue        int64 `db:"overdue"`
}

const summarizeQuery = `
SELECT COUNT(*)                                                              AS total,
       CAST(COALESCE(SUM(completed), 0) AS SIGNED)                          AS completed,
       CAST(COALESCE(SUM(NOT completed), 0) AS SIGNED)                      AS active,
       CAST(COALESCE(SUM(priority = 'high'), 0) AS SIGNED)                  AS high_priority,
       CAST(COALESCE(SUM(priority = 'medium'), 0) AS SIGNED)                AS medium_priority,
       CAST(COALESCE(SUM(priority = 'low'), 0) AS SIGNED)                   AS low_priority,
       CAST(COALESCE(SUM(due_date IS NOT NULL
                         AND due_date < NOW()
                         AND NOT completed), 0) AS SIGNED)                  AS overdue
FROM tasks
WHERE user_id = ?`

// Summarize computes the statistics snapshot over the full owned set.
// Overdue is evaluated against the database clock at query time.
func (r *TaskRepository) Summarize(ctx context.Context, ownerID string) (domain.TaskStats, error) {
	var row statsRow
	if err := r.db.GetContext(ctx, &row, summarizeQuery, ownerID); err != nil {
		return domain.TaskStats{}, err
	}

	return domain.TaskStats{
		Total:          row.Total,
		Completed:      row.Completed,
		Active:         row.Active,
		HighPriority:   row.HighPriority,
		MediumPriority: row.MediumPriority,
		LowPriority:    row.LowPriority,
		Overdue:        row.Overdue,
	}, nil
}

type monthRow struct {
	Year      int   `db:"year"`
	Month     int   `db:"month"`
	Total     int64 `db:"total"`
	Completed int64 `db:"completed"`
}

const completionByMonthQuery = `
SELECT YEAR(created_at)                            AS year,
       MONTH(created_at)                           AS month,
       COUNT(*)                                    AS total,
       CAST(COALESCE(SUM(completed), 0) AS SIGNED) AS completed
FROM tasks
WHERE user_id = ?
GROUP BY YEAR(created_at), MONTH(created_at)
ORDER BY year DESC, month DESC
LIMIT ?`

// CompletionByMonth buckets the owner's tasks by creation month, newest
// bucket first. Months without tasks do not appear.
func (r *TaskRepository) CompletionByMonth(ctx context.Context, ownerID string, months int) ([]domain.MonthBucket, error) {
	var rows []monthRow
	if err := r.db.SelectContext(ctx, &rows, completionByMonthQuery, ownerID, months); err != nil {
		return nil, err
	}

	buckets := make([]domain.MonthBucket, 0, len(rows))
	for _, row := range rows {
		buckets = append(buckets, domain.MonthBucket{
			Year:      row.Year,
			Month:     row.Month,
			Total:     row.Total,
			Completed: row.Completed,
		})
	}
	return buckets, nil
}

// patchSetClause renders the SET clause for a patch. updated_at always
// bumps; id and user_id are not representable in a patch, so protected
// fields can never be merged in.
func patchSetClause(patch domain.TaskPatch) (string, []any) {
	set := "updated_at = ?"
	args := []any{time.Now()}

	if patch.Title != nil {
		set += ", title = ?"
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		set += ", description = ?"
		args = append(args, *patch.Description)
	}
	if patch.Priority != nil {
		set += ", priority = ?"
		args = append(args, string(*patch.Priority))
	}
	if patch.Completed != nil {
		set += ", completed = ?"
		args = append(args, *patch.Completed)
	}
	if patch.DueDateSet {
		set += ", due_date = ?"
		args = append(args, nullTime(patch.DueDate))
	}
	if patch.TagsSet {
		set += ", tags = ?"
		args = append(args, tagsJSON(patch.Tags))
	}
	return set, args
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:          row.ID,
		OwnerID:     row.UserID,
		Title:       row.Title,
		Description: row.Description,
		Priority:    domain.Priority(row.Priority),
		Completed:   row.Completed,
		Tags:        row.Tags,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}

	if row.DueDate.Valid {
		value := row.DueDate.Time
		task.DueDate = &value
	}
	return task
}
