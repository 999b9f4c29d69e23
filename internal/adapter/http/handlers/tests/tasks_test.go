package tests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"todolist/internal/adapter/http/dto"
	"todolist/internal/adapter/http/handlers"
	"todolist/internal/adapter/http/middleware"
	"todolist/internal/core/domain"
	"todolist/pkg/apierrors"
	"todolist/pkg/translator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testOwner = "user-1"

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) List(ctx context.Context, ownerID string, q domain.ListQuery) (domain.TaskPage, error) {
	args := m.Called(ctx, ownerID, q)
	return args.Get(0).(domain.TaskPage), args.Error(1)
}

func (m *taskServiceMock) Get(ctx context.Context, ownerID, taskID string) (domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) Create(ctx context.Context, ownerID string, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, ownerID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) Update(ctx context.Context, ownerID, taskID string, patch domain.TaskPatch) (domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID, patch)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) Delete(ctx context.Context, ownerID, taskID string) error {
	args := m.Called(ctx, ownerID, taskID)
	return args.Error(0)
}

func (m *taskServiceMock) Toggle(ctx context.Context, ownerID, taskID string) (domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) BulkUpdate(ctx context.Context, ownerID string, taskIDs []string, patch domain.TaskPatch) (int64, error) {
	args := m.Called(ctx, ownerID, taskIDs, patch)
	return args.Get(0).(int64), args.Error(1)
}

func (m *taskServiceMock) BulkDelete(ctx context.Context, ownerID string, taskIDs []string) (int64, error) {
	args := m.Called(ctx, ownerID, taskIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *taskServiceMock) Stats(ctx context.Context, ownerID string) (domain.StatsReport, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(domain.StatsReport), args.Error(1)
}

func newTaskRouter(serviceMock *taskServiceMock) *gin.Engine {
	handler := handlers.NewTaskHandler(serviceMock)

	router := gin.New()
	tasks := router.Group("/api/tasks", middleware.LanguageMiddleware(), middleware.WithOwner(testOwner))
	tasks.GET("", handler.ListTasks)
	tasks.POST("", handler.CreateTask)
	tasks.GET("/stats", handler.GetTaskStats)
	tasks.PUT("/bulk", handler.BulkUpdateTasks)
	tasks.DELETE("/bulk", handler.BulkDeleteTasks)
	tasks.GET("/:id", handler.GetTask)
	tasks.PUT("/:id", handler.UpdateTask)
	tasks.DELETE("/:id", handler.DeleteTask)
	tasks.PATCH("/:id/toggle", handler.ToggleTask)
	return router
}

func doJSON(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func TestTaskHandler_ListTasks_Success(t *testing.T) {
	createdAt := time.Date(2026, 8, 13, 10, 20, 30, 0, time.UTC)
	dueDate := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)

	serviceMock := new(taskServiceMock)
	serviceMock.On("List", mock.Anything, testOwner, domain.ListQuery{
		Page:      2,
		PageSize:  5,
		Status:    domain.StatusActive,
		Priority:  "high",
		SortBy:    "dueDate",
		SortOrder: "asc",
		Search:    "milk",
	}).Return(domain.TaskPage{
		Tasks: []domain.Task{
			{
				ID:          "t1",
				OwnerID:     testOwner,
				Title:       "Buy milk",
				Description: "two liters",
				Priority:    domain.PriorityHigh,
				DueDate:     &dueDate,
				Tags:        []string{"errand"},
				CreatedAt:   createdAt,
				UpdatedAt:   createdAt,
			},
		},
		Pagination: domain.Pagination{CurrentPage: 2, TotalPages: 3, TotalTasks: 11, HasNext: true, HasPrev: true},
		Stats:      domain.TaskStats{Total: 11, Active: 7, Completed: 4, HighPriority: 3, MediumPriority: 5, LowPriority: 3},
	}, nil).Once()

	router := newTaskRouter(serviceMock)
	rec := doJSON(router, http.MethodGet, "/api/tasks?page=2&limit=5&status=active&priority=high&sortBy=dueDate&sortOrder=asc&search=milk", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.True(t, got.Success)

	var data dto.TaskListData
	require.NoError(t, json.Unmarshal(got.Data, &data))
	require.Len(t, data.Tasks, 1)
	require.Equal(t, "t1", data.Tasks[0].ID)
	require.Equal(t, "Buy milk", data.Tasks[0].Title)
	require.Equal(t, "high", data.Tasks[0].Priority)
	require.False(t, data.Tasks[0].Completed)
	require.Equal(t, "2026-09-20T00:00:00Z", *data.Tasks[0].DueDate)
	require.Equal(t, []string{"errand"}, data.Tasks[0].Tags)
	require.Equal(t, 2, data.Pagination.CurrentPage)
	require.True(t, data.Pagination.HasNext)
	require.Equal(t, int64(11), data.Stats.Total)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_ListTasks_DefaultsWhenParamsAbsent(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("List", mock.Anything, testOwner, domain.ListQuery{Status: domain.StatusAll}).
		Return(domain.TaskPage{
			Tasks:      []domain.Task{},
			Pagination: domain.Pagination{CurrentPage: 1},
		}, nil).Once()

	router := newTaskRouter(serviceMock)
	rec := doJSON(router, http.MethodGet, "/api/tasks", "")

	require.Equal(t, http.StatusOK, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_ListTasks_InvalidSortField(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("List", mock.Anything, testOwner, mock.AnythingOfType("domain.ListQuery")).
		Return(domain.TaskPage{}, domain.NewValidationError(domain.FieldError{
			Field:   "sortBy",
			Message: "sortBy must be one of: title, createdAt, updatedAt, priority, dueDate",
		})).Once()

	router := newTaskRouter(serviceMock)
	rec := doJSON(router, http.MethodGet, "/api/tasks?sortBy=owner", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.False(t, got.Success)
	require.Equal(t, "Validation failed", got.ErrDetails.Message)
	require.Len(t, got.ErrDetails.Details, 1)
	require.Equal(t, "sortBy", got.ErrDetails.Details[0].Field)
}

func TestTaskHandler_ListTasks_StoreError(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("List", mock.Anything, testOwner, mock.AnythingOfType("domain.ListQuery")).
		Return(domain.TaskPage{}, errors.New("db is down")).Once()

	router := newTaskRouter(serviceMock)
	rec := doJSON(router, http.MethodGet, "/api/tasks", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Server error while fetching tasks", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_Success(t *testing.T) {
	createdAt := time.Date(2026, 8, 13, 10, 20, 30, 0, time.UTC)

	serviceMock := new(taskServiceMock)
	serviceMock.On("Create", mock.Anything, testOwner, mock.MatchedBy(func(input domain.CreateTaskInput) bool {
		return input.Title == "Buy milk" && input.Priority == domain.PriorityHigh
	})).Return(domain.Task{
		ID:        "t1",
		OwnerID:   testOwner,
		Title:     "Buy milk",
		Priority:  domain.PriorityHigh,
		Tags:      []string{},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil).Once()

	router := newTaskRouter(serviceMock)
	rec := doJSON(router, http.MethodPost, "/api/tasks", `{"title":"Buy milk","priority":"high"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.True(t, got.Success)
	require.Equal(t, "Task created successfully", got.Message)

	var data dto.TaskData
	require.NoError(t, json.Unmarshal(got.Data, &data))
	require.Equal(t, "t1", data.Task.ID)
	require.False(t, data.Task.Completed)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_ValidationDetails(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("Create", mock.Anything, testOwner, mock.AnythingOfType("domain.CreateTaskInput")).
		Return(domain.Task{}, domain.NewValidationError(domain.FieldError{
			Field:   "title",
			Message: "title must be between 1 and 200 characters",
		})).Once()

	router := newTaskRouter(serviceMock)
	rec := doJSON(router, http.MethodPost, "/api/tasks", `{"title":"   "}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Validation failed", got.ErrDetails.Message)
	require.Equal(t, "title", got.ErrDetails.Details[0].Field)
}

func TestTaskHandler_CreateTask_MalformedBody(t *testing.T) {
	serviceMock := new(taskServiceMock)

	router := newTaskRouter(serviceMock)
	rec := doJSON(router, http.MethodPost, "/api/tasks", `{"title":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Invalid task payload", got.ErrDetails.Message)
	serviceMock.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskHandler_GetTask_NotFound(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("Get", mock.Anything, testOwner, "missing").
		Return(domain.Task{}, domain.ErrTaskNotFound).Once()

	router := newTaskRouter(serviceMock)
	rec := doJSON(router, http.MethodGet, "/api/tasks/missing", "")

	require.Equal(t, http.StatusNotFound, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Task not found", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_GetTask_TranslatedNotFound(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("Get", mock.Anything, testOwner, "missing").
		Return(domain.Task{}, domain.ErrTaskNotFound).Once()

	handler := handlers.NewTaskHandler(serviceMock)
	router := gin.New()
	router.GET("/api/tasks/:id", middleware.LanguageMiddleware(), middleware.WithOwner(testOwner), handler.GetTask)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/missing", nil)
	req.Header.Set("Accept-Language", translator.LanguageFr)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Tâche introuvable", got.ErrDetails.Message)
}

func TestTaskHandler_UpdateTask_Success(t *testing.T) {
	updatedAt := time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC)

	serviceMock := new(taskServiceMock)
	serviceMock.On("Update", mock.Anything, testOwner, "t1", mock.MatchedBy(func(patch domain.TaskPatch) bool {
		return patch.Title != nil && *patch.Title == "New title" && patch.Completed == nil
	})).Return(domain.Task{
		ID:        "t1",
		OwnerID:   testOwner,
		Title:     "New title",
		Priority:  domain.PriorityMedium,
		Tags:      []string{},
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}, nil).Once()

	router := newTaskRouter(serviceMock)
	rec := doJSON(router, http.MethodPut, "/api/tasks/t1", `{"title":"New title"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var got envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Task updated successfully", got.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_DeleteTask_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("Delete", mock.Anything, testOwner, "t1").Return(nil).Once()

	router := newTaskRouter(serviceMock)
	rec := doJSON(router, http.MethodDelete, "/api/tasks/t1", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.True(t, got.Success)
	require.Equal(t, "Task deleted successfully", got.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_ToggleTask_ReportsNewState(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("Toggle", mock.Anything, testOwner, "t1").Return(domain.Task{
		ID:        "t1",
		OwnerID:   testOwner,
		Title:     "Buy milk",
		Priority:  domain.PriorityMedium,
		Completed: true,
		Tags:      []string{},
	}, nil).Once()

	router := newTaskRouter(serviceMock)
	rec := doJSON(router, http.MethodPatch, "/api/tasks/t1/toggle", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Task marked as completed", got.Message)

	var data dto.TaskData
	require.NoError(t, json.Unmarshal(got.Data, &data))
	require.True(t, data.Task.Completed)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_BulkUpdateTasks_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("BulkUpdate", mock.Anything, testOwner, []string{"t1", "t2"}, mock.MatchedBy(func(patch domain.TaskPatch) bool {
		return patch.Completed != nil && *patch.Completed
	})).Return(int64(2), nil).Once()

	router := newTaskRouter(serviceMock)
	rec := doJSON(router, http.MethodPut, "/api/tasks/bulk", `{"taskIds":["t1","t2"],"updates":{"completed":true}}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var got envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "2 tasks updated successfully", got.Message)

	var data dto.BulkUpdateData
	require.NoError(t, json.Unmarshal(got.Data, &data))
	require.Equal(t, int64(2), data.ModifiedCount)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_BulkUpdateTasks_EmptyBatch(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("BulkUpdate", mock.Anything, testOwner, mock.Anything, mock.AnythingOfType("domain.TaskPatch")).
		Return(int64(0), domain.ErrEmptyBatch).Once()

	router := newTaskRouter(serviceMock)
	rec := doJSON(router, http.MethodPut, "/api/tasks/bulk", `{"taskIds":[],"updates":{"completed":true}}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Task IDs array is required", got.ErrDetails.Message)
}

func TestTaskHandler_BulkDeleteTasks_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("BulkDelete", mock.Anything, testOwner, []string{"t1"}).Return(int64(0), nil).Once()

	router := newTaskRouter(serviceMock)
	rec := doJSON(router, http.MethodDelete, "/api/tasks/bulk", `{"taskIds":["t1"]}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var got envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.True(t, got.Success)
	require.Equal(t, "0 tasks deleted successfully", got.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_GetTaskStats_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("Stats", mock.Anything, testOwner).Return(domain.StatsReport{
		Stats: domain.TaskStats{Total: 3, Active: 2, Completed: 1, HighPriority: 1, MediumPriority: 1, LowPriority: 1, Overdue: 1},
		CompletionByMonth: []domain.MonthBucket{
			{Year: 2026, Month: 9, Total: 2, Completed: 1},
			{Year: 2026, Month: 8, Total: 1, Completed: 0},
		},
	}, nil).Once()

	router := newTaskRouter(serviceMock)
	rec := doJSON(router, http.MethodGet, "/api/tasks/stats", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.True(t, got.Success)

	var data dto.StatsData
	require.NoError(t, json.Unmarshal(got.Data, &data))
	require.Equal(t, int64(3), data.Stats.Total)
	require.Equal(t, data.Stats.Total, data.Stats.Active+data.Stats.Completed)
	require.Len(t, data.CompletionByMonth, 2)
	require.Equal(t, 9, data.CompletionByMonth[0].Month)
	serviceMock.AssertExpectations(t)
}
