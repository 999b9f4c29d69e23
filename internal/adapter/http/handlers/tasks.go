package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"todolist/internal/adapter/http/dto"
	"todolist/internal/adapter/http/mapper"
	"todolist/internal/adapter/http/middleware"
	"todolist/internal/adapter/http/validation"
	"todolist/internal/core/domain"
	"todolist/internal/core/ports"
	"todolist/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	page, err := h.taskService.List(c.Request.Context(), ownerID, parseListQuery(c))
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailListTasks)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{
		Success: true,
		Data: dto.TaskListData{
			Tasks:      mapper.ToTaskItems(page.Tasks),
			Pagination: page.Pagination,
			Stats:      page.Stats,
		},
	})
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	task, err := h.taskService.Get(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailGetTask)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{
		Success: true,
		Data:    dto.TaskData{Task: mapper.ToTaskItem(task)},
	})
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	var req dto.CreateTaskRequest
	if err := decodeJSONBody(c, &req, nil); err != nil {
		respondInvalidPayload(c)
		return
	}

	input, err := validation.BuildCreateTaskInput(req)
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailCreateTask)
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), ownerID, input)
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailCreateTask)
		return
	}

	c.JSON(http.StatusCreated, dto.Envelope{
		Success: true,
		Message: "Task created successfully",
		Data:    dto.TaskData{Task: mapper.ToTaskItem(task)},
	})
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	var req dto.UpdateTaskRequest
	var raw map[string]json.RawMessage
	if err := decodeJSONBody(c, &req, &raw); err != nil {
		respondInvalidPayload(c)
		return
	}

	patch, err := validation.BuildTaskPatch(req, raw)
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), ownerID, c.Param("id"), patch)
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{
		Success: true,
		Message: "Task updated successfully",
		Data:    dto.TaskData{Task: mapper.ToTaskItem(task)},
	})
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	if err := h.taskService.Delete(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		respondTaskError(c, err, apierrors.MsgFailDeleteTask)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{
		Success: true,
		Message: "Task deleted successfully",
	})
}

func (h *TaskHandler) ToggleTask(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	task, err := h.taskService.Toggle(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailToggleTask)
		return
	}

	state := "active"
	if task.Completed {
		state = "completed"
	}
	c.JSON(http.StatusOK, dto.Envelope{
		Success: true,
		Message: fmt.Sprintf("Task marked as %s", state),
		Data:    dto.TaskData{Task: mapper.ToTaskItem(task)},
	})
}

func (h *TaskHandler) BulkUpdateTasks(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	var req dto.BulkUpdateRequest
	if err := decodeJSONBody(c, &req, nil); err != nil {
		respondInvalidPayload(c)
		return
	}

	var updates dto.UpdateTaskRequest
	var raw map[string]json.RawMessage
	if len(req.Updates) > 0 {
		if err := json.Unmarshal(req.Updates, &raw); err != nil {
			respondInvalidPayload(c)
			return
		}
		if err := json.Unmarshal(req.Updates, &updates); err != nil {
			respondInvalidPayload(c)
			return
		}
	}

	patch, err := validation.BuildTaskPatch(updates, raw)
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailBulkUpdate)
		return
	}

	modified, err := h.taskService.BulkUpdate(c.Request.Context(), ownerID, req.TaskIDs, patch)
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailBulkUpdate)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{
		Success: true,
		Message: fmt.Sprintf("%d tasks updated successfully", modified),
		Data:    dto.BulkUpdateData{ModifiedCount: modified},
	})
}

func (h *TaskHandler) BulkDeleteTasks(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	var req dto.BulkDeleteRequest
	if err := decodeJSONBody(c, &req, nil); err != nil {
		respondInvalidPayload(c)
		return
	}

	deleted, err := h.taskService.BulkDelete(c.Request.Context(), ownerID, req.TaskIDs)
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailBulkDelete)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{
		Success: true,
		Message: fmt.Sprintf("%d tasks deleted successfully", deleted),
		Data:    dto.BulkDeleteData{DeletedCount: deleted},
	})
}

func (h *TaskHandler) GetTaskStats(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	report, err := h.taskService.Stats(c.Request.Context(), ownerID)
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailGetStats)
		return
	}

	completionByMonth := report.CompletionByMonth
	if completionByMonth == nil {
		completionByMonth = []domain.MonthBucket{}
	}
	c.JSON(http.StatusOK, dto.Envelope{
		Success: true,
		Data: dto.StatsData{
			Stats:             report.Stats,
			CompletionByMonth: completionByMonth,
		},
	})
}

func parseListQuery(c *gin.Context) domain.ListQuery {
	return domain.ListQuery{
		Page:      intQuery(c, "page"),
		PageSize:  intQuery(c, "limit"),
		Status:    c.DefaultQuery("status", domain.StatusAll),
		Priority:  c.Query("priority"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Search:    c.Query("search"),
	}
}

// intQuery parses a numeric query parameter, falling back to zero so the
// planner applies its defaults.
func intQuery(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return value
}

// decodeJSONBody decodes the request body into dst and, when raw is given,
// also into a field-presence map for patch building.
func decodeJSONBody(c *gin.Context, dst any, raw *map[string]json.RawMessage) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return err
	}
	if raw != nil {
		if err := json.Unmarshal(body, raw); err != nil {
			return err
		}
	}
	return json.Unmarshal(body, dst)
}

func respondInvalidPayload(c *gin.Context) {
	lang := middleware.GetLang(c)
	c.JSON(
		http.StatusBadRequest,
		apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
	)
}

// respondTaskError maps domain errors onto API responses. Store failures
// are logged and surfaced as the per-operation generic message; a task the
// caller does not own looks exactly like a missing one.
func respondTaskError(c *gin.Context, err error, failKey string) {
	lang := middleware.GetLang(c)

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateValidationError(http.StatusBadRequest, apierrors.MsgValidationFailed, lang, fieldDetails(validationErr)),
		)
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
		)
	case errors.Is(err, domain.ErrEmptyBatch):
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgEmptyBatch, lang),
		)
	default:
		zap.L().Error("task operation failed", zap.String("operation", failKey), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, failKey, lang),
		)
	}
}

func fieldDetails(err *domain.ValidationError) []apierrors.FieldDetail {
	details := make([]apierrors.FieldDetail, 0, len(err.Fields))
	for _, field := range err.Fields {
		details = append(details, apierrors.FieldDetail{Field: field.Field, Message: field.Message})
	}
	return details
}
