package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "todoapi/internal/errors"
	"todoapi/internal/model"
	"todoapi/internal/repository"
	"todoapi/internal/service"
)

// TaskHandler handles task endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// UpdateTaskRequest represents a partial task update. Absent fields are
// left unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// ListTasksRequest carries the raw list query parameters before validation.
type ListTasksRequest struct {
	Status  string `query:"status"`
	Q       string `query:"q"`
	SortBy  string `query:"sort_by"`
	SortDir string `query:"sort_dir"`
	Page    int    `query:"page"`
	Limit   int    `query:"limit"`
}

func taskIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, apperrors.ErrorResponse{
			Error: "task not found",
			Code:  "TASK_NOT_FOUND",
		})
	}
	return uint(id), nil
}

func httpError(err error) *echo.HTTPError {
	he := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}

func (h *TaskHandler) list(c echo.Context, ownerID *uint) error {
	var req ListTasksRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid query parameters")
	}

	query, err := repository.BuildListQuery(ownerID, req.Status, req.Q, req.SortBy, req.SortDir, req.Page, req.Limit)
	if err != nil {
		return httpError(err)
	}

	page, err := h.taskService.ListTasks(c.Request().Context(), query)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, page)
}

// ListTasks godoc
// @Summary List tasks
// @Description Paginated list of all tasks with optional status filter, text search and sorting.
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter" Enums(New, In Progress, Completed)
// @Param q query string false "Case-insensitive substring match on title or description"
// @Param sort_by query string false "Sort field" Enums(id, title, status, user_id)
// @Param sort_dir query string false "Sort direction" Enums(asc, desc)
// @Param page query int false "Page number (>=1)"
// @Param limit query int false "Page size (1..100)"
// @Success 200 {object} service.TaskPage
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	return h.list(c, nil)
}

// ListMyTasks godoc
// @Summary List my tasks
// @Description Same as /tasks but restricted to tasks owned by the caller.
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter" Enums(New, In Progress, Completed)
// @Param q query string false "Case-insensitive substring match on title or description"
// @Param sort_by query string false "Sort field" Enums(id, title, status, user_id)
// @Param sort_dir query string false "Sort direction" Enums(asc, desc)
// @Param page query int false "Page number (>=1)"
// @Param limit query int false "Page size (1..100)"
// @Success 200 {object} service.TaskPage
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /tasks/mine [get]
func (h *TaskHandler) ListMyTasks(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	return h.list(c, &claims.UserID)
}

// GetTask godoc
// @Summary Get a task by ID
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := taskIDParam(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// CreateTask godoc
// @Summary Create a task
// @Description Create a new task owned by the caller. Status defaults to New.
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task payload"
// @Success 201 {object} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), claims.UserID, req.Title, req.Description, model.TaskStatus(req.Status))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

// UpdateTask godoc
// @Summary Update a task (owner-only)
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body UpdateTaskRequest true "Fields to change"
// @Success 200 {object} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /tasks/{id} [patch]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := taskIDParam(c)
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	upd := service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		upd.Status = &status
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), id, claims.UserID, upd)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// CompleteTask godoc
// @Summary Mark a task as completed (owner-only, idempotent)
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id}/complete [patch]
func (h *TaskHandler) CompleteTask(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := taskIDParam(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.CompleteTask(c.Request().Context(), id, claims.UserID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task (owner-only)
// @Tags tasks
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 204 "No Content"
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := taskIDParam(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id, claims.UserID); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
