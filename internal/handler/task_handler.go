package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"chronotask/internal/auth"
	apperrors "chronotask/internal/errors"
	"chronotask/internal/model"
	"chronotask/internal/service"
)

// TaskHandler handles task CRUD endpoints. All routes sit behind the auth
// guard, so a resolved user is always present.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents a new task.
type CreateTaskRequest struct {
	Name string `json:"name" validate:"required"`
	Tag  string `json:"tag" validate:"required"`
	Time string `json:"time" validate:"omitempty"`
}

// UpdateTaskRequest carries a partial task update.
type UpdateTaskRequest struct {
	Name *string `json:"name"`
	Tag  *string `json:"tag"`
	Time *string `json:"time"`
}

// Create godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task data"
// @Success 201 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Failure 401 {object} errors.Envelope
// @Router /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.ErrUnauthenticated
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.New(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.taskService.Create(c.Request().Context(), user.ID, &model.Task{
		Name: req.Name,
		Tag:  req.Tag,
		Time: req.Time,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, apperrors.Envelope{
		Status: apperrors.StatusSuccess,
		Data:   echo.Map{"task": task},
	})
}

// Get godoc
// @Summary Get a task by id
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param taskId path int true "Task ID"
// @Success 200 {object} errors.Envelope
// @Failure 401 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /tasks/{taskId} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.ErrUnauthenticated
	}

	taskID, err := taskIDParam(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.Get(c.Request().Context(), user.ID, taskID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, apperrors.Envelope{
		Status: apperrors.StatusSuccess,
		Data:   echo.Map{"task": task},
	})
}

// Update godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param taskId path int true "Task ID"
// @Param request body UpdateTaskRequest true "Fields to update"
// @Success 201 {object} errors.Envelope
// @Failure 401 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /tasks/{taskId} [patch]
func (h *TaskHandler) Update(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.ErrUnauthenticated
	}

	taskID, err := taskIDParam(c)
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.New(http.StatusBadRequest, "invalid request body")
	}

	task, err := h.taskService.Update(c.Request().Context(), user.ID, taskID, service.TaskUpdate{
		Name: req.Name,
		Tag:  req.Tag,
		Time: req.Time,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, apperrors.Envelope{
		Status: apperrors.StatusSuccess,
		Data:   echo.Map{"task": task},
	})
}

// Delete godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param taskId path int true "Task ID"
// @Success 200 {object} errors.Envelope
// @Failure 401 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /tasks/{taskId} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.ErrUnauthenticated
	}

	taskID, err := taskIDParam(c)
	if err != nil {
		return err
	}

	if err := h.taskService.Delete(c.Request().Context(), user.ID, taskID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, apperrors.Envelope{
		Status:  apperrors.StatusSuccess,
		Data:    nil,
		Message: "task deleted",
	})
}

func taskIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("taskId"), 10, 32)
	if err != nil {
		return 0, apperrors.ErrTaskNotFound
	}
	return uint(id), nil
}
