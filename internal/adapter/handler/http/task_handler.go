package http

import (
	"context"
	"net/http"
	"time"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	"github.com/Manishsonibwr/saas-task-manager/internal/middleware/auth"
	"github.com/Manishsonibwr/saas-task-manager/internal/usecase"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type TaskUsecase interface {
	Create(ctx context.Context, userID uint, in usecase.CreateTaskInput) (*model.Task, error)
	ListByProject(ctx context.Context, userID, projectID uint) ([]model.Task, error)
	Get(ctx context.Context, userID, id uint) (*model.Task, error)
	Update(ctx context.Context, userID, id uint, in usecase.UpdateTaskInput) (*model.Task, error)
	Delete(ctx context.Context, userID, id uint) error
}

// createTaskRequest position is accepted for compatibility but the server
// always appends the task to the end of the project
type createTaskRequest struct {
	ProjectID   uint       `json:"project_id" validate:"required"`
	Title       string     `json:"title" validate:"required,max=255"`
	Description *string    `json:"description"`
	Status      string     `json:"status" validate:"omitempty,oneof=todo in_progress done"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
	Position    int        `json:"position"`
}

type updateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" validate:"omitempty,oneof=todo in_progress done"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
	Position    *int       `json:"position"`
	AssignedTo  *uint      `json:"assigned_to"`
}

type TaskHandler struct {
	usecase TaskUsecase
	logger  *zap.Logger
}

func NewTaskHandler(usecase TaskUsecase, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		usecase: usecase,
		logger:  logger,
	}
}

func (h *TaskHandler) Create(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.usecase.Create(c.Request().Context(), user.UserID, usecase.CreateTaskInput{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return respondError(h.logger, err, "Failed to create task",
			zap.Uint("user_id", user.UserID),
			zap.Uint("project_id", req.ProjectID))
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) ListByProject(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return err
	}

	tasks, err := h.usecase.ListByProject(c.Request().Context(), user.UserID, projectID)
	if err != nil {
		return respondError(h.logger, err, "Failed to list tasks", zap.Uint("project_id", projectID))
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	return c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Get(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	task, err := h.usecase.Get(c.Request().Context(), user.UserID, id)
	if err != nil {
		return respondError(h.logger, err, "Failed to get task", zap.Uint("task_id", id))
	}

	return c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Update(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.usecase.Update(c.Request().Context(), user.UserID, id, usecase.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Position:    req.Position,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		return respondError(h.logger, err, "Failed to update task", zap.Uint("task_id", id))
	}

	return c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Delete(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.usecase.Delete(c.Request().Context(), user.UserID, id); err != nil {
		return respondError(h.logger, err, "Failed to delete task", zap.Uint("task_id", id))
	}

	return c.NoContent(http.StatusNoContent)
}
