package http

import (
	"context"
	"net/http"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	"github.com/Manishsonibwr/saas-task-manager/internal/middleware/auth"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type WorkspaceUsecase interface {
	Create(ctx context.Context, userID uint, name string) (*model.Workspace, error)
	List(ctx context.Context, userID uint) ([]model.Workspace, error)
	Get(ctx context.Context, userID, id uint) (*model.Workspace, error)
	Update(ctx context.Context, userID, id uint, name *string) (*model.Workspace, error)
	Delete(ctx context.Context, userID, id uint) error
}

type createWorkspaceRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type updateWorkspaceRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=255"`
}

type WorkspaceHandler struct {
	usecase WorkspaceUsecase
	logger  *zap.Logger
}

func NewWorkspaceHandler(usecase WorkspaceUsecase, logger *zap.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		usecase: usecase,
		logger:  logger,
	}
}

func (h *WorkspaceHandler) Create(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req createWorkspaceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	workspace, err := h.usecase.Create(c.Request().Context(), user.UserID, req.Name)
	if err != nil {
		return respondError(h.logger, err, "Failed to create workspace", zap.Uint("user_id", user.UserID))
	}

	return c.JSON(http.StatusCreated, workspace)
}

func (h *WorkspaceHandler) List(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	workspaces, err := h.usecase.List(c.Request().Context(), user.UserID)
	if err != nil {
		return respondError(h.logger, err, "Failed to list workspaces", zap.Uint("user_id", user.UserID))
	}
	if workspaces == nil {
		workspaces = []model.Workspace{}
	}

	return c.JSON(http.StatusOK, workspaces)
}

func (h *WorkspaceHandler) Get(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	workspace, err := h.usecase.Get(c.Request().Context(), user.UserID, id)
	if err != nil {
		return respondError(h.logger, err, "Failed to get workspace", zap.Uint("workspace_id", id))
	}

	return c.JSON(http.StatusOK, workspace)
}

func (h *WorkspaceHandler) Update(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateWorkspaceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	workspace, err := h.usecase.Update(c.Request().Context(), user.UserID, id, req.Name)
	if err != nil {
		return respondError(h.logger, err, "Failed to update workspace", zap.Uint("workspace_id", id))
	}

	return c.JSON(http.StatusOK, workspace)
}

func (h *WorkspaceHandler) Delete(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.usecase.Delete(c.Request().Context(), user.UserID, id); err != nil {
		return respondError(h.logger, err, "Failed to delete workspace", zap.Uint("workspace_id", id))
	}

	return c.NoContent(http.StatusNoContent)
}
