package http

import (
	"context"
	"net/http"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	"github.com/Manishsonibwr/saas-task-manager/internal/middleware/auth"
	"github.com/Manishsonibwr/saas-task-manager/internal/usecase"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ProjectUsecase interface {
	Create(ctx context.Context, userID uint, in usecase.CreateProjectInput) (*model.Project, error)
	ListByWorkspace(ctx context.Context, userID, workspaceID uint) ([]model.Project, error)
	Get(ctx context.Context, userID, id uint) (*model.Project, error)
	Update(ctx context.Context, userID, id uint, in usecase.UpdateProjectInput) (*model.Project, error)
	Delete(ctx context.Context, userID, id uint) error
}

type createProjectRequest struct {
	WorkspaceID uint    `json:"workspace_id" validate:"required"`
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
}

type updateProjectRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Archived    *bool   `json:"archived"`
}

type ProjectHandler struct {
	usecase ProjectUsecase
	logger  *zap.Logger
}

func NewProjectHandler(usecase ProjectUsecase, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// Create returns 403 with the plan limit message when the workspace is at
// its project quota
func (h *ProjectHandler) Create(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := h.usecase.Create(c.Request().Context(), user.UserID, usecase.CreateProjectInput{
		WorkspaceID: req.WorkspaceID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return respondError(h.logger, err, "Failed to create project",
			zap.Uint("user_id", user.UserID),
			zap.Uint("workspace_id", req.WorkspaceID))
	}

	return c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) ListByWorkspace(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	workspaceID, err := pathID(c, "workspace_id")
	if err != nil {
		return err
	}

	projects, err := h.usecase.ListByWorkspace(c.Request().Context(), user.UserID, workspaceID)
	if err != nil {
		return respondError(h.logger, err, "Failed to list projects", zap.Uint("workspace_id", workspaceID))
	}
	if projects == nil {
		projects = []model.Project{}
	}

	return c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) Get(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	project, err := h.usecase.Get(c.Request().Context(), user.UserID, id)
	if err != nil {
		return respondError(h.logger, err, "Failed to get project", zap.Uint("project_id", id))
	}

	return c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Update(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := h.usecase.Update(c.Request().Context(), user.UserID, id, usecase.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Archived:    req.Archived,
	})
	if err != nil {
		return respondError(h.logger, err, "Failed to update project", zap.Uint("project_id", id))
	}

	return c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Delete(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.usecase.Delete(c.Request().Context(), user.UserID, id); err != nil {
		return respondError(h.logger, err, "Failed to delete project", zap.Uint("project_id", id))
	}

	return c.NoContent(http.StatusNoContent)
}
