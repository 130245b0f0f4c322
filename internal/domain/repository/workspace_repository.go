package repository

import (
	"context"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
)

type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *model.Workspace) error
	FindByID(ctx context.Context, id uint) (*model.Workspace, error)
	// FindByIDForUpdate locks the workspace row until the surrounding
	// transaction ends. It serializes writes that depend on workspace usage.
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Workspace, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Workspace, error)
	Update(ctx context.Context, workspace *model.Workspace) error
	// Delete removes the workspace with its projects and tasks. Subscriptions
	// and payments are kept.
	Delete(ctx context.Context, id uint) error
}

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id uint) (*model.Project, error)
	ListByWorkspace(ctx context.Context, workspaceID uint) ([]model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	// Delete removes the project and its tasks.
	Delete(ctx context.Context, id uint) error
	CountByWorkspace(ctx context.Context, workspaceID uint) (int64, error)
}

type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	ListByProject(ctx context.Context, projectID uint) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uint) error
	// CountByWorkspace counts tasks across all projects of the workspace.
	CountByWorkspace(ctx context.Context, workspaceID uint) (int64, error)
	// MaxPosition returns the highest task position in the project, or nil
	// when the project has no tasks.
	MaxPosition(ctx context.Context, projectID uint) (*int, error)
}
