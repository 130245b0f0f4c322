package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/Manishsonibwr/saas-task-manager/internal/domain/errors"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/repository"
	"go.uber.org/zap"
)

type CreateProjectInput struct {
	WorkspaceID uint
	Name        string
	Description *string
}

// UpdateProjectInput fields left nil are not changed
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Archived    *bool
}

// ProjectService manages projects inside workspaces the user owns
type ProjectService struct {
	tx            repository.Transactor
	workspaceRepo repository.WorkspaceRepository
	projectRepo   repository.ProjectRepository
	quota         *QuotaEnforcer
	logger        *zap.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	tx repository.Transactor,
	workspaceRepo repository.WorkspaceRepository,
	projectRepo repository.ProjectRepository,
	quota *QuotaEnforcer,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		tx:            tx,
		workspaceRepo: workspaceRepo,
		projectRepo:   projectRepo,
		quota:         quota,
		logger:        logger,
	}
}

// Create inserts a project after the project quota check. The workspace row
// stays locked from the check until the insert commits, so concurrent creates
// in one workspace cannot exceed the limit.
func (s *ProjectService) Create(ctx context.Context, userID uint, in CreateProjectInput) (*model.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	project := &model.Project{
		Name:        name,
		Description: in.Description,
		WorkspaceID: in.WorkspaceID,
		CreatedBy:   userID,
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		workspace, err := ownedWorkspace(ctx, s.workspaceRepo.FindByIDForUpdate, in.WorkspaceID, userID)
		if err != nil {
			return err
		}

		if err := s.quota.CheckProjectLimit(ctx, workspace.ID); err != nil {
			return err
		}

		return s.projectRepo.Create(ctx, project)
	})
	if err != nil {
		s.quota.PublishExceeded(ctx, in.WorkspaceID, err)
		return nil, err
	}

	s.logger.Info("Project created",
		zap.Uint("project_id", project.ID),
		zap.Uint("workspace_id", project.WorkspaceID))

	return project, nil
}

// ListByWorkspace returns the workspace's projects, newest first
func (s *ProjectService) ListByWorkspace(ctx context.Context, userID, workspaceID uint) ([]model.Project, error) {
	if _, err := ownedWorkspace(ctx, s.workspaceRepo.FindByID, workspaceID, userID); err != nil {
		return nil, err
	}
	return s.projectRepo.ListByWorkspace(ctx, workspaceID)
}

func (s *ProjectService) Get(ctx context.Context, userID, id uint) (*model.Project, error) {
	return s.ownedProject(ctx, userID, id)
}

func (s *ProjectService) Update(ctx context.Context, userID, id uint, in UpdateProjectInput) (*model.Project, error) {
	project, err := s.ownedProject(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		project.Name = name
	}
	if in.Description != nil {
		project.Description = in.Description
	}
	if in.Archived != nil {
		project.Archived = *in.Archived
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes the project and its tasks
func (s *ProjectService) Delete(ctx context.Context, userID, id uint) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		project, err := s.ownedProject(ctx, userID, id)
		if err != nil {
			return err
		}
		if _, err := s.workspaceRepo.FindByIDForUpdate(ctx, project.WorkspaceID); err != nil {
			return err
		}
		return s.projectRepo.Delete(ctx, id)
	})
}

func (s *ProjectService) ownedProject(ctx context.Context, userID, id uint) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domainErrors.NewNotFoundError(domainErrors.ResourceProject, id)
	}

	workspace, err := s.workspaceRepo.FindByID(ctx, project.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if workspace == nil || workspace.OwnerID != userID {
		return nil, domainErrors.NewAccessDeniedError(domainErrors.ResourceProject, id, userID)
	}
	return project, nil
}
