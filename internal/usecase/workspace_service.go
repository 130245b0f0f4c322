package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/Manishsonibwr/saas-task-manager/internal/domain/errors"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/repository"
	"go.uber.org/zap"
)

// ErrNameRequired is returned for a blank workspace or project name
var ErrNameRequired = domainErrors.NewValidationError("name", "must not be empty")

// WorkspaceService manages workspaces owned by a user
type WorkspaceService struct {
	workspaceRepo repository.WorkspaceRepository
	logger        *zap.Logger
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(workspaceRepo repository.WorkspaceRepository, logger *zap.Logger) *WorkspaceService {
	return &WorkspaceService{
		workspaceRepo: workspaceRepo,
		logger:        logger,
	}
}

func (s *WorkspaceService) Create(ctx context.Context, userID uint, name string) (*model.Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	workspace := &model.Workspace{Name: name, OwnerID: userID}
	if err := s.workspaceRepo.Create(ctx, workspace); err != nil {
		return nil, err
	}

	s.logger.Info("Workspace created",
		zap.Uint("workspace_id", workspace.ID),
		zap.Uint("owner_id", userID))

	return workspace, nil
}

// List returns the user's workspaces, newest first
func (s *WorkspaceService) List(ctx context.Context, userID uint) ([]model.Workspace, error) {
	return s.workspaceRepo.ListByOwner(ctx, userID)
}

// Get returns the workspace if the user owns it
func (s *WorkspaceService) Get(ctx context.Context, userID, id uint) (*model.Workspace, error) {
	return ownedWorkspace(ctx, s.workspaceRepo.FindByID, id, userID)
}

func (s *WorkspaceService) Update(ctx context.Context, userID, id uint, name *string) (*model.Workspace, error) {
	workspace, err := ownedWorkspace(ctx, s.workspaceRepo.FindByID, id, userID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, ErrNameRequired
		}
		workspace.Name = trimmed
	}

	if err := s.workspaceRepo.Update(ctx, workspace); err != nil {
		return nil, err
	}
	return workspace, nil
}

// Delete removes the workspace with its projects and tasks. Billing history is kept.
func (s *WorkspaceService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := ownedWorkspace(ctx, s.workspaceRepo.FindByID, id, userID); err != nil {
		return err
	}

	if err := s.workspaceRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Workspace deleted", zap.Uint("workspace_id", id), zap.Uint("owner_id", userID))
	return nil
}

type workspaceFinder func(ctx context.Context, id uint) (*model.Workspace, error)

// ownedWorkspace loads the workspace with find and checks that userID owns it.
func ownedWorkspace(ctx context.Context, find workspaceFinder, id, userID uint) (*model.Workspace, error) {
	workspace, err := find(ctx, id)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, domainErrors.NewNotFoundError(domainErrors.ResourceWorkspace, id)
	}
	if workspace.OwnerID != userID {
		return nil, domainErrors.NewAccessDeniedError(domainErrors.ResourceWorkspace, id, userID)
	}
	return workspace, nil
}
