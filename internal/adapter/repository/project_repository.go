package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	domainRepo "github.com/Manishsonibwr/saas-task-manager/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type projectRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB, logger *zap.Logger) domainRepo.ProjectRepository {
	return &projectRepository{
		db:     db,
		logger: logger,
	}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	if err := conn(ctx, r.db).Create(project).Error; err != nil {
		r.logger.Error("Failed to create project",
			zap.Uint("workspace_id", project.WorkspaceID),
			zap.Error(err))
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

func (r *projectRepository) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project

	err := conn(ctx, r.db).Where("id = ?", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get project",
			zap.Uint("project_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &project, nil
}

// ListByWorkspace returns the workspace's projects, newest first
func (r *projectRepository) ListByWorkspace(ctx context.Context, workspaceID uint) ([]model.Project, error) {
	var projects []model.Project

	err := conn(ctx, r.db).
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		r.logger.Error("Failed to list projects",
			zap.Uint("workspace_id", workspaceID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	if err := conn(ctx, r.db).Save(project).Error; err != nil {
		r.logger.Error("Failed to update project",
			zap.Uint("project_id", project.ID),
			zap.Error(err))
		return fmt.Errorf("failed to update project: %w", err)
	}

	return nil
}

// Delete removes the project and its tasks
func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Project{}, id).Error
	})
	if err != nil {
		r.logger.Error("Failed to delete project",
			zap.Uint("project_id", id),
			zap.Error(err))
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// CountByWorkspace counts every project of the workspace, archived included
func (r *projectRepository) CountByWorkspace(ctx context.Context, workspaceID uint) (int64, error) {
	var count int64

	err := conn(ctx, r.db).
		Model(&model.Project{}).
		Where("workspace_id = ?", workspaceID).
		Count(&count).Error
	if err != nil {
		r.logger.Error("Failed to count projects",
			zap.Uint("workspace_id", workspaceID),
			zap.Error(err))
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}

	return count, nil
}
