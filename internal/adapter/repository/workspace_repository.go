package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	domainRepo "github.com/Manishsonibwr/saas-task-manager/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type workspaceRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewWorkspaceRepository creates a new workspace repository
func NewWorkspaceRepository(db *gorm.DB, logger *zap.Logger) domainRepo.WorkspaceRepository {
	return &workspaceRepository{
		db:     db,
		logger: logger,
	}
}

func (r *workspaceRepository) Create(ctx context.Context, workspace *model.Workspace) error {
	if err := conn(ctx, r.db).Create(workspace).Error; err != nil {
		r.logger.Error("Failed to create workspace",
			zap.Uint("owner_id", workspace.OwnerID),
			zap.Error(err))
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	return nil
}

func (r *workspaceRepository) FindByID(ctx context.Context, id uint) (*model.Workspace, error) {
	return r.find(ctx, conn(ctx, r.db), id)
}

// FindByIDForUpdate takes a row lock on the workspace. It must run inside a transaction.
func (r *workspaceRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Workspace, error) {
	return r.find(ctx, conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *workspaceRepository) find(ctx context.Context, db *gorm.DB, id uint) (*model.Workspace, error) {
	var workspace model.Workspace

	err := db.Where("id = ?", id).First(&workspace).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get workspace",
			zap.Uint("workspace_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	return &workspace, nil
}

// ListByOwner returns the owner's workspaces, newest first
func (r *workspaceRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Workspace, error) {
	var workspaces []model.Workspace

	err := conn(ctx, r.db).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&workspaces).Error
	if err != nil {
		r.logger.Error("Failed to list workspaces",
			zap.Uint("owner_id", ownerID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}

	return workspaces, nil
}

func (r *workspaceRepository) Update(ctx context.Context, workspace *model.Workspace) error {
	if err := conn(ctx, r.db).Save(workspace).Error; err != nil {
		r.logger.Error("Failed to update workspace",
			zap.Uint("workspace_id", workspace.ID),
			zap.Error(err))
		return fmt.Errorf("failed to update workspace: %w", err)
	}

	return nil
}

// Delete removes the workspace, its projects and their tasks in one transaction
func (r *workspaceRepository) Delete(ctx context.Context, id uint) error {
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		projectIDs := tx.Model(&model.Project{}).Select("id").Where("workspace_id = ?", id)
		if err := tx.Where("project_id IN (?)", projectIDs).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", id).Delete(&model.Project{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Workspace{}, id).Error
	})
	if err != nil {
		r.logger.Error("Failed to delete workspace",
			zap.Uint("workspace_id", id),
			zap.Error(err))
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	return nil
}
