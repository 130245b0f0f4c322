package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	domainRepo "github.com/Manishsonibwr/saas-task-manager/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type taskRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB, logger *zap.Logger) domainRepo.TaskRepository {
	return &taskRepository{
		db:     db,
		logger: logger,
	}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := conn(ctx, r.db).Create(task).Error; err != nil {
		r.logger.Error("Failed to create task",
			zap.Uint("project_id", task.ProjectID),
			zap.Error(err))
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

func (r *taskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task

	err := conn(ctx, r.db).Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get task",
			zap.Uint("task_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return &task, nil
}

// ListByProject returns the project's tasks in board order
func (r *taskRepository) ListByProject(ctx context.Context, projectID uint) ([]model.Task, error) {
	var tasks []model.Task

	err := conn(ctx, r.db).
		Where("project_id = ?", projectID).
		Order("position ASC").
		Order("id ASC").
		Find(&tasks).Error
	if err != nil {
		r.logger.Error("Failed to list tasks",
			zap.Uint("project_id", projectID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	if err := conn(ctx, r.db).Save(task).Error; err != nil {
		r.logger.Error("Failed to update task",
			zap.Uint("task_id", task.ID),
			zap.Error(err))
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	if err := conn(ctx, r.db).Delete(&model.Task{}, id).Error; err != nil {
		r.logger.Error("Failed to delete task",
			zap.Uint("task_id", id),
			zap.Error(err))
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// CountByWorkspace counts tasks through their project's workspace
func (r *taskRepository) CountByWorkspace(ctx context.Context, workspaceID uint) (int64, error) {
	var count int64

	err := conn(ctx, r.db).
		Model(&model.Task{}).
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("projects.workspace_id = ?", workspaceID).
		Count(&count).Error
	if err != nil {
		r.logger.Error("Failed to count tasks",
			zap.Uint("workspace_id", workspaceID),
			zap.Error(err))
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	return count, nil
}

func (r *taskRepository) MaxPosition(ctx context.Context, projectID uint) (*int, error) {
	var position sql.NullInt64

	err := conn(ctx, r.db).
		Model(&model.Task{}).
		Select("MAX(position)").
		Where("project_id = ?", projectID).
		Row().
		Scan(&position)
	if err != nil {
		r.logger.Error("Failed to get max task position",
			zap.Uint("project_id", projectID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get max position: %w", err)
	}

	if !position.Valid {
		return nil, nil
	}
	highest := int(position.Int64)
	return &highest, nil
}
