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

type planRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *gorm.DB, logger *zap.Logger) domainRepo.PlanRepository {
	return &planRepository{
		db:     db,
		logger: logger,
	}
}

// FindByID retrieves a plan by ID regardless of its active flag
func (r *planRepository) FindByID(ctx context.Context, id uint) (*model.Plan, error) {
	var plan model.Plan

	err := conn(ctx, r.db).First(&plan, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get plan by ID",
			zap.Uint("plan_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return &plan, nil
}

// FindByName retrieves a plan by its unique name
func (r *planRepository) FindByName(ctx context.Context, name string) (*model.Plan, error) {
	var plan model.Plan

	err := conn(ctx, r.db).
		Where("name = ?", name).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get plan by name",
			zap.String("name", name),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return &plan, nil
}

// ListActive retrieves all plans that can be selected for new subscriptions
func (r *planRepository) ListActive(ctx context.Context) ([]model.Plan, error) {
	var plans []model.Plan

	err := conn(ctx, r.db).
		Where("is_active = ?", true).
		Order("price_per_month ASC, id ASC").
		Find(&plans).Error
	if err != nil {
		r.logger.Error("Failed to list active plans", zap.Error(err))
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	return plans, nil
}

// FindOrCreate inserts plan unless a plan with the same name exists, then
// returns the stored row. Concurrent callers never create duplicates.
func (r *planRepository) FindOrCreate(ctx context.Context, plan *model.Plan) (*model.Plan, error) {
	err := conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(plan).Error
	if err != nil {
		r.logger.Error("Failed to create plan",
			zap.String("name", plan.Name),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	stored, err := r.FindByName(ctx, plan.Name)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("plan %q missing after insert", plan.Name)
	}
	return stored, nil
}

// Upsert creates or updates a plan matched by name
func (r *planRepository) Upsert(ctx context.Context, plan *model.Plan) error {
	existing, err := r.FindByName(ctx, plan.Name)
	if err != nil {
		return err
	}

	if existing == nil {
		if err := conn(ctx, r.db).Create(plan).Error; err != nil {
			r.logger.Error("Failed to create plan",
				zap.String("name", plan.Name),
				zap.Error(err))
			return fmt.Errorf("failed to create plan: %w", err)
		}
		return nil
	}

	plan.ID = existing.ID
	plan.CreatedAt = existing.CreatedAt
	err = conn(ctx, r.db).
		Model(&model.Plan{ID: existing.ID}).
		Select("description", "price_per_month", "currency", "is_active", "max_projects", "max_tasks", "max_members").
		Updates(plan).Error
	if err != nil {
		r.logger.Error("Failed to update plan",
			zap.String("name", plan.Name),
			zap.Error(err))
		return fmt.Errorf("failed to update plan: %w", err)
	}

	return nil
}

// Deactivate soft deletes a plan. Existing subscriptions keep referencing it.
func (r *planRepository) Deactivate(ctx context.Context, name string) error {
	err := conn(ctx, r.db).
		Model(&model.Plan{}).
		Where("name = ?", name).
		Update("is_active", false).Error
	if err != nil {
		r.logger.Error("Failed to deactivate plan",
			zap.String("name", name),
			zap.Error(err))
		return fmt.Errorf("failed to deactivate plan: %w", err)
	}

	return nil
}
