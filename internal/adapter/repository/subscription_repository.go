package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	domainRepo "github.com/Manishsonibwr/saas-task-manager/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type subscriptionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB, logger *zap.Logger) domainRepo.SubscriptionRepository {
	return &subscriptionRepository{
		db:     db,
		logger: logger,
	}
}

// FindLatestByWorkspace retrieves the most recently created subscription row
func (r *subscriptionRepository) FindLatestByWorkspace(ctx context.Context, workspaceID uint) (*model.Subscription, error) {
	var sub model.Subscription

	err := conn(ctx, r.db).
		Preload("Plan").
		Where("workspace_id = ?", workspaceID).
		Order("id DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get latest subscription",
			zap.Uint("workspace_id", workspaceID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return &sub, nil
}

// FindActiveByWorkspace retrieves the active subscription with the latest period end
func (r *subscriptionRepository) FindActiveByWorkspace(ctx context.Context, workspaceID uint) (*model.Subscription, error) {
	var sub model.Subscription

	err := conn(ctx, r.db).
		Preload("Plan").
		Where("workspace_id = ? AND status = ?", workspaceID, model.SubscriptionStatusActive).
		Order("current_period_end DESC NULLS FIRST").
		Order("id DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get active subscription",
			zap.Uint("workspace_id", workspaceID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get active subscription: %w", err)
	}

	return &sub, nil
}

// Create appends a subscription row
func (r *subscriptionRepository) Create(ctx context.Context, subscription *model.Subscription) error {
	err := conn(ctx, r.db).Omit(clause.Associations).Create(subscription).Error
	if err != nil {
		r.logger.Error("Failed to create subscription",
			zap.Uint("workspace_id", subscription.WorkspaceID),
			zap.Uint("plan_id", subscription.PlanID),
			zap.Error(err))
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	return nil
}

// Update saves every column of the subscription row
func (r *subscriptionRepository) Update(ctx context.Context, subscription *model.Subscription) error {
	err := conn(ctx, r.db).Omit(clause.Associations).Save(subscription).Error
	if err != nil {
		r.logger.Error("Failed to update subscription",
			zap.Uint("subscription_id", subscription.ID),
			zap.Error(err))
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	return nil
}

// ExpireOverdue marks active subscriptions whose period ended before now as expired
func (r *subscriptionRepository) ExpireOverdue(ctx context.Context, now time.Time) ([]model.Subscription, error) {
	var expired []model.Subscription

	err := conn(ctx, r.db).
		Model(&expired).
		Clauses(clause.Returning{}).
		Where("status = ? AND current_period_end IS NOT NULL AND current_period_end < ?", model.SubscriptionStatusActive, now).
		Updates(map[string]interface{}{
			"status":     model.SubscriptionStatusExpired,
			"updated_at": now,
		}).Error
	if err != nil {
		r.logger.Error("Failed to expire overdue subscriptions", zap.Error(err))
		return nil, fmt.Errorf("failed to expire subscriptions: %w", err)
	}

	return expired, nil
}
