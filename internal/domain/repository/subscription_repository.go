package repository

import (
	"context"
	"time"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
)

// SubscriptionRepository reads always preload the plan.
type SubscriptionRepository interface {
	// FindLatestByWorkspace returns the most recently created row regardless of status.
	FindLatestByWorkspace(ctx context.Context, workspaceID uint) (*model.Subscription, error)
	// FindActiveByWorkspace returns the active row with the latest period end,
	// treating an open-ended period as the latest.
	FindActiveByWorkspace(ctx context.Context, workspaceID uint) (*model.Subscription, error)
	Create(ctx context.Context, subscription *model.Subscription) error
	Update(ctx context.Context, subscription *model.Subscription) error
	// ExpireOverdue marks active rows whose period ended before now as expired
	// and returns them.
	ExpireOverdue(ctx context.Context, now time.Time) ([]model.Subscription, error)
}
