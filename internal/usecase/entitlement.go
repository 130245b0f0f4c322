package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/repository"
	"github.com/Manishsonibwr/saas-task-manager/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// EntitlementResolver decides which plan's limits apply to a workspace
type EntitlementResolver struct {
	subscriptionRepo repository.SubscriptionRepository
	catalog          *PlanCatalog
	metrics          *metrics.BillingMetrics
	logger           *zap.Logger
}

// NewEntitlementResolver creates a new entitlement resolver
func NewEntitlementResolver(
	subscriptionRepo repository.SubscriptionRepository,
	catalog *PlanCatalog,
	metrics *metrics.BillingMetrics,
	logger *zap.Logger,
) *EntitlementResolver {
	return &EntitlementResolver{
		subscriptionRepo: subscriptionRepo,
		catalog:          catalog,
		metrics:          metrics,
		logger:           logger,
	}
}

// ResolveEffectivePlan returns the plan of the workspace's active subscription
// with the latest period end when that period has not ended before now, and
// the Free plan otherwise.
func (r *EntitlementResolver) ResolveEffectivePlan(ctx context.Context, workspaceID uint, now time.Time) (*model.Plan, error) {
	sub, err := r.subscriptionRepo.FindActiveByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active subscription: %w", err)
	}

	if sub != nil && sub.IsEffectiveAt(now) {
		if sub.Plan != nil {
			return sub.Plan, nil
		}
		r.logger.Warn("Active subscription has no plan, using free plan",
			zap.Uint("workspace_id", workspaceID),
			zap.Uint("subscription_id", sub.ID),
			zap.Uint("plan_id", sub.PlanID))
	}

	r.metrics.FellBackToFree()
	return r.catalog.FreePlan(ctx)
}
