package usecase

import (
	"context"
	"time"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/event"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/repository"
	"github.com/Manishsonibwr/saas-task-manager/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// SubscriptionSweeper expires active subscriptions whose period has ended.
// Entitlement already ignores such rows; sweeping keeps the stored status
// in line with it.
type SubscriptionSweeper struct {
	subscriptionRepo repository.SubscriptionRepository
	publisher        event.Publisher
	metrics          *metrics.BillingMetrics
	logger           *zap.Logger
	now              func() time.Time
}

// NewSubscriptionSweeper creates a new subscription sweeper
func NewSubscriptionSweeper(
	subscriptionRepo repository.SubscriptionRepository,
	publisher event.Publisher,
	metrics *metrics.BillingMetrics,
	logger *zap.Logger,
) *SubscriptionSweeper {
	return &SubscriptionSweeper{
		subscriptionRepo: subscriptionRepo,
		publisher:        publisher,
		metrics:          metrics,
		logger:           logger,
		now:              time.Now,
	}
}

func (s *SubscriptionSweeper) SetClock(now func() time.Time) {
	s.now = now
}

// ExpireOverdue marks overdue subscriptions expired and returns how many were changed
func (s *SubscriptionSweeper) ExpireOverdue(ctx context.Context) (int, error) {
	expired, err := s.subscriptionRepo.ExpireOverdue(ctx, s.now())
	if err != nil {
		return 0, err
	}

	if len(expired) == 0 {
		s.logger.Debug("No overdue subscriptions")
		return 0, nil
	}

	s.metrics.SubscriptionsExpired(len(expired))
	s.logger.Info("Subscriptions expired", zap.Int("count", len(expired)))

	for _, sub := range expired {
		data := map[string]interface{}{
			"subscription_id": sub.ID,
			"plan_id":         sub.PlanID,
		}
		if sub.CurrentPeriodEnd != nil {
			data["current_period_end"] = sub.CurrentPeriodEnd.UTC().Format(time.RFC3339)
		}
		publishEvent(ctx, s.publisher, s.logger, event.New(event.TypeSubscriptionExpired, sub.WorkspaceID, data))
	}

	return len(expired), nil
}
