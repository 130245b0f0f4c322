package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	"go.uber.org/zap"
)

// SyncResult summarizes a plan catalog synchronization
type SyncResult struct {
	Upserted    []string
	Deactivated []string
}

// SyncPlans upserts plans by name. With deactivateMissing, active plans absent
// from the input are deactivated, except the Free plan which entitlement
// falls back to.
func (c *PlanCatalog) SyncPlans(ctx context.Context, plans []model.Plan, deactivateMissing bool) (*SyncResult, error) {
	if err := validatePlans(plans); err != nil {
		return nil, err
	}

	result := &SyncResult{}
	seen := make(map[string]struct{}, len(plans))

	for i := range plans {
		plan := plans[i]
		if plan.Currency == "" {
			plan.Currency = "INR"
		}

		if err := c.planRepo.Upsert(ctx, &plan); err != nil {
			return result, fmt.Errorf("failed to upsert plan %s: %w", plan.Name, err)
		}

		c.logger.Info("Plan synced",
			zap.String("name", plan.Name),
			zap.String("price_per_month", plan.PricePerMonth.StringFixed(2)),
			zap.Bool("is_active", plan.IsActive))

		seen[plan.Name] = struct{}{}
		result.Upserted = append(result.Upserted, plan.Name)
	}

	if !deactivateMissing {
		return result, nil
	}

	active, err := c.planRepo.ListActive(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list active plans: %w", err)
	}

	for _, plan := range active {
		if _, ok := seen[plan.Name]; ok || plan.Name == model.PlanFree {
			continue
		}
		if err := c.planRepo.Deactivate(ctx, plan.Name); err != nil {
			return result, fmt.Errorf("failed to deactivate plan %s: %w", plan.Name, err)
		}

		c.logger.Info("Plan deactivated", zap.String("name", plan.Name))
		result.Deactivated = append(result.Deactivated, plan.Name)
	}

	return result, nil
}

func validatePlans(plans []model.Plan) error {
	names := make(map[string]struct{}, len(plans))
	for _, plan := range plans {
		name := strings.TrimSpace(plan.Name)
		if name == "" {
			return fmt.Errorf("plan name is required")
		}
		if _, dup := names[name]; dup {
			return fmt.Errorf("duplicate plan name: %s", name)
		}
		names[name] = struct{}{}

		if name == model.PlanFree && !plan.IsActive {
			return fmt.Errorf("plan %s must stay active", model.PlanFree)
		}
		if plan.PricePerMonth.IsNegative() {
			return fmt.Errorf("plan %s: price_per_month must not be negative", name)
		}
		for _, limit := range []*int{plan.MaxProjects, plan.MaxTasks, plan.MaxMembers} {
			if limit != nil && *limit < 0 {
				return fmt.Errorf("plan %s: limits must not be negative", name)
			}
		}
	}
	return nil
}
