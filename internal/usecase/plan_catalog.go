package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/Manishsonibwr/saas-task-manager/internal/domain/errors"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/repository"
	"go.uber.org/zap"
)

// PlanCatalog owns the set of purchasable plans
type PlanCatalog struct {
	planRepo repository.PlanRepository
	logger   *zap.Logger
}

// NewPlanCatalog creates a new plan catalog
func NewPlanCatalog(planRepo repository.PlanRepository, logger *zap.Logger) *PlanCatalog {
	return &PlanCatalog{
		planRepo: planRepo,
		logger:   logger,
	}
}

// EnsureDefaultPlans makes sure the Free and Pro plans exist and returns them.
// Existing rows are returned untouched, so repeated calls never duplicate or
// modify a plan.
func (c *PlanCatalog) EnsureDefaultPlans(ctx context.Context) ([]model.Plan, error) {
	defaults := model.DefaultPlans()
	plans := make([]model.Plan, 0, len(defaults))

	for i := range defaults {
		plan, err := c.planRepo.FindOrCreate(ctx, &defaults[i])
		if err != nil {
			return nil, fmt.Errorf("failed to ensure plan %s: %w", defaults[i].Name, err)
		}
		plans = append(plans, *plan)
	}

	return plans, nil
}

// ListActivePlans seeds the defaults when missing and returns every active plan
func (c *PlanCatalog) ListActivePlans(ctx context.Context) ([]model.Plan, error) {
	if _, err := c.EnsureDefaultPlans(ctx); err != nil {
		return nil, err
	}

	plans, err := c.planRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active plans: %w", err)
	}
	return plans, nil
}

// GetActivePlan returns the plan or a NotFound error when it is missing or inactive
func (c *PlanCatalog) GetActivePlan(ctx context.Context, id uint) (*model.Plan, error) {
	plan, err := c.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil || !plan.IsActive {
		return nil, domainErrors.NewPlanNotFoundError(id)
	}
	return plan, nil
}

// FreePlan returns the Free plan, creating it when missing
func (c *PlanCatalog) FreePlan(ctx context.Context) (*model.Plan, error) {
	plan, err := c.planRepo.FindByName(ctx, model.PlanFree)
	if err != nil {
		return nil, fmt.Errorf("failed to get free plan: %w", err)
	}
	if plan != nil {
		return plan, nil
	}

	free := model.DefaultPlans()[0]
	plan, err = c.planRepo.FindOrCreate(ctx, &free)
	if err != nil {
		return nil, fmt.Errorf("failed to get free plan: %w", err)
	}
	return plan, nil
}
