package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainErrors "github.com/Manishsonibwr/saas-task-manager/internal/domain/errors"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/event"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/repository"
	"github.com/Manishsonibwr/saas-task-manager/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// ResourceUsage is the current count of a resource against its plan limit.
// A nil Limit means unlimited.
type ResourceUsage struct {
	Used  int64 `json:"used"`
	Limit *int  `json:"limit"`
}

// WorkspaceUsage reports the effective plan and the usage of every limited resource
type WorkspaceUsage struct {
	WorkspaceID uint          `json:"workspace_id"`
	Plan        *model.Plan   `json:"plan"`
	Projects    ResourceUsage `json:"projects"`
	Tasks       ResourceUsage `json:"tasks"`
}

// QuotaEnforcer checks resource counts against the effective plan before creation
type QuotaEnforcer struct {
	resolver    *EntitlementResolver
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	publisher   event.Publisher
	metrics     *metrics.BillingMetrics
	logger      *zap.Logger
	now         func() time.Time
}

// NewQuotaEnforcer creates a new quota enforcer
func NewQuotaEnforcer(
	resolver *EntitlementResolver,
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	publisher event.Publisher,
	metrics *metrics.BillingMetrics,
	logger *zap.Logger,
) *QuotaEnforcer {
	return &QuotaEnforcer{
		resolver:    resolver,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// SetClock replaces the time source used to resolve entitlements
func (q *QuotaEnforcer) SetClock(now func() time.Time) {
	q.now = now
}

// CheckProjectLimit fails with LimitExceededError when the workspace already
// holds as many projects as its plan allows.
func (q *QuotaEnforcer) CheckProjectLimit(ctx context.Context, workspaceID uint) error {
	return q.check(ctx, workspaceID, domainErrors.ResourceProjects,
		func(plan *model.Plan) *int { return plan.MaxProjects },
		q.projectRepo.CountByWorkspace)
}

// CheckTaskLimit fails with LimitExceededError when the workspace already
// holds as many tasks, across all of its projects, as its plan allows.
func (q *QuotaEnforcer) CheckTaskLimit(ctx context.Context, workspaceID uint) error {
	return q.check(ctx, workspaceID, domainErrors.ResourceTasks,
		func(plan *model.Plan) *int { return plan.MaxTasks },
		q.taskRepo.CountByWorkspace)
}

func (q *QuotaEnforcer) check(
	ctx context.Context,
	workspaceID uint,
	resource string,
	limitOf func(*model.Plan) *int,
	count func(context.Context, uint) (int64, error),
) error {
	plan, err := q.resolver.ResolveEffectivePlan(ctx, workspaceID, q.now())
	if err != nil {
		return err
	}

	limit := limitOf(plan)
	if limit == nil {
		q.metrics.QuotaChecked(resource, true)
		return nil
	}

	current, err := count(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to count %s: %w", resource, err)
	}

	if current < int64(*limit) {
		q.metrics.QuotaChecked(resource, true)
		return nil
	}

	q.metrics.QuotaChecked(resource, false)
	q.logger.Info("Quota exceeded",
		zap.Uint("workspace_id", workspaceID),
		zap.String("resource", resource),
		zap.String("plan", plan.Name),
		zap.Int("limit", *limit),
		zap.Int64("current", current))

	return domainErrors.NewLimitExceededError(resource, plan.Name, *limit, current)
}

// PublishExceeded emits quota.exceeded when err is a LimitExceededError and
// does nothing otherwise. Call it after the transaction that ran the check.
func (q *QuotaEnforcer) PublishExceeded(ctx context.Context, workspaceID uint, err error) {
	var limitErr *domainErrors.LimitExceededError
	if !errors.As(err, &limitErr) {
		return
	}

	publishEvent(ctx, q.publisher, q.logger, event.New(event.TypeQuotaExceeded, workspaceID, map[string]interface{}{
		"resource": limitErr.Resource,
		"plan":     limitErr.PlanName,
		"limit":    limitErr.Limit,
		"current":  limitErr.Current,
	}))
}

// Usage returns the effective plan of the workspace with its project and task counts
func (q *QuotaEnforcer) Usage(ctx context.Context, workspaceID uint) (*WorkspaceUsage, error) {
	plan, err := q.resolver.ResolveEffectivePlan(ctx, workspaceID, q.now())
	if err != nil {
		return nil, err
	}

	projects, err := q.projectRepo.CountByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	tasks, err := q.taskRepo.CountByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	return &WorkspaceUsage{
		WorkspaceID: workspaceID,
		Plan:        plan,
		Projects:    ResourceUsage{Used: projects, Limit: plan.MaxProjects},
		Tasks:       ResourceUsage{Used: tasks, Limit: plan.MaxTasks},
	}, nil
}
