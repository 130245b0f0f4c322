package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainErrors "github.com/Manishsonibwr/saas-task-manager/internal/domain/errors"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/event"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/provider"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/repository"
	"github.com/Manishsonibwr/saas-task-manager/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// paymentHistoryLimit caps ListPayments
const paymentHistoryLimit = 50

// CreateOrderResult is returned to the client to open the gateway checkout.
// OrderID is empty and Amount is 0 when a free plan was activated directly.
type CreateOrderResult struct {
	GatewayKeyID string `json:"gateway_key_id"`
	OrderID      string `json:"order_id"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	WorkspaceID  uint   `json:"workspace_id"`
	PlanID       uint   `json:"plan_id"`
	ClientSecret string `json:"client_secret,omitempty"`
}

// VerifyPaymentInput empty PaymentID and Signature are filled in by the provider
type VerifyPaymentInput struct {
	WorkspaceID uint
	PlanID      uint
	OrderID     string
	PaymentID   string
	Signature   string
}

// BillingService runs the checkout and subscription activation workflow
type BillingService struct {
	tx               repository.Transactor
	workspaceRepo    repository.WorkspaceRepository
	subscriptionRepo repository.SubscriptionRepository
	paymentRepo      repository.PaymentRepository
	catalog          *PlanCatalog
	provider         provider.PaymentProvider
	publisher        event.Publisher
	metrics          *metrics.BillingMetrics
	period           time.Duration
	logger           *zap.Logger
	now              func() time.Time
}

// NewBillingService creates a new billing service. periodDays is the length of
// a paid subscription period.
func NewBillingService(
	tx repository.Transactor,
	workspaceRepo repository.WorkspaceRepository,
	subscriptionRepo repository.SubscriptionRepository,
	paymentRepo repository.PaymentRepository,
	catalog *PlanCatalog,
	paymentProvider provider.PaymentProvider,
	publisher event.Publisher,
	metrics *metrics.BillingMetrics,
	periodDays int,
	logger *zap.Logger,
) *BillingService {
	return &BillingService{
		tx:               tx,
		workspaceRepo:    workspaceRepo,
		subscriptionRepo: subscriptionRepo,
		paymentRepo:      paymentRepo,
		catalog:          catalog,
		provider:         paymentProvider,
		publisher:        publisher,
		metrics:          metrics,
		period:           time.Duration(periodDays) * 24 * time.Hour,
		logger:           logger,
		now:              time.Now,
	}
}

// SetClock replaces the time source used for subscription periods
func (s *BillingService) SetClock(now func() time.Time) {
	s.now = now
}

// CreateOrder starts a checkout for the plan. A free plan is activated on the
// spot without a gateway order or payment row; any other plan gets a gateway
// order and a payment in status created.
func (s *BillingService) CreateOrder(ctx context.Context, userID, workspaceID, planID uint) (*CreateOrderResult, error) {
	workspace, err := ownedWorkspace(ctx, s.workspaceRepo.FindByID, workspaceID, userID)
	if err != nil {
		return nil, err
	}

	plan, err := s.catalog.GetActivePlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	if plan.IsFree() {
		return s.activateFreePlan(ctx, workspace, plan)
	}

	order, err := s.provider.InitializePayment(ctx, &provider.InitializePaymentRequest{
		WorkspaceID: workspace.ID,
		PlanID:      plan.ID,
		PlanName:    plan.Name,
		Amount:      plan.AmountMinorUnits(),
		Currency:    plan.Currency,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}

	payment := &model.Payment{
		WorkspaceID:    workspace.ID,
		PlanID:         plan.ID,
		Amount:         plan.PricePerMonth,
		Currency:       plan.Currency,
		GatewayOrderID: order.OrderID,
		Status:         model.PaymentStatusCreated,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.metrics.OrderCreated(plan.Name, false)
	s.logger.Info("Order created",
		zap.Uint("workspace_id", workspace.ID),
		zap.String("plan", plan.Name),
		zap.String("order_id", order.OrderID),
		zap.String("provider", s.provider.GetProviderName()))

	publishEvent(ctx, s.publisher, s.logger, event.New(event.TypeOrderCreated, workspace.ID, map[string]interface{}{
		"order_id": order.OrderID,
		"plan_id":  plan.ID,
		"amount":   plan.AmountMinorUnits(),
		"currency": plan.Currency,
	}))

	return &CreateOrderResult{
		GatewayKeyID: s.provider.PublicKey(),
		OrderID:      order.OrderID,
		Amount:       plan.AmountMinorUnits(),
		Currency:     plan.Currency,
		WorkspaceID:  workspace.ID,
		PlanID:       plan.ID,
		ClientSecret: order.ClientSecret,
	}, nil
}

// activateFreePlan points the workspace's latest subscription, created when
// missing, at the free plan with an open-ended period starting now.
func (s *BillingService) activateFreePlan(ctx context.Context, workspace *model.Workspace, plan *model.Plan) (*CreateOrderResult, error) {
	var sub *model.Subscription

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.workspaceRepo.FindByIDForUpdate(ctx, workspace.ID); err != nil {
			return err
		}

		var err error
		sub, err = s.subscriptionRepo.FindLatestByWorkspace(ctx, workspace.ID)
		if err != nil {
			return err
		}

		start := s.now()
		if sub == nil {
			sub = &model.Subscription{
				WorkspaceID:        workspace.ID,
				PlanID:             plan.ID,
				Status:             model.SubscriptionStatusActive,
				CurrentPeriodStart: &start,
			}
			return s.subscriptionRepo.Create(ctx, sub)
		}

		sub.PlanID = plan.ID
		sub.Status = model.SubscriptionStatusActive
		sub.CurrentPeriodStart = &start
		sub.CurrentPeriodEnd = nil
		return s.subscriptionRepo.Update(ctx, sub)
	})
	if err != nil {
		return nil, err
	}
	sub.Plan = plan

	s.metrics.OrderCreated(plan.Name, true)
	s.metrics.SubscriptionActivated(plan.Name)
	s.logger.Info("Free plan activated",
		zap.Uint("workspace_id", workspace.ID),
		zap.Uint("subscription_id", sub.ID),
		zap.String("plan", plan.Name))

	publishEvent(ctx, s.publisher, s.logger, subscriptionActivatedEvent(sub))

	return &CreateOrderResult{
		GatewayKeyID: s.provider.PublicKey(),
		OrderID:      "",
		Amount:       0,
		Currency:     plan.Currency,
		WorkspaceID:  workspace.ID,
		PlanID:       plan.ID,
	}, nil
}

// VerifyPayment marks the order's payment paid and activates the workspace's
// latest subscription on the plan for one billing period. Both writes happen
// in one transaction. An order that is unknown, or that belongs to another
// workspace or plan, fails with ErrPaymentNotFound and changes nothing. A paid
// order is not re-applied.
func (s *BillingService) VerifyPayment(ctx context.Context, userID uint, in VerifyPaymentInput) (*model.Subscription, error) {
	workspace, err := ownedWorkspace(ctx, s.workspaceRepo.FindByID, in.WorkspaceID, userID)
	if err != nil {
		return nil, err
	}

	plan, err := s.catalog.GetActivePlan(ctx, in.PlanID)
	if err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.FindByOrderID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if payment == nil || payment.WorkspaceID != workspace.ID || payment.PlanID != plan.ID {
		s.logger.Warn("Payment verification for unknown order",
			zap.Uint("workspace_id", workspace.ID),
			zap.String("order_id", in.OrderID))
		return nil, domainErrors.ErrPaymentNotFound
	}
	switch payment.Status {
	case model.PaymentStatusFailed:
		return nil, domainErrors.ErrPaymentAlreadySettled
	case model.PaymentStatusPaid:
		return s.alreadyVerified(ctx, workspace.ID, payment)
	}

	confirmed, err := s.provider.ConfirmPayment(ctx, &provider.ConfirmPaymentRequest{
		OrderID:   in.OrderID,
		PaymentID: in.PaymentID,
		Signature: in.Signature,
	})
	if err != nil {
		var providerErr *provider.ProviderError
		if errors.As(err, &providerErr) && providerErr.Code == provider.ErrCodeNotPaid {
			return nil, fmt.Errorf("%w: %s", domainErrors.ErrPaymentNotCompleted, providerErr.Details)
		}
		return nil, fmt.Errorf("failed to confirm payment: %w", err)
	}

	var sub *model.Subscription
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.workspaceRepo.FindByIDForUpdate(ctx, workspace.ID); err != nil {
			return err
		}

		payment.Status = model.PaymentStatusPaid
		payment.GatewayPaymentID = &confirmed.PaymentID
		payment.GatewaySignature = &confirmed.Signature
		if err := s.paymentRepo.Update(ctx, payment); err != nil {
			return err
		}

		var err error
		sub, err = s.subscriptionRepo.FindLatestByWorkspace(ctx, workspace.ID)
		if err != nil {
			return err
		}
		if sub == nil {
			sub = &model.Subscription{
				WorkspaceID: workspace.ID,
				PlanID:      plan.ID,
				Status:      model.SubscriptionStatusInactive,
			}
			if err := s.subscriptionRepo.Create(ctx, sub); err != nil {
				return err
			}
		}

		start := s.now()
		end := start.Add(s.period)
		orderID := payment.GatewayOrderID
		paymentID := confirmed.PaymentID

		sub.PlanID = plan.ID
		sub.Status = model.SubscriptionStatusActive
		sub.GatewayOrderID = &orderID
		sub.GatewayPaymentID = &paymentID
		sub.CurrentPeriodStart = &start
		sub.CurrentPeriodEnd = &end
		return s.subscriptionRepo.Update(ctx, sub)
	})
	if err != nil {
		return nil, err
	}
	sub.Plan = plan

	s.metrics.SubscriptionActivated(plan.Name)
	s.logger.Info("Subscription activated",
		zap.Uint("workspace_id", workspace.ID),
		zap.Uint("subscription_id", sub.ID),
		zap.String("plan", plan.Name),
		zap.String("order_id", payment.GatewayOrderID),
		zap.Time("period_end", *sub.CurrentPeriodEnd))

	publishEvent(ctx, s.publisher, s.logger, subscriptionActivatedEvent(sub))

	return sub, nil
}

// alreadyVerified answers a repeated verification of a paid order with the
// workspace's latest subscription as it stands. The gateway is not called and
// nothing is written, so the stored payment id and period are kept.
func (s *BillingService) alreadyVerified(ctx context.Context, workspaceID uint, payment *model.Payment) (*model.Subscription, error) {
	sub, err := s.subscriptionRepo.FindLatestByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("paid order %s has no subscription", payment.GatewayOrderID)
	}

	s.logger.Info("Payment already verified",
		zap.Uint("workspace_id", workspaceID),
		zap.Uint("subscription_id", sub.ID),
		zap.String("order_id", payment.GatewayOrderID))

	return sub, nil
}

// GetCurrentSubscription returns the workspace's most recent subscription, or
// nil when it has none.
func (s *BillingService) GetCurrentSubscription(ctx context.Context, userID, workspaceID uint) (*model.Subscription, error) {
	if _, err := ownedWorkspace(ctx, s.workspaceRepo.FindByID, workspaceID, userID); err != nil {
		return nil, err
	}
	return s.subscriptionRepo.FindLatestByWorkspace(ctx, workspaceID)
}

// ListPayments returns the workspace's most recent payments, newest first
func (s *BillingService) ListPayments(ctx context.Context, userID, workspaceID uint) ([]model.Payment, error) {
	if _, err := ownedWorkspace(ctx, s.workspaceRepo.FindByID, workspaceID, userID); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListByWorkspace(ctx, workspaceID, paymentHistoryLimit)
}

func subscriptionActivatedEvent(sub *model.Subscription) event.Event {
	data := map[string]interface{}{
		"subscription_id": sub.ID,
		"plan_id":         sub.PlanID,
	}
	if sub.Plan != nil {
		data["plan"] = sub.Plan.Name
	}
	if sub.CurrentPeriodEnd != nil {
		data["current_period_end"] = sub.CurrentPeriodEnd.UTC().Format(time.RFC3339)
	}
	return event.New(event.TypeSubscriptionActivated, sub.WorkspaceID, data)
}
