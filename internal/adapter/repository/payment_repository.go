package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	domainRepo "github.com/Manishsonibwr/saas-task-manager/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB, logger *zap.Logger) domainRepo.PaymentRepository {
	return &paymentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	if err := conn(ctx, r.db).Create(payment).Error; err != nil {
		r.logger.Error("Failed to create payment",
			zap.String("order_id", payment.GatewayOrderID),
			zap.Error(err))
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// FindByOrderID retrieves a payment by its gateway order ID
func (r *paymentRepository) FindByOrderID(ctx context.Context, orderID string) (*model.Payment, error) {
	var payment model.Payment

	err := conn(ctx, r.db).
		Where("gateway_order_id = ?", orderID).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get payment by order ID",
			zap.String("order_id", orderID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return &payment, nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *model.Payment) error {
	if err := conn(ctx, r.db).Save(payment).Error; err != nil {
		r.logger.Error("Failed to update payment",
			zap.String("order_id", payment.GatewayOrderID),
			zap.Error(err))
		return fmt.Errorf("failed to update payment: %w", err)
	}

	return nil
}

// ListByWorkspace returns the newest payments of a workspace first
func (r *paymentRepository) ListByWorkspace(ctx context.Context, workspaceID uint, limit int) ([]model.Payment, error) {
	var payments []model.Payment

	query := conn(ctx, r.db).
		Where("workspace_id = ?", workspaceID).
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&payments).Error; err != nil {
		r.logger.Error("Failed to list payments",
			zap.Uint("workspace_id", workspaceID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return payments, nil
}
