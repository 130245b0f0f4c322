package repository

import (
	"context"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	FindByOrderID(ctx context.Context, orderID string) (*model.Payment, error)
	Update(ctx context.Context, payment *model.Payment) error
	ListByWorkspace(ctx context.Context, workspaceID uint, limit int) ([]model.Payment, error)
}
