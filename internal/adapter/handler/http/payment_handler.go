package http

import (
	"context"
	"net/http"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	"github.com/Manishsonibwr/saas-task-manager/internal/middleware/auth"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type PaymentLister interface {
	ListPayments(ctx context.Context, userID, workspaceID uint) ([]model.Payment, error)
}

type PaymentHandler struct {
	payments PaymentLister
	logger   *zap.Logger
}

func NewPaymentHandler(payments PaymentLister, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		logger:   logger,
	}
}

// GetWorkspacePayments handles GET /api/v1/billing/payments/:workspace_id
func (h *PaymentHandler) GetWorkspacePayments(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	workspaceID, err := pathID(c, "workspace_id")
	if err != nil {
		return err
	}

	payments, err := h.payments.ListPayments(c.Request().Context(), user.UserID, workspaceID)
	if err != nil {
		return respondError(h.logger, err, "Failed to get payments",
			zap.Uint("workspace_id", workspaceID))
	}

	h.logger.Debug("Retrieved workspace payments",
		zap.Uint("workspace_id", workspaceID),
		zap.Int("payment_count", len(payments)))

	if payments == nil {
		payments = []model.Payment{}
	}
	return c.JSON(http.StatusOK, payments)
}
