package http

import (
	"context"
	"net/http"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	"github.com/Manishsonibwr/saas-task-manager/internal/middleware/auth"
	"github.com/Manishsonibwr/saas-task-manager/internal/usecase"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CheckoutUsecase interface {
	CreateOrder(ctx context.Context, userID, workspaceID, planID uint) (*usecase.CreateOrderResult, error)
	VerifyPayment(ctx context.Context, userID uint, in usecase.VerifyPaymentInput) (*model.Subscription, error)
}

type createOrderRequest struct {
	WorkspaceID uint `json:"workspace_id" validate:"required"`
	PlanID      uint `json:"plan_id" validate:"required"`
}

type verifyPaymentRequest struct {
	WorkspaceID uint   `json:"workspace_id" validate:"required"`
	PlanID      uint   `json:"plan_id" validate:"required"`
	OrderID     string `json:"order_id" validate:"required,max=100"`
	PaymentID   string `json:"payment_id" validate:"max=100"`
	Signature   string `json:"signature" validate:"max=255"`
}

type BillingHandler struct {
	checkout CheckoutUsecase
	logger   *zap.Logger
}

func NewBillingHandler(checkout CheckoutUsecase, logger *zap.Logger) *BillingHandler {
	return &BillingHandler{
		checkout: checkout,
		logger:   logger,
	}
}

// CreateOrder handles POST /api/v1/billing/create-order
func (h *BillingHandler) CreateOrder(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	h.logger.Info("Creating order",
		zap.Uint("user_id", user.UserID),
		zap.Uint("workspace_id", req.WorkspaceID),
		zap.Uint("plan_id", req.PlanID))

	result, err := h.checkout.CreateOrder(c.Request().Context(), user.UserID, req.WorkspaceID, req.PlanID)
	if err != nil {
		return respondError(h.logger, err, "Failed to create order",
			zap.Uint("workspace_id", req.WorkspaceID),
			zap.Uint("plan_id", req.PlanID))
	}

	return c.JSON(http.StatusOK, result)
}

// VerifyPayment handles POST /api/v1/billing/verify-payment
func (h *BillingHandler) VerifyPayment(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req verifyPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sub, err := h.checkout.VerifyPayment(c.Request().Context(), user.UserID, usecase.VerifyPaymentInput{
		WorkspaceID: req.WorkspaceID,
		PlanID:      req.PlanID,
		OrderID:     req.OrderID,
		PaymentID:   req.PaymentID,
		Signature:   req.Signature,
	})
	if err != nil {
		return respondError(h.logger, err, "Failed to verify payment",
			zap.Uint("workspace_id", req.WorkspaceID),
			zap.String("order_id", req.OrderID))
	}

	return c.JSON(http.StatusOK, sub)
}
