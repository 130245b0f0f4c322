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

type SubscriptionReader interface {
	GetCurrentSubscription(ctx context.Context, userID, workspaceID uint) (*model.Subscription, error)
}

type UsageReader interface {
	Usage(ctx context.Context, userID, workspaceID uint) (*usecase.WorkspaceUsage, error)
}

type SubscriptionHandler struct {
	subscriptions SubscriptionReader
	usage         UsageReader
	logger        *zap.Logger
}

func NewSubscriptionHandler(subscriptions SubscriptionReader, usage UsageReader, logger *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptions: subscriptions,
		usage:         usage,
		logger:        logger,
	}
}

// GetCurrentSubscription handles GET /api/v1/billing/current/:workspace_id.
// A workspace without any subscription row gets a JSON null.
func (h *SubscriptionHandler) GetCurrentSubscription(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	workspaceID, err := pathID(c, "workspace_id")
	if err != nil {
		return err
	}

	sub, err := h.subscriptions.GetCurrentSubscription(c.Request().Context(), user.UserID, workspaceID)
	if err != nil {
		return respondError(h.logger, err, "Failed to get current subscription",
			zap.Uint("workspace_id", workspaceID))
	}

	return c.JSON(http.StatusOK, sub)
}

// GetUsage handles GET /api/v1/billing/usage/:workspace_id
func (h *SubscriptionHandler) GetUsage(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	workspaceID, err := pathID(c, "workspace_id")
	if err != nil {
		return err
	}

	usage, err := h.usage.Usage(c.Request().Context(), user.UserID, workspaceID)
	if err != nil {
		return respondError(h.logger, err, "Failed to get usage",
			zap.Uint("workspace_id", workspaceID))
	}

	return c.JSON(http.StatusOK, usage)
}
