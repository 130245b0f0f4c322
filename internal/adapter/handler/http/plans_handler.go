package http

import (
	"context"
	"net/http"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type PlanLister interface {
	ListActivePlans(ctx context.Context) ([]model.Plan, error)
}

type PlansHandler struct {
	catalog PlanLister
	logger  *zap.Logger
}

func NewPlansHandler(catalog PlanLister, logger *zap.Logger) *PlansHandler {
	return &PlansHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// GetPlans handles GET /api/v1/billing/plans
func (h *PlansHandler) GetPlans(c echo.Context) error {
	plans, err := h.catalog.ListActivePlans(c.Request().Context())
	if err != nil {
		return respondError(h.logger, err, "Failed to list plans")
	}

	h.logger.Debug("Plans fetched", zap.Int("count", len(plans)))

	if plans == nil {
		plans = []model.Plan{}
	}
	return c.JSON(http.StatusOK, plans)
}
