package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	handlers "github.com/Manishsonibwr/saas-task-manager/internal/adapter/handler/http"
	"github.com/Manishsonibwr/saas-task-manager/internal/config"
	"github.com/Manishsonibwr/saas-task-manager/internal/middleware/auth"
	"github.com/Manishsonibwr/saas-task-manager/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Handlers groups the route handlers mounted by the server
type Handlers struct {
	Workspaces    *handlers.WorkspaceHandler
	Projects      *handlers.ProjectHandler
	Tasks         *handlers.TaskHandler
	Plans         *handlers.PlansHandler
	Billing       *handlers.BillingHandler
	Subscriptions *handlers.SubscriptionHandler
	Payments      *handlers.PaymentHandler
}

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	echo     *echo.Echo
	handlers Handlers
	metrics  http.Handler
}

// NewServer builds the echo instance and mounts every route. metricsHandler
// is served on /metrics when non-nil.
func NewServer(cfg *config.Config, log *zap.Logger, h Handlers, metricsHandler http.Handler) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	logger.WithEchoLogger(e, log)
	e.Validator = handlers.NewRequestValidator()

	e.Use(middleware.RequestID())
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.Recover())
	if len(cfg.Server.HTTP.AllowOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.Server.HTTP.AllowOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
			AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
		}))
	}

	s := &Server{
		config:   cfg,
		logger:   log,
		echo:     e,
		handlers: h,
		metrics:  metricsHandler,
	}
	s.setupRoutes()

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(s.metrics))
	}

	jwtConfig := auth.JWTConfig{
		Secret:    s.config.JWT.Secret,
		Algorithm: s.config.JWT.Algorithm,
		Logger:    s.logger,
		SkipPaths: []string{"/health", "/metrics"},
	}

	v1 := s.echo.Group("/api/v1", auth.JWTMiddleware(jwtConfig))
	v1.GET("/me", handlers.Me)

	workspaces := v1.Group("/workspaces")
	workspaces.POST("", s.handlers.Workspaces.Create)
	workspaces.GET("", s.handlers.Workspaces.List)
	workspaces.GET("/:id", s.handlers.Workspaces.Get)
	workspaces.PATCH("/:id", s.handlers.Workspaces.Update)
	workspaces.DELETE("/:id", s.handlers.Workspaces.Delete)

	projects := v1.Group("/projects")
	projects.POST("", s.handlers.Projects.Create)
	projects.GET("/by-workspace/:workspace_id", s.handlers.Projects.ListByWorkspace)
	projects.GET("/:id", s.handlers.Projects.Get)
	projects.PATCH("/:id", s.handlers.Projects.Update)
	projects.DELETE("/:id", s.handlers.Projects.Delete)

	tasks := v1.Group("/tasks")
	tasks.POST("", s.handlers.Tasks.Create)
	tasks.GET("/by-project/:project_id", s.handlers.Tasks.ListByProject)
	tasks.GET("/:id", s.handlers.Tasks.Get)
	tasks.PATCH("/:id", s.handlers.Tasks.Update)
	tasks.DELETE("/:id", s.handlers.Tasks.Delete)

	billing := v1.Group("/billing")
	billing.GET("/plans", s.handlers.Plans.GetPlans)
	billing.GET("/current/:workspace_id", s.handlers.Subscriptions.GetCurrentSubscription)
	billing.GET("/usage/:workspace_id", s.handlers.Subscriptions.GetUsage)
	billing.GET("/payments/:workspace_id", s.handlers.Payments.GetWorkspacePayments)
	billing.POST("/create-order", s.handlers.Billing.CreateOrder)
	billing.POST("/verify-payment", s.handlers.Billing.VerifyPayment)
}
