package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	handlers "github.com/Manishsonibwr/saas-task-manager/internal/adapter/handler/http"
	"github.com/Manishsonibwr/saas-task-manager/internal/config"
	"github.com/Manishsonibwr/saas-task-manager/internal/infrastructure/database"
	"github.com/Manishsonibwr/saas-task-manager/internal/infrastructure/events"
	grpcServer "github.com/Manishsonibwr/saas-task-manager/internal/infrastructure/grpc"
	httpServer "github.com/Manishsonibwr/saas-task-manager/internal/infrastructure/http"
	"github.com/Manishsonibwr/saas-task-manager/internal/infrastructure/metrics"
	"github.com/Manishsonibwr/saas-task-manager/internal/infrastructure/provider"
	"github.com/Manishsonibwr/saas-task-manager/internal/usecase"
	"github.com/Manishsonibwr/saas-task-manager/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.NewZapLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger = zapLogger.With(
		zap.String("service", cfg.Service.Name),
		zap.String("environment", cfg.Service.Environment))

	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	repos := database.NewRepositories(db, zapLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog := usecase.NewPlanCatalog(repos.Plan, zapLogger.Named("catalog"))
	if _, err := catalog.EnsureDefaultPlans(ctx); err != nil {
		zapLogger.Fatal("Failed to seed default plans", zap.Error(err))
	}

	gateway, err := provider.NewFactory(cfg.Gateway, zapLogger.Named("gateway")).GetConfiguredProvider()
	if err != nil {
		zapLogger.Fatal("Failed to create payment gateway", zap.Error(err))
	}

	publisher, err := events.NewPublisher(cfg.Events, zapLogger.Named("events"))
	if err != nil {
		zapLogger.Fatal("Failed to create event publisher", zap.Error(err))
	}
	defer publisher.Close()

	billingMetrics := metrics.NewBillingMetrics()

	resolver := usecase.NewEntitlementResolver(repos.Subscription, catalog, billingMetrics, zapLogger.Named("entitlement"))
	quota := usecase.NewQuotaEnforcer(resolver, repos.Project, repos.Task, publisher, billingMetrics, zapLogger.Named("quota"))
	workspaces := usecase.NewWorkspaceService(repos.Workspace, zapLogger)
	projects := usecase.NewProjectService(repos.Tx, repos.Workspace, repos.Project, quota, zapLogger)
	tasks := usecase.NewTaskService(repos.Tx, repos.Workspace, repos.Project, repos.Task, quota, zapLogger)
	usage := usecase.NewUsageService(repos.Workspace, quota)
	billing := usecase.NewBillingService(
		repos.Tx,
		repos.Workspace,
		repos.Subscription,
		repos.Payment,
		catalog,
		gateway,
		publisher,
		billingMetrics,
		cfg.Billing.PeriodDays,
		zapLogger.Named("billing"),
	)

	handlerLogger := zapLogger.Named("http")
	httpSrv := httpServer.NewServer(cfg, handlerLogger, httpServer.Handlers{
		Workspaces:    handlers.NewWorkspaceHandler(workspaces, handlerLogger),
		Projects:      handlers.NewProjectHandler(projects, handlerLogger),
		Tasks:         handlers.NewTaskHandler(tasks, handlerLogger),
		Plans:         handlers.NewPlansHandler(catalog, handlerLogger),
		Billing:       handlers.NewBillingHandler(billing, handlerLogger),
		Subscriptions: handlers.NewSubscriptionHandler(billing, usage, handlerLogger),
		Payments:      handlers.NewPaymentHandler(billing, handlerLogger),
	}, billingMetrics.Handler())
	grpcSrv := grpcServer.NewServer(cfg, zapLogger.Named("grpc"))

	zapLogger.Info("Payment gateway configured", zap.String("provider", gateway.GetProviderName()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(httpSrv.Start)
	g.Go(grpcSrv.Start)
	g.Go(func() error {
		<-gctx.Done()
		zapLogger.Info("Shutting down servers...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := grpcSrv.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("Failed to shutdown gRPC server", zap.Error(err))
		}
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		zapLogger.Error("Server stopped with error", zap.Error(err))
		return
	}

	zapLogger.Info("Servers shut down successfully")
}
