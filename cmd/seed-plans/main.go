package main

import (
	"context"
	"flag"
	"log"

	"github.com/Manishsonibwr/saas-task-manager/internal/config"
	"github.com/Manishsonibwr/saas-task-manager/internal/infrastructure/database"
	"github.com/Manishsonibwr/saas-task-manager/internal/usecase"
	"github.com/Manishsonibwr/saas-task-manager/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	plansPath := flag.String("file", "", "plan catalog YAML (defaults to billing.plans_file)")
	deactivateMissing := flag.Bool("deactivate-missing", false, "deactivate stored plans that are not in the file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.NewZapLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	path := *plansPath
	if path == "" {
		path = cfg.Billing.PlansFile
	}

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
	catalog := usecase.NewPlanCatalog(repos.Plan, zapLogger)
	ctx := context.Background()

	if _, err := catalog.EnsureDefaultPlans(ctx); err != nil {
		zapLogger.Fatal("Failed to seed default plans", zap.Error(err))
	}

	if path == "" {
		zapLogger.Info("No plans file configured, default plans seeded")
		return
	}

	zapLogger.Info("Syncing plans from YAML", zap.String("path", path))

	plans, err := loadPlansFromYAML(path)
	if err != nil {
		zapLogger.Fatal("Failed to load plans from YAML", zap.Error(err))
	}

	result, err := catalog.SyncPlans(ctx, plans, *deactivateMissing)
	if err != nil {
		zapLogger.Fatal("Failed to sync plans", zap.Error(err))
	}

	zapLogger.Info("Plan sync completed",
		zap.Strings("upserted", result.Upserted),
		zap.Strings("deactivated", result.Deactivated))
}
