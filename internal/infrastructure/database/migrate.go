package database

import (
	"fmt"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&model.Plan{},
		&model.Workspace{},
		&model.Project{},
		&model.Task{},
		&model.Subscription{},
		&model.Payment{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}

	logger.Info("Creating custom indexes...")
	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// customIndexes back the ledger queries and the quota counts
var customIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_subscriptions_workspace_latest ON subscriptions (workspace_id, id DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_subscriptions_active_period ON subscriptions (workspace_id, current_period_end DESC NULLS FIRST, id DESC) WHERE status = 'active'`,
	`CREATE INDEX IF NOT EXISTS idx_payments_workspace_created ON payments (workspace_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project_position ON tasks (project_id, position)`,
}

// createCustomIndexes creates indexes that GORM tags cannot express
func createCustomIndexes(db *gorm.DB) error {
	for _, stmt := range customIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
