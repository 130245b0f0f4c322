package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Manishsonibwr/saas-task-manager/internal/config"
	"github.com/Manishsonibwr/saas-task-manager/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewConnection opens the Postgres pool described by cfg and blocks until the
// server answers a ping or cfg.ConnectAttempts pings have failed.
func NewConnection(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	return open(context.Background(), postgres.New(postgres.Config{DSN: cfg.DSN()}), cfg, log)
}

func open(ctx context.Context, dialector gorm.Dialector, cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               logger.NewGormLogger(log.Named("gorm"), gormlogger.Warn, cfg.SlowThreshold, true),
		PrepareStmt:          true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := waitForDatabase(ctx, sqlDB, cfg, log); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	log.Info("Database connection established",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Name),
		zap.Int("max_open_conns", cfg.MaxOpenConns))

	return db, nil
}

type pinger interface {
	PingContext(ctx context.Context) error
}

// waitForDatabase pings until the database answers. Each ping is bounded by
// cfg.ConnectTimeout when set.
func waitForDatabase(ctx context.Context, db pinger, cfg *config.DatabaseConfig, log *zap.Logger) error {
	attempts := max(cfg.ConnectAttempts, 1)

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		pingCtx, cancel := ctx, context.CancelFunc(func() {})
		if cfg.ConnectTimeout > 0 {
			pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		}
		err = db.PingContext(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		log.Warn("Database not ready, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Duration("retry_in", cfg.ConnectRetryDelay),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(cfg.ConnectRetryDelay):
		}
	}

	return fmt.Errorf("database unreachable after %d attempts: %w", attempts, err)
}

// Close closes the pool and logs its final usage counters.
func Close(db *gorm.DB, log *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	stats := sqlDB.Stats()
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	log.Info("Database connection closed",
		zap.Int64("wait_count", stats.WaitCount),
		zap.Duration("wait_duration", stats.WaitDuration),
		zap.Int64("max_lifetime_closed", stats.MaxLifetimeClosed))
	return nil
}
