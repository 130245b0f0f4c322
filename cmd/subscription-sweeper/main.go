package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/Manishsonibwr/saas-task-manager/internal/config"
	"github.com/Manishsonibwr/saas-task-manager/internal/infrastructure/database"
	"github.com/Manishsonibwr/saas-task-manager/internal/infrastructure/events"
	"github.com/Manishsonibwr/saas-task-manager/internal/infrastructure/metrics"
	"github.com/Manishsonibwr/saas-task-manager/internal/usecase"
	"github.com/Manishsonibwr/saas-task-manager/pkg/logger"
	"go.uber.org/zap"
)

const sweepTimeout = 5 * time.Minute

func main() {
	once := flag.Bool("once", false, "run a single sweep and exit")
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
	zapLogger = zapLogger.Named("sweeper")

	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	publisher, err := events.NewPublisher(cfg.Events, zapLogger.Named("events"))
	if err != nil {
		zapLogger.Fatal("Failed to create event publisher", zap.Error(err))
	}
	defer publisher.Close()

	repos := database.NewRepositories(db, zapLogger)
	sweeper := usecase.NewSubscriptionSweeper(repos.Subscription, publisher, metrics.NewBillingMetrics(), zapLogger)
	job := sweepJob(sweeper, zapLogger, sweepTimeout)

	if *once {
		job.Run()
		return
	}

	scheduler := newScheduler(zapLogger)
	if _, err := scheduler.AddJob(cfg.Sweeper.Schedule, job); err != nil {
		zapLogger.Fatal("Invalid sweeper schedule",
			zap.String("schedule", cfg.Sweeper.Schedule),
			zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler.Start()
	zapLogger.Info("Subscription sweeper started", zap.String("schedule", cfg.Sweeper.Schedule))

	<-ctx.Done()

	zapLogger.Info("Stopping subscription sweeper...")
	<-scheduler.Stop().Done()
	zapLogger.Info("Subscription sweeper stopped")
}
