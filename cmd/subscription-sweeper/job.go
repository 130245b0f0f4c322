package main

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type expirer interface {
	ExpireOverdue(ctx context.Context) (int, error)
}

// cronLogger routes cron's own logging through zap
type cronLogger struct {
	logger *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}

// newScheduler returns a seconds-precision scheduler whose runs never overlap
func newScheduler(logger *zap.Logger) *cron.Cron {
	cl := cronLogger{logger: logger.Sugar()}
	return cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
}

// sweepJob runs one expiry pass bounded by timeout
func sweepJob(sweeper expirer, logger *zap.Logger, timeout time.Duration) cron.FuncJob {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		count, err := sweeper.ExpireOverdue(ctx)
		if err != nil {
			logger.Error("Subscription sweep failed", zap.Error(err))
			return
		}

		logger.Info("Subscription sweep finished",
			zap.Int("expired", count),
			zap.Duration("duration", time.Since(start)))
	}
}
