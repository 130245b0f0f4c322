package repository

import (
	"context"

	domainRepo "github.com/Manishsonibwr/saas-task-manager/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type txKey struct{}

type gormTransactor struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewTransactor creates a Transactor over db
func NewTransactor(db *gorm.DB, logger *zap.Logger) domainRepo.Transactor {
	return &gormTransactor{
		db:     db,
		logger: logger,
	}
}

// WithinTransaction joins the transaction already carried by ctx, if any.
func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction carried by ctx, or db.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
