package repository

import (
	"context"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
)

// PlanRepository lookups return (nil, nil) when no row matches.
type PlanRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Plan, error)
	FindByName(ctx context.Context, name string) (*model.Plan, error)
	ListActive(ctx context.Context) ([]model.Plan, error)
	// FindOrCreate returns the plan named plan.Name, inserting plan if none exists.
	FindOrCreate(ctx context.Context, plan *model.Plan) (*model.Plan, error)
	// Upsert inserts plan or updates the existing plan with the same name.
	Upsert(ctx context.Context, plan *model.Plan) error
	Deactivate(ctx context.Context, name string) error
}
