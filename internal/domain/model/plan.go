package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Default plan names.
const (
	PlanFree = "Free"
	PlanPro  = "Pro"
)

// Plan is a named subscription tier with a monthly price and optional quotas.
// A nil quota means unlimited.
type Plan struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Description   *string         `gorm:"type:text" json:"description"`
	PricePerMonth decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_per_month"`
	Currency      string          `gorm:"not null;size:3;default:'INR'" json:"currency"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`
	MaxProjects   *int            `json:"max_projects"`
	MaxTasks      *int            `json:"max_tasks"`
	MaxMembers    *int            `json:"max_members"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Plan) TableName() string {
	return "plans"
}

// IsFree reports whether the plan costs nothing.
func (p *Plan) IsFree() bool {
	return p.PricePerMonth.IsZero()
}

// AmountMinorUnits returns the monthly price in minor currency units, truncated.
func (p *Plan) AmountMinorUnits() int64 {
	return p.PricePerMonth.Mul(decimal.NewFromInt(100)).IntPart()
}

// DefaultPlans returns the seed catalog: Free and Pro.
func DefaultPlans() []Plan {
	return []Plan{
		{
			Name:          PlanFree,
			Description:   stringPtr("Basic plan with limited usage"),
			PricePerMonth: decimal.RequireFromString("0.00"),
			Currency:      "INR",
			IsActive:      true,
			MaxProjects:   intPtr(3),
			MaxTasks:      intPtr(100),
			MaxMembers:    intPtr(3),
		},
		{
			Name:          PlanPro,
			Description:   stringPtr("Pro plan with higher limits"),
			PricePerMonth: decimal.RequireFromString("499.00"),
			Currency:      "INR",
			IsActive:      true,
			MaxProjects:   intPtr(50),
			MaxTasks:      intPtr(5000),
			MaxMembers:    intPtr(20),
		},
	}
}

func intPtr(v int) *int          { return &v }
func stringPtr(v string) *string { return &v }
