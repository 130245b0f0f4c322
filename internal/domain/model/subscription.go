package model

import (
	"database/sql/driver"
	"time"
)

// SubscriptionStatus represents the status of a subscription
type SubscriptionStatus string

const (
	SubscriptionStatusInactive SubscriptionStatus = "inactive"
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
	SubscriptionStatusExpired  SubscriptionStatus = "expired"
)

// Scan implements sql.Scanner interface
func (s *SubscriptionStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = SubscriptionStatus(v)
	case []byte:
		*s = SubscriptionStatus(v)
	default:
		*s = SubscriptionStatusInactive
	}
	return nil
}

// Value implements driver.Valuer interface
func (s SubscriptionStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Subscription is one row of a workspace's subscription history. The newest
// row is the "current" subscription. Activating a plan updates that row in
// place; a new row is created only when the workspace has none.
type Subscription struct {
	ID                 uint               `gorm:"primaryKey" json:"id"`
	WorkspaceID        uint               `gorm:"not null;index" json:"workspace_id"`
	PlanID             uint               `gorm:"not null;index" json:"plan_id"`
	Status             SubscriptionStatus `gorm:"type:varchar(20);not null;default:'inactive'" json:"status"`
	CurrentPeriodStart *time.Time         `json:"current_period_start"`
	CurrentPeriodEnd   *time.Time         `json:"current_period_end"`
	GatewayOrderID     *string            `gorm:"size:100" json:"gateway_order_id,omitempty"`
	GatewayPaymentID   *string            `gorm:"size:100" json:"gateway_payment_id,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`

	// Relations
	Plan *Plan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}

// TableName specifies the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}

// IsEffectiveAt reports whether the subscription grants its plan at t:
// it is active and its period has no end or ends at or after t.
func (s *Subscription) IsEffectiveAt(t time.Time) bool {
	if s.Status != SubscriptionStatusActive {
		return false
	}
	return s.CurrentPeriodEnd == nil || !s.CurrentPeriodEnd.Before(t)
}
