package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusCreated PaymentStatus = "created"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Payment records one checkout attempt for a plan. It is linked to the
// subscription it activates only through the gateway order id.
type Payment struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	WorkspaceID      uint            `gorm:"not null;index" json:"workspace_id"`
	PlanID           uint            `gorm:"not null" json:"plan_id"`
	Amount           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency         string          `gorm:"not null;size:3;default:'INR'" json:"currency"`
	GatewayOrderID   string          `gorm:"uniqueIndex;not null;size:100" json:"gateway_order_id"`
	GatewayPaymentID *string         `gorm:"size:100" json:"gateway_payment_id,omitempty"`
	GatewaySignature *string         `gorm:"size:255" json:"-"`
	Status           PaymentStatus   `gorm:"type:varchar(20);not null;default:'created'" json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}
