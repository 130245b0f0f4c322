// Package event defines the billing events emitted after state changes commit.
package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeOrderCreated          Type = "payment.order_created"
	TypeSubscriptionActivated Type = "subscription.activated"
	TypeSubscriptionExpired   Type = "subscription.expired"
	TypeQuotaExceeded         Type = "quota.exceeded"
)

type Event struct {
	ID          string                 `json:"id"`
	Type        Type                   `json:"type"`
	WorkspaceID uint                   `json:"workspace_id"`
	OccurredAt  time.Time              `json:"occurred_at"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// New creates an event with a random id stamped with the current time.
func New(eventType Type, workspaceID uint, data map[string]interface{}) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		WorkspaceID: workspaceID,
		OccurredAt:  time.Now().UTC(),
		Data:        data,
	}
}

// Publisher delivers events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}
