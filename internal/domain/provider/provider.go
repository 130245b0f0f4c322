package provider

import (
	"context"
)

// PaymentProvider creates checkout orders and confirms their payment with a
// payment gateway.
type PaymentProvider interface {
	// InitializePayment creates a gateway order for the amount
	InitializePayment(ctx context.Context, req *InitializePaymentRequest) (*InitializePaymentResponse, error)

	// ConfirmPayment confirms that the order was paid
	ConfirmPayment(ctx context.Context, req *ConfirmPaymentRequest) (*ConfirmPaymentResponse, error)

	// GetProviderName returns the provider name
	GetProviderName() string

	// PublicKey returns the key handed to clients to open the checkout
	PublicKey() string
}

// InitializePaymentRequest represents a provider-agnostic order creation request
type InitializePaymentRequest struct {
	WorkspaceID uint   `json:"workspace_id"`
	PlanID      uint   `json:"plan_id"`
	PlanName    string `json:"plan_name"`
	Amount      int64  `json:"amount"` // Amount in smallest currency unit
	Currency    string `json:"currency"`
}

// InitializePaymentResponse represents the created gateway order
type InitializePaymentResponse struct {
	OrderID      string `json:"order_id"`
	ClientSecret string `json:"client_secret,omitempty"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// ConfirmPaymentRequest carries what the client reported after checkout.
// PaymentID and Signature may be empty.
type ConfirmPaymentRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// ConfirmPaymentResponse represents a confirmed payment
type ConfirmPaymentResponse struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// ProviderType represents the type of payment provider
type ProviderType string

const (
	ProviderTypeMock   ProviderType = "mock"
	ProviderTypeStripe ProviderType = "stripe"
)

// Provider error codes
const (
	ErrCodeNotPaid      = "NOT_PAID"
	ErrCodeGatewayError = "GATEWAY_ERROR"
)

// ProviderError is returned by providers for gateway-side failures
type ProviderError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *ProviderError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}
