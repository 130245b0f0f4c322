package mock

import (
	"context"
	"strings"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/provider"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSignature is recorded when the client sends no signature.
const DefaultSignature = "mock-signature"

// MockProvider issues local order and payment ids and accepts every payment.
type MockProvider struct {
	keyID  string
	logger *zap.Logger
}

// NewMockProvider creates a new mock provider
func NewMockProvider(keyID string, logger *zap.Logger) *MockProvider {
	return &MockProvider{
		keyID:  keyID,
		logger: logger,
	}
}

// GetProviderName returns the provider name
func (m *MockProvider) GetProviderName() string {
	return string(provider.ProviderTypeMock)
}

func (m *MockProvider) PublicKey() string {
	return m.keyID
}

// InitializePayment returns an order id of the form order_mock_<8 hex>.
func (m *MockProvider) InitializePayment(ctx context.Context, req *provider.InitializePaymentRequest) (*provider.InitializePaymentResponse, error) {
	orderID := "order_mock_" + shortID()

	m.logger.Debug("Mock order created",
		zap.String("order_id", orderID),
		zap.Int64("amount", req.Amount),
		zap.String("currency", req.Currency))

	return &provider.InitializePaymentResponse{
		OrderID:  orderID,
		Amount:   req.Amount,
		Currency: req.Currency,
	}, nil
}

// ConfirmPayment fills in a pay_mock_<8 hex> payment id and the default
// signature when the client sent none.
func (m *MockProvider) ConfirmPayment(ctx context.Context, req *provider.ConfirmPaymentRequest) (*provider.ConfirmPaymentResponse, error) {
	paymentID := req.PaymentID
	if paymentID == "" {
		paymentID = "pay_mock_" + shortID()
	}
	signature := req.Signature
	if signature == "" {
		signature = DefaultSignature
	}

	return &provider.ConfirmPaymentResponse{
		OrderID:   req.OrderID,
		PaymentID: paymentID,
		Signature: signature,
	}, nil
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
