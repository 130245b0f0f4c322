package stripe

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/provider"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"
)

// Metadata keys attached to every payment intent.
const (
	metadataWorkspaceIDKey = "workspace_id"
	metadataPlanIDKey      = "plan_id"
)

// StripeProvider implements PaymentProvider with Stripe PaymentIntents. The
// payment intent id is used as the gateway order id.
type StripeProvider struct {
	client         *client.API
	publishableKey string
	logger         *zap.Logger
}

// NewStripeProvider creates a new Stripe provider. apiURL overrides the API
// base URL when non-empty.
func NewStripeProvider(secretKey, publishableKey, apiURL string, logger *zap.Logger) *StripeProvider {
	config := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	}
	if apiURL != "" {
		config.URL = stripe.String(apiURL)
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, config)

	sc := &client.API{}
	sc.Init(secretKey, &stripe.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	})

	return &StripeProvider{
		client:         sc,
		publishableKey: publishableKey,
		logger:         logger,
	}
}

// GetProviderName returns the provider name
func (s *StripeProvider) GetProviderName() string {
	return string(provider.ProviderTypeStripe)
}

func (s *StripeProvider) PublicKey() string {
	return s.publishableKey
}

// InitializePayment creates a payment intent for the amount
func (s *StripeProvider) InitializePayment(ctx context.Context, req *provider.InitializePaymentRequest) (*provider.InitializePaymentResponse, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(req.Amount),
		Currency:    stripe.String(toStripeCurrency(req.Currency)),
		Description: stripe.String(req.PlanName + " plan"),
	}
	params.AddMetadata(metadataWorkspaceIDKey, strconv.FormatUint(uint64(req.WorkspaceID), 10))
	params.AddMetadata(metadataPlanIDKey, strconv.FormatUint(uint64(req.PlanID), 10))
	params.Context = ctx

	pi, err := s.client.PaymentIntents.New(params)
	if err != nil {
		s.logStripeError("InitializePayment", err)
		return nil, &provider.ProviderError{
			Code:    provider.ErrCodeGatewayError,
			Message: "failed to create payment intent",
			Details: err.Error(),
		}
	}

	s.logger.Info("Stripe payment intent created",
		zap.String("payment_intent_id", pi.ID),
		zap.Uint("workspace_id", req.WorkspaceID),
		zap.Int64("amount", req.Amount))

	return &provider.InitializePaymentResponse{
		OrderID:      pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     req.Currency,
	}, nil
}

// ConfirmPayment retrieves the payment intent and requires it to have
// succeeded. The latest charge id becomes the payment id.
func (s *StripeProvider) ConfirmPayment(ctx context.Context, req *provider.ConfirmPaymentRequest) (*provider.ConfirmPaymentResponse, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := s.client.PaymentIntents.Get(req.OrderID, params)
	if err != nil {
		s.logStripeError("ConfirmPayment", err)
		return nil, &provider.ProviderError{
			Code:    provider.ErrCodeGatewayError,
			Message: "failed to retrieve payment intent",
			Details: err.Error(),
		}
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, &provider.ProviderError{
			Code:    provider.ErrCodeNotPaid,
			Message: "payment has not succeeded",
			Details: fmt.Sprintf("payment intent %s is %s", pi.ID, pi.Status),
		}
	}

	paymentID := req.PaymentID
	if pi.LatestCharge != nil && pi.LatestCharge.ID != "" {
		paymentID = pi.LatestCharge.ID
	}
	if paymentID == "" {
		paymentID = pi.ID
	}

	return &provider.ConfirmPaymentResponse{
		OrderID:   pi.ID,
		PaymentID: paymentID,
		Signature: req.Signature,
	}, nil
}

func (s *StripeProvider) logStripeError(operation string, err error) {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		s.logger.Error("Stripe API error",
			zap.String("operation", operation),
			zap.String("type", string(stripeErr.Type)),
			zap.String("code", string(stripeErr.Code)),
			zap.Int("http_status", stripeErr.HTTPStatusCode),
			zap.String("request_id", stripeErr.RequestID),
			zap.String("message", stripeErr.Msg))
		return
	}
	s.logger.Error("Stripe request failed", zap.String("operation", operation), zap.Error(err))
}

func toStripeCurrency(currency string) string {
	return strings.ToLower(currency)
}
