package provider

import (
	"fmt"

	"github.com/Manishsonibwr/saas-task-manager/internal/config"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/provider"
	mockProvider "github.com/Manishsonibwr/saas-task-manager/internal/infrastructure/provider/mock"
	stripeProvider "github.com/Manishsonibwr/saas-task-manager/internal/infrastructure/provider/stripe"
	"go.uber.org/zap"
)

// Factory creates payment providers from the gateway configuration
type Factory struct {
	config config.GatewayConfig
	logger *zap.Logger
}

// NewFactory creates a new provider factory
func NewFactory(config config.GatewayConfig, logger *zap.Logger) *Factory {
	return &Factory{
		config: config,
		logger: logger,
	}
}

// GetProvider returns a payment provider based on the provider type
func (f *Factory) GetProvider(providerType provider.ProviderType) (provider.PaymentProvider, error) {
	switch providerType {
	case provider.ProviderTypeMock:
		return mockProvider.NewMockProvider(f.config.KeyID, f.logger.Named("mock")), nil
	case provider.ProviderTypeStripe:
		return f.createStripeProvider()
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}

// GetConfiguredProvider returns the provider named in the configuration.
// An empty name selects the mock provider.
func (f *Factory) GetConfiguredProvider() (provider.PaymentProvider, error) {
	providerStr := f.config.Provider
	if providerStr == "" {
		providerStr = string(provider.ProviderTypeMock)
	}

	return f.GetProvider(provider.ProviderType(providerStr))
}

func (f *Factory) createStripeProvider() (provider.PaymentProvider, error) {
	if f.config.Stripe.SecretKey == "" {
		return nil, fmt.Errorf("Stripe secret key not configured")
	}

	return stripeProvider.NewStripeProvider(
		f.config.Stripe.SecretKey,
		f.config.KeyID,
		f.config.Stripe.APIURL,
		f.logger.Named("stripe"),
	), nil
}
