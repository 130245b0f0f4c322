package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/event"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/provider"
	"github.com/Manishsonibwr/saas-task-manager/internal/infrastructure/metrics"
	mockProvider "github.com/Manishsonibwr/saas-task-manager/internal/infrastructure/provider/mock"
	"github.com/Manishsonibwr/saas-task-manager/internal/usecase"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockPublisher is a mock implementation of event.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

// published returns the types of all published events in order
func (m *MockPublisher) published() []event.Type {
	var types []event.Type
	for _, call := range m.Calls {
		if call.Method == "Publish" {
			types = append(types, call.Arguments.Get(1).(event.Event).Type)
		}
	}
	return types
}

func newAcceptingPublisher() *MockPublisher {
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	return pub
}

// MockPaymentProvider is a mock implementation of provider.PaymentProvider
type MockPaymentProvider struct {
	mock.Mock
}

func (m *MockPaymentProvider) InitializePayment(ctx context.Context, req *provider.InitializePaymentRequest) (*provider.InitializePaymentResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.InitializePaymentResponse), args.Error(1)
}

func (m *MockPaymentProvider) ConfirmPayment(ctx context.Context, req *provider.ConfirmPaymentRequest) (*provider.ConfirmPaymentResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.ConfirmPaymentResponse), args.Error(1)
}

func (m *MockPaymentProvider) GetProviderName() string {
	return "mock-test"
}

func (m *MockPaymentProvider) PublicKey() string {
	return "key_test"
}

// testEnv wires every service over one memStore with a fixed clock
type testEnv struct {
	store     *memStore
	publisher *MockPublisher
	metrics   *metrics.BillingMetrics
	now       time.Time

	catalog    *usecase.PlanCatalog
	resolver   *usecase.EntitlementResolver
	quota      *usecase.QuotaEnforcer
	workspaces *usecase.WorkspaceService
	projects   *usecase.ProjectService
	tasks      *usecase.TaskService
	billing    *usecase.BillingService
	sweeper    *usecase.SubscriptionSweeper
	usage      *usecase.UsageService
}

type envOption func(*envConfig)

type envConfig struct {
	provider provider.PaymentProvider
}

func withProvider(p provider.PaymentProvider) envOption {
	return func(c *envConfig) { c.provider = p }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	cfg := &envConfig{provider: mockProvider.NewMockProvider("key_test", zap.NewNop())}
	for _, opt := range opts {
		opt(cfg)
	}

	logger := zap.NewNop()
	store := newMemStore()
	env := &testEnv{
		store:     store,
		publisher: newAcceptingPublisher(),
		metrics:   metrics.NewBillingMetrics(),
		now:       time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return env.now }

	env.catalog = usecase.NewPlanCatalog(store.Plans(), logger)
	env.resolver = usecase.NewEntitlementResolver(store.Subscriptions(), env.catalog, env.metrics, logger)
	env.quota = usecase.NewQuotaEnforcer(env.resolver, store.Projects(), store.Tasks(), env.publisher, env.metrics, logger)
	env.quota.SetClock(clock)
	env.workspaces = usecase.NewWorkspaceService(store.Workspaces(), logger)
	env.projects = usecase.NewProjectService(store, store.Workspaces(), store.Projects(), env.quota, logger)
	env.tasks = usecase.NewTaskService(store, store.Workspaces(), store.Projects(), store.Tasks(), env.quota, logger)
	env.billing = usecase.NewBillingService(store, store.Workspaces(), store.Subscriptions(), store.Payments(),
		env.catalog, cfg.provider, env.publisher, env.metrics, 30, logger)
	env.billing.SetClock(clock)
	env.sweeper = usecase.NewSubscriptionSweeper(store.Subscriptions(), env.publisher, env.metrics, logger)
	env.sweeper.SetClock(clock)
	env.usage = usecase.NewUsageService(store.Workspaces(), env.quota)

	return env
}

func (e *testEnv) seedPlans(t *testing.T) (free, pro model.Plan) {
	t.Helper()
	plans, err := e.catalog.EnsureDefaultPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 2)
	return plans[0], plans[1]
}

func (e *testEnv) createWorkspace(t *testing.T, ownerID uint) *model.Workspace {
	t.Helper()
	ws, err := e.workspaces.Create(context.Background(), ownerID, "Acme")
	require.NoError(t, err)
	return ws
}

func (e *testEnv) addSubscription(t *testing.T, sub model.Subscription) *model.Subscription {
	t.Helper()
	require.NoError(t, e.store.Subscriptions().Create(context.Background(), &sub))
	return &sub
}

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(v int) *int              { return &v }
