package http_test

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	handler "github.com/Manishsonibwr/saas-task-manager/internal/adapter/handler/http"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	"github.com/Manishsonibwr/saas-task-manager/internal/middleware/auth"
	"github.com/Manishsonibwr/saas-task-manager/internal/usecase"
	"github.com/Manishsonibwr/saas-task-manager/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// newTestEcho builds an echo instance configured like the server: zap error
// handler, request validator and, when user is non-nil, an authenticated user
func newTestEcho(user *auth.AuthUser) *echo.Echo {
	e := echo.New()
	logger.WithEchoLogger(e, zap.NewNop())
	e.Validator = handler.NewRequestValidator()
	if user != nil {
		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				c.SetRequest(c.Request().WithContext(auth.WithUser(c.Request().Context(), user)))
				return next(c)
			}
		})
	}
	return e
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func testUser() *auth.AuthUser {
	return &auth.AuthUser{UserID: 7, Email: "owner@example.com"}
}


type MockWorkspaceUsecase struct {
	mock.Mock
}

func (m *MockWorkspaceUsecase) Create(ctx context.Context, userID uint, name string) (*model.Workspace, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Workspace), args.Error(1)
}

func (m *MockWorkspaceUsecase) List(ctx context.Context, userID uint) ([]model.Workspace, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Workspace), args.Error(1)
}

func (m *MockWorkspaceUsecase) Get(ctx context.Context, userID, id uint) (*model.Workspace, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Workspace), args.Error(1)
}

func (m *MockWorkspaceUsecase) Update(ctx context.Context, userID, id uint, name *string) (*model.Workspace, error) {
	args := m.Called(ctx, userID, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Workspace), args.Error(1)
}

func (m *MockWorkspaceUsecase) Delete(ctx context.Context, userID, id uint) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockProjectUsecase struct {
	mock.Mock
}

func (m *MockProjectUsecase) Create(ctx context.Context, userID uint, in usecase.CreateProjectInput) (*model.Project, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectUsecase) ListByWorkspace(ctx context.Context, userID, workspaceID uint) ([]model.Project, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectUsecase) Get(ctx context.Context, userID, id uint) (*model.Project, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectUsecase) Update(ctx context.Context, userID, id uint, in usecase.UpdateProjectInput) (*model.Project, error) {
	args := m.Called(ctx, userID, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectUsecase) Delete(ctx context.Context, userID, id uint) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockTaskUsecase struct {
	mock.Mock
}

func (m *MockTaskUsecase) Create(ctx context.Context, userID uint, in usecase.CreateTaskInput) (*model.Task, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskUsecase) ListByProject(ctx context.Context, userID, projectID uint) ([]model.Task, error) {
	args := m.Called(ctx, userID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskUsecase) Get(ctx context.Context, userID, id uint) (*model.Task, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskUsecase) Update(ctx context.Context, userID, id uint, in usecase.UpdateTaskInput) (*model.Task, error) {
	args := m.Called(ctx, userID, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskUsecase) Delete(ctx context.Context, userID, id uint) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockBillingUsecase struct {
	mock.Mock
}

func (m *MockBillingUsecase) CreateOrder(ctx context.Context, userID, workspaceID, planID uint) (*usecase.CreateOrderResult, error) {
	args := m.Called(ctx, userID, workspaceID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CreateOrderResult), args.Error(1)
}

func (m *MockBillingUsecase) VerifyPayment(ctx context.Context, userID uint, in usecase.VerifyPaymentInput) (*model.Subscription, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}

func (m *MockBillingUsecase) GetCurrentSubscription(ctx context.Context, userID, workspaceID uint) (*model.Subscription, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}

func (m *MockBillingUsecase) ListPayments(ctx context.Context, userID, workspaceID uint) ([]model.Payment, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *MockBillingUsecase) Usage(ctx context.Context, userID, workspaceID uint) (*usecase.WorkspaceUsage, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.WorkspaceUsage), args.Error(1)
}

func (m *MockBillingUsecase) ListActivePlans(ctx context.Context) ([]model.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Plan), args.Error(1)
}

func stringPtr(s string) *string { return &s }
