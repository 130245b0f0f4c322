package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	appErrors "github.com/Manishsonibwr/saas-task-manager/pkg/errors"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{appErrors.ErrNotFound, http.StatusNotFound},
		{appErrors.ErrUnauthorized, http.StatusForbidden},
		{appErrors.ErrLimitExceeded, http.StatusForbidden},
		{appErrors.ErrInvalidArgument, http.StatusBadRequest},
		{appErrors.ErrInternal, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, appErrors.ToHTTPStatus(tt.code))
		})
	}
}

func TestToHTTPError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, appErrors.ToHTTPError(nil))
	})

	t.Run("client error keeps message", func(t *testing.T) {
		cause := fmt.Errorf("lookup")
		httpErr := appErrors.ToHTTPError(appErrors.NewAppError(appErrors.ErrNotFound, "Workspace not found", cause))

		require.NotNil(t, httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
		assert.Equal(t, "Workspace not found", httpErr.Message)
		assert.ErrorIs(t, httpErr.Internal, cause)
	})

	t.Run("internal error hides cause", func(t *testing.T) {
		httpErr := appErrors.ToHTTPError(appErrors.NewAppError(appErrors.ErrInternal, "db exploded", nil))

		assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
		assert.Equal(t, http.StatusText(http.StatusInternalServerError), httpErr.Message)
	})

	t.Run("echo error passes through", func(t *testing.T) {
		original := echo.NewHTTPError(http.StatusTeapot, "short and stout")
		assert.Same(t, original, appErrors.ToHTTPError(original))
	})

	t.Run("plain error is internal", func(t *testing.T) {
		httpErr := appErrors.ToHTTPError(fmt.Errorf("boom"))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	})
}

func TestAppError(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := appErrors.NewAppError(appErrors.ErrInvalidArgument, "conflict", cause)

	assert.Equal(t, "conflict: root cause", err.Error())
	assert.Equal(t, "conflict", err.Message())
	assert.Equal(t, appErrors.ErrInvalidArgument, err.Code())
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, "bare", appErrors.NewAppError(appErrors.ErrInternal, "bare", nil).Error())
}

func TestLogError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	appErrors.LogError(logger, nil, "ignored")
	appErrors.LogError(logger, appErrors.NewAppError(appErrors.ErrLimitExceeded, "limit", nil), "denied", zap.Uint("workspace_id", 3))
	appErrors.LogError(logger, fmt.Errorf("boom"), "failed")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, appErrors.ErrLimitExceeded, entries[0].ContextMap()["error_code"])
	assert.EqualValues(t, 3, entries[0].ContextMap()["workspace_id"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.NotContains(t, entries[1].ContextMap(), "error_code")
}
