package http

import (
	"errors"
	"net/http"
	"strconv"

	domainErrors "github.com/Manishsonibwr/saas-task-manager/internal/domain/errors"
	pkgErrors "github.com/Manishsonibwr/saas-task-manager/pkg/errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// toAppError maps a usecase error to an application error code. Unrecognized
// errors become internal errors whose cause is not rendered to the client.
func toAppError(err error) *pkgErrors.AppError {
	var accessErr *domainErrors.AccessError
	var validationErr *domainErrors.ValidationError

	switch {
	case errors.As(err, &accessErr) && accessErr.Type == domainErrors.ErrTypeNotFound:
		return pkgErrors.NewAppError(pkgErrors.ErrNotFound, accessErr.Message, err)
	case errors.As(err, &accessErr) && accessErr.Type == domainErrors.ErrTypeAccessDenied:
		return pkgErrors.NewAppError(pkgErrors.ErrUnauthorized, accessErr.Message, err)
	case domainErrors.IsLimitExceeded(err):
		return pkgErrors.NewAppError(pkgErrors.ErrLimitExceeded, err.Error(), err)
	case errors.Is(err, domainErrors.ErrPaymentNotFound),
		errors.Is(err, domainErrors.ErrPaymentAlreadySettled),
		errors.Is(err, domainErrors.ErrPaymentNotCompleted):
		return pkgErrors.NewAppError(pkgErrors.ErrInvalidArgument, err.Error(), err)
	case errors.As(err, &validationErr):
		return pkgErrors.NewAppError(pkgErrors.ErrInvalidArgument, validationErr.Error(), err)
	default:
		return pkgErrors.NewAppError(pkgErrors.ErrInternal, "internal error", err)
	}
}

// respondError logs err with its code and returns the matching echo error
func respondError(logger *zap.Logger, err error, msg string, fields ...zap.Field) error {
	appErr := toAppError(err)
	pkgErrors.LogError(logger, appErr, msg, fields...)
	return pkgErrors.ToHTTPError(appErr)
}

// pathID parses a positive integer path parameter
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

// bindAndValidate binds the request body into req and runs struct validation
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}
