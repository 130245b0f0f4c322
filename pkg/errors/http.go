package errors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ToHTTPError converts an error to an echo HTTP error. Internal errors never
// expose their cause to the client.
func ToHTTPError(err error) *echo.HTTPError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		httpStatus := ToHTTPStatus(appErr.Code())
		if appErr.Code() == ErrInternal {
			return echo.NewHTTPError(httpStatus, http.StatusText(httpStatus)).SetInternal(err)
		}
		return echo.NewHTTPError(httpStatus, appErr.Message()).SetInternal(err)
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr
	}

	return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)).SetInternal(err)
}
