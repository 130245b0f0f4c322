package errors

import "net/http"

// Error codes reported to API clients.
const (
	ErrInternal        = "INTERNAL"
	ErrNotFound        = "NOT_FOUND"
	ErrInvalidArgument = "INVALID_ARGUMENT"
	ErrUnauthorized    = "UNAUTHORIZED"
	ErrLimitExceeded   = "LIMIT_EXCEEDED"
)

var httpStatusByCode = map[string]int{
	ErrInternal:        http.StatusInternalServerError,
	ErrNotFound:        http.StatusNotFound,
	ErrInvalidArgument: http.StatusBadRequest,
	ErrUnauthorized:    http.StatusForbidden,
	ErrLimitExceeded:   http.StatusForbidden,
}

// ToHTTPStatus converts an error code to an HTTP status code. Unknown codes are 500.
func ToHTTPStatus(code string) int {
	if status, ok := httpStatusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
