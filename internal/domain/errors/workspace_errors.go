package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Access error types
const (
	ErrTypeNotFound     = "NOT_FOUND"
	ErrTypeAccessDenied = "ACCESS_DENIED"
)

// Resources reported by access errors.
const (
	ResourceWorkspace = "workspace"
	ResourceProject   = "project"
	ResourceTask      = "task"
	ResourcePlan      = "plan"
)

// AccessError reports a missing resource or a resource the caller does not own.
// Ownership failures stay distinct from NotFound.
type AccessError struct {
	Type     string
	Resource string
	ID       uint
	UserID   uint
	Message  string
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("%s: %s (%s %d, user %d)", e.Type, e.Message, e.Resource, e.ID, e.UserID)
}

// NewNotFoundError creates a new not found error for resource id
func NewNotFoundError(resource string, id uint) *AccessError {
	return &AccessError{
		Type:     ErrTypeNotFound,
		Resource: resource,
		ID:       id,
		Message:  capitalize(resource) + " not found",
	}
}

// NewPlanNotFoundError is returned for plans that are missing or deactivated.
func NewPlanNotFoundError(id uint) *AccessError {
	return &AccessError{
		Type:     ErrTypeNotFound,
		Resource: ResourcePlan,
		ID:       id,
		Message:  "Plan not found or inactive",
	}
}

// NewAccessDeniedError creates a new access denied error
func NewAccessDeniedError(resource string, id, userID uint) *AccessError {
	return &AccessError{
		Type:     ErrTypeAccessDenied,
		Resource: resource,
		ID:       id,
		UserID:   userID,
		Message:  "Not allowed to access this " + resource,
	}
}

func IsNotFound(err error) bool {
	var accessErr *AccessError
	return errors.As(err, &accessErr) && accessErr.Type == ErrTypeNotFound
}

func IsAccessDenied(err error) bool {
	var accessErr *AccessError
	return errors.As(err, &accessErr) && accessErr.Type == ErrTypeAccessDenied
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
