package errors

import (
	"errors"
	"fmt"
)

// Resource kinds subject to plan quotas.
const (
	ResourceProjects = "projects"
	ResourceTasks    = "tasks"
)

// LimitExceededError is returned when creating a resource would exceed the
// effective plan's quota.
type LimitExceededError struct {
	Resource string
	PlanName string
	Limit    int
	Current  int64
}

func (e *LimitExceededError) Error() string {
	kind := "Project"
	if e.Resource == ResourceTasks {
		kind = "Task"
	}
	return fmt.Sprintf("%s limit reached for plan '%s' (max %d %s).", kind, e.PlanName, e.Limit, e.Resource)
}

func NewLimitExceededError(resource, planName string, limit int, current int64) *LimitExceededError {
	return &LimitExceededError{
		Resource: resource,
		PlanName: planName,
		Limit:    limit,
		Current:  current,
	}
}

// IsLimitExceeded reports whether err is a quota failure.
func IsLimitExceeded(err error) bool {
	var limitErr *LimitExceededError
	return errors.As(err, &limitErr)
}
