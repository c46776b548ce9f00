// Package services provides standardized error types for service layer operations.
package services

import (
	"errors"
	"fmt"

	"github.com/dukex/trialkit/pkg/persistence"
)

// Business Logic Errors - These indicate client errors (4xx responses).
var (
	// Validation Errors (400 Bad Request).
	ErrInvalidRequest    = errors.New("invalid request")
	ErrInvalidNodeConfig = errors.New("invalid node config")
	ErrUnknownNodeType   = errors.New("unknown node type")

	// Business Logic Conflicts (409 Conflict).
	ErrTrialAppExists     = errors.New("trial app already exists")
	ErrSingletonNodeTaken = errors.New("workflow already has a node of this type")
	ErrNodeUndeletable    = errors.New("node cannot be deleted")
	ErrNodeTypeFixed      = errors.New("node type cannot be changed")
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsValidationError checks if an error is a validation error that should return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidNodeConfig) ||
		errors.Is(err, ErrUnknownNodeType)
}

// IsConflictError checks if an error is a business logic conflict that should return HTTP 409.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrTrialAppExists) ||
		errors.Is(err, ErrSingletonNodeTaken) ||
		errors.Is(err, ErrNodeUndeletable) ||
		errors.Is(err, ErrNodeTypeFixed)
}

// IsNotFoundError checks if an error should return HTTP 404.
func IsNotFoundError(err error) bool {
	return persistence.IsNotFound(err)
}

// NewValidationError creates a new validation error with context.
func NewValidationError(op, code, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ErrorMessage returns the human readable message of a ServiceError, or err.Error().
func ErrorMessage(err error) string {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) && serviceErr.Message != "" {
		return serviceErr.Message
	}

	return err.Error()
}
