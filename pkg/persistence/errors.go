// Package persistence provides standardized error types for persistence operations.
package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence error types that all implementations should use.
var (
	// ErrTrialAppNotFound indicates a trial app was not found by the given identifier.
	ErrTrialAppNotFound = errors.New("trial app not found")

	// ErrWorkflowNotFound indicates a workflow was not found by the given identifier.
	ErrWorkflowNotFound = errors.New("workflow not found")

	// ErrNodeNotFound indicates a node was not found in its workflow.
	ErrNodeNotFound = errors.New("node not found")

	// ErrInvalidID indicates an id that cannot name a stored record.
	ErrInvalidID = errors.New("invalid record id")
)

// TrialAppError wraps trial app errors with the operation and id.
type TrialAppError struct {
	Op    string // Operation being performed (e.g., "ByID", "Save", "Delete")
	AppID string
	Err   error
}

func (e *TrialAppError) Error() string {
	return fmt.Sprintf("%s operation failed for trial app %s: %v", e.Op, e.AppID, e.Err)
}

func (e *TrialAppError) Unwrap() error {
	return e.Err
}

// Is implements error comparison for trial app errors.
func (e *TrialAppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewTrialAppError creates a new trial app error with context.
func NewTrialAppError(op, appID string, err error) *TrialAppError {
	return &TrialAppError{Op: op, AppID: appID, Err: err}
}

// WorkflowError wraps workflow-related errors with additional context.
type WorkflowError struct {
	Op         string // Operation being performed
	WorkflowID string
	NodeID     string // Node ID for node operations
	Err        error
}

func (e *WorkflowError) Error() string {
	if e.NodeID != "" {
		return fmt.Sprintf("%s operation failed for node %s in workflow %s: %v", e.Op, e.NodeID, e.WorkflowID, e.Err)
	}

	return fmt.Sprintf("%s operation failed for workflow %s: %v", e.Op, e.WorkflowID, e.Err)
}

func (e *WorkflowError) Unwrap() error {
	return e.Err
}

// Is implements error comparison for workflow errors.
func (e *WorkflowError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewWorkflowError creates a new workflow error with context.
func NewWorkflowError(op, workflowID string, err error) *WorkflowError {
	return &WorkflowError{Op: op, WorkflowID: workflowID, Err: err}
}

// NewNodeError creates a workflow error for a node operation.
func NewNodeError(op, workflowID, nodeID string, err error) *WorkflowError {
	return &WorkflowError{Op: op, WorkflowID: workflowID, NodeID: nodeID, Err: err}
}

// IsTrialAppNotFound checks if an error indicates a trial app was not found.
func IsTrialAppNotFound(err error) bool {
	return errors.Is(err, ErrTrialAppNotFound)
}

// IsWorkflowNotFound checks if an error indicates a workflow was not found.
func IsWorkflowNotFound(err error) bool {
	return errors.Is(err, ErrWorkflowNotFound)
}

// IsNodeNotFound checks if an error indicates a node was not found.
func IsNodeNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound)
}

// IsNotFound reports any of the not found errors.
func IsNotFound(err error) bool {
	return IsTrialAppNotFound(err) || IsWorkflowNotFound(err) || IsNodeNotFound(err)
}
