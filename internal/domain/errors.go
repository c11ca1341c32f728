package domain

import "fmt"

// Error types for consistent error handling across the back office.

// ErrNotFound indicates a resource was not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrExternalService indicates a failure in an external service call.
type ErrExternalService struct {
	Service string
	Err     error
}

func (e *ErrExternalService) Error() string {
	return fmt.Sprintf("external service error [%s]: %v", e.Service, e.Err)
}

func (e *ErrExternalService) Unwrap() error {
	return e.Err
}

// ErrTimeout indicates an operation exceeded its deadline.
type ErrTimeout struct {
	Operation string
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("operation timed out: %s", e.Operation)
}

// ErrCircuitOpen indicates the circuit breaker is open.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}

// ErrValidation indicates a validation error (bad input).
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrDataIntegrity indicates stored data violates an invariant the
// computation relies on (e.g. a SOLD vehicle with no sale price).
// These surface to the caller instead of being replaced by defaults.
type ErrDataIntegrity struct {
	Entity  string
	ID      string
	Message string
}

func (e *ErrDataIntegrity) Error() string {
	return fmt.Sprintf("data integrity error [%s %s]: %s", e.Entity, e.ID, e.Message)
}

// ErrUsage indicates an operation was requested against an entity in
// the wrong state (e.g. auto-distribute on an unsold vehicle).
type ErrUsage struct {
	Operation string
	Message   string
}

func (e *ErrUsage) Error() string {
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

// ErrUnauthorized indicates invalid credentials or token.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrForbidden indicates the user lacks permission for the operation.
type ErrForbidden struct {
	Action string
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("forbidden: %s", e.Action)
}

// ErrConflict indicates a resource already exists (e.g. duplicate category name).
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	return e.Message
}

// ErrInvalidBackup indicates a backup envelope failed validation.
type ErrInvalidBackup struct {
	Reason string
}

func (e *ErrInvalidBackup) Error() string {
	return fmt.Sprintf("invalid backup file: %s", e.Reason)
}
