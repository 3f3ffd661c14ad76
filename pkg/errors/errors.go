package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of operation errors
type ErrorType string

const (
	ErrorTypeQuotaExceeded      ErrorType = "quota_exceeded"
	ErrorTypePlanInvalid        ErrorType = "plan_invalid"
	ErrorTypeBackendFailed      ErrorType = "backend_failed"
	ErrorTypeCancelled          ErrorType = "cancelled"
	ErrorTypeQuotaPersistFailed ErrorType = "quota_persist_failed"
	ErrorTypeInternal           ErrorType = "internal"
)

// OperationError is the typed result every run terminates with on a
// non-success path. The UI layer decides presentation; cancellation is a
// terminal state here, not a user-facing failure.
type OperationError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *OperationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *OperationError) Unwrap() error {
	return e.Cause
}

// NewQuotaExceededError creates the admission-denied error for a feature.
// User-recoverable: the quota resets on the next calendar day.
func NewQuotaExceededError(feature string) *OperationError {
	return &OperationError{
		Type:    ErrorTypeQuotaExceeded,
		Message: "daily quota exceeded",
		Details: feature,
	}
}

// NewPlanInvalidError wraps a plan validation failure. Caller error; surfaced
// before any backend call and never retried automatically.
func NewPlanInvalidError(cause error) *OperationError {
	return &OperationError{
		Type:    ErrorTypePlanInvalid,
		Message: "page operation plan rejected",
		Details: cause.Error(),
		Cause:   cause,
	}
}

// NewBackendFailedError wraps a processing backend error verbatim.
func NewBackendFailedError(cause error) *OperationError {
	return &OperationError{
		Type:    ErrorTypeBackendFailed,
		Message: "processing backend failed",
		Cause:   cause,
	}
}

// NewCancelledError creates the terminal result for a user-cancelled run.
func NewCancelledError() *OperationError {
	return &OperationError{
		Type:    ErrorTypeCancelled,
		Message: "operation cancelled",
	}
}

// NewQuotaPersistFailedError reports that recording a successful consumption
// failed. The run itself is still successful; the counter is retried on the
// next quota call.
func NewQuotaPersistFailedError(cause error) *OperationError {
	return &OperationError{
		Type:    ErrorTypeQuotaPersistFailed,
		Message: "failed to persist quota consumption",
		Cause:   cause,
	}
}

// NewInternalError creates an internal engine error
func NewInternalError(message string, cause error) *OperationError {
	return &OperationError{
		Type:    ErrorTypeInternal,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Type == errorType
	}
	return false
}

// GetType returns the error type, defaulting to internal for untyped errors.
func GetType(err error) ErrorType {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Type
	}
	return ErrorTypeInternal
}
