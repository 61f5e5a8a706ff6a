package models

import (
	"errors"
	"fmt"
	"time"
)

// ValidationError covers malformed or out-of-range input: coordinates, radius,
// service id, OTP format. Never retried automatically.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError covers unknown sessions, customers and services.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// RateLimitError is returned once a rolling-window counter hits its threshold.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter)
}

// MaxAttemptsExceededError signals that OTP verification attempts are spent
// and the caller must restart the flow with a fresh passcode request.
type MaxAttemptsExceededError struct{}

func (e *MaxAttemptsExceededError) Error() string {
	return "maximum verification attempts exceeded"
}

// TransactionError wraps a store write failure inside a multi-step operation.
// The operation is rolled back fully; the cause is logged, not surfaced.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction %s failed: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }

// OTP verification failure sentinels.
var (
	ErrOTPNotFound = errors.New("OTP not found or expired")
	ErrInvalidOTP  = errors.New("OTP does not match")
)
