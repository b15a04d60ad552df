package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation         ErrorType = "validation"
	ErrorTypeConfiguration      ErrorType = "configuration"
	ErrorTypeUnsupportedChannel ErrorType = "unsupported_channel"
	ErrorTypeNoStrategy         ErrorType = "no_strategy"
	ErrorTypeDelivery           ErrorType = "delivery"
	ErrorTypeInternal           ErrorType = "internal"
)

// Error codes shared by the dispatch layers.
const (
	CodeUnsupportedChannel = "UNSUPPORTED_CHANNEL"
	CodeNoStrategySelected = "NO_STRATEGY_SELECTED"
	CodeDeliveryFailed     = "DELIVERY_FAILED"
)

// Sentinels for errors.Is. Matching is by Code, so any AppError built by
// NewUnsupportedChannelError matches ErrUnsupportedChannel regardless of kind.
var (
	ErrUnsupportedChannel = &AppError{Type: ErrorTypeUnsupportedChannel, Code: CodeUnsupportedChannel, Message: "Unsupported notification channel"}
	ErrNoStrategySelected = &AppError{Type: ErrorTypeNoStrategy, Code: CodeNoStrategySelected, Message: "No notification strategy selected"}
)

// AppError represents a structured application error
type AppError struct {
	Type          ErrorType              `json:"type"`
	Code          string                 `json:"code"`
	Message       string                 `json:"message"`
	Details       string                 `json:"details,omitempty"`
	CorrelationID string                 `json:"correlation_id,omitempty"`
	Timestamp     time.Time              `json:"timestamp"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	Cause         error                  `json:"-"` // Original error, not serialized
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || t.Code == "" {
		return false
	}
	return e.Code == t.Code
}

// ToJSON converts the error to JSON format
func (e *AppError) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// NewAppError creates a new application error
func NewAppError(errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:      errorType,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewAppErrorWithCause creates a new application error with an underlying cause
func NewAppErrorWithCause(errorType ErrorType, code, message string, cause error) *AppError {
	err := NewAppError(errorType, code, message)
	err.Cause = cause
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// WithCorrelationID adds a correlation ID to the error
func (e *AppError) WithCorrelationID(correlationID string) *AppError {
	e.CorrelationID = correlationID
	return e
}

// WithDetails adds additional details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// Common error constructors

// NewValidationError creates a validation error
func NewValidationError(field, message string) *AppError {
	return NewAppError(ErrorTypeValidation, "VALIDATION_ERROR", message).
		WithMetadata("field", field)
}

// NewConfigurationError creates an error for an invalid configuration value
func NewConfigurationError(key, value string) *AppError {
	return NewAppError(ErrorTypeConfiguration, "CONFIG_ERROR",
		fmt.Sprintf("Invalid value for %s", key)).
		WithDetails(fmt.Sprintf("got %q", value)).
		WithMetadata("key", key)
}

// NewUnsupportedChannelError reports a dispatch to a channel kind nobody registered
func NewUnsupportedChannelError(kind string) *AppError {
	return NewAppError(ErrorTypeUnsupportedChannel, CodeUnsupportedChannel,
		fmt.Sprintf("Unsupported notification channel: %s", kind)).
		WithMetadata("channel", kind)
}

// NewNoStrategySelectedError reports a send on a notifier with no handler
func NewNoStrategySelectedError() *AppError {
	return NewAppError(ErrorTypeNoStrategy, CodeNoStrategySelected, "No notification strategy selected")
}

// NewDeliveryError wraps a failure raised while a handler was delivering
func NewDeliveryError(kind string, cause error) *AppError {
	return NewAppErrorWithCause(ErrorTypeDelivery, CodeDeliveryFailed,
		fmt.Sprintf("Delivery failed on channel: %s", kind), cause).
		WithMetadata("channel", kind)
}

// NewInternalError creates an internal error
func NewInternalError(message string, cause error) *AppError {
	return NewAppErrorWithCause(ErrorTypeInternal, "INTERNAL_ERROR", message, cause)
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errorType ErrorType) bool {
	if t, ok := GetErrorType(err); ok {
		return t == errorType
	}
	return false
}

// GetErrorType returns the error type of the first AppError in the chain
func GetErrorType(err error) (ErrorType, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type, true
	}
	return "", false
}

// GetCorrelationID extracts correlation ID from an error
func GetCorrelationID(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.CorrelationID
	}
	return ""
}
