package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Values(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		expected  string
	}{
		{"Validation error", ErrorTypeValidation, "validation"},
		{"Configuration error", ErrorTypeConfiguration, "configuration"},
		{"Unsupported channel", ErrorTypeUnsupportedChannel, "unsupported_channel"},
		{"No strategy", ErrorTypeNoStrategy, "no_strategy"},
		{"Delivery error", ErrorTypeDelivery, "delivery"},
		{"Internal error", ErrorTypeInternal, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errorType))
		})
	}
}

func TestNewAppError(t *testing.T) {
	appErr := NewAppError(ErrorTypeValidation, "INVALID_INPUT", "Invalid input provided")

	assert.Equal(t, ErrorTypeValidation, appErr.Type)
	assert.Equal(t, "INVALID_INPUT", appErr.Code)
	assert.Equal(t, "Invalid input provided", appErr.Message)
	assert.WithinDuration(t, time.Now(), appErr.Timestamp, time.Second)
	assert.Nil(t, appErr.Cause)
}

func TestNewAppErrorWithCause(t *testing.T) {
	originalErr := errors.New("broken pipe")

	appErr := NewAppErrorWithCause(ErrorTypeDelivery, CodeDeliveryFailed, "write failed", originalErr)

	assert.Equal(t, originalErr, appErr.Cause)
	assert.Equal(t, "broken pipe", appErr.Details)
	assert.Equal(t, "DELIVERY_FAILED: write failed - broken pipe", appErr.Error())
}

func TestAppError_WithMethods(t *testing.T) {
	appErr := NewAppError(ErrorTypeInternal, "WRAPPED_ERROR", "An error occurred").
		WithCorrelationID("test-correlation-id").
		WithMetadata("context", "test").
		WithDetails("additional details")

	assert.Equal(t, "test-correlation-id", appErr.CorrelationID)
	assert.Equal(t, "test", appErr.Metadata["context"])
	assert.Equal(t, "additional details", appErr.Details)
}

func TestAppError_Error(t *testing.T) {
	appErr := &AppError{Code: "INVALID_INPUT", Message: "Invalid input provided"}
	assert.Equal(t, "INVALID_INPUT: Invalid input provided", appErr.Error())
}

func TestAppError_Unwrap_NoCause(t *testing.T) {
	appErr := &AppError{}
	assert.Nil(t, appErr.Unwrap())
}

func TestNewUnsupportedChannelError(t *testing.T) {
	err := NewUnsupportedChannelError("fax")

	assert.Equal(t, ErrorTypeUnsupportedChannel, err.Type)
	assert.Equal(t, CodeUnsupportedChannel, err.Code)
	assert.Equal(t, "Unsupported notification channel: fax", err.Message)
	assert.Equal(t, "fax", err.Metadata["channel"])
	assert.True(t, errors.Is(err, ErrUnsupportedChannel))
	assert.False(t, errors.Is(err, ErrNoStrategySelected))
}

func TestNewNoStrategySelectedError(t *testing.T) {
	err := NewNoStrategySelectedError()

	assert.Equal(t, ErrorTypeNoStrategy, err.Type)
	assert.True(t, errors.Is(err, ErrNoStrategySelected))
	assert.False(t, errors.Is(err, ErrUnsupportedChannel))
}

func TestSentinel_MatchesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("dispatch: %w", NewUnsupportedChannelError("fax"))

	assert.True(t, errors.Is(wrapped, ErrUnsupportedChannel))
	assert.True(t, IsErrorType(wrapped, ErrorTypeUnsupportedChannel))
}

func TestNewDeliveryError(t *testing.T) {
	cause := errors.New("short write")
	err := NewDeliveryError("sms", cause)

	assert.Equal(t, ErrorTypeDelivery, err.Type)
	assert.Equal(t, "Delivery failed on channel: sms", err.Message)
	assert.Equal(t, "sms", err.Metadata["channel"])
	assert.True(t, errors.Is(err, cause))
}

func TestNewConfigurationError(t *testing.T) {
	err := NewConfigurationError("LOG_LEVEL", "loud")

	assert.Equal(t, ErrorTypeConfiguration, err.Type)
	assert.Equal(t, "CONFIG_ERROR: Invalid value for LOG_LEVEL - got \"loud\"", err.Error())
	assert.Equal(t, "LOG_LEVEL", err.Metadata["key"])
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("channel", "channel is required")

	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, "VALIDATION_ERROR", err.Code)
	assert.Equal(t, "channel", err.Metadata["field"])
}

func TestGetErrorType(t *testing.T) {
	errorType, ok := GetErrorType(NewNoStrategySelectedError())
	assert.True(t, ok)
	assert.Equal(t, ErrorTypeNoStrategy, errorType)

	errorType, ok = GetErrorType(errors.New("regular error"))
	assert.False(t, ok)
	assert.Equal(t, ErrorType(""), errorType)
}

func TestGetCorrelationID(t *testing.T) {
	appErr := NewUnsupportedChannelError("fax").WithCorrelationID("corr-1")
	assert.Equal(t, "corr-1", GetCorrelationID(fmt.Errorf("wrapped: %w", appErr)))
	assert.Empty(t, GetCorrelationID(errors.New("regular error")))
}

func TestAppError_ChainedErrors(t *testing.T) {
	originalErr := errors.New("stdout closed")
	middleErr := NewDeliveryError("email", originalErr)
	finalErr := NewInternalError("walkthrough aborted", middleErr)

	assert.True(t, errors.Is(finalErr, originalErr))
	assert.True(t, errors.Is(finalErr, middleErr))
	assert.Equal(t, middleErr, errors.Unwrap(finalErr))
}

func TestAppError_ToJSON(t *testing.T) {
	appErr := NewUnsupportedChannelError("fax").WithCorrelationID("corr-2")

	data, err := appErr.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "unsupported_channel", decoded["type"])
	assert.Equal(t, CodeUnsupportedChannel, decoded["code"])
	assert.Equal(t, "corr-2", decoded["correlation_id"])
}
