package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")
	wrapped := fmt.Errorf("fetch index: %w", NewSupplierUnavailableError("index", cause))

	assert.Equal(t, ErrCodeSupplierUnavailable, CodeOf(wrapped))
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, ErrorCode(""), CodeOf(cause))
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
}

func TestStandardError_Error(t *testing.T) {
	err := NewUnknownNameError("missing")
	assert.Equal(t, "StandardError[UNKNOWN_NAME]: Icon name not found in any tier: name: missing", err.Error())

	bare := &StandardError{Code: ErrCodeConfigInvalid, Message: "bad"}
	assert.Equal(t, "StandardError[CONFIG_INVALID]: bad", bare.Error())
}

func TestGetErrorCategory(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected string
	}{
		{ErrCodeSupplierUnavailable, "UPSTREAM"},
		{ErrCodeExtractionFailure, "RESOLUTION"},
		{ErrCodeUnknownName, "RESOLUTION"},
		{ErrCodeIdentifierCollisionExhaustion, "GENERATION"},
		{ErrCodeRegistryInvalid, "GENERATION"},
		{ErrCodeCacheUnavailable, "STORAGE"},
		{ErrCodeSnapshotFailed, "STORAGE"},
		{ErrCodeConfigInvalid, "CONFIG"},
		{ErrorCode("SOMETHING_ELSE"), "OTHER"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorCategory(tt.code))
		})
	}
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeSupplierUnavailable))
	assert.True(t, IsRetryableErrorCode(ErrCodeCacheUnavailable))
	assert.False(t, IsRetryableErrorCode(ErrCodeExtractionFailure))
	assert.False(t, IsRetryableErrorCode(ErrCodeRegistryInvalid))
}

func TestWithMetadata(t *testing.T) {
	err := NewSnapshotFailedError("load", stderrors.New("no such table")).
		WithMetadata("driver", "sqlite")

	assert.Equal(t, "sqlite", err.Metadata["driver"])
	assert.True(t, err.Retryable)
}
