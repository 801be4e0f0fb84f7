// Package errors provides the structured error type shared by the icon
// suppliers, the generator and the dispatch service.
//
// The resolution core never returns these to its callers; it logs them and
// falls through to the next fallback tier.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Resolution taxonomy.
	ErrCodeSupplierUnavailable           ErrorCode = "SUPPLIER_UNAVAILABLE"
	ErrCodeExtractionFailure             ErrorCode = "EXTRACTION_FAILURE"
	ErrCodeUnknownName                   ErrorCode = "UNKNOWN_NAME"
	ErrCodeIdentifierCollisionExhaustion ErrorCode = "IDENTIFIER_COLLISION_EXHAUSTION"

	// Collaborator failures.
	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeSnapshotFailed   ErrorCode = "SNAPSHOT_FAILED"
	ErrCodeRegistryInvalid  ErrorCode = "REGISTRY_INVALID"
	ErrCodeCodegenFailed    ErrorCode = "CODEGEN_FAILED"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause, if any.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata returns the error with key set in its metadata.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

// NewSupplierUnavailableError reports that the upstream catalogue could not be
// reached or parsed.
func NewSupplierUnavailableError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSupplierUnavailable,
		Message:   "Catalogue supplier unavailable",
		Details:   fmt.Sprintf("source: %s, error: %s", source, errString(err)),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewExtractionFailureError reports content whose outer svg element could not
// be stripped.
func NewExtractionFailureError(name, reason string) *StandardError {
	return &StandardError{
		Code:      ErrCodeExtractionFailure,
		Message:   "Icon content extraction failed",
		Details:   fmt.Sprintf("name: %s, reason: %s", name, reason),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownNameError reports a name that no tier could resolve.
func NewUnknownNameError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownName,
		Message:   "Icon name not found in any tier",
		Details:   fmt.Sprintf("name: %s", name),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewCacheUnavailableError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Icon cache unavailable",
		Details:   fmt.Sprintf("op: %s, error: %s", op, errString(err)),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewSnapshotFailedError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSnapshotFailed,
		Message:   "Catalogue snapshot operation failed",
		Details:   fmt.Sprintf("op: %s, error: %s", op, errString(err)),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewRegistryInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRegistryInvalid,
		Message:   "Registry artifact is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewCodegenFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCodegenFailed,
		Message:   "Go source emission failed",
		Details:   errString(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewConfigInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   "Invalid configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Helpers
// ==========================

// CodeOf returns the code of the first StandardError in err's chain, or ""
// when there is none.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// IsRetryableErrorCode reports whether a failure with this code may succeed
// on a later attempt.
func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeSupplierUnavailable, ErrCodeCacheUnavailable, ErrCodeSnapshotFailed:
		return true
	default:
		return false
	}
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SUPPLIER"):
		return "UPSTREAM"
	case strings.Contains(codeStr, "EXTRACTION") || strings.Contains(codeStr, "UNKNOWN"):
		return "RESOLUTION"
	case strings.Contains(codeStr, "IDENTIFIER") || strings.Contains(codeStr, "REGISTRY") || strings.Contains(codeStr, "CODEGEN"):
		return "GENERATION"
	case strings.Contains(codeStr, "CACHE") || strings.Contains(codeStr, "SNAPSHOT"):
		return "STORAGE"
	case strings.Contains(codeStr, "CONFIG"):
		return "CONFIG"
	default:
		return "OTHER"
	}
}

func errString(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}
