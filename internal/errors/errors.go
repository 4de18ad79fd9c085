package errors

import (
	"errors"
	"fmt"
	"net/http"

	"go-photo-validator/pkg/taxonomy"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeDecode     ErrorType = "decode"
	ErrorTypeCapability ErrorType = "capability"
	ErrorTypeDetection  ErrorType = "detection"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeTimeout    ErrorType = "timeout"
	ErrorTypeTooLarge   ErrorType = "too_large"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError represents a structured application error. Category, when set,
// is the taxonomy entry users should see for this failure.
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	Category   taxonomy.ErrorCategory `json:"category,omitempty"`
	StatusCode int                    `json:"status_code"`
	Cause      error                  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewDecodeError creates an error for bytes that are not a usable image.
// category should be UNSUPPORTED_FORMAT or CORRUPTED_IMAGE.
func NewDecodeError(message string, category taxonomy.ErrorCategory, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeDecode,
		Message:    message,
		Category:   category,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewCapabilityError creates an error for a face-detection capability that failed to load
func NewCapabilityError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeCapability,
		Message:    message,
		Category:   taxonomy.ProcessingError,
		StatusCode: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// NewDetectionError creates an error for a detector that failed while running
func NewDetectionError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeDetection,
		Message:    message,
		Category:   taxonomy.ProcessingError,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewNetworkError creates a new network error
func NewNetworkError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNetwork,
		Message:    message,
		Category:   taxonomy.ProcessingError,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeTimeout,
		Message:    message,
		Category:   taxonomy.ProcessingError,
		StatusCode: http.StatusGatewayTimeout,
		Cause:      cause,
	}
}

// NewTooLargeError creates an error for payloads over the configured limit
func NewTooLargeError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeTooLarge,
		Message:    message,
		Category:   taxonomy.FileTooLarge,
		StatusCode: http.StatusRequestEntityTooLarge,
		Cause:      cause,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
		Cause:      cause,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		Category:   taxonomy.ProcessingError,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsType checks if the error chain contains an AppError of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// CategoryOf returns the taxonomy category attached to err, or PROCESSING_ERROR
// when the error carries none.
func CategoryOf(err error) taxonomy.ErrorCategory {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Category != "" {
		return appErr.Category
	}
	return taxonomy.ProcessingError
}
