package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation        ErrorType = "validation"
	ErrorTypeNotADirectory     ErrorType = "not_a_directory"
	ErrorTypeDimensionMismatch ErrorType = "dimension_mismatch"
	ErrorTypeDecodeFailure     ErrorType = "decode_failure"
	ErrorTypeIOFailure         ErrorType = "io_failure"
	ErrorTypeTimeout           ErrorType = "timeout"
	ErrorTypeNotFound          ErrorType = "not_found"
	ErrorTypeConflict          ErrorType = "conflict"
	ErrorTypeInternal          ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"status_code"`
	Cause      error     `json:"-"`
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

// WithDetails returns a copy of the error carrying extra detail text
func (e *AppError) WithDetails(details string) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

func newError(t ErrorType, status int, message string, cause error) *AppError {
	return &AppError{
		Type:       t,
		Message:    message,
		StatusCode: status,
		Cause:      cause,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return newError(ErrorTypeValidation, http.StatusBadRequest, message, cause)
}

// NewNotADirectoryError reports a comparison root that is missing or not a directory
func NewNotADirectoryError(message string, cause error) *AppError {
	return newError(ErrorTypeNotADirectory, http.StatusBadRequest, message, cause)
}

// NewDimensionMismatchError reports images (or a zone) with incompatible sizes
func NewDimensionMismatchError(message string, cause error) *AppError {
	return newError(ErrorTypeDimensionMismatch, http.StatusUnprocessableEntity, message, cause)
}

// NewDecodeError reports an unreadable or corrupt image file
func NewDecodeError(message string, cause error) *AppError {
	return newError(ErrorTypeDecodeFailure, http.StatusUnprocessableEntity, message, cause)
}

// NewIOError reports a failure creating or writing output artifacts
func NewIOError(message string, cause error) *AppError {
	return newError(ErrorTypeIOFailure, http.StatusInternalServerError, message, cause)
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(message string, cause error) *AppError {
	return newError(ErrorTypeTimeout, http.StatusGatewayTimeout, message, cause)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return newError(ErrorTypeInternal, http.StatusInternalServerError, message, cause)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, cause error) *AppError {
	return newError(ErrorTypeNotFound, http.StatusNotFound, message, cause)
}

// NewConflictError reports a resource already held by another run
func NewConflictError(message string, cause error) *AppError {
	return newError(ErrorTypeConflict, http.StatusConflict, message, cause)
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

// IsPairFailure reports whether err only affects a single comparison pair
func IsPairFailure(err error) bool {
	return IsType(err, ErrorTypeDecodeFailure) || IsType(err, ErrorTypeDimensionMismatch)
}
