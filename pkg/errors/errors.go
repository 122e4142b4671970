package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	CodeBadRequest            ErrorCode = "BAD_REQUEST"
	CodeUnauthenticated       ErrorCode = "UNAUTHENTICATED"
	CodeRateLimited           ErrorCode = "RATE_LIMITED"
	CodeDuplicateRegistration ErrorCode = "DUPLICATE_REGISTRATION"
	CodeUpstreamUnavailable   ErrorCode = "UPSTREAM_UNAVAILABLE"
	CodeUpstreamFailure       ErrorCode = "UPSTREAM_FAILURE"
	CodeInternalError         ErrorCode = "INTERNAL_ERROR"
)

// HTTPStatusMap maps error codes to HTTP status codes
var HTTPStatusMap = map[ErrorCode]int{
	CodeBadRequest:            http.StatusBadRequest,
	CodeUnauthenticated:       http.StatusUnauthorized,
	CodeRateLimited:           http.StatusTooManyRequests,
	CodeDuplicateRegistration: http.StatusConflict,
	CodeUpstreamUnavailable:   http.StatusServiceUnavailable,
	CodeUpstreamFailure:       http.StatusInternalServerError,
	CodeInternalError:         http.StatusInternalServerError,
}

// ErrorResponse is the JSON envelope returned for every failed request.
// The front end reads "error" as the user-facing message and "details"
// as an optional technical hint.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   string    `json:"error"`
	Details string    `json:"details,omitempty"`
	Code    ErrorCode `json:"code"`
	TraceID string    `json:"trace_id,omitempty"`
}

// AppError represents an application error with code and message
type AppError struct {
	Code    ErrorCode
	Message string
	Details string
	Cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError
func NewAppError(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewAppErrorf creates a new AppError with formatted message
func NewAppErrorf(code ErrorCode, cause error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// WithDetails attaches a technical detail string shown next to the message.
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// ToErrorResponse converts AppError to ErrorResponse
func (e *AppError) ToErrorResponse(traceID string) ErrorResponse {
	details := e.Details
	if details == "" && e.Cause != nil && e.HTTPStatus() >= http.StatusInternalServerError {
		details = e.Cause.Error()
	}
	return ErrorResponse{
		Success: false,
		Error:   e.Message,
		Details: details,
		Code:    e.Code,
		TraceID: traceID,
	}
}

// HTTPStatus returns the HTTP status code for this error
func (e *AppError) HTTPStatus() int {
	if status, exists := HTTPStatusMap[e.Code]; exists {
		return status
	}
	return http.StatusInternalServerError
}

// IsRetryable checks if the error is retryable
func (e *AppError) IsRetryable() bool {
	switch e.Code {
	case CodeUpstreamUnavailable, CodeRateLimited:
		return true
	default:
		return false
	}
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return NewAppError(appErr.Code, message, err)
	}
	return NewAppError(CodeInternalError, message, err)
}

// AsAppError extracts an AppError from err, falling back to an internal
// error carrying err as its cause.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewAppError(CodeInternalError, "Internal server error", err)
}
