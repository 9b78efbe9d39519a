package errors

import (
	"errors"
	"fmt"
)

// ErrorCode is the machine-readable error class carried by AppError.
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserExists         ErrorCode = "USER_EXISTS"

	// Decision errors
	ErrCodeForbidden     ErrorCode = "FORBIDDEN"
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrCodeLimitExceeded ErrorCode = "LIMIT_EXCEEDED"
	ErrCodePastResource  ErrorCode = "PAST_RESOURCE"
	ErrCodeConflict      ErrorCode = "CONFLICT"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"

	// Store errors
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// AppError is the single error type returned by services to the HTTP layer.
type AppError struct {
	Code    ErrorCode
	Message string
	Fields  map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError without field details.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewFieldError creates an AppError carrying per-field messages.
func NewFieldError(code ErrorCode, message string, fields map[string]string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Fields:  fields,
	}
}

// Internal wraps a store or infrastructure failure. The message never leaks err.
func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// IsAppError reports whether err (or anything it wraps) is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError returns the AppError in err's chain, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

var (
	ErrSpotNotFound        = NewAppError(ErrCodeNotFound, "Spot couldn't be found", nil)
	ErrBookingNotFound     = NewAppError(ErrCodeNotFound, "Booking couldn't be found", nil)
	ErrReviewNotFound      = NewAppError(ErrCodeNotFound, "Review couldn't be found", nil)
	ErrReviewImageNotFound = NewAppError(ErrCodeNotFound, "Review Image couldn't be found", nil)
	ErrSpotImageNotFound   = NewAppError(ErrCodeNotFound, "Spot Image couldn't be found", nil)
	ErrUserNotFound        = NewAppError(ErrCodeNotFound, "User couldn't be found", nil)

	ErrAuthenticationRequired = NewAppError(ErrCodeUnauthorized, "Authentication required", nil)
	ErrInvalidCredentials     = NewAppError(ErrCodeInvalidCredentials, "Invalid credentials", nil)
)
