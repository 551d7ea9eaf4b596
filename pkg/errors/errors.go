package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Step resolution errors
	ErrStepInvalid ErrorCode = "STEP_INVALID"

	// Rule errors
	ErrUnknownStyleMethod ErrorCode = "UNKNOWN_STYLE_METHOD"
	ErrPatternInvalid     ErrorCode = "PATTERN_INVALID"

	// Build event errors
	ErrCallbackFailed ErrorCode = "CALLBACK_FAILED"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
)

// MixError represents a structured error with code and details
type MixError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *MixError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MixError) Unwrap() error {
	return e.Wrapped
}

// Is matches any MixError carrying the same code
func (e *MixError) Is(target error) bool {
	var targetErr *MixError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new MixError with the given code and message
func New(code ErrorCode, message string) *MixError {
	return &MixError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new MixError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *MixError {
	return &MixError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a MixError
func Wrap(err error, code ErrorCode, message string) *MixError {
	if err == nil {
		return nil
	}
	return &MixError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *MixError {
	if err == nil {
		return nil
	}
	return &MixError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *MixError) WithDetail(key string, value interface{}) *MixError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var mixErr *MixError
	if errors.As(err, &mixErr) {
		return mixErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a MixError
func GetErrorCode(err error) ErrorCode {
	var mixErr *MixError
	if errors.As(err, &mixErr) {
		return mixErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a MixError
func GetErrorDetails(err error) map[string]interface{} {
	var mixErr *MixError
	if errors.As(err, &mixErr) {
		return mixErr.Details
	}
	return nil
}
