package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// Provider errors
	ErrCodeProviderQuery ErrorCode = "PROVIDER_QUERY_FAILED"
	ErrCodeResolveFailed ErrorCode = "RESOLVE_FAILED"

	// Selection flow errors
	ErrCodeApplyFailed   ErrorCode = "APPLY_FAILED"
	ErrCodeSessionActive ErrorCode = "SESSION_ACTIVE"
	ErrCodeSurfaceCreate ErrorCode = "SURFACE_CREATE"

	// Host errors
	ErrCodeHostUnavailable ErrorCode = "HOST_UNAVAILABLE"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// MenuError represents a structured error with context
type MenuError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *MenuError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MenuError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *MenuError) WithDetail(key string, value interface{}) *MenuError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *MenuError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new MenuError
func New(code ErrorCode, message string) *MenuError {
	return &MenuError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a MenuError
func Wrap(err error, code ErrorCode, message string) *MenuError {
	return &MenuError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error carries a specific MenuError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	menuErr, ok := err.(*MenuError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return menuErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	menuErr, ok := err.(*MenuError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return menuErr.Code
}
