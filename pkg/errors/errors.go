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
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// Configuration validation errors
	ErrConfigType   ErrorCode = "CONFIG_TYPE"
	ErrConfigRange  ErrorCode = "CONFIG_RANGE"
	ErrConfigChoice ErrorCode = "CONFIG_CHOICE"
	ErrConfigParse  ErrorCode = "CONFIG_PARSE"

	// Migration errors
	ErrMigrationContract ErrorCode = "MIGRATION_CONTRACT"

	// Preset errors
	ErrPresetNotFound ErrorCode = "PRESET_NOT_FOUND"
	ErrPresetInvalid  ErrorCode = "PRESET_INVALID"

	// FileSystem errors
	ErrFileRead  ErrorCode = "FILE_READ"
	ErrFileWrite ErrorCode = "FILE_WRITE"
	ErrDirCreate ErrorCode = "DIR_CREATE"

	// Player engine errors
	ErrEngine ErrorCode = "ENGINE"
)

// VidraError represents a structured error with code and details
type VidraError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *VidraError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *VidraError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *VidraError) Is(target error) bool {
	var targetErr *VidraError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new VidraError with the given code and message
func New(code ErrorCode, message string) *VidraError {
	return &VidraError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new VidraError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *VidraError {
	return &VidraError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a VidraError
func Wrap(err error, code ErrorCode, message string) *VidraError {
	if err == nil {
		return nil
	}
	return &VidraError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *VidraError {
	if err == nil {
		return nil
	}
	return &VidraError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *VidraError) WithDetail(key string, value interface{}) *VidraError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var vidraErr *VidraError
	if errors.As(err, &vidraErr) {
		return vidraErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a VidraError
func GetErrorCode(err error) ErrorCode {
	var vidraErr *VidraError
	if errors.As(err, &vidraErr) {
		return vidraErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a VidraError
func GetErrorDetails(err error) map[string]interface{} {
	var vidraErr *VidraError
	if errors.As(err, &vidraErr) {
		return vidraErr.Details
	}
	return nil
}
