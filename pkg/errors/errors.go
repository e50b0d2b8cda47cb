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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Patina document errors
	ErrSchema           ErrorCode = "SCHEMA"
	ErrParse            ErrorCode = "PARSE"
	ErrInvalidVariables ErrorCode = "INVALID_VARIABLES"

	// Rendering errors
	ErrRender ErrorCode = "RENDER"

	// FileSystem errors
	ErrFileRead  ErrorCode = "FILE_READ"
	ErrFileWrite ErrorCode = "FILE_WRITE"
	ErrTrash     ErrorCode = "TRASH"

	// Interaction errors
	ErrInput ErrorCode = "INPUT"
)

// Detail keys shared across packages
const (
	DetailPath     = "path"
	DetailField    = "field"
	DetailTemplate = "template"
	DetailVariable = "variable"
)

// PatinaError represents a structured error with code and details
type PatinaError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PatinaError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PatinaError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PatinaError) Is(target error) bool {
	var targetErr *PatinaError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PatinaError with the given code and message
func New(code ErrorCode, message string) *PatinaError {
	return &PatinaError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PatinaError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PatinaError {
	return &PatinaError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PatinaError
func Wrap(err error, code ErrorCode, message string) *PatinaError {
	if err == nil {
		return nil
	}
	return &PatinaError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PatinaError {
	if err == nil {
		return nil
	}
	return &PatinaError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PatinaError) WithDetail(key string, value interface{}) *PatinaError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var patinaErr *PatinaError
	if errors.As(err, &patinaErr) {
		return patinaErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PatinaError
func GetErrorCode(err error) ErrorCode {
	var patinaErr *PatinaError
	if errors.As(err, &patinaErr) {
		return patinaErr.Code
	}
	return ErrUnknown
}

// Details merges the details of every PatinaError in the wrap chain.
// Outer errors win on duplicate keys.
func Details(err error) map[string]interface{} {
	out := make(map[string]interface{})
	for err != nil {
		var patinaErr *PatinaError
		if !errors.As(err, &patinaErr) {
			break
		}
		for k, v := range patinaErr.Details {
			if _, ok := out[k]; !ok {
				out[k] = v
			}
		}
		err = patinaErr.Wrapped
	}
	return out
}

// GetDetail returns a single string detail from anywhere in the chain.
func GetDetail(err error, key string) string {
	v, _ := Details(err)[key].(string)
	return v
}
