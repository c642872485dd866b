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
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"
	ErrPermission     ErrorCode = "PERMISSION"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Vault errors
	ErrVaultNotFound ErrorCode = "VAULT_NOT_FOUND"
	ErrVaultInvalid  ErrorCode = "VAULT_INVALID"
	ErrVaultAccess   ErrorCode = "VAULT_ACCESS"

	// Source config errors
	ErrSourceNotFound ErrorCode = "SOURCE_NOT_FOUND"
	ErrSourceInvalid  ErrorCode = "SOURCE_INVALID"

	// Note errors
	ErrNoteDateInvalid ErrorCode = "NOTE_DATE_INVALID"
	ErrNoteMove        ErrorCode = "NOTE_MOVE"

	// Install errors
	ErrInstallExecute ErrorCode = "INSTALL_EXECUTE"
	ErrBackupCreate   ErrorCode = "BACKUP_CREATE"
	ErrSelectionInput ErrorCode = "SELECTION_INPUT"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileCreate   ErrorCode = "FILE_CREATE"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrFileMove     ErrorCode = "FILE_MOVE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// OdotError represents a structured error with code and details
type OdotError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *OdotError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *OdotError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *OdotError) Is(target error) bool {
	var targetErr *OdotError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new OdotError with the given code and message
func New(code ErrorCode, message string) *OdotError {
	return &OdotError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new OdotError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *OdotError {
	return &OdotError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an OdotError
func Wrap(err error, code ErrorCode, message string) *OdotError {
	if err == nil {
		return nil
	}
	return &OdotError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *OdotError {
	if err == nil {
		return nil
	}
	return &OdotError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *OdotError) WithDetail(key string, value interface{}) *OdotError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *OdotError) WithDetails(details map[string]interface{}) *OdotError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var odotErr *OdotError
	if errors.As(err, &odotErr) {
		return odotErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an OdotError
func GetErrorCode(err error) ErrorCode {
	var odotErr *OdotError
	if errors.As(err, &odotErr) {
		return odotErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an OdotError
func GetErrorDetails(err error) map[string]interface{} {
	var odotErr *OdotError
	if errors.As(err, &odotErr) {
		return odotErr.Details
	}
	return nil
}
