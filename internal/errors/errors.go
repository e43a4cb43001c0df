package errors

import (
	"errors"
	"fmt"
)

// Error codes shared by callers that need to tell errors of the same type apart
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeEmptyName        = "EMPTY_NAME"
	CodeNotFound         = "NOT_FOUND"
	CodeDuplicateName    = "DUPLICATE_NAME"
	CodeLastProfile      = "LAST_PROFILE"
	CodeStorageCorrupt   = "STORAGE_CORRUPT"
	CodeStorage          = "STORAGE_ERROR"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeNetwork          = "NETWORK_ERROR"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    CodeValidationFailed,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewEmptyNameError creates the validation error returned when a profile
// name is blank after trimming.
func NewEmptyNameError(resource string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: fmt.Sprintf("%s name cannot be empty", resource),
		Code:    CodeEmptyName,
		Context: map[string]interface{}{
			"resource": resource,
		},
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    CodeNotFound,
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewDuplicateNameError creates an error for a name that collides with an
// existing one.
func NewDuplicateNameError(resource string, name string) *AppError {
	return &AppError{
		Type:    ErrorTypeDuplicateName,
		Message: fmt.Sprintf("a %s named %q already exists", resource, name),
		Code:    CodeDuplicateName,
		Context: map[string]interface{}{
			"resource": resource,
			"name":     name,
		},
	}
}

// NewLastProfileError creates the error returned when deleting the only
// remaining profile.
func NewLastProfileError(profileID string) *AppError {
	return &AppError{
		Type:    ErrorTypeLastProfile,
		Message: "cannot delete the last remaining profile",
		Code:    CodeLastProfile,
		Context: map[string]interface{}{
			"profile_id": profileID,
		},
	}
}

// NewStorageCorruptError creates an error for a stored value that failed to decode
func NewStorageCorruptError(key string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeStorageCorrupt,
		Message: fmt.Sprintf("stored value for %s is corrupt", key),
		Code:    CodeStorageCorrupt,
		Cause:   cause,
		Context: map[string]interface{}{
			"key": key,
		},
	}
}

// NewStorageError creates a new storage error
func NewStorageError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeStorage,
		Message: fmt.Sprintf("storage operation failed: %s", operation),
		Code:    CodeStorage,
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    CodeInvalidInput,
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewNetworkError creates a new network error
func NewNetworkError(url string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeNetwork,
		Message: fmt.Sprintf("request failed: %s", url),
		Code:    CodeNetwork,
		Cause:   cause,
		Context: map[string]interface{}{
			"url": url,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// HasCode checks if the error carries the given error code
func HasCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
			return appErr.Message
		case ErrorTypeDuplicateName:
			return appErr.Message
		case ErrorTypeLastProfile:
			return "The last profile cannot be deleted."
		case ErrorTypeStorageCorrupt:
			return "Stored data could not be read and was reset."
		case ErrorTypeStorage:
			return "A storage error occurred. Please try again."
		case ErrorTypeNetwork:
			return "The network request failed."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput,
			ErrorTypeDuplicateName, ErrorTypeLastProfile:
			return false // user errors
		default:
			return true
		}
	}
	return true
}
