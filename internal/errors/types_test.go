package errors

import (
	"errors"
	"testing"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		expected  string
	}{
		{"Validation", ErrorTypeValidation, "validation"},
		{"NotFound", ErrorTypeNotFound, "not_found"},
		{"DuplicateName", ErrorTypeDuplicateName, "duplicate_name"},
		{"LastProfile", ErrorTypeLastProfile, "last_profile"},
		{"StorageCorrupt", ErrorTypeStorageCorrupt, "storage_corrupt"},
		{"Storage", ErrorTypeStorage, "storage"},
		{"InvalidInput", ErrorTypeInvalidInput, "invalid_input"},
		{"Network", ErrorTypeNetwork, "network"},
		{"Unknown", ErrorType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.errorType.String()
			if result != tt.expected {
				t.Errorf("ErrorType.String() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "Error without cause",
			appError: &AppError{
				Type:    ErrorTypeValidation,
				Message: "title is required",
			},
			expected: "validation: title is required",
		},
		{
			name: "Error with cause",
			appError: &AppError{
				Type:    ErrorTypeStorage,
				Message: "write failed",
				Cause:   errors.New("disk full"),
			},
			expected: "storage: write failed (caused by: disk full)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			if result != tt.expected {
				t.Errorf("AppError.Error() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("original error")
	appError := &AppError{
		Type:    ErrorTypeStorageCorrupt,
		Message: "wrapped error",
		Cause:   cause,
	}

	if appError.Unwrap() != cause {
		t.Errorf("AppError.Unwrap() = %v, want %v", appError.Unwrap(), cause)
	}
	if !errors.Is(appError, cause) {
		t.Errorf("errors.Is should find the cause through Unwrap")
	}
}

func TestAppError_Is(t *testing.T) {
	emptyName := NewEmptyNameError("profile")
	validation := NewValidationError("bad task", nil)
	regularError := errors.New("regular error")

	tests := []struct {
		name     string
		err      *AppError
		target   error
		expected bool
	}{
		{"Same type and code", NewEmptyNameError("profile"), emptyName, true},
		{"Same type different code", emptyName, validation, false},
		{"Different type", NewLastProfileError("default"), validation, false},
		{"Regular error", validation, regularError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Is(tt.target)
			if result != tt.expected {
				t.Errorf("AppError.Is() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAppError_WithContext(t *testing.T) {
	appError := &AppError{
		Type:    ErrorTypeValidation,
		Message: "test error",
	}

	result := appError.WithContext("field", "title")

	if result != appError {
		t.Errorf("WithContext should return the same instance")
	}
	if appError.Context["field"] != "title" {
		t.Errorf("Context should contain the added key-value pair")
	}

	value, exists := appError.GetContext("field")
	if !exists || value != "title" {
		t.Errorf("GetContext should return the stored value")
	}

	appError.Context = nil
	if _, exists := appError.GetContext("field"); exists {
		t.Errorf("GetContext should return false when context is nil")
	}
}
