package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "1700000000000")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "task not found: 1700000000000" {
		t.Errorf("NewNotFoundError message = %v", err.Message)
	}
	if err.Code != CodeNotFound {
		t.Errorf("NewNotFoundError code = %v, want %v", err.Code, CodeNotFound)
	}

	identifier, ok := err.GetContext("identifier")
	if !ok || identifier != "1700000000000" {
		t.Errorf("NewNotFoundError should set identifier context")
	}
}

func TestNewDuplicateNameError(t *testing.T) {
	err := NewDuplicateNameError("profile", "Work")

	if err.Type != ErrorTypeDuplicateName {
		t.Errorf("NewDuplicateNameError type = %v, want %v", err.Type, ErrorTypeDuplicateName)
	}
	if err.Message != `a profile named "Work" already exists` {
		t.Errorf("NewDuplicateNameError message = %v", err.Message)
	}
	name, ok := err.GetContext("name")
	if !ok || name != "Work" {
		t.Errorf("NewDuplicateNameError should set name context")
	}
}

func TestNewEmptyNameError(t *testing.T) {
	err := NewEmptyNameError("profile")

	if !err.IsType(ErrorTypeValidation) {
		t.Errorf("NewEmptyNameError should be a validation error")
	}
	if err.Code != CodeEmptyName {
		t.Errorf("NewEmptyNameError code = %v, want %v", err.Code, CodeEmptyName)
	}
}

func TestNewStorageCorruptError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := NewStorageCorruptError("tasks-default", cause)

	if err.Type != ErrorTypeStorageCorrupt {
		t.Errorf("NewStorageCorruptError type = %v, want %v", err.Type, ErrorTypeStorageCorrupt)
	}
	if err.Cause != cause {
		t.Errorf("NewStorageCorruptError cause = %v, want %v", err.Cause, cause)
	}
	key, ok := err.GetContext("key")
	if !ok || key != "tasks-default" {
		t.Errorf("NewStorageCorruptError should set key context")
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("original error")
	err := WrapError(cause, ErrorTypeStorage, "wrapped message")

	if err.Type != ErrorTypeStorage {
		t.Errorf("WrapError type = %v, want %v", err.Type, ErrorTypeStorage)
	}
	if err.Code != "storage" {
		t.Errorf("WrapError code = %v, want %v", err.Code, "storage")
	}
	if err.Cause != cause {
		t.Errorf("WrapError cause = %v, want %v", err.Cause, cause)
	}
}

func TestAsAppError(t *testing.T) {
	appError := NewLastProfileError("default")
	wrapped := fmt.Errorf("delete profile: %w", appError)

	result, ok := AsAppError(wrapped)
	if !ok || result != appError {
		t.Errorf("AsAppError should unwrap to the original AppError")
	}

	if _, ok := AsAppError(errors.New("regular error")); ok {
		t.Errorf("AsAppError should return false for regular error")
	}
	if IsAppError(nil) {
		t.Errorf("IsAppError should return false for nil")
	}
}

func TestIsErrorTypeAndHasCode(t *testing.T) {
	err := fmt.Errorf("create: %w", NewEmptyNameError("profile"))

	if !IsErrorType(err, ErrorTypeValidation) {
		t.Errorf("IsErrorType should see through wrapping")
	}
	if !HasCode(err, CodeEmptyName) {
		t.Errorf("HasCode should report EMPTY_NAME")
	}
	if HasCode(errors.New("plain"), CodeEmptyName) {
		t.Errorf("HasCode should be false for plain errors")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Validation error", NewValidationError("title is required", nil), "title is required"},
		{"Not found error", NewNotFoundError("task", "42"), "task not found: 42"},
		{"Last profile error", NewLastProfileError("default"), "The last profile cannot be deleted."},
		{"Storage error", NewStorageError("set item", errors.New("locked")), "A storage error occurred. Please try again."},
		{"Regular error", errors.New("regular error"), "regular error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetUserMessage(tt.err)
			if result != tt.expected {
				t.Errorf("GetUserMessage() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Validation error", NewValidationError("invalid input", nil), false},
		{"Duplicate name", NewDuplicateNameError("profile", "Work"), false},
		{"Last profile", NewLastProfileError("default"), false},
		{"Storage corrupt", NewStorageCorruptError("profiles", nil), true},
		{"Network", NewNetworkError("https://example.com", nil), true},
		{"Regular error", errors.New("regular error"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ShouldLogError(tt.err)
			if result != tt.expected {
				t.Errorf("ShouldLogError() = %v, want %v", result, tt.expected)
			}
		})
	}
}
