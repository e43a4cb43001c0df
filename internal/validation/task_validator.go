package validation

import (
	"strings"

	"futurtask/internal/domain"
)

// TaskInput is the raw user input for creating or editing a task
type TaskInput struct {
	Title       string
	Description string
	TagsText    string
	Date        string
	Priority    string
	Status      string
}

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// ValidateTitle validates a task title
func (tv *TaskValidator) ValidateTitle(title string) error {
	if tv.validator.IsNonEmptyString(title) {
		return nil
	}
	validationError := NewValidationError()
	validationError.AddRequiredError("title")
	return validationError
}

// ValidateDate validates a due date
func (tv *TaskValidator) ValidateDate(date string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(date)
	if trimmed == "" {
		validationError.AddRequiredError("date")
		return validationError
	}
	if !tv.validator.IsValidDate(trimmed) {
		validationError.AddInvalidFormatError("date", trimmed, "YYYY-MM-DD")
	}

	return validationError.OrNil()
}

// ValidateTaskForCreation validates the input of an add operation.
// Status is ignored since new tasks always start pending.
func (tv *TaskValidator) ValidateTaskForCreation(input TaskInput) error {
	validationError := NewValidationError()

	validationError.Merge(tv.ValidateTitle(input.Title))
	validationError.Merge(tv.ValidateDate(input.Date))
	tv.validateCommon(validationError, input)

	return validationError.OrNil()
}

// ValidateTaskForUpdate validates the input of an edit operation
func (tv *TaskValidator) ValidateTaskForUpdate(id string, input TaskInput) error {
	validationError := NewValidationError()

	validationError.Merge(tv.ValidateTaskID(id))
	validationError.Merge(tv.ValidateTitle(input.Title))
	validationError.Merge(tv.ValidateDate(input.Date))
	tv.validateCommon(validationError, input)

	if input.Status != "" && !tv.validator.IsValidStatus(input.Status) {
		validationError.AddInvalidOptionError("status", input.Status, []string{string(domain.StatusPending), string(domain.StatusCompleted)})
	}

	return validationError.OrNil()
}

func (tv *TaskValidator) validateCommon(validationError *ValidationError, input TaskInput) {
	if !tv.validator.IsValidPriority(input.Priority) {
		options := make([]string, len(domain.Priorities))
		for i, p := range domain.Priorities {
			options[i] = string(p)
		}
		validationError.AddInvalidOptionError("priority", input.Priority, options)
	}
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id string) error {
	if strings.TrimSpace(id) == "" {
		validationError := NewValidationError()
		validationError.AddRequiredError("id")
		return validationError
	}
	return nil
}
