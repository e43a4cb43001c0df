package validation

import (
	"regexp"
	"strings"
	"time"

	"futurtask/internal/domain"
)

// Validator provides common validation utilities
type Validator struct {
	hexColorRegex *regexp.Regexp
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		hexColorRegex: regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`),
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidDate checks that s is a real YYYY-MM-DD calendar date
func (v *Validator) IsValidDate(s string) bool {
	_, err := time.Parse(domain.DateLayout, s)
	return err == nil
}

// IsValidHexColor checks for #rgb or #rrggbb
func (v *Validator) IsValidHexColor(s string) bool {
	return v.hexColorRegex.MatchString(s)
}

// IsValidPriority accepts the known priorities and the empty string
func (v *Validator) IsValidPriority(s string) bool {
	_, ok := domain.ParsePriority(s)
	return ok
}

// IsValidStatus accepts pending and completed
func (v *Validator) IsValidStatus(s string) bool {
	return domain.Status(s).IsValid()
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}
