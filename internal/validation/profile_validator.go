package validation

import "futurtask/internal/domain"

// ProfileValidator validates profile and preference input
type ProfileValidator struct {
	validator *Validator
}

// NewProfileValidator creates a new profile validator
func NewProfileValidator() *ProfileValidator {
	return &ProfileValidator{validator: NewValidator()}
}

// ValidateColor accepts an empty colour or a hex colour
func (pv *ProfileValidator) ValidateColor(color string) error {
	if color == "" || pv.validator.IsValidHexColor(color) {
		return nil
	}
	validationError := NewValidationError()
	validationError.AddInvalidFormatError("color", color, "#rrggbb")
	return validationError
}

// ValidateTheme accepts dark and light
func (pv *ProfileValidator) ValidateTheme(theme string) error {
	if domain.Theme(theme).IsValid() {
		return nil
	}
	validationError := NewValidationError()
	validationError.AddInvalidOptionError("theme", theme, []string{string(domain.ThemeDark), string(domain.ThemeLight)})
	return validationError
}
