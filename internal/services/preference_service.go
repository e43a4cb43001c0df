package services

import (
	"context"

	"futurtask/internal/domain"
	"futurtask/internal/errors"
	"futurtask/internal/logging"
	"futurtask/internal/repository/sqlite"
	"futurtask/internal/validation"
)

// preferenceServiceImpl implements the PreferenceService interface
type preferenceServiceImpl struct {
	repo             sqlite.KeyValueStore
	profileValidator *validation.ProfileValidator
}

// NewPreferenceService creates a new PreferenceService instance
func NewPreferenceService(repo sqlite.KeyValueStore) PreferenceService {
	return &preferenceServiceImpl{
		repo:             repo,
		profileValidator: validation.NewProfileValidator(),
	}
}

// GetTheme returns the stored theme, or the default when none or an
// unknown one is stored
func (p *preferenceServiceImpl) GetTheme(ctx context.Context) (domain.Theme, error) {
	value, err := readStringItem(ctx, p.repo, domain.ThemeKey)
	if err != nil {
		return "", err
	}
	theme := domain.Theme(value)
	if !theme.IsValid() {
		if value != "" {
			logging.Debugf("ignoring unknown stored theme %q", value)
		}
		return domain.DefaultTheme, nil
	}
	return theme, nil
}

// SetTheme stores the theme preference
func (p *preferenceServiceImpl) SetTheme(ctx context.Context, theme string) (domain.Theme, error) {
	if err := p.profileValidator.ValidateTheme(theme); err != nil {
		return "", errors.NewValidationError("invalid theme", err)
	}
	if err := writeStringItem(ctx, p.repo, domain.ThemeKey, theme); err != nil {
		return "", err
	}
	return domain.Theme(theme), nil
}

// ToggleTheme switches between dark and light
func (p *preferenceServiceImpl) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	current, err := p.GetTheme(ctx)
	if err != nil {
		return "", err
	}
	next := domain.ThemeLight
	if current == domain.ThemeLight {
		next = domain.ThemeDark
	}
	return p.SetTheme(ctx, string(next))
}
