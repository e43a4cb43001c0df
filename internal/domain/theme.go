package domain

// Theme is the UI colour scheme preference.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// DefaultTheme applies when no preference is stored.
const DefaultTheme = ThemeDark

// IsValid reports whether t is a known theme.
func (t Theme) IsValid() bool {
	return t == ThemeDark || t == ThemeLight
}
