package cli

import (
	"context"

	"futurtask/internal/domain"
	"futurtask/internal/errors"
)

// ThemeCommand handles the theme command
type ThemeCommand struct {
	app *App
}

// NewThemeCommand creates a new theme command handler
func NewThemeCommand(app *App) *ThemeCommand {
	return &ThemeCommand{app: app}
}

// Execute prints the theme, or sets it to args[0] ("dark", "light" or "toggle")
func (c *ThemeCommand) Execute(ctx context.Context, args []string) error {
	var (
		theme domain.Theme
		err   error
	)

	switch {
	case len(args) == 0:
		theme, err = c.app.businessAPI.GetTheme(ctx)
	case len(args) > 1:
		err = errors.NewInvalidInputError("command", "theme", "usage: futurtask theme [dark|light|toggle]")
	case args[0] == "toggle":
		theme, err = c.app.businessAPI.ToggleTheme(ctx)
	default:
		theme, err = c.app.businessAPI.SetTheme(ctx, args[0])
	}
	if err != nil {
		return c.app.errorHandler.Handle("set theme", err)
	}

	printf(c.app.out, "Theme: %s\n", theme)
	return nil
}
