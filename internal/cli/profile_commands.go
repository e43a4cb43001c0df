package cli

import (
	"context"
	"strings"

	"futurtask/internal/errors"
)

// ProfileListCommand handles the profile list command
type ProfileListCommand struct {
	app *App
}

// NewProfileListCommand creates a new profile list command handler
func NewProfileListCommand(app *App) *ProfileListCommand {
	return &ProfileListCommand{app: app}
}

// Execute prints every profile, marking the current one
func (c *ProfileListCommand) Execute(ctx context.Context, args []string) error {
	listing, err := c.app.businessAPI.ListProfiles(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("list profiles", err)
	}

	for _, profile := range listing.Profiles {
		marker := " "
		if profile.ID == listing.Current.ID {
			marker = "*"
		}
		printf(c.app.out, "%s %s  %s\n", marker, profile.String(), mutedStyle.Render(profile.ID))
	}
	return nil
}

// ProfileCreateCommand handles the profile create command
type ProfileCreateCommand struct {
	app   *App
	Icon  string
	Color string
}

// NewProfileCreateCommand creates a new profile create command handler
func NewProfileCreateCommand(app *App) *ProfileCreateCommand {
	return &ProfileCreateCommand{app: app}
}

// Execute creates a profile named by the joined arguments and switches to it
func (c *ProfileCreateCommand) Execute(ctx context.Context, args []string) error {
	profile, err := c.app.businessAPI.CreateProfile(ctx, strings.Join(args, " "), c.Icon, c.Color)
	if err != nil {
		return c.app.errorHandler.Handle("create profile", err)
	}

	printf(c.app.out, "Created profile %s (%s)\n", profile.String(), profile.ID)
	return nil
}

// ProfileSwitchCommand handles the profile switch command
type ProfileSwitchCommand struct {
	app *App
}

// NewProfileSwitchCommand creates a new profile switch command handler
func NewProfileSwitchCommand(app *App) *ProfileSwitchCommand {
	return &ProfileSwitchCommand{app: app}
}

// Execute makes the profile with id args[0] current
func (c *ProfileSwitchCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "profile switch", "usage: futurtask profile switch <id>")
	}

	profile, err := c.app.businessAPI.SwitchProfile(ctx, args[0])
	if err != nil {
		return c.app.errorHandler.Handle("switch profile", err)
	}

	printf(c.app.out, "Switched to %s\n", profile.String())
	return nil
}

// ProfileDeleteCommand handles the profile delete command
type ProfileDeleteCommand struct {
	app *App
	Yes bool
}

// NewProfileDeleteCommand creates a new profile delete command handler
func NewProfileDeleteCommand(app *App) *ProfileDeleteCommand {
	return &ProfileDeleteCommand{app: app}
}

// Execute deletes the profile with id args[0] together with its tasks
func (c *ProfileDeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "profile delete", "usage: futurtask profile delete <id> --yes")
	}
	if !c.Yes {
		return errors.NewInvalidInputError("yes", false, "deleting a profile and its tasks requires --yes")
	}

	current, err := c.app.businessAPI.DeleteProfile(ctx, args[0])
	if err != nil {
		return c.app.errorHandler.Handle("delete profile", err)
	}

	printf(c.app.out, "Deleted profile %s; current profile is %s\n", args[0], current.String())
	return nil
}
