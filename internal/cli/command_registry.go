package cli

import (
	"context"
	"sort"

	"futurtask/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a registry holding the default command set.
// Commands read their options from exported fields, so callers that bind
// flags look them up with Get.
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	registry.Register("add", NewAddCommand(app))
	registry.Register("edit", NewEditCommand(app))
	registry.Register("toggle", NewToggleCommand(app))
	registry.Register("delete", NewDeleteCommand(app))
	registry.Register("clear", NewClearCommand(app))
	registry.Register("list", NewListCommand(app))
	registry.Register("stats", NewStatsCommand(app))
	registry.Register("remind", NewRemindCommand(app))
	registry.Register("export", NewExportCommand(app))
	registry.Register("theme", NewThemeCommand(app))
	registry.Register("profile list", NewProfileListCommand(app))
	registry.Register("profile create", NewProfileCreateCommand(app))
	registry.Register("profile switch", NewProfileSwitchCommand(app))
	registry.Register("profile delete", NewProfileDeleteCommand(app))
	registry.Register("cache install", NewCacheInstallCommand(app))
	registry.Register("cache activate", NewCacheActivateCommand(app))
	registry.Register("cache version", NewCacheVersionCommand(app))
	registry.Register("cache list", NewCacheListCommand(app))
	registry.Register("cache serve", NewCacheServeCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Get returns the named command
func (r *CommandRegistry) Get(name string) (Command, bool) {
	command, ok := r.commands[name]
	return command, ok
}

// Names returns the registered command names in lexical order
func (r *CommandRegistry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}
