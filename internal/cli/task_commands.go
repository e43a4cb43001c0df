package cli

import (
	"context"
	"strings"

	"futurtask/internal/errors"
	"futurtask/internal/validation"
)

// TaskOptions are the task fields supplied through flags
type TaskOptions struct {
	Description string
	Tags        string
	Date        string
	Priority    string
}

// AddCommand handles the add command
type AddCommand struct {
	app     *App
	Options TaskOptions
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute creates a task whose title is the joined arguments
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "add", "usage: futurtask add <title> --date YYYY-MM-DD")
	}

	task, err := c.app.businessAPI.AddTask(ctx, validation.TaskInput{
		Title:       strings.Join(args, " "),
		Description: c.Options.Description,
		TagsText:    c.Options.Tags,
		Date:        c.Options.Date,
		Priority:    c.Options.Priority,
	})
	if err != nil {
		return c.app.errorHandler.Handle("add task", err)
	}

	printf(c.app.out, "Added task %s: %s\n", task.ID, task.Title)
	return nil
}

// EditOptions are the fields an edit replaces. Nil fields keep their
// current value.
type EditOptions struct {
	Title       *string
	Description *string
	Tags        *string
	Date        *string
	Priority    *string
	Status      *string
}

// EditCommand handles the edit command
type EditCommand struct {
	app     *App
	Options EditOptions
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app}
}

// Execute replaces the fields of the task named by args[0]
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "edit", "usage: futurtask edit <id> [flags]")
	}
	id := args[0]

	current, err := c.app.businessAPI.GetTask(ctx, id)
	if err != nil {
		return c.app.errorHandler.Handle("edit task", err)
	}

	input := validation.TaskInput{
		Title:       pick(c.Options.Title, current.Title),
		Description: pick(c.Options.Description, current.Description),
		TagsText:    pick(c.Options.Tags, strings.Join(current.Tags, " ")),
		Date:        pick(c.Options.Date, current.Date),
		Priority:    pick(c.Options.Priority, string(current.Priority)),
		Status:      pick(c.Options.Status, string(current.Status)),
	}

	task, err := c.app.businessAPI.EditTask(ctx, id, input)
	if err != nil {
		return c.app.errorHandler.Handle("edit task", err)
	}

	printf(c.app.out, "Updated task %s: %s\n", task.ID, task.Title)
	return nil
}

func pick(value *string, fallback string) string {
	if value != nil {
		return *value
	}
	return fallback
}

// ToggleCommand handles the toggle command
type ToggleCommand struct {
	app *App
}

// NewToggleCommand creates a new toggle command handler
func NewToggleCommand(app *App) *ToggleCommand {
	return &ToggleCommand{app: app}
}

// Execute flips the status of every task id in args
func (c *ToggleCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "toggle", "usage: futurtask toggle <id>...")
	}

	for _, id := range args {
		task, err := c.app.businessAPI.ToggleTask(ctx, id)
		if err != nil {
			return c.app.errorHandler.Handle("toggle task", err)
		}
		if task.IsCompleted() {
			printf(c.app.out, "Task completed: %s\n", task.Title)
		} else {
			printf(c.app.out, "Task reopened: %s\n", task.Title)
		}
	}
	return nil
}

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute deletes every task id in args. Unknown ids are ignored.
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "delete", "usage: futurtask delete <id>...")
	}

	for _, id := range args {
		if err := c.app.businessAPI.DeleteTask(ctx, id); err != nil {
			return c.app.errorHandler.Handle("delete task", err)
		}
	}

	printf(c.app.out, "Deleted %d task(s)\n", len(args))
	return nil
}

// ClearCommand handles the clear command
type ClearCommand struct {
	app *App
	Yes bool
}

// NewClearCommand creates a new clear command handler
func NewClearCommand(app *App) *ClearCommand {
	return &ClearCommand{app: app}
}

// Execute deletes every task of the current profile once confirmed
func (c *ClearCommand) Execute(ctx context.Context, args []string) error {
	if !c.Yes {
		return errors.NewInvalidInputError("yes", false, "deleting all tasks requires --yes")
	}

	if err := c.app.businessAPI.DeleteAllTasks(ctx); err != nil {
		return c.app.errorHandler.Handle("delete all tasks", err)
	}

	printf(c.app.out, "All tasks deleted\n")
	return nil
}
