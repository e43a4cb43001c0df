package cli

import (
	"context"
	"io"
	"os"

	"futurtask/internal/errors"
)

// ExportCommand handles the export command
type ExportCommand struct {
	app    *App
	Format string
	Output string
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{app: app, Format: FormatJSON}
}

// Execute writes every task of the current profile as JSON or YAML
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	if err := validateFormat(c.Format, FormatJSON, FormatYAML); err != nil {
		return c.app.errorHandler.Handle("export tasks", err)
	}

	export, err := c.app.businessAPI.ExportTasks(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("export tasks", err)
	}

	var w io.Writer = c.app.out
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return c.app.errorHandler.Handle("export tasks", errors.NewInvalidInputError("output", c.Output, err.Error()))
		}
		defer f.Close()
		w = f
	}

	if err := writeStructured(w, c.Format, export); err != nil {
		return c.app.errorHandler.Handle("export tasks", err)
	}
	if c.Output != "" {
		printf(c.app.out, "Exported %d task(s) to %s\n", len(export.Tasks), c.Output)
	}
	return nil
}
