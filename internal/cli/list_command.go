package cli

import (
	"context"
	"fmt"
	"strings"

	"futurtask/internal/domain"
)

// ListCommand handles the list command
type ListCommand struct {
	app     *App
	Filters domain.FilterState
	Format  string
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app, Format: FormatText}
}

// Execute prints the filtered tasks. The arguments form the search query.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if err := validateFormat(c.Format, FormatText, FormatJSON, FormatYAML); err != nil {
		return c.app.errorHandler.Handle("list tasks", err)
	}

	filters := c.Filters
	if len(filters.Month) == 1 {
		filters.Month = "0" + filters.Month
	}

	query := strings.Join(args, " ")
	listing, err := c.app.businessAPI.ListTasks(ctx, filters, query)
	if err != nil {
		return c.app.errorHandler.Handle("list tasks", err)
	}

	if c.Format != FormatText {
		return writeStructured(c.app.out, c.Format, listing)
	}

	if len(listing.Tasks) == 0 {
		printf(c.app.out, "No tasks found\n")
		return nil
	}

	for _, task := range listing.Tasks {
		title := c.app.businessAPI.HighlightText(task.Title, query, highlightMark)
		printf(c.app.out, "%s\n", formatTaskLine(task, title, listing.Overdue[task.ID]))
	}

	if query != "" {
		printf(c.app.out, "%s\n", mutedStyle.Render(searchSummaryLine(listing.Summary.Matches, listing.Summary.Filtered, query)))
	}
	return nil
}

// searchSummaryLine reports how many of the filtered tasks matched the query
func searchSummaryLine(matches, filtered int, query string) string {
	return fmt.Sprintf("%d result(s) for %q out of %d task(s)", matches, query, filtered)
}
