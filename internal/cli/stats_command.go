package cli

import (
	"context"

	"futurtask/internal/services"
)

// StatsCommand handles the stats command
type StatsCommand struct {
	app    *App
	Format string
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(app *App) *StatsCommand {
	return &StatsCommand{app: app, Format: FormatText}
}

// Execute prints the statistics dashboard of the current profile
func (c *StatsCommand) Execute(ctx context.Context, args []string) error {
	if err := validateFormat(c.Format, FormatText, FormatJSON, FormatYAML); err != nil {
		return c.app.errorHandler.Handle("show statistics", err)
	}

	data, err := c.app.businessAPI.GetDashboardData(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("show statistics", err)
	}

	if c.Format != FormatText {
		return writeStructured(c.app.out, c.Format, data)
	}
	c.printDashboard(data)
	return nil
}

func (c *StatsCommand) printDashboard(data *services.DashboardData) {
	out := c.app.out

	printf(out, "%s\n", headingStyle.Render("Statistics for "+data.Profile.String()))
	printf(out, "Total: %d  Completed: %d  Pending: %d  Overdue: %d\n",
		data.Counts.Total, data.Counts.Completed, data.Counts.Pending, data.Counts.Overdue)
	printf(out, "Progress: %d%%\n", data.Progress)
	printf(out, "Completion rate: %d%%  Overdue rate: %d%%  Average completion: %d day(s)\n",
		data.Performance.CompletionRate, data.Performance.OverdueRate, data.Performance.AvgCompletionDays)

	printf(out, "\n%s\n", headingStyle.Render("Priorities"))
	for _, p := range data.Priorities {
		printf(out, "  %s  %d\n", priorityBadge(p.Priority), p.Count)
	}

	printf(out, "\n%s\n", headingStyle.Render("Monthly"))
	for _, m := range data.Monthly {
		if m.Created == 0 && m.Completed == 0 {
			continue
		}
		printf(out, "  %-4s created %d  completed %d\n", m.Label, m.Created, m.Completed)
	}

	if len(data.TopTags) > 0 {
		printf(out, "\n%s\n", headingStyle.Render("Top tags"))
		for _, tag := range data.TopTags {
			printf(out, "  %s  %d\n", tag.Tag, tag.Count)
		}
	}

	if len(data.RecentTasks) > 0 {
		printf(out, "\n%s\n", headingStyle.Render("Recent tasks"))
		for _, task := range data.RecentTasks {
			printf(out, "  %s %s  %s\n", statusMark(task), task.Title, mutedStyle.Render(task.Date))
		}
	}
}
