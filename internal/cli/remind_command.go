package cli

import (
	"context"
	stderrors "errors"
	"time"

	"futurtask/internal/services"
)

// RemindCommand handles the remind command
type RemindCommand struct {
	app      *App
	Watch    bool
	Interval time.Duration
}

// NewRemindCommand creates a new remind command handler
func NewRemindCommand(app *App) *RemindCommand {
	return &RemindCommand{app: app}
}

// Execute prints the current reminders, or keeps scanning until ctx ends
// when Watch is set
func (c *RemindCommand) Execute(ctx context.Context, args []string) error {
	if !c.Watch {
		reminders, err := c.app.businessAPI.GetReminders(ctx)
		if err != nil {
			return c.app.errorHandler.Handle("check reminders", err)
		}
		if len(reminders) == 0 {
			printf(c.app.out, "No reminders\n")
			return nil
		}
		c.printReminders(ctx, reminders)
		return nil
	}

	interval := c.Interval
	if interval <= 0 {
		interval = c.app.config.Reminders.Interval
	}

	err := c.app.businessAPI.WatchReminders(ctx, interval, c.printReminders)
	if stderrors.Is(err, context.Canceled) {
		return nil
	}
	return c.app.errorHandler.Handle("watch reminders", err)
}

func (c *RemindCommand) printReminders(ctx context.Context, reminders []services.Reminder) {
	for _, r := range reminders {
		switch r.Kind {
		case services.ReminderOverdue:
			printf(c.app.out, "%s %s was due on %s\n", overdueStyle.Render("⚠️ Overdue:"), r.Task.Title, r.Task.Date)
		default:
			when := "tomorrow"
			if r.DueToday {
				when = "today"
			}
			printf(c.app.out, "⏰ Reminder: %s is due %s\n", r.Task.Title, when)
		}
	}
}
