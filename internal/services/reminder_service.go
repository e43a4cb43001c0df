package services

import (
	"context"
	"time"

	"futurtask/internal/domain"
	"futurtask/internal/errors"
	"futurtask/internal/logging"
)

// DefaultReminderInterval is the period between due-date scans
const DefaultReminderInterval = 5 * time.Minute

// reminderServiceImpl implements the ReminderService interface
type reminderServiceImpl struct {
	timeService TimeService
	taskService TaskService
}

// NewReminderService creates a new ReminderService instance
func NewReminderService(timeService TimeService, taskService TaskService) ReminderService {
	return &reminderServiceImpl{
		timeService: timeService,
		taskService: taskService,
	}
}

// Scan returns a reminder for every overdue task followed by one for every
// task due today or tomorrow
func (r *reminderServiceImpl) Scan(tasks []domain.Task) []Reminder {
	reminders := []Reminder{}
	for _, task := range tasks {
		if r.timeService.IsOverdue(task) {
			reminders = append(reminders, Reminder{Kind: ReminderOverdue, Task: task.Clone()})
		}
	}
	for _, task := range tasks {
		if r.timeService.IsDueSoon(task) {
			reminders = append(reminders, Reminder{
				Kind:     ReminderDueSoon,
				Task:     task.Clone(),
				DueToday: r.timeService.IsDueToday(task),
			})
		}
	}
	return reminders
}

// Run scans the current tasks immediately and then on every tick until ctx
// is done. Scans run on the calling goroutine so they never overlap; ticks
// missed while fn runs are dropped.
func (r *reminderServiceImpl) Run(ctx context.Context, interval time.Duration, fn ReminderFunc) error {
	if interval <= 0 {
		return errors.NewInvalidInputError("interval", interval, "must be positive")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		reminders := r.Scan(r.taskService.ListTasks())
		logging.Debugf("reminder scan found %d reminder(s)", len(reminders))
		if len(reminders) > 0 {
			fn(ctx, reminders)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
