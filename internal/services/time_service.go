package services

import (
	"time"

	"futurtask/internal/domain"
)

// Clock returns the current time
type Clock func() time.Time

// timeServiceImpl implements the TimeService interface
type timeServiceImpl struct {
	now Clock
}

// NewTimeService creates a new TimeService instance. A nil clock uses time.Now.
func NewTimeService(now Clock) TimeService {
	if now == nil {
		now = time.Now
	}
	return &timeServiceImpl{now: now}
}

// Now returns the current time
func (t *timeServiceImpl) Now() time.Time {
	return t.now()
}

// Today returns midnight of the current day
func (t *timeServiceImpl) Today() time.Time {
	return domain.StartOfDay(t.now())
}

// Location is the zone due dates are interpreted in
func (t *timeServiceImpl) Location() *time.Location {
	return t.now().Location()
}

// IsOverdue reports whether a pending task was due before today.
// Tasks with an unreadable date are never overdue.
func (t *timeServiceImpl) IsOverdue(task domain.Task) bool {
	if task.IsCompleted() {
		return false
	}
	due, err := task.DueDate(t.Location())
	if err != nil {
		return false
	}
	return due.Before(t.Today())
}

// IsDueSoon reports whether a pending task is due today or tomorrow
func (t *timeServiceImpl) IsDueSoon(task domain.Task) bool {
	if task.IsCompleted() {
		return false
	}
	due, err := task.DueDate(t.Location())
	if err != nil {
		return false
	}
	today := t.Today()
	return !due.Before(today) && !due.After(today.AddDate(0, 0, 1))
}

// IsDueToday reports whether the task's date is the current day
func (t *timeServiceImpl) IsDueToday(task domain.Task) bool {
	return task.Date == domain.FormatDate(t.now())
}
