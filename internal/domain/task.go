package domain

import (
	"time"
)

// Status is the completion state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Toggled returns the opposite status.
func (s Status) Toggled() Status {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

// Task represents a task in the domain model.
// JSON field names match the persisted format.
type Task struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Tags        []string  `json:"tags" yaml:"tags"`
	Date        string    `json:"date" yaml:"date"`
	Priority    Priority  `json:"priority" yaml:"priority"`
	Status      Status    `json:"status" yaml:"status"`
	CreatedAt   time.Time `json:"createdAt,omitzero" yaml:"createdAt,omitempty"`
}

// TaskFields are the editable fields of a task.
type TaskFields struct {
	Title       string
	Description string
	Tags        []string
	Date        string
	Priority    Priority
	Status      Status
}

// IsValid checks if the task has the fields every persisted task needs.
func (t Task) IsValid() bool {
	return t.ID != "" && t.Title != "" && t.Date != ""
}

// IsCompleted reports whether the task is done.
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// HasTag reports whether tag is one of the task's tags.
func (t Task) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// DueDate parses the task's date in loc.
func (t Task) DueDate(loc *time.Location) (time.Time, error) {
	return ParseDate(t.Date, loc)
}

// WithFields returns a copy of t with every editable field replaced.
// ID and CreatedAt are kept.
func (t Task) WithFields(f TaskFields) Task {
	t.Title = f.Title
	t.Description = f.Description
	t.Tags = f.Tags
	if t.Tags == nil {
		t.Tags = []string{}
	}
	t.Date = f.Date
	t.Priority = f.Priority
	t.Status = f.Status
	return t
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	tags := make([]string, len(t.Tags))
	copy(tags, t.Tags)
	t.Tags = tags
	return t
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// CloneTasks deep-copies a task slice. The result is never nil.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
