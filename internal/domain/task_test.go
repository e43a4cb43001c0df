package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Toggled(t *testing.T) {
	assert.Equal(t, StatusCompleted, StatusPending.Toggled())
	assert.Equal(t, StatusPending, StatusCompleted.Toggled())
	assert.Equal(t, StatusPending, StatusPending.Toggled().Toggled())
}

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusCompleted.IsValid())
	assert.False(t, Status("archived").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestTask_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		task     Task
		expected bool
	}{
		{"complete task", Task{ID: "1", Title: "Buy milk", Date: "2025-01-01"}, true},
		{"missing title", Task{ID: "1", Date: "2025-01-01"}, false},
		{"missing date", Task{ID: "1", Title: "Buy milk"}, false},
		{"missing id", Task{Title: "Buy milk", Date: "2025-01-01"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.IsValid())
		})
	}
}

func TestTask_WithFieldsKeepsIdentity(t *testing.T) {
	created := time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC)
	task := Task{ID: "42", Title: "Old", Date: "2025-01-01", CreatedAt: created, Status: StatusPending}

	edited := task.WithFields(TaskFields{
		Title:    "New",
		Date:     "2025-02-01",
		Priority: PriorityHigh,
		Status:   StatusCompleted,
	})

	assert.Equal(t, "42", edited.ID)
	assert.Equal(t, created, edited.CreatedAt)
	assert.Equal(t, "New", edited.Title)
	assert.Equal(t, []string{}, edited.Tags)
	assert.Equal(t, StatusCompleted, edited.Status)
	assert.Equal(t, "Old", task.Title, "original must be untouched")
}

func TestTask_CloneIsDeep(t *testing.T) {
	task := Task{ID: "1", Tags: []string{"#a"}}
	clone := task.Clone()
	clone.Tags[0] = "#b"

	assert.Equal(t, "#a", task.Tags[0])
}

func TestTask_HasTag(t *testing.T) {
	task := Task{Tags: []string{"#work", "#urgent"}}
	assert.True(t, task.HasTag("#work"))
	assert.False(t, task.HasTag("#Work"))
	assert.False(t, task.HasTag("work"))
}

func TestCloneTasks_NeverNil(t *testing.T) {
	assert.NotNil(t, CloneTasks(nil))
	assert.Len(t, CloneTasks(nil), 0)
}

func TestTask_DueDate(t *testing.T) {
	due, err := Task{Date: "2025-03-09"}.DueDate(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), due)

	_, err = Task{Date: "09/03/2025"}.DueDate(time.UTC)
	assert.Error(t, err)
}
