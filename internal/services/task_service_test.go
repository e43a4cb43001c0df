package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"futurtask/internal/domain"
	"futurtask/internal/errors"
	"futurtask/internal/repository/sqlite"
	"futurtask/internal/state"
	"futurtask/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepository(t *testing.T) *sqlite.SQLiteRepository {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func setupState(t *testing.T, profileID string) *state.State {
	t.Helper()
	st := state.New()
	require.NoError(t, st.Mutate(func(snap *state.Snapshot) error {
		snap.Profiles = []domain.Profile{{ID: profileID, Name: "Main"}}
		snap.CurrentProfileID = profileID
		return nil
	}))
	return st
}

func setupTaskService(t *testing.T) (TaskService, *sqlite.SQLiteRepository) {
	t.Helper()
	repo := setupRepository(t)
	st := setupState(t, domain.DefaultProfileID)
	return NewTaskService(repo, st, NewTimeService(fixedClock())), repo
}

func storedTasks(t *testing.T, repo sqlite.KeyValueStore, profileID string) []domain.Task {
	t.Helper()
	item, err := repo.GetItem(context.Background(), domain.TasksKey(profileID))
	require.NoError(t, err)
	tasks, err := domain.DecodeTasks(item.Value)
	require.NoError(t, err)
	return tasks
}

func TestTaskService_AddTask(t *testing.T) {
	tests := []struct {
		name           string
		input          validation.TaskInput
		expected       domain.Task
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name: "should create task with parsed tags and default priority",
			input: validation.TaskInput{
				Title:       "  Write report  ",
				Description: " quarterly ",
				TagsText:    "#Work notes #Q3",
				Date:        "2024-06-20",
			},
			expected: domain.Task{
				Title:       "Write report",
				Description: "quarterly",
				Tags:        []string{"#work", "#q3"},
				Date:        "2024-06-20",
				Priority:    domain.PriorityMedium,
				Status:      domain.StatusPending,
			},
		},
		{
			name:  "should keep explicit priority",
			input: validation.TaskInput{Title: "Pay rent", Date: "2024-07-01", Priority: "urgent"},
			expected: domain.Task{
				Title:    "Pay rent",
				Tags:     []string{},
				Date:     "2024-07-01",
				Priority: domain.PriorityUrgent,
				Status:   domain.StatusPending,
			},
		},
		{
			name:  "should accept long title and description",
			input: validation.TaskInput{Title: strings.Repeat("t", 300), Description: strings.Repeat("d", 6000), Date: "2024-06-20"},
			expected: domain.Task{
				Title:       strings.Repeat("t", 300),
				Description: strings.Repeat("d", 6000),
				Tags:        []string{},
				Date:        "2024-06-20",
				Priority:    domain.PriorityMedium,
				Status:      domain.StatusPending,
			},
		},
		{
			name:  "should return validation error for empty title",
			input: validation.TaskInput{Title: "   ", Date: "2024-06-20"},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
				assert.Contains(t, err.Error(), "title")
			},
		},
		{
			name:  "should return validation error for empty date",
			input: validation.TaskInput{Title: "Task"},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
				assert.Contains(t, err.Error(), "date")
			},
		},
		{
			name:  "should return validation error for unknown priority",
			input: validation.TaskInput{Title: "Task", Date: "2024-06-20", Priority: "critical"},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
				assert.Contains(t, err.Error(), "priority")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			service, repo := setupTaskService(t)
			ctx := context.Background()

			// Act
			result, err := service.AddTask(ctx, tt.input)

			// Assert
			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				assert.Nil(t, result)
				assert.Empty(t, service.ListTasks())
				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, "1718461800000", result.ID)
			assert.Equal(t, fixedClock()(), result.CreatedAt)

			tt.expected.ID = result.ID
			tt.expected.CreatedAt = result.CreatedAt
			assert.Equal(t, tt.expected, *result)

			persisted := storedTasks(t, repo, domain.DefaultProfileID)
			require.Len(t, persisted, 1)
			assert.Equal(t, result.ID, persisted[0].ID)
			assert.True(t, persisted[0].CreatedAt.Equal(result.CreatedAt))
		})
	}
}

func TestTaskService_AddTask_UniqueIDsWithinSameMillisecond(t *testing.T) {
	service, _ := setupTaskService(t)
	ctx := context.Background()

	first, err := service.AddTask(ctx, validation.TaskInput{Title: "one", Date: "2024-06-20"})
	require.NoError(t, err)
	second, err := service.AddTask(ctx, validation.TaskInput{Title: "two", Date: "2024-06-20"})
	require.NoError(t, err)

	assert.Equal(t, "1718461800000", first.ID)
	assert.Equal(t, "1718461800001", second.ID)

	tasks := service.ListTasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "one", tasks[0].Title)
	assert.Equal(t, "two", tasks[1].Title)
}

func TestTaskService_EditTask(t *testing.T) {
	service, repo := setupTaskService(t)
	ctx := context.Background()

	created, err := service.AddTask(ctx, validation.TaskInput{Title: "Draft", TagsText: "#a", Date: "2024-06-20"})
	require.NoError(t, err)

	t.Run("should replace editable fields and keep id and createdAt", func(t *testing.T) {
		updated, err := service.EditTask(ctx, created.ID, validation.TaskInput{
			Title:    "Final",
			TagsText: "#B #c",
			Date:     "2024-06-21",
			Priority: "high",
			Status:   "completed",
		})
		require.NoError(t, err)

		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
		assert.Equal(t, "Final", updated.Title)
		assert.Equal(t, "", updated.Description)
		assert.Equal(t, []string{"#b", "#c"}, updated.Tags)
		assert.Equal(t, domain.PriorityHigh, updated.Priority)
		assert.Equal(t, domain.StatusCompleted, updated.Status)

		persisted := storedTasks(t, repo, domain.DefaultProfileID)
		assert.Equal(t, "Final", persisted[0].Title)
	})

	t.Run("should keep status when none is given", func(t *testing.T) {
		updated, err := service.EditTask(ctx, created.ID, validation.TaskInput{Title: "Final", Date: "2024-06-21"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, updated.Status)
		assert.Equal(t, domain.PriorityMedium, updated.Priority)
	})

	t.Run("should return not found for unknown id", func(t *testing.T) {
		_, err := service.EditTask(ctx, "42", validation.TaskInput{Title: "x", Date: "2024-06-21"})
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	})

	t.Run("should reject empty title and leave task untouched", func(t *testing.T) {
		_, err := service.EditTask(ctx, created.ID, validation.TaskInput{Title: "", Date: "2024-06-21"})
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))

		task, err := service.GetTask(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Final", task.Title)
	})
}

func TestTaskService_ToggleStatus(t *testing.T) {
	service, repo := setupTaskService(t)
	ctx := context.Background()

	created, err := service.AddTask(ctx, validation.TaskInput{Title: "Task", TagsText: "#x", Date: "2024-06-20"})
	require.NoError(t, err)

	toggled, err := service.ToggleStatus(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, toggled.Status)
	assert.Equal(t, created.Title, toggled.Title)
	assert.Equal(t, created.Tags, toggled.Tags)
	assert.Equal(t, domain.StatusCompleted, storedTasks(t, repo, domain.DefaultProfileID)[0].Status)

	toggled, err = service.ToggleStatus(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, toggled.Status)

	_, err = service.ToggleStatus(ctx, "missing")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestTaskService_DeleteTask(t *testing.T) {
	service, repo := setupTaskService(t)
	ctx := context.Background()

	first, err := service.AddTask(ctx, validation.TaskInput{Title: "one", Date: "2024-06-20"})
	require.NoError(t, err)
	_, err = service.AddTask(ctx, validation.TaskInput{Title: "two", Date: "2024-06-20"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteTask(ctx, first.ID))
	assert.Len(t, service.ListTasks(), 1)
	assert.Len(t, storedTasks(t, repo, domain.DefaultProfileID), 1)

	// Unknown ids are a no-op
	require.NoError(t, service.DeleteTask(ctx, "missing"))
	assert.Len(t, service.ListTasks(), 1)

	_, err = service.GetTask(first.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestTaskService_DeleteAllTasks(t *testing.T) {
	service, repo := setupTaskService(t)
	ctx := context.Background()

	_, err := service.AddTask(ctx, validation.TaskInput{Title: "one", Date: "2024-06-20"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteAllTasks(ctx))
	assert.Empty(t, service.ListTasks())
	assert.Empty(t, storedTasks(t, repo, domain.DefaultProfileID))

	// Idempotent
	require.NoError(t, service.DeleteAllTasks(ctx))
	assert.Empty(t, storedTasks(t, repo, domain.DefaultProfileID))
}

func TestTaskService_LoadTasks(t *testing.T) {
	tests := []struct {
		name     string
		stored   *string
		expected int
	}{
		{name: "missing key loads empty list", stored: nil, expected: 0},
		{name: "valid list loads", stored: strPtr(`[{"id":"1","title":"a","description":"","tags":["#x"],"date":"2024-06-20","priority":"low","status":"pending","createdAt":"2024-06-01T10:00:00.000Z"}]`), expected: 1},
		{name: "corrupt value resets to empty", stored: strPtr(`[{"id":`), expected: 0},
		{name: "empty createdAt keeps the whole list", stored: strPtr(`[{"id":"1","title":"a","description":"","tags":[],"date":"2024-06-20","priority":"low","status":"pending","createdAt":"2024-06-01T10:00:00.000Z"},{"id":"2","title":"b","description":"","tags":[],"date":"2024-06-21","priority":"low","status":"pending","createdAt":""}]`), expected: 2},
		{name: "null value loads empty list", stored: strPtr(`null`), expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := setupTaskService(t)
			ctx := context.Background()
			key := domain.TasksKey(domain.DefaultProfileID)

			if tt.stored != nil {
				require.NoError(t, repo.SetItem(ctx, key, *tt.stored))
			}

			tasks, err := service.LoadTasks(ctx)
			require.NoError(t, err)
			assert.Len(t, tasks, tt.expected)
			assert.NotNil(t, tasks)
			assert.Len(t, service.ListTasks(), tt.expected)

			if tt.stored != nil {
				// Corrupt data is never overwritten by a load
				item, err := repo.GetItem(ctx, key)
				require.NoError(t, err)
				assert.Equal(t, *tt.stored, item.Value)
			}
		})
	}
}

func TestTaskService_LoadTasks_ParsesLegacyTimestamp(t *testing.T) {
	service, repo := setupTaskService(t)
	ctx := context.Background()

	stored := `[{"id":"1","title":"a","description":"","tags":null,"date":"2024-06-20","priority":"medium","status":"completed","createdAt":"2024-06-01T10:00:00.000Z"}]`
	require.NoError(t, repo.SetItem(ctx, domain.TasksKey(domain.DefaultProfileID), stored))

	tasks, err := service.LoadTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, []string{}, tasks[0].Tags)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), tasks[0].CreatedAt.UTC())
}

func TestTaskService_ListTasks_ReturnsCopy(t *testing.T) {
	service, _ := setupTaskService(t)
	ctx := context.Background()

	_, err := service.AddTask(ctx, validation.TaskInput{Title: "one", TagsText: "#a", Date: "2024-06-20"})
	require.NoError(t, err)

	tasks := service.ListTasks()
	tasks[0].Tags[0] = "#mutated"

	assert.Equal(t, "#a", service.ListTasks()[0].Tags[0])
}

func strPtr(s string) *string {
	return &s
}
