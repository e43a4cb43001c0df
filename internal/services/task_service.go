package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"futurtask/internal/domain"
	"futurtask/internal/errors"
	"futurtask/internal/logging"
	"futurtask/internal/repository/sqlite"
	"futurtask/internal/state"
	"futurtask/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          sqlite.KeyValueStore
	state         *state.State
	timeService   TimeService
	taskValidator *validation.TaskValidator
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo sqlite.KeyValueStore, st *state.State, timeService TimeService) TaskService {
	return &taskServiceImpl{
		repo:          repo,
		state:         st,
		timeService:   timeService,
		taskValidator: validation.NewTaskValidator(),
	}
}

// LoadTasks replaces the in-memory tasks with the stored tasks of the
// current profile
func (t *taskServiceImpl) LoadTasks(ctx context.Context) ([]domain.Task, error) {
	var loaded []domain.Task
	err := t.state.Mutate(func(snap *state.Snapshot) error {
		tasks, err := readTasks(ctx, t.repo, snap.CurrentProfileID)
		if err != nil {
			return err
		}
		snap.Tasks = tasks
		loaded = domain.CloneTasks(tasks)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loaded, nil
}

// ListTasks returns the tasks of the current profile in insertion order
func (t *taskServiceImpl) ListTasks() []domain.Task {
	return t.state.Tasks()
}

// GetTask retrieves a task by ID
func (t *taskServiceImpl) GetTask(id string) (*domain.Task, error) {
	for _, task := range t.state.Tasks() {
		if task.ID == id {
			return &task, nil
		}
	}
	return nil, errors.NewNotFoundError("task", id)
}

// AddTask validates the input and appends a new pending task
func (t *taskServiceImpl) AddTask(ctx context.Context, input validation.TaskInput) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskForCreation(input); err != nil {
		return nil, errors.NewValidationError("invalid task", err)
	}
	priority, _ := domain.ParsePriority(input.Priority)

	var created domain.Task
	err := t.state.Mutate(func(snap *state.Snapshot) error {
		now := t.timeService.Now()
		created = domain.Task{
			ID:          nextTaskID(now, snap.Tasks),
			Title:       strings.TrimSpace(input.Title),
			Description: strings.TrimSpace(input.Description),
			Tags:        domain.ParseTags(input.TagsText),
			Date:        strings.TrimSpace(input.Date),
			Priority:    priority,
			Status:      domain.StatusPending,
			CreatedAt:   now,
		}
		snap.Tasks = append(snap.Tasks, created)
		return writeTasks(ctx, t.repo, snap.CurrentProfileID, snap.Tasks)
	})
	if err != nil {
		return nil, err
	}

	logging.Debugf("added task %s to profile %s", created.ID, t.state.CurrentProfileID())
	created = created.Clone()
	return &created, nil
}

// EditTask replaces every editable field of a task. An empty status keeps
// the current one.
func (t *taskServiceImpl) EditTask(ctx context.Context, id string, input validation.TaskInput) (*domain.Task, error) {
	var updated domain.Task
	err := t.state.Mutate(func(snap *state.Snapshot) error {
		index := findTask(snap.Tasks, id)
		if index < 0 {
			return errors.NewNotFoundError("task", id)
		}
		if err := t.taskValidator.ValidateTaskForUpdate(id, input); err != nil {
			return errors.NewValidationError("invalid task", err)
		}

		existing := snap.Tasks[index]
		priority, _ := domain.ParsePriority(input.Priority)
		status := domain.Status(strings.TrimSpace(input.Status))
		if status == "" {
			status = existing.Status
		}

		updated = existing.WithFields(domain.TaskFields{
			Title:       strings.TrimSpace(input.Title),
			Description: strings.TrimSpace(input.Description),
			Tags:        domain.ParseTags(input.TagsText),
			Date:        strings.TrimSpace(input.Date),
			Priority:    priority,
			Status:      status,
		})
		snap.Tasks[index] = updated.Clone()
		return writeTasks(ctx, t.repo, snap.CurrentProfileID, snap.Tasks)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ToggleStatus flips a task between pending and completed
func (t *taskServiceImpl) ToggleStatus(ctx context.Context, id string) (*domain.Task, error) {
	var toggled domain.Task
	err := t.state.Mutate(func(snap *state.Snapshot) error {
		index := findTask(snap.Tasks, id)
		if index < 0 {
			return errors.NewNotFoundError("task", id)
		}
		snap.Tasks[index].Status = snap.Tasks[index].Status.Toggled()
		toggled = snap.Tasks[index].Clone()
		return writeTasks(ctx, t.repo, snap.CurrentProfileID, snap.Tasks)
	})
	if err != nil {
		return nil, err
	}
	return &toggled, nil
}

// DeleteTask removes a task if present. The collection is persisted either way.
func (t *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	return t.state.Mutate(func(snap *state.Snapshot) error {
		if index := findTask(snap.Tasks, id); index >= 0 {
			snap.Tasks = append(snap.Tasks[:index], snap.Tasks[index+1:]...)
		}
		return writeTasks(ctx, t.repo, snap.CurrentProfileID, snap.Tasks)
	})
}

// DeleteAllTasks empties the current profile's task list
func (t *taskServiceImpl) DeleteAllTasks(ctx context.Context) error {
	return t.state.Mutate(func(snap *state.Snapshot) error {
		snap.Tasks = []domain.Task{}
		return writeTasks(ctx, t.repo, snap.CurrentProfileID, snap.Tasks)
	})
}

// nextTaskID derives an ID from the millisecond timestamp, bumped until it
// is unique within tasks
func nextTaskID(now time.Time, tasks []domain.Task) string {
	candidate := now.UnixMilli()
	for findTask(tasks, strconv.FormatInt(candidate, 10)) >= 0 {
		candidate++
	}
	return strconv.FormatInt(candidate, 10)
}

func findTask(tasks []domain.Task, id string) int {
	for i, task := range tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

// readTasks loads the task list stored for a profile. A missing key is an
// empty list; a corrupt value is logged and treated as empty.
func readTasks(ctx context.Context, repo sqlite.KeyValueStore, profileID string) ([]domain.Task, error) {
	key := domain.TasksKey(profileID)
	item, err := repo.GetItem(ctx, key)
	if err != nil {
		if sqlite.IsNotFound(err) {
			return []domain.Task{}, nil
		}
		return nil, err
	}

	tasks, err := domain.DecodeTasks(item.Value)
	if err != nil {
		corrupt := errors.NewStorageCorruptError(key, err)
		logging.Warn("resetting corrupt task list", "key", key, "err", corrupt)
		return []domain.Task{}, nil
	}
	return tasks, nil
}

func writeTasks(ctx context.Context, repo sqlite.KeyValueStore, profileID string, tasks []domain.Task) error {
	value, err := domain.EncodeTasks(tasks)
	if err != nil {
		return errors.NewStorageError("encode tasks", err)
	}
	return repo.SetItem(ctx, domain.TasksKey(profileID), value)
}
