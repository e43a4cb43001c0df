package api

import (
	"context"
	"sync"
	"time"

	"futurtask/internal/assetcache"
	"futurtask/internal/domain"
	"futurtask/internal/errors"
	"futurtask/internal/services"
	"futurtask/internal/validation"
)

// TaskListing is a filtered view of the current profile's tasks together
// with the options the filter controls offer
type TaskListing struct {
	Tasks   []domain.Task          `json:"tasks"`
	Overdue map[string]bool        `json:"overdue"`
	Summary services.SearchSummary `json:"summary"`
	Years   []string               `json:"years"`
	Tags    []string               `json:"tags"`
}

// ProfileListing is every profile plus the current one
type ProfileListing struct {
	Profiles []domain.Profile `json:"profiles"`
	Current  domain.Profile   `json:"current"`
}

// TaskExport is a snapshot of one profile's tasks
type TaskExport struct {
	Profile    domain.Profile `json:"profile" yaml:"profile"`
	ExportedAt time.Time      `json:"exportedAt" yaml:"exportedAt"`
	Tasks      []domain.Task  `json:"tasks" yaml:"tasks"`
}

// BusinessAPI is the single entry point the UI binding calls
type BusinessAPI interface {
	// ========== Task Management Workflows ==========

	// AddTask creates a task in the current profile
	AddTask(ctx context.Context, input validation.TaskInput) (*domain.Task, error)

	// EditTask replaces every editable field of a task
	EditTask(ctx context.Context, id string, input validation.TaskInput) (*domain.Task, error)

	// ToggleTask flips a task between pending and completed
	ToggleTask(ctx context.Context, id string) (*domain.Task, error)

	// DeleteTask removes a task; unknown ids are ignored
	DeleteTask(ctx context.Context, id string) error

	// DeleteAllTasks empties the current profile's task list
	DeleteAllTasks(ctx context.Context) error

	// ========== Query Operations ==========

	GetTask(ctx context.Context, id string) (*domain.Task, error)

	// ListTasks applies filters and a search query, newest due date first
	ListTasks(ctx context.Context, filters domain.FilterState, query string) (*TaskListing, error)

	// HighlightText wraps every case-insensitive occurrence of query with mark
	HighlightText(text, query string, mark func(string) string) string

	// ExportTasks returns every task of the current profile
	ExportTasks(ctx context.Context) (*TaskExport, error)

	// ========== Dashboard and Reminders ==========

	GetDashboardData(ctx context.Context) (*services.DashboardData, error)
	GetReminders(ctx context.Context) ([]services.Reminder, error)

	// WatchReminders scans on every interval until ctx ends
	WatchReminders(ctx context.Context, interval time.Duration, fn services.ReminderFunc) error

	// ========== Profiles ==========

	ListProfiles(ctx context.Context) (*ProfileListing, error)
	CreateProfile(ctx context.Context, name, icon, color string) (*domain.Profile, error)
	SwitchProfile(ctx context.Context, id string) (*domain.Profile, error)
	DeleteProfile(ctx context.Context, id string) (*domain.Profile, error)

	// ========== Preferences ==========

	GetTheme(ctx context.Context) (domain.Theme, error)
	SetTheme(ctx context.Context, theme string) (domain.Theme, error)
	ToggleTheme(ctx context.Context) (domain.Theme, error)

	// ========== Offline Asset Cache ==========

	InstallAssets(ctx context.Context) error
	ActivateAssets(ctx context.Context) ([]string, error)
	AssetCaches(ctx context.Context) ([]assetcache.CacheContents, error)
	AssetVersion() (string, error)
	AssetServer(addr string) (*assetcache.Server, error)
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	services *services.ServiceContainer
	worker   *assetcache.Worker

	mu     sync.Mutex
	loaded bool
}

// NewBusinessAPI creates a new BusinessAPI instance. worker may be nil when
// the asset cache is not used.
func NewBusinessAPI(container *services.ServiceContainer, worker *assetcache.Worker) BusinessAPI {
	return &businessAPIImpl{
		services: container,
		worker:   worker,
	}
}

// ensureLoaded restores profiles and the current profile's tasks once
func (b *businessAPIImpl) ensureLoaded(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.loaded {
		return nil
	}
	if _, err := b.services.ProfileService.LoadProfiles(ctx); err != nil {
		return err
	}
	b.loaded = true
	return nil
}

// ========== Task Management Workflows ==========

func (b *businessAPIImpl) AddTask(ctx context.Context, input validation.TaskInput) (*domain.Task, error) {
	if err := b.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return b.services.TaskService.AddTask(ctx, input)
}

func (b *businessAPIImpl) EditTask(ctx context.Context, id string, input validation.TaskInput) (*domain.Task, error) {
	if err := b.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return b.services.TaskService.EditTask(ctx, id, input)
}

func (b *businessAPIImpl) ToggleTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := b.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return b.services.TaskService.ToggleStatus(ctx, id)
}

func (b *businessAPIImpl) DeleteTask(ctx context.Context, id string) error {
	if err := b.ensureLoaded(ctx); err != nil {
		return err
	}
	return b.services.TaskService.DeleteTask(ctx, id)
}

func (b *businessAPIImpl) DeleteAllTasks(ctx context.Context) error {
	if err := b.ensureLoaded(ctx); err != nil {
		return err
	}
	return b.services.TaskService.DeleteAllTasks(ctx)
}

// ========== Query Operations ==========

func (b *businessAPIImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := b.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return b.services.TaskService.GetTask(id)
}

func (b *businessAPIImpl) ListTasks(ctx context.Context, filters domain.FilterState, query string) (*TaskListing, error) {
	if err := b.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	search := b.services.SearchService
	tasks := b.services.TaskService.ListTasks()
	filtered := search.GetFilteredTasks(tasks, filters, query)

	overdue := make(map[string]bool)
	for _, task := range filtered {
		if b.services.TimeService.IsOverdue(task) {
			overdue[task.ID] = true
		}
	}

	return &TaskListing{
		Tasks:   filtered,
		Overdue: overdue,
		Summary: search.GetSearchSummary(tasks, filters, query),
		Years:   search.AvailableYears(tasks),
		Tags:    search.AllTags(tasks),
	}, nil
}

func (b *businessAPIImpl) HighlightText(text, query string, mark func(string) string) string {
	return b.services.SearchService.Highlight(text, query, mark)
}

func (b *businessAPIImpl) ExportTasks(ctx context.Context) (*TaskExport, error) {
	if err := b.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	return &TaskExport{
		Profile:    b.services.ProfileService.CurrentProfile(),
		ExportedAt: b.services.TimeService.Now(),
		Tasks:      b.services.TaskService.ListTasks(),
	}, nil
}

// ========== Dashboard and Reminders ==========

func (b *businessAPIImpl) GetDashboardData(ctx context.Context) (*services.DashboardData, error) {
	if err := b.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	profile := b.services.ProfileService.CurrentProfile()
	tasks := b.services.TaskService.ListTasks()
	return b.services.ReportingService.GetDashboardData(profile, tasks), nil
}

func (b *businessAPIImpl) GetReminders(ctx context.Context) ([]services.Reminder, error) {
	if err := b.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return b.services.ReminderService.Scan(b.services.TaskService.ListTasks()), nil
}

func (b *businessAPIImpl) WatchReminders(ctx context.Context, interval time.Duration, fn services.ReminderFunc) error {
	if err := b.ensureLoaded(ctx); err != nil {
		return err
	}
	return b.services.ReminderService.Run(ctx, interval, fn)
}

// ========== Profiles ==========

func (b *businessAPIImpl) ListProfiles(ctx context.Context) (*ProfileListing, error) {
	if err := b.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	return &ProfileListing{
		Profiles: b.services.ProfileService.ListProfiles(),
		Current:  b.services.ProfileService.CurrentProfile(),
	}, nil
}

func (b *businessAPIImpl) CreateProfile(ctx context.Context, name, icon, color string) (*domain.Profile, error) {
	if err := b.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return b.services.ProfileService.CreateProfile(ctx, name, icon, color)
}

func (b *businessAPIImpl) SwitchProfile(ctx context.Context, id string) (*domain.Profile, error) {
	if err := b.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return b.services.ProfileService.SwitchProfile(ctx, id)
}

// DeleteProfile removes a profile and returns the profile that is current
// afterwards
func (b *businessAPIImpl) DeleteProfile(ctx context.Context, id string) (*domain.Profile, error) {
	if err := b.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	if err := b.services.ProfileService.DeleteProfile(ctx, id); err != nil {
		return nil, err
	}
	current := b.services.ProfileService.CurrentProfile()
	return &current, nil
}

// ========== Preferences ==========

func (b *businessAPIImpl) GetTheme(ctx context.Context) (domain.Theme, error) {
	return b.services.PreferenceService.GetTheme(ctx)
}

func (b *businessAPIImpl) SetTheme(ctx context.Context, theme string) (domain.Theme, error) {
	return b.services.PreferenceService.SetTheme(ctx, theme)
}

func (b *businessAPIImpl) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	return b.services.PreferenceService.ToggleTheme(ctx)
}

// ========== Offline Asset Cache ==========

func (b *businessAPIImpl) requireWorker() (*assetcache.Worker, error) {
	if b.worker == nil {
		return nil, errors.NewInvalidInputError("cache", nil, "offline asset cache is not configured")
	}
	return b.worker, nil
}

func (b *businessAPIImpl) InstallAssets(ctx context.Context) error {
	worker, err := b.requireWorker()
	if err != nil {
		return err
	}
	return worker.Install(ctx)
}

func (b *businessAPIImpl) ActivateAssets(ctx context.Context) ([]string, error) {
	worker, err := b.requireWorker()
	if err != nil {
		return nil, err
	}
	return worker.Activate(ctx)
}

func (b *businessAPIImpl) AssetCaches(ctx context.Context) ([]assetcache.CacheContents, error) {
	worker, err := b.requireWorker()
	if err != nil {
		return nil, err
	}
	return worker.Contents(ctx)
}

func (b *businessAPIImpl) AssetVersion() (string, error) {
	worker, err := b.requireWorker()
	if err != nil {
		return "", err
	}
	return worker.Message(assetcache.Message{Type: assetcache.MessageGetVersion}).Version, nil
}

func (b *businessAPIImpl) AssetServer(addr string) (*assetcache.Server, error) {
	worker, err := b.requireWorker()
	if err != nil {
		return nil, err
	}
	return assetcache.NewServer(worker, addr), nil
}
