package services

import (
	"context"
	"time"

	"futurtask/internal/domain"
	"futurtask/internal/validation"
)

// SearchSummary describes how many tasks a search matched out of the
// tasks left after the structured filters
type SearchSummary struct {
	Query    string `json:"query"`
	Matches  int    `json:"matches"`
	Filtered int    `json:"filtered"`
	Total    int    `json:"total"`
}

// TaskCounts are the headline counters of the statistics page
type TaskCounts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

// PriorityCount is the number of tasks with one priority
type PriorityCount struct {
	Priority domain.Priority `json:"priority"`
	Label    string          `json:"label"`
	Count    int             `json:"count"`
}

// MonthlyCount holds the tasks due in one month of the current year
type MonthlyCount struct {
	Month     time.Month `json:"month"`
	Label     string     `json:"label"`
	Created   int        `json:"created"`
	Completed int        `json:"completed"`
}

// TagCount is the number of occurrences of a tag
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// PerformanceMetrics are the derived rates of the statistics page
type PerformanceMetrics struct {
	CompletionRate    int `json:"completionRate"`
	OverdueRate       int `json:"overdueRate"`
	AvgCompletionDays int `json:"avgCompletionDays"`
}

// DashboardData represents all data needed for the statistics view
type DashboardData struct {
	Profile     domain.Profile     `json:"profile"`
	Counts      TaskCounts         `json:"counts"`
	Progress    int                `json:"progress"`
	Priorities  []PriorityCount    `json:"priorities"`
	Monthly     []MonthlyCount     `json:"monthly"`
	ChartTags   []TagCount         `json:"chartTags"`
	TopTags     []TagCount         `json:"topTags"`
	Performance PerformanceMetrics `json:"performance"`
	RecentTasks []domain.Task      `json:"recentTasks"`
}

// ReminderKind tells overdue reminders from upcoming ones
type ReminderKind string

const (
	ReminderOverdue ReminderKind = "overdue"
	ReminderDueSoon ReminderKind = "reminder"
)

// Reminder is a notification about a pending task's due date
type Reminder struct {
	Kind     ReminderKind `json:"kind"`
	Task     domain.Task  `json:"task"`
	DueToday bool         `json:"dueToday"`
}

// ReminderFunc receives the reminders of one scan
type ReminderFunc func(ctx context.Context, reminders []Reminder)

// TimeService provides the clock and the date predicates built on it
type TimeService interface {
	Now() time.Time
	Today() time.Time
	Location() *time.Location

	// Due-date predicates
	IsOverdue(task domain.Task) bool
	IsDueSoon(task domain.Task) bool
	IsDueToday(task domain.Task) bool
}

// TaskService handles the task list of the current profile
type TaskService interface {
	LoadTasks(ctx context.Context) ([]domain.Task, error)
	ListTasks() []domain.Task
	GetTask(id string) (*domain.Task, error)

	AddTask(ctx context.Context, input validation.TaskInput) (*domain.Task, error)
	EditTask(ctx context.Context, id string, input validation.TaskInput) (*domain.Task, error)
	ToggleStatus(ctx context.Context, id string) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
	DeleteAllTasks(ctx context.Context) error
}

// ProfileService handles the profile registry
type ProfileService interface {
	LoadProfiles(ctx context.Context) ([]domain.Profile, error)
	ListProfiles() []domain.Profile
	CurrentProfile() domain.Profile

	CreateProfile(ctx context.Context, name, icon, color string) (*domain.Profile, error)
	SwitchProfile(ctx context.Context, id string) (*domain.Profile, error)
	DeleteProfile(ctx context.Context, id string) error
}

// PreferenceService handles user preferences
type PreferenceService interface {
	GetTheme(ctx context.Context) (domain.Theme, error)
	SetTheme(ctx context.Context, theme string) (domain.Theme, error)
	ToggleTheme(ctx context.Context) (domain.Theme, error)
}

// SearchService handles filtering and search over a task list
type SearchService interface {
	GetFilteredTasks(tasks []domain.Task, filters domain.FilterState, query string) []domain.Task
	IsTaskMatch(task domain.Task, query string) bool
	Highlight(text, query string, mark func(string) string) string

	// Filter options
	AvailableYears(tasks []domain.Task) []string
	AllTags(tasks []domain.Task) []string
	GetSearchSummary(tasks []domain.Task, filters domain.FilterState, query string) SearchSummary
}

// ReportingService computes statistics over a task list
type ReportingService interface {
	CountTasks(tasks []domain.Task) TaskCounts
	PriorityDistribution(tasks []domain.Task) []PriorityCount
	MonthlyDistribution(tasks []domain.Task) []MonthlyCount
	TopTags(tasks []domain.Task, limit int) []TagCount
	CalculatePerformance(tasks []domain.Task) PerformanceMetrics
	RecentTasks(tasks []domain.Task, limit int) []domain.Task
	Progress(tasks []domain.Task) int

	GetDashboardData(profile domain.Profile, tasks []domain.Task) *DashboardData
}

// ReminderService scans tasks for due dates
type ReminderService interface {
	Scan(tasks []domain.Task) []Reminder
	Run(ctx context.Context, interval time.Duration, fn ReminderFunc) error
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TimeService       TimeService
	TaskService       TaskService
	ProfileService    ProfileService
	PreferenceService PreferenceService
	SearchService     SearchService
	ReportingService  ReportingService
	ReminderService   ReminderService
}
