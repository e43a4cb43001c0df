package services

import (
	"math"
	"slices"
	"time"

	"futurtask/internal/domain"
)

const (
	// DefaultChartTagLimit is the number of tags shown in the tag chart
	DefaultChartTagLimit = 5
	// DefaultTagListLimit is the number of tags in the top tag list
	DefaultTagListLimit = 10
	// DefaultRecentTasksLimit is the default limit for recent tasks in dashboard
	DefaultRecentTasksLimit = 5
)

// StatsLimits sizes the lists of the dashboard
type StatsLimits struct {
	ChartTags int
	TagList   int
	Recent    int
}

// DefaultStatsLimits returns the built-in dashboard list sizes
func DefaultStatsLimits() StatsLimits {
	return StatsLimits{
		ChartTags: DefaultChartTagLimit,
		TagList:   DefaultTagListLimit,
		Recent:    DefaultRecentTasksLimit,
	}
}

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	timeService TimeService
	limits      StatsLimits
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(timeService TimeService, limits StatsLimits) ReportingService {
	return &reportingServiceImpl{
		timeService: timeService,
		limits:      limits,
	}
}

// CountTasks returns the total, completed, pending and overdue counts
func (r *reportingServiceImpl) CountTasks(tasks []domain.Task) TaskCounts {
	counts := TaskCounts{Total: len(tasks)}
	for _, task := range tasks {
		if task.IsCompleted() {
			counts.Completed++
		}
		if r.timeService.IsOverdue(task) {
			counts.Overdue++
		}
	}
	counts.Pending = counts.Total - counts.Completed
	return counts
}

// PriorityDistribution counts tasks per priority, lowest first. Unknown
// priorities count as medium.
func (r *reportingServiceImpl) PriorityDistribution(tasks []domain.Task) []PriorityCount {
	counts := make(map[domain.Priority]int, len(domain.Priorities))
	for _, task := range tasks {
		counts[task.Priority.Normalize()]++
	}

	result := make([]PriorityCount, len(domain.Priorities))
	for i, priority := range domain.Priorities {
		result[i] = PriorityCount{
			Priority: priority,
			Label:    priority.Label(),
			Count:    counts[priority],
		}
	}
	return result
}

// MonthlyDistribution buckets the tasks due in the current year by month
func (r *reportingServiceImpl) MonthlyDistribution(tasks []domain.Task) []MonthlyCount {
	result := make([]MonthlyCount, 12)
	for i := range result {
		month := time.Month(i + 1)
		result[i] = MonthlyCount{Month: month, Label: month.String()[:3]}
	}

	currentYear := r.timeService.Now().Year()
	for _, task := range tasks {
		due, err := task.DueDate(r.timeService.Location())
		if err != nil || due.Year() != currentYear {
			continue
		}
		bucket := &result[due.Month()-1]
		bucket.Created++
		if task.IsCompleted() {
			bucket.Completed++
		}
	}
	return result
}

// TopTags returns the most frequent tags. Ties keep first-encounter order.
// A non-positive limit returns every tag.
func (r *reportingServiceImpl) TopTags(tasks []domain.Task, limit int) []TagCount {
	index := make(map[string]int)
	result := []TagCount{}
	for _, task := range tasks {
		for _, tag := range task.Tags {
			if i, ok := index[tag]; ok {
				result[i].Count++
				continue
			}
			index[tag] = len(result)
			result = append(result, TagCount{Tag: tag, Count: 1})
		}
	}

	slices.SortStableFunc(result, func(a, b TagCount) int {
		return b.Count - a.Count
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// CalculatePerformance returns the completion rate, the overdue rate and
// the average number of days between creation and due date of completed tasks
func (r *reportingServiceImpl) CalculatePerformance(tasks []domain.Task) PerformanceMetrics {
	counts := r.CountTasks(tasks)
	metrics := PerformanceMetrics{
		CompletionRate: percentage(counts.Completed, counts.Total),
		OverdueRate:    percentage(counts.Overdue, counts.Total),
	}

	totalDays, completed := 0, 0
	for _, task := range tasks {
		if !task.IsCompleted() || task.CreatedAt.IsZero() {
			continue
		}
		due, err := task.DueDate(r.timeService.Location())
		if err != nil {
			continue
		}
		totalDays += domain.DaysCeil(task.CreatedAt, due)
		completed++
	}
	if completed > 0 {
		metrics.AvgCompletionDays = roundHalfUp(float64(totalDays) / float64(completed))
	}
	return metrics
}

// RecentTasks returns the most recently created tasks
func (r *reportingServiceImpl) RecentTasks(tasks []domain.Task, limit int) []domain.Task {
	result := domain.CloneTasks(tasks)
	slices.SortStableFunc(result, func(a, b domain.Task) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// Progress returns the completed share as a whole percentage
func (r *reportingServiceImpl) Progress(tasks []domain.Task) int {
	return r.CountTasks(tasks).CompletedPercentage()
}

// GetDashboardData returns all data needed for the statistics view
func (r *reportingServiceImpl) GetDashboardData(profile domain.Profile, tasks []domain.Task) *DashboardData {
	counts := r.CountTasks(tasks)
	return &DashboardData{
		Profile:     profile,
		Counts:      counts,
		Progress:    counts.CompletedPercentage(),
		Priorities:  r.PriorityDistribution(tasks),
		Monthly:     r.MonthlyDistribution(tasks),
		ChartTags:   r.TopTags(tasks, r.limits.ChartTags),
		TopTags:     r.TopTags(tasks, r.limits.TagList),
		Performance: r.CalculatePerformance(tasks),
		RecentTasks: r.RecentTasks(tasks, r.limits.Recent),
	}
}

// CompletedPercentage returns the completed share as a whole percentage
func (c TaskCounts) CompletedPercentage() int {
	return percentage(c.Completed, c.Total)
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return roundHalfUp(float64(part) / float64(total) * 100)
}

// roundHalfUp rounds halves toward positive infinity
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
