package services

import (
	"testing"

	"futurtask/internal/domain"

	"github.com/stretchr/testify/assert"
)

func setupSearchService(t *testing.T) SearchService {
	t.Helper()
	return NewSearchService(NewTimeService(fixedClock()))
}

func createSearchTasks() []domain.Task {
	return []domain.Task{
		{ID: "1", Title: "Buy milk", Tags: []string{"#home"}, Date: "2024-03-10", Status: domain.StatusPending},
		{ID: "2", Title: "Quarterly report", Description: "Finance numbers", Tags: []string{"#work"}, Date: "2024-06-20", Status: domain.StatusCompleted},
		{ID: "3", Title: "Team lunch", Tags: []string{"#work", "#fun"}, Date: "2024-06-20", Status: domain.StatusPending},
		{ID: "4", Title: "Taxes", Description: "File the REPORT", Tags: []string{}, Date: "2023-04-15", Status: domain.StatusCompleted},
	}
}

func ids(tasks []domain.Task) []string {
	result := make([]string, len(tasks))
	for i, task := range tasks {
		result[i] = task.ID
	}
	return result
}

func TestSearchService_GetFilteredTasks(t *testing.T) {
	tests := []struct {
		name     string
		filters  domain.FilterState
		query    string
		expected []string
	}{
		{
			name:     "no constraints returns all sorted by date descending with stable ties",
			expected: []string{"2", "3", "1", "4"},
		},
		{
			name:     "blank query with no filters returns all",
			query:    "   ",
			expected: []string{"2", "3", "1", "4"},
		},
		{
			name:     "year filter",
			filters:  domain.FilterState{Year: "2023"},
			expected: []string{"4"},
		},
		{
			name:     "month filter",
			filters:  domain.FilterState{Month: "06"},
			expected: []string{"2", "3"},
		},
		{
			name:     "status filter",
			filters:  domain.FilterState{Status: "completed"},
			expected: []string{"2", "4"},
		},
		{
			name:     "tag filter",
			filters:  domain.FilterState{Tag: "#work"},
			expected: []string{"2", "3"},
		},
		{
			name:     "search matches title and description case-insensitively",
			query:    "report",
			expected: []string{"2", "4"},
		},
		{
			name:     "search matches tags",
			query:    "FUN",
			expected: []string{"3"},
		},
		{
			name:     "filters and search combine",
			filters:  domain.FilterState{Year: "2024", Status: "pending"},
			query:    "#work",
			expected: []string{"3"},
		},
		{
			name:     "no match",
			query:    "zzz",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := setupSearchService(t)
			tasks := createSearchTasks()

			result := service.GetFilteredTasks(tasks, tt.filters, tt.query)

			assert.Equal(t, tt.expected, ids(result))
			// Input order is untouched
			assert.Equal(t, []string{"1", "2", "3", "4"}, ids(tasks))
		})
	}
}

func TestSearchService_GetFilteredTasks_Idempotent(t *testing.T) {
	service := setupSearchService(t)
	filters := domain.FilterState{Month: "06"}

	once := service.GetFilteredTasks(createSearchTasks(), filters, "")
	twice := service.GetFilteredTasks(once, filters, "")

	assert.Equal(t, once, twice)
}

func TestSearchService_GetFilteredTasks_UnconstrainedReturnsCopies(t *testing.T) {
	service := setupSearchService(t)
	tasks := createSearchTasks()

	result := service.GetFilteredTasks(tasks, domain.FilterState{}, "")
	result[0].Title = "changed"
	result[0].Tags[0] = "#changed"

	assert.Equal(t, "Quarterly report", tasks[1].Title)
	assert.Equal(t, []string{"#work"}, tasks[1].Tags)
}

func TestSearchService_IsTaskMatch(t *testing.T) {
	service := setupSearchService(t)
	task := domain.Task{Title: "Write Go code", Description: "", Tags: []string{"#Dev"}}

	assert.True(t, service.IsTaskMatch(task, ""))
	assert.True(t, service.IsTaskMatch(task, "go"))
	assert.True(t, service.IsTaskMatch(task, "#dev"))
	assert.False(t, service.IsTaskMatch(task, "python"))
}

func TestSearchService_Highlight(t *testing.T) {
	service := setupSearchService(t)
	mark := func(s string) string { return "[" + s + "]" }

	tests := []struct {
		name     string
		text     string
		query    string
		expected string
	}{
		{"empty query leaves text unchanged", "Hello", "", "Hello"},
		{"wraps every occurrence preserving case", "Go go GO", "go", "[Go] [go] [GO]"},
		{"treats regex metacharacters literally", "cost (a+b)", "(a+b)", "cost [(a+b)]"},
		{"no occurrence", "Hello", "xyz", "Hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.Highlight(tt.text, tt.query, mark))
		})
	}
}

func TestSearchService_AvailableYears(t *testing.T) {
	service := setupSearchService(t)

	assert.Equal(t, []string{"2024", "2023"}, service.AvailableYears(createSearchTasks()))
	assert.Equal(t, []string{"2024"}, service.AvailableYears(nil))

	future := []domain.Task{{Date: "2026-01-01"}, {Date: "bogus"}}
	assert.Equal(t, []string{"2026", "2024"}, service.AvailableYears(future))
}

func TestSearchService_AllTags(t *testing.T) {
	service := setupSearchService(t)

	assert.Equal(t, []string{"#fun", "#home", "#work"}, service.AllTags(createSearchTasks()))
	assert.Equal(t, []string{}, service.AllTags(nil))
}

func TestSearchService_GetSearchSummary(t *testing.T) {
	service := setupSearchService(t)

	summary := service.GetSearchSummary(createSearchTasks(), domain.FilterState{Year: "2024"}, "report")

	assert.Equal(t, SearchSummary{Query: "report", Matches: 1, Filtered: 3, Total: 4}, summary)
}
