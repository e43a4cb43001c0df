package services

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"futurtask/internal/domain"
)

// searchServiceImpl implements the SearchService interface
type searchServiceImpl struct {
	timeService TimeService
}

// NewSearchService creates a new SearchService instance
func NewSearchService(timeService TimeService) SearchService {
	return &searchServiceImpl{
		timeService: timeService,
	}
}

// GetFilteredTasks returns the tasks matching every filter and the search
// query, most recent due date first. Ties keep collection order.
func (s *searchServiceImpl) GetFilteredTasks(tasks []domain.Task, filters domain.FilterState, query string) []domain.Task {
	unconstrained := filters.IsEmpty() && strings.TrimSpace(query) == ""

	result := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if unconstrained || (matchesFilters(task, filters) && s.IsTaskMatch(task, query)) {
			result = append(result, task.Clone())
		}
	}
	sortByDateDesc(result)
	return result
}

// IsTaskMatch reports whether query occurs case-insensitively in the title,
// the description or any tag. An empty query matches every task.
func (s *searchServiceImpl) IsTaskMatch(task domain.Task, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}

	needle := strings.ToLower(query)
	if strings.Contains(strings.ToLower(task.Title), needle) ||
		strings.Contains(strings.ToLower(task.Description), needle) {
		return true
	}
	for _, tag := range task.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Highlight wraps every case-insensitive occurrence of query in text with
// mark. The query is matched literally.
func (s *searchServiceImpl) Highlight(text, query string, mark func(string) string) string {
	query = strings.TrimSpace(query)
	if query == "" || mark == nil {
		return text
	}
	pattern := regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	return pattern.ReplaceAllStringFunc(text, mark)
}

// AvailableYears returns the distinct due-date years, newest first. The
// current year is always present.
func (s *searchServiceImpl) AvailableYears(tasks []domain.Task) []string {
	seen := map[int]bool{s.timeService.Now().Year(): true}
	for _, task := range tasks {
		due, err := task.DueDate(s.timeService.Location())
		if err != nil {
			continue
		}
		seen[due.Year()] = true
	}

	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	slices.Sort(years)
	slices.Reverse(years)

	result := make([]string, len(years))
	for i, year := range years {
		result[i] = strconv.Itoa(year)
	}
	return result
}

// AllTags returns the distinct tags in lexical order
func (s *searchServiceImpl) AllTags(tasks []domain.Task) []string {
	seen := make(map[string]bool)
	tags := []string{}
	for _, task := range tasks {
		for _, tag := range task.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	slices.Sort(tags)
	return tags
}

// GetSearchSummary counts the search matches among the tasks left by the
// structured filters
func (s *searchServiceImpl) GetSearchSummary(tasks []domain.Task, filters domain.FilterState, query string) SearchSummary {
	summary := SearchSummary{
		Query: strings.TrimSpace(query),
		Total: len(tasks),
	}
	for _, task := range tasks {
		if !matchesFilters(task, filters) {
			continue
		}
		summary.Filtered++
		if s.IsTaskMatch(task, query) {
			summary.Matches++
		}
	}
	return summary
}

// matchesFilters applies the year, month, status and tag constraints
func matchesFilters(task domain.Task, filters domain.FilterState) bool {
	year, month := domain.DateParts(task.Date)
	if filters.Year != "" && year != filters.Year {
		return false
	}
	if filters.Month != "" && month != filters.Month {
		return false
	}
	if filters.Status != "" && string(task.Status) != filters.Status {
		return false
	}
	if filters.Tag != "" && !task.HasTag(filters.Tag) {
		return false
	}
	return true
}

func sortByDateDesc(tasks []domain.Task) {
	slices.SortStableFunc(tasks, func(a, b domain.Task) int {
		return strings.Compare(b.Date, a.Date)
	})
}
