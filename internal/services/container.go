package services

import (
	"futurtask/internal/repository/sqlite"
	"futurtask/internal/state"
)

// NewServiceContainer wires every service around one store and state handle
func NewServiceContainer(repo sqlite.KeyValueStore, st *state.State, now Clock, profiles ProfileDefaults, limits StatsLimits) *ServiceContainer {
	timeService := NewTimeService(now)
	taskService := NewTaskService(repo, st, timeService)

	return &ServiceContainer{
		TimeService:       timeService,
		TaskService:       taskService,
		ProfileService:    NewProfileService(repo, st, timeService, profiles),
		PreferenceService: NewPreferenceService(repo),
		SearchService:     NewSearchService(timeService),
		ReportingService:  NewReportingService(timeService, limits),
		ReminderService:   NewReminderService(timeService, taskService),
	}
}
