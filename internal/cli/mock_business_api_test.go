package cli

import (
	"context"
	"errors"

	"futurtask/internal/api"
	"futurtask/internal/assetcache"
	"futurtask/internal/domain"
	apperrors "futurtask/internal/errors"
	"futurtask/internal/services"
	"futurtask/internal/validation"
)

// failingBusinessAPI fails every storage-backed call with err. Methods not
// overridden panic through the nil embedded interface.
type failingBusinessAPI struct {
	api.BusinessAPI
	err error
}

func newFailingBusinessAPI() *failingBusinessAPI {
	return &failingBusinessAPI{err: apperrors.NewStorageError("set item", errors.New("database is locked"))}
}

func (m *failingBusinessAPI) AddTask(ctx context.Context, input validation.TaskInput) (*domain.Task, error) {
	return nil, m.err
}

func (m *failingBusinessAPI) ListTasks(ctx context.Context, filters domain.FilterState, query string) (*api.TaskListing, error) {
	return nil, m.err
}

func (m *failingBusinessAPI) GetDashboardData(ctx context.Context) (*services.DashboardData, error) {
	return nil, m.err
}

func (m *failingBusinessAPI) DeleteAllTasks(ctx context.Context) error {
	return m.err
}

// cacheBusinessAPI answers cache listings from a fixed set of caches
type cacheBusinessAPI struct {
	api.BusinessAPI
	caches []assetcache.CacheContents
}

func (m *cacheBusinessAPI) AssetCaches(ctx context.Context) ([]assetcache.CacheContents, error) {
	return m.caches, nil
}
