package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"futurtask/internal/api"
	"futurtask/internal/config"
	"futurtask/internal/repository/sqlite"
	"futurtask/internal/services"
	"futurtask/internal/state"
)

var testNow = time.Date(2024, time.June, 15, 14, 30, 0, 0, time.UTC)

// newTestBusinessAPI builds the real API over an in-memory database and a
// clock pinned to testNow
func newTestBusinessAPI(t *testing.T) api.BusinessAPI {
	t.Helper()

	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	container := services.NewServiceContainer(
		repo,
		state.New(),
		func() time.Time { return testNow },
		services.DefaultProfileDefaults(),
		services.DefaultStatsLimits(),
	)
	return api.NewBusinessAPI(container, nil)
}

func setupTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()

	app := NewApp(newTestBusinessAPI(t), config.NewConfig())
	out := &bytes.Buffer{}
	app.SetOutput(out)
	return app, out
}

// addTestTask runs the add command and fails the test on error
func addTestTask(t *testing.T, app *App, title string, opts TaskOptions) {
	t.Helper()

	cmd := NewAddCommand(app)
	cmd.Options = opts
	require.NoError(t, cmd.Execute(context.Background(), []string{title}))
}
