package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "futurtask/internal/errors"
)

func TestCommandRegistry_Names(t *testing.T) {
	app, _ := setupTestApp(t)
	registry := NewCommandRegistry(app)

	names := registry.Names()
	assert.Len(t, names, 19)
	assert.Equal(t, "add", names[0])
	assert.Contains(t, names, "profile switch")
	assert.Contains(t, names, "cache serve")
	assert.Contains(t, names, "cache list")
	assert.IsIncreasing(t, names)
}

func TestCommandRegistry_Execute(t *testing.T) {
	app, out := setupTestApp(t)
	registry := NewCommandRegistry(app)
	ctx := context.Background()

	err := registry.Execute(ctx, "start", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))

	require.NoError(t, registry.Execute(ctx, "theme", nil))
	assert.Equal(t, "Theme: dark\n", out.String())
}

func TestCommandRegistry_GetReturnsSharedInstance(t *testing.T) {
	app, _ := setupTestApp(t)
	registry := NewCommandRegistry(app)

	command, ok := registry.Get("list")
	require.True(t, ok)
	command.(*ListCommand).Format = FormatJSON

	again, _ := registry.Get("list")
	assert.Equal(t, FormatJSON, again.(*ListCommand).Format)

	_, ok = registry.Get("missing")
	assert.False(t, ok)
}
