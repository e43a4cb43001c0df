package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"futurtask/internal/logging"
)

// CacheInstallCommand handles the cache install command
type CacheInstallCommand struct {
	app *App
}

// NewCacheInstallCommand creates a new cache install command handler
func NewCacheInstallCommand(app *App) *CacheInstallCommand {
	return &CacheInstallCommand{app: app}
}

// Execute downloads and stores every static asset
func (c *CacheInstallCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.businessAPI.InstallAssets(ctx); err != nil {
		return c.app.errorHandler.Handle("install assets", err)
	}
	printf(c.app.out, "Static assets cached\n")
	return nil
}

// CacheActivateCommand handles the cache activate command
type CacheActivateCommand struct {
	app *App
}

// NewCacheActivateCommand creates a new cache activate command handler
func NewCacheActivateCommand(app *App) *CacheActivateCommand {
	return &CacheActivateCommand{app: app}
}

// Execute removes caches left by other versions
func (c *CacheActivateCommand) Execute(ctx context.Context, args []string) error {
	deleted, err := c.app.businessAPI.ActivateAssets(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("activate cache", err)
	}
	for _, name := range deleted {
		printf(c.app.out, "Deleted cache %s\n", name)
	}
	printf(c.app.out, "Cache active\n")
	return nil
}

// CacheVersionCommand handles the cache version command
type CacheVersionCommand struct {
	app *App
}

// NewCacheVersionCommand creates a new cache version command handler
func NewCacheVersionCommand(app *App) *CacheVersionCommand {
	return &CacheVersionCommand{app: app}
}

// Execute prints the cache version
func (c *CacheVersionCommand) Execute(ctx context.Context, args []string) error {
	version, err := c.app.businessAPI.AssetVersion()
	if err != nil {
		return c.app.errorHandler.Handle("read cache version", err)
	}
	printf(c.app.out, "%s\n", version)
	return nil
}

// CacheListCommand handles the cache list command
type CacheListCommand struct {
	app *App
}

// NewCacheListCommand creates a new cache list command handler
func NewCacheListCommand(app *App) *CacheListCommand {
	return &CacheListCommand{app: app}
}

// Execute prints every stored cache and its request keys. Caches of the
// running version are marked with *.
func (c *CacheListCommand) Execute(ctx context.Context, args []string) error {
	caches, err := c.app.businessAPI.AssetCaches(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("list caches", err)
	}
	if len(caches) == 0 {
		printf(c.app.out, "No caches stored\n")
		return nil
	}

	for _, cache := range caches {
		marker := " "
		if cache.Current {
			marker = "*"
		}
		printf(c.app.out, "%s %s  %s\n", marker, cache.Name, mutedStyle.Render(fmt.Sprintf("%d entries", len(cache.Keys))))
		for _, key := range cache.Keys {
			printf(c.app.out, "    %s\n", key)
		}
	}
	return nil
}

// CacheServeCommand handles the cache serve command
type CacheServeCommand struct {
	app  *App
	Addr string
}

// NewCacheServeCommand creates a new cache serve command handler
func NewCacheServeCommand(app *App) *CacheServeCommand {
	return &CacheServeCommand{app: app}
}

// Execute installs and activates the cache, then serves it until ctx ends
func (c *CacheServeCommand) Execute(ctx context.Context, args []string) error {
	addr := c.Addr
	if addr == "" {
		addr = c.app.config.Cache.Listen
	}

	if err := c.app.businessAPI.InstallAssets(ctx); err != nil {
		// The proxy still answers from whatever an earlier install stored
		logging.Warn("asset install failed, serving existing cache", "err", err)
	} else if _, err := c.app.businessAPI.ActivateAssets(ctx); err != nil {
		return c.app.errorHandler.Handle("activate cache", err)
	}

	srv, err := c.app.businessAPI.AssetServer(addr)
	if err != nil {
		return c.app.errorHandler.Handle("serve cache", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	printf(c.app.out, "Serving %s on http://%s\n", c.app.config.Cache.Origin, addr)

	select {
	case err := <-errCh:
		if err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return c.app.errorHandler.Handle("serve cache", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
