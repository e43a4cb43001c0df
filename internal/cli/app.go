package cli

import (
	"io"
	"os"

	"futurtask/internal/api"
	"futurtask/internal/config"
)

// App holds what every command handler needs
type App struct {
	businessAPI  api.BusinessAPI
	config       *config.Config
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewApp creates a CLI application writing to stdout
func NewApp(businessAPI api.BusinessAPI, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &App{
		businessAPI:  businessAPI,
		config:       cfg,
		out:          os.Stdout,
		errorHandler: NewErrorHandler(),
	}
}

// SetOutput redirects command output
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}
