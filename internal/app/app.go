package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/spabuild/internal/ctxlog"
	"github.com/vk/spabuild/internal/environment"
	"github.com/vk/spabuild/internal/reload"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	lookup   environment.LookupFunc
	notifier reload.Notifier
}

// Option customises an App. Tests use options to replace the process
// environment and the network notifier.
type Option func(*App)

// WithLookup replaces the process environment snapshot.
func WithLookup(lookup environment.LookupFunc) Option {
	return func(a *App) { a.lookup = lookup }
}

// WithNotifier replaces the notifier built from Config.NotifyURL.
func WithNotifier(n reload.Notifier) Option {
	return func(a *App) { a.notifier = n }
}

// NewApp is the constructor for the main application. The artifact goes to
// outW unless Config.OutPath is set; logs go to logW.
func NewApp(outW, logW io.Writer, cfg *Config, opts ...Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		lookup: environment.ProcessLookup(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.notifier == nil {
		a.notifier = reload.Noop{}
		if cfg.NotifyURL != "" {
			if n, err := reload.NewSocketIO(cfg.NotifyURL); err == nil {
				a.notifier = n
			} else {
				logger.Warn("Reload notifier disabled.", "url", cfg.NotifyURL, "error", err)
			}
		}
	}
	return a
}

// Context returns ctx carrying the app's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
