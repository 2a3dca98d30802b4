package app

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/creasty/defaults"

	"github.com/vk/spabuild/internal/artifact"
	"github.com/vk/spabuild/internal/reload"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Event is the lifecycle event. Empty defers to npm_lifecycle_event.
	Event string
	// BasePath is an .hcl file, a directory of .hcl files, or a .json/.jsonc
	// file. Empty composes from built-in defaults.
	BasePath string
	EnvFile  string `default:".env"`
	// OutPath is where the artifact goes. Empty writes to the app's output.
	OutPath string
	Format  string `default:"json"`
	Root    string `default:"."`
	// Port overrides the dev server port of the base configuration when set.
	Port      int
	NotifyURL string

	LogFormat string `default:"text"`
	LogLevel  string `default:"info"`
}

// NewConfig applies defaults, validates cfg and resolves its relative paths
// against Root.
func NewConfig(cfg Config) (*Config, error) {
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("applying config defaults: %w", err)
	}

	if _, err := artifact.ParseFormat(cfg.Format); err != nil {
		return nil, err
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d: must be between 0 and 65535, 0 keeps the configured port", cfg.Port)
	}
	if cfg.NotifyURL != "" {
		if _, err := reload.NewSocketIO(cfg.NotifyURL); err != nil {
			return nil, fmt.Errorf("invalid notify-url: %w", err)
		}
	}

	cfg.BasePath = underRoot(cfg.Root, cfg.BasePath)
	cfg.EnvFile = underRoot(cfg.Root, cfg.EnvFile)
	cfg.OutPath = underRoot(cfg.Root, cfg.OutPath)
	return &cfg, nil
}

func underRoot(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
