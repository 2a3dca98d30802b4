package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/spabuild/internal/app"
	"github.com/vk/spabuild/internal/environment"
	"github.com/vk/spabuild/internal/reload"
)

// Scenario describes one composition run.
type Scenario struct {
	// Files are written below a fresh project root; keys are relative paths.
	Files map[string]string
	// Env replaces the process environment.
	Env map[string]string
	// Config is passed to app.NewConfig after Root is pointed at the project
	// root. LogLevel is forced to debug.
	Config app.Config
	// Notifier replaces the socket.io notifier when set.
	Notifier reload.Notifier
}

// HarnessResult holds the outcomes of a composition run.
type HarnessResult struct {
	Root      string
	Output    string
	LogOutput string
	Err       error
}

// RunComposition provides a standardized harness for running system tests
// using a default background context.
func RunComposition(t *testing.T, sc Scenario) *HarnessResult {
	t.Helper()
	return RunCompositionWithContext(context.Background(), t, sc)
}

// RunCompositionWithContext runs the whole application against a temporary
// project root populated from sc.Files.
func RunCompositionWithContext(ctx context.Context, t *testing.T, sc Scenario) *HarnessResult {
	t.Helper()

	root := t.TempDir()
	for name, content := range sc.Files {
		filePath := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	cfg := sc.Config
	cfg.Root = root
	cfg.LogLevel = "debug"
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err, "invalid scenario config")

	env := sc.Env
	if env == nil {
		env = map[string]string{}
	}
	opts := []app.Option{app.WithLookup(environment.MapLookup(env))}
	if sc.Notifier != nil {
		opts = append(opts, app.WithNotifier(sc.Notifier))
	}

	out := &app.SafeBuffer{}
	logBuffer := &app.SafeBuffer{}

	var runErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				runErr = fmt.Errorf("application panicked | %v", r)
			}
		}()
		runErr = app.NewApp(out, logBuffer, appConfig, opts...).Run(ctx)
	}()

	if os.Getenv("SPABUILD_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		Root:      root,
		Output:    out.String(),
		LogOutput: logBuffer.String(),
		Err:       runErr,
	}
}

// FullEnvironment returns a value for every injectable variable.
func FullEnvironment() map[string]string {
	env := make(map[string]string)
	for _, n := range environment.Names() {
		env[string(n)] = "value-of-" + string(n)
	}
	return env
}
