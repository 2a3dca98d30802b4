package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/vk/spabuild/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := pflag.NewFlagSet("spabuild", pflag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
spabuild - composes the asset-pipeline configuration of a single-page app.

Usage:
  spabuild [options] [EVENT]

Arguments:
  EVENT
    Lifecycle event. "build" composes the production configuration, anything
    else the development one. Defaults to $npm_lifecycle_event.

Options:
`)
		flagSet.PrintDefaults()
	}

	eventFlag := flagSet.StringP("event", "e", "", "Lifecycle event (overrides the positional argument).")
	baseFlag := flagSet.StringP("base", "b", "", "Base configuration: .hcl file, directory of .hcl files, or .json/.jsonc file.")
	envFileFlag := flagSet.String("env-file", "", "Dotenv file read beneath the process environment (default \".env\").")
	outFlag := flagSet.StringP("out", "o", "", "Write the artifact to this file instead of stdout.")
	formatFlag := flagSet.StringP("format", "f", "", "Artifact format: 'json' or 'yaml' (default \"json\").")
	rootFlag := flagSet.String("root", "", "Project root that relative paths resolve against (default \".\").")
	portFlag := flagSet.Int("port", 0, "Override the dev server port.")
	notifyFlag := flagSet.String("notify-url", "", "socket.io endpoint told about new development configurations.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one EVENT argument, got %d", flagSet.NArg())}
	}
	event := *eventFlag
	if event == "" && flagSet.NArg() == 1 {
		event = flagSet.Arg(0)
	}
	slog.Debug("Invocation event determined.", "event", event)

	config, err := app.NewConfig(app.Config{
		Event:     event,
		BasePath:  *baseFlag,
		EnvFile:   *envFileFlag,
		OutPath:   *outFlag,
		Format:    strings.ToLower(*formatFlag),
		Root:      *rootFlag,
		Port:      *portFlag,
		NotifyURL: *notifyFlag,
		LogFormat: strings.ToLower(*logFormatFlag),
		LogLevel:  strings.ToLower(*logLevelFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
