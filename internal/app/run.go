package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/spabuild/internal/artifact"
	"github.com/vk/spabuild/internal/compose"
	"github.com/vk/spabuild/internal/ctxlog"
	"github.com/vk/spabuild/internal/environment"
	"github.com/vk/spabuild/internal/reload"
)

// Run composes the build configuration and writes the artifact. Nothing is
// written when composition fails.
func (a *App) Run(ctx context.Context) error {
	ctx = a.Context(ctx)
	a.logger.Debug("App.Run method started.")

	lookup, err := environment.WithDotenv(a.lookup, a.config.EnvFile)
	if err != nil {
		return err
	}

	loader, err := selectLoader(a.config.BasePath)
	if err != nil {
		return err
	}
	if a.config.Port > 0 {
		loader = portOverride{Loader: loader, port: a.config.Port}
	}

	composer := compose.NewComposer(environment.NewResolver(lookup), loader, a.config.BasePath)
	bc, err := composer.Compose(ctx, environment.Invocation{Event: a.config.Event})
	if err != nil {
		return err
	}

	format, err := artifact.ParseFormat(a.config.Format)
	if err != nil {
		return err
	}
	header := artifact.Header{Mode: bc.Mode().String(), Fingerprint: bc.Fingerprint(), Source: bc.Source()}
	var buf bytes.Buffer
	if err := artifact.Encode(&buf, format, header, bc.Tree()); err != nil {
		return err
	}
	if err := a.write(ctx, buf.Bytes()); err != nil {
		return err
	}
	a.logger.Info("Artifact written.", "format", string(format), "out", a.destination(), "fingerprint", bc.Fingerprint())

	if bc.Mode() == environment.Development {
		ev := reload.Event{Mode: bc.Mode().String(), Fingerprint: bc.Fingerprint(), Output: bc.Output().Dir}
		if err := a.notifier.Notify(ctx, ev); err != nil {
			a.logger.Warn("Failed to notify dev server.", "error", err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) destination() string {
	if a.config.OutPath == "" {
		return "-"
	}
	return a.config.OutPath
}

func (a *App) write(ctx context.Context, data []byte) error {
	if a.config.OutPath == "" {
		_, err := a.outW.Write(data)
		return err
	}
	ctxlog.FromContext(ctx).Debug("Writing artifact file.", "path", a.config.OutPath, "bytes", len(data))
	if err := os.MkdirAll(filepath.Dir(a.config.OutPath), 0o755); err != nil {
		return fmt.Errorf("creating artifact directory: %w", err)
	}
	if err := os.WriteFile(a.config.OutPath, data, 0o644); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	return nil
}
