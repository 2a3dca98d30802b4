package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/spabuild/internal/config"
	"github.com/vk/spabuild/internal/ctxlog"
	"github.com/vk/spabuild/internal/hcl"
	"github.com/vk/spabuild/internal/jsonc"
)

// selectLoader picks the loader for path by its extension. Directories are
// read as HCL.
func selectLoader(path string) (config.Loader, error) {
	if path == "" {
		return config.DefaultLoader{}, nil
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return hcl.NewLoader(), nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return hcl.NewLoader(), nil
	case ".json", ".jsonc":
		return jsonc.NewLoader(), nil
	}
	return nil, fmt.Errorf("unsupported base configuration %q: expected .hcl, .json, .jsonc or a directory", path)
}

// portOverride replaces the dev server port of whatever the wrapped loader
// returns.
type portOverride struct {
	config.Loader
	port int
}

func (p portOverride) Load(ctx context.Context, path string) (*config.Base, error) {
	base, err := p.Loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Dev server port overridden.", "from", base.DevServer.Port, "to", p.port)
	base.DevServer.Port = p.port
	return base, nil
}
