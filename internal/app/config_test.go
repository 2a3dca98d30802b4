package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{})

	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ".env", cfg.EnvFile)
	assert.Empty(t, cfg.BasePath)
	assert.Empty(t, cfg.OutPath)
}

func TestNewConfig_PortRange(t *testing.T) {
	t.Parallel()

	for _, port := range []int{0, 1, 65535} {
		cfg, err := NewConfig(Config{Port: port})
		require.NoError(t, err, "port %d", port)
		assert.Equal(t, port, cfg.Port)
	}
}

func TestNewConfig_ResolvesUnderRoot(t *testing.T) {
	t.Parallel()

	abs := filepath.Join(t.TempDir(), "out.json")

	cfg, err := NewConfig(Config{Root: "project", BasePath: "base.hcl", OutPath: abs})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join("project", "base.hcl"), cfg.BasePath)
	assert.Equal(t, filepath.Join("project", ".env"), cfg.EnvFile)
	assert.Equal(t, abs, cfg.OutPath, "absolute paths are kept")
}

func TestNewConfig_Invalid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "format", cfg: Config{Format: "xml"}, wantErr: "unknown artifact format"},
		{name: "log format", cfg: Config{LogFormat: "xml"}, wantErr: "invalid log-format"},
		{name: "log level", cfg: Config{LogLevel: "trace"}, wantErr: "invalid log-level"},
		{name: "port", cfg: Config{Port: 70000}, wantErr: "invalid port"},
		{name: "negative port", cfg: Config{Port: -1}, wantErr: "between 0 and 65535"},
		{name: "notify url", cfg: Config{NotifyURL: "ftp://x"}, wantErr: "invalid notify-url"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewConfig(tc.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
