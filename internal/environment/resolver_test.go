package environment

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allVariables() map[string]string {
	return map[string]string{
		"API_URL":                "https://api.example.com",
		"APP_NAME":               "Example",
		"SOCKET_URL":             "wss://ws.example.com",
		"FOOTER_MESSAGE":         "hello",
		"STRIPE_PUBLISHABLE_KEY": "pk_test_123",
		"STORAGE_KEY":            "example-store",
	}
}

func TestModeFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		event string
		want  Mode
	}{
		{"build", Production},
		{"start", Development},
		{"dev", Development},
		{"build:watch", Development},
		{"BUILD", Development},
	}
	for _, tc := range cases {
		t.Run(tc.event, func(t *testing.T) {
			mode, err := ModeFor(tc.event)
			require.NoError(t, err)
			assert.Equal(t, tc.want, mode)
			assert.True(t, mode.Valid())
		})
	}
}

func TestModeFor_Unrecognized(t *testing.T) {
	t.Parallel()

	for _, event := range []string{"", "build now", "start\n"} {
		_, err := ModeFor(event)
		var fault *ModeResolutionFault
		require.ErrorAs(t, err, &fault, "event %q should not resolve", event)
	}
}

func TestResolve_ExplicitEventWins(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	env := allVariables()
	env[LifecycleEventVar] = "start"
	r := NewResolver(MapLookup(env))

	// --- Act ---
	res, err := r.Resolve(context.Background(), Invocation{Event: "build"})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, Production, res.Mode)
	assert.Equal(t, "build", res.Event)
	assert.Empty(t, res.Variables.Missing())
	assert.Equal(t, "pk_test_123", res.Variables.Get(StripePublishableKey).String())
}

func TestResolve_FallsBackToLifecycleEvent(t *testing.T) {
	t.Parallel()

	r := NewResolver(MapLookup(map[string]string{LifecycleEventVar: "build"}))

	res, err := r.Resolve(context.Background(), Invocation{})

	require.NoError(t, err)
	assert.Equal(t, Production, res.Mode)
}

func TestResolve_NoEventIsFault(t *testing.T) {
	t.Parallel()

	r := NewResolver(MapLookup(allVariables()))

	_, err := r.Resolve(context.Background(), Invocation{})

	var fault *ModeResolutionFault
	require.ErrorAs(t, err, &fault)
}

func TestResolve_AbsentVariablesAreUnset(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := NewResolver(MapLookup(map[string]string{"API_URL": ""}))

	// --- Act ---
	res, err := r.Resolve(context.Background(), Invocation{Event: "start"})

	// --- Assert ---
	require.NoError(t, err, "absent variables must not fail resolution")
	assert.Equal(t, Development, res.Mode)
	assert.True(t, res.Variables.Get(APIURL).IsSet(), "an empty value is still a set value")
	assert.Len(t, res.Variables.Missing(), 5)
	assert.Equal(t, UnsetPlaceholder, res.Variables.Get(AppName).String())
}

func TestResolve_Idempotent(t *testing.T) {
	t.Parallel()

	r := NewResolver(MapLookup(allVariables()))
	first, err := r.Resolve(context.Background(), Invocation{Event: "start"})
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), Invocation{Event: "start"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWithDotenv(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "API_URL=https://from-file\nAPP_NAME=FromFile\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	process := MapLookup(map[string]string{"API_URL": "https://from-process"})

	// --- Act ---
	lookup, err := WithDotenv(process, path)
	require.NoError(t, err)
	res, err := NewResolver(lookup).Resolve(context.Background(), Invocation{Event: "start"})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "https://from-process", res.Variables.Get(APIURL).String(), "process environment overrides the file")
	assert.Equal(t, "FromFile", res.Variables.Get(AppName).String())
	assert.False(t, res.Variables.Get(StorageKey).IsSet())
}

func TestWithDotenv_MissingFileIsIgnored(t *testing.T) {
	t.Parallel()

	lookup, err := WithDotenv(MapLookup(nil), filepath.Join(t.TempDir(), "nope.env"))
	require.NoError(t, err)
	_, ok := lookup("API_URL")
	assert.False(t, ok)
}

func TestWithDotenv_UnreadablePathFails(t *testing.T) {
	t.Parallel()

	// A directory cannot be parsed as a dotenv file.
	_, err := WithDotenv(MapLookup(nil), t.TempDir())
	require.Error(t, err)
	assert.False(t, errors.Is(err, os.ErrNotExist))
}
