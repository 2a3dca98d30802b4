package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/spabuild/internal/cli"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, errOut.String(), "Usage:", "Expected help text to be printed to the error stream")
	require.Empty(t, out.String())
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Act ---
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	// --- Assert ---
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}

func TestRun_InvalidBaseConfig(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	invalidHCL := `
		output {
		  path = "dist"
		// Missing closing brace here
	`
	require.NoError(t, os.WriteFile(filepath.Join(root, "base.hcl"), []byte(invalidHCL), 0600))
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, []string{"--root", root, "--base", "base.hcl", "start"})

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
	assert.Empty(t, out.String(), "nothing is written when composition fails")
}

func TestRun_DevelopmentDefaults(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, []string{"--root", root, "--log-format", "json", "start"})

	// --- Assert ---
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "development", doc["mode"])
	assert.Contains(t, errOut.String(), `"msg":"Build mode selected."`)
}
