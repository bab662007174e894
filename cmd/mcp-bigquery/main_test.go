package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_Defaults(t *testing.T) {
	opts, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, "stdio", opts.transport)
	assert.Equal(t, ":8080", opts.address)
	assert.False(t, opts.verbose)
	assert.False(t, opts.showVersion)
}

func TestParseFlags_Overrides(t *testing.T) {
	opts, err := parseFlags([]string{
		"-transport", "http",
		"-address", ":9000",
		"-project", "acme-analytics",
		"-verbose",
	})
	require.NoError(t, err)
	assert.Equal(t, "http", opts.transport)
	assert.Equal(t, ":9000", opts.address)
	assert.Equal(t, "acme-analytics", opts.projectID)
	assert.True(t, opts.verbose)
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	_, err := parseFlags([]string{"-no-such-flag"})
	assert.Error(t, err)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	t.Setenv("BQ_PROJECT_ID", "")
	t.Setenv("BQ_LOCATION", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "project_id: file-project\nlocation: EU\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := loadConfig(serverOptions{
		configPath: path,
		projectID:  "flag-project",
	})
	require.NoError(t, err)
	assert.Equal(t, "flag-project", cfg.ProjectID)
	assert.Equal(t, "EU", cfg.Location)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig(serverOptions{configPath: "/nonexistent/config.yaml"})
	assert.Error(t, err)
}
