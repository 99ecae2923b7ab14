package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfg := Default()

	err := cfg.Save()
	require.NoError(t, err)

	// Verify file exists and has correct permissions
	path := Path()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), dirInfo.Mode().Perm())
}

func TestLoadConfigNonExistentUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, filepath.Join(dir, ".launchgrid", "library.yaml"), cfg.LibraryPath())
	assert.Equal(t, filepath.Join(dir, ".launchgrid", "launchgrid.log"), cfg.LogPath())
}

func TestSaveLoadRoundtripWithAllFields(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	original := Default()
	original.VimKeys = true
	original.Library.Path = "/srv/games/library.yaml"
	original.Log.Level = "debug"
	original.Relay.PollInterval = 2 * time.Second
	original.Grid.RowHeight = 8

	require.NoError(t, original.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfgDir := filepath.Join(dir, ".launchgrid")
	require.NoError(t, os.MkdirAll(cfgDir, 0700))
	doc := "grid:\n  row_height: 9\n  teardown_delay: 5s\nrelay:\n  enabled: false\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(doc), 0600))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9.0, loaded.Grid.RowHeight)
	assert.Equal(t, 5*time.Second, loaded.Grid.TeardownDelay)
	assert.Equal(t, 22.0, loaded.Grid.MinItemWidth)
	assert.False(t, loaded.Relay.Enabled)
	assert.Equal(t, "info", loaded.Log.Level)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfgDir := filepath.Join(dir, ".launchgrid")
	os.MkdirAll(cfgDir, 0700)
	path := filepath.Join(cfgDir, "config.yaml")

	err := os.WriteFile(path, []byte("invalid: yaml: content:"), 0600)
	require.NoError(t, err)

	_, err = Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfg := Default()
	cfg.Grid.FlipEasing = "wobble"
	require.NoError(t, cfg.Save())

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "grid")
	assert.Contains(t, err.Error(), "wobble")
}

func TestConfigPermissionsStrictlyEnforced(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	require.NoError(t, Default().Save())

	// Try to make it world-readable
	path := Path()
	err := os.Chmod(path, 0644)
	require.NoError(t, err)

	_, err = Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "permissions")
}

func TestValidateRelayNeedsURL(t *testing.T) {
	cfg := Default()
	cfg.Relay.URL = ""
	assert.ErrorContains(t, cfg.Validate(), "relay.url")

	cfg.Relay.Enabled = false
	assert.NoError(t, cfg.Validate())
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("chatty")
	assert.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfg := Default()
	cfg.Log.Path = "~/logs/lg.log"
	assert.Equal(t, filepath.Join(dir, "logs", "lg.log"), cfg.LogPath())
}

func TestPathReturnsCorrectLocation(t *testing.T) {
	path := Path()
	assert.Contains(t, path, ".launchgrid")
	assert.Contains(t, path, "config.yaml")
}
