// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the home directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"AGENTDESK_DATA_DIR", "AGENTDESK_STORAGE", "AGENTDESK_THEME", "AGENTDESK_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	return home
}

func TestConfig_Default(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, 1500*time.Millisecond, cfg.Generation.MinDelay())
	assert.Equal(t, 3*time.Second, cfg.Generation.MaxDelay())
	assert.Equal(t, 3*time.Second, cfg.Notifications.Display())
	assert.Equal(t, 100*time.Millisecond, cfg.Notifications.Entry())
	assert.Equal(t, "auto", cfg.UI.Theme)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"valid default config", func(*Config) {}, ""},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }, "storage.backend"},
		{"negative min delay", func(c *Config) { c.Generation.MinDelayMS = -1 }, "generation.min_delay_ms"},
		{"max below min", func(c *Config) { c.Generation.MaxDelayMS = 10 }, "generation.max_delay_ms"},
		{"zero display", func(c *Config) { c.Notifications.DisplayMS = 0 }, "notifications.display_ms"},
		{"invalid theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"invalid log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs), "want ValidateErrors, got %v", err)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("AGENTDESK_DATA_DIR", "/tmp/agentdesk-data")
	t.Setenv("AGENTDESK_STORAGE", "SQLite")
	t.Setenv("AGENTDESK_THEME", "light")
	t.Setenv("AGENTDESK_LOG_LEVEL", "debug")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "/tmp/agentdesk-data", cfg.Storage.Dir)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestConfig_LoadMissingFileUsesDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestConfig_SaveAndLoad(t *testing.T) {
	home := isolate(t)

	cfg := Default()
	cfg.Storage.Backend = "sqlite"
	cfg.Generation.MinDelayMS = 10
	cfg.Generation.MaxDelayMS = 20
	cfg.UI.Theme = "dark"
	require.NoError(t, Save(cfg))

	path := filepath.Join(home, ".agentdesk", "config.toml")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfig_LoadPartialFileFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	isolate(t)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"light\"\n"), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, 1500, cfg.Generation.MinDelayMS)
	assert.Equal(t, 3000, cfg.Notifications.DisplayMS)
}

func TestConfig_LoadInvalidFile(t *testing.T) {
	dir := t.TempDir()
	isolate(t)
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte("[ui\n"), 0600))
	_, err := LoadFromPath(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[storage]\nbackend = \"tape\"\n"), 0600))
	_, err = LoadFromPath(path)
	var verrs ValidateErrors
	assert.True(t, errors.As(err, &verrs))
}

func TestConfig_Paths(t *testing.T) {
	home := isolate(t)

	cfg := Default()
	dir, err := cfg.DataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".agentdesk"), dir)

	logPath, err := cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".agentdesk", "agentdesk.log"), logPath)

	cfg.Storage.Dir = "~/data"
	dir, err = cfg.DataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data"), dir)

	cfg.Log.File = "/var/log/agentdesk.log"
	logPath, err = cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "/var/log/agentdesk.log", logPath)
}

func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	v, err := cfg.Get("ui.theme")
	require.NoError(t, err)
	assert.Equal(t, "auto", v)

	require.NoError(t, cfg.Set("generation.min_delay_ms", "250"))
	assert.Equal(t, 250, cfg.Generation.MinDelayMS)

	require.NoError(t, cfg.Set("storage.backend", "memory"))
	assert.Equal(t, "memory", cfg.Storage.Backend)

	_, err = cfg.Get("storage.nope")
	assert.Error(t, err)
	_, err = cfg.Get("storage")
	assert.Error(t, err)
	assert.Error(t, cfg.Set("generation.max_delay_ms", "soon"))

	for _, key := range GetAllKeys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, key)
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.UI.Theme = "dark"
	assert.Equal(t, "auto", cfg.UI.Theme)
}
