// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsConfigFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/home/u/.neuroportal/config.toml", true},
		{"/home/u/.neuroportal/config.json", true},
		{"/home/u/.neuroportal/chat_history", false},
		{"/home/u/.neuroportal/config.toml.bak", false},
		{"config.toml", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isConfigFile(tt.path), "isConfigFile(%q)", tt.path)
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	reloaded := make(chan *Config, 1)
	w, err := NewWatcher(func(c *Config) {
		select {
		case reloaded <- c:
		default:
		}
	})
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	require.NoError(t, w.Watch())

	cfg := Default()
	cfg.UI.Theme = "light"
	path := filepath.Join(home, ".neuroportal", "config.toml")
	require.NoError(t, SaveTOML(cfg, path))

	select {
	case fresh := <-reloaded:
		assert.Equal(t, "light", fresh.UI.Theme)
	case <-time.After(3 * time.Second):
		t.Fatal("config reload callback never fired")
	}
}

func TestWatcherCloseStopsGoroutines(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	w, err := NewWatcher(nil)
	require.NoError(t, err)
	require.NoError(t, w.Watch())
	require.NoError(t, w.Close())

	// A write after Close must not reload or panic.
	path := filepath.Join(home, ".neuroportal", "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = \"1\"\n"), 0o600))
	time.Sleep(500 * time.Millisecond)
}
