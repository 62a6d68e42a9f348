// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// TestConfig_ConcurrentAccess tests that Global(), SetGlobal(), and ReloadGlobal()
// can be safely called concurrently without race conditions.
// Run with: go test -race -v ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()

	var wg sync.WaitGroup

	// 50 writers using SetGlobal, 50 readers using Global
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			c := &Config{
				Version: "test",
				Backend: BackendConfig{
					BaseURL:   "http://127.0.0.1:8000",
					QueryPath: "query",
				},
			}
			SetGlobal(c)
		}()

		go func() {
			defer wg.Done()
			cfg := Global()
			if cfg == nil {
				t.Error("Global() returned nil")
			}
		}()
	}

	wg.Wait()
}

// TestConfig_GlobalInitialization tests that Global() properly initializes
// the config on first access.
func TestConfig_GlobalInitialization(t *testing.T) {
	ResetGlobalForTesting()

	cfg := Global()
	if cfg == nil {
		t.Fatal("Global() returned nil")
	}

	if cfg.Version == "" {
		t.Error("Config version should not be empty")
	}
	if cfg.Backend.BaseURL == "" {
		t.Error("Backend base URL should not be empty")
	}
}

// =============================================================================
// DEFAULTS
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Backend.BaseURL != "http://127.0.0.1:8000" {
		t.Errorf("Backend.BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.QueryPath != "query" {
		t.Errorf("Backend.QueryPath = %q", cfg.Backend.QueryPath)
	}
	if cfg.Auth.PortalPassword != "password" {
		t.Errorf("Auth.PortalPassword = %q", cfg.Auth.PortalPassword)
	}
	if cfg.Auth.RememberSession {
		t.Error("Auth.RememberSession must default off; persistence is opt-in")
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("UI.Theme = %q", cfg.UI.Theme)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout() = %v", cfg.Timeout())
	}
	if cfg.UploadTimeout() != 5*time.Minute {
		t.Errorf("UploadTimeout() = %v", cfg.UploadTimeout())
	}
}

func TestSetDefaults_FillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	if cfg.Backend.BaseURL == "" || cfg.Backend.QueryPath == "" {
		t.Errorf("SetDefaults left backend fields empty: %+v", cfg.Backend)
	}
	if cfg.UI.WordWrap == 0 {
		t.Error("SetDefaults left word_wrap zero")
	}
}

func TestSetDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Backend: BackendConfig{BaseURL: "http://10.0.0.5:9000", QueryPath: "chat"},
	}
	cfg.SetDefaults()

	if cfg.Backend.BaseURL != "http://10.0.0.5:9000" {
		t.Errorf("SetDefaults overwrote base_url: %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.QueryPath != "chat" {
		t.Errorf("SetDefaults overwrote query_path: %q", cfg.Backend.QueryPath)
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"bad url scheme", func(c *Config) { c.Backend.BaseURL = "ftp://host" }, true},
		{"not a url", func(c *Config) { c.Backend.BaseURL = "://" }, true},
		{"negative timeout", func(c *Config) { c.Backend.TimeoutSecs = -1 }, true},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }, true},
		{"query path with space", func(c *Config) { c.Backend.QueryPath = "my query" }, true},
		{"https allowed", func(c *Config) { c.Backend.BaseURL = "https://rag.example.com" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// =============================================================================
// LOAD / SAVE ROUND TRIP
// =============================================================================

func TestSaveTOMLAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Backend.BaseURL = "http://10.1.2.3:8000"
	cfg.Auth.LastSessionID = "m9x2k1_ab3z9"

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	// SECURITY: saved config must be owner-only
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %o, want 0600", info.Mode().Perm())
	}

	loaded := Default()
	if err := LoadTOML(loaded, path); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}
	if loaded.Backend.BaseURL != cfg.Backend.BaseURL {
		t.Errorf("BaseURL = %q, want %q", loaded.Backend.BaseURL, cfg.Backend.BaseURL)
	}
	if loaded.Auth.LastSessionID != "m9x2k1_ab3z9" {
		t.Errorf("LastSessionID = %q", loaded.Auth.LastSessionID)
	}
}

func TestLoadFromPath_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := SaveJSON(Default(), path); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.Backend.QueryPath != "query" {
		t.Errorf("QueryPath = %q", cfg.Backend.QueryPath)
	}
}

func TestLoadFromPath_UnsupportedFormat(t *testing.T) {
	if _, err := LoadFromPath("/tmp/config.yaml"); err == nil {
		t.Error("LoadFromPath accepted unsupported format")
	}
}

func TestLoadTOML_FixesPermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := os.WriteFile(path, []byte("version = \"1.0.0\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("permissions not tightened: %o", info.Mode().Perm())
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("NEUROPORTAL_BACKEND_URL", "http://override:8000")
	t.Setenv("NEUROPORTAL_QUERY_PATH", "chat")
	t.Setenv("NEUROPORTAL_TIMEOUT_SECS", "45")
	t.Setenv("NEUROPORTAL_THEME", "light")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Backend.BaseURL != "http://override:8000" {
		t.Errorf("BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.QueryPath != "chat" {
		t.Errorf("QueryPath = %q", cfg.Backend.QueryPath)
	}
	if cfg.Backend.TimeoutSecs != 45 {
		t.Errorf("TimeoutSecs = %d", cfg.Backend.TimeoutSecs)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q", cfg.UI.Theme)
	}
}

func TestApplyEnvOverrides_IgnoresInvalidTimeout(t *testing.T) {
	t.Setenv("NEUROPORTAL_TIMEOUT_SECS", "not-a-number")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Backend.TimeoutSecs != 30 {
		t.Errorf("TimeoutSecs = %d, want default preserved", cfg.Backend.TimeoutSecs)
	}
}

// =============================================================================
// GET / SET (DOT NOTATION)
// =============================================================================

func TestGetSet(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("backend.query_path", "chat"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := cfg.Get("backend.query_path")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "chat" {
		t.Errorf("Get = %v, want chat", got)
	}
}

func TestSet_StringConversion(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("backend.timeout_secs", "60"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if cfg.Backend.TimeoutSecs != 60 {
		t.Errorf("TimeoutSecs = %d", cfg.Backend.TimeoutSecs)
	}

	if err := cfg.Set("ui.compact_mode", "true"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !cfg.UI.CompactMode {
		t.Error("CompactMode not set")
	}
}

func TestGet_UnknownKey(t *testing.T) {
	cfg := Default()
	if _, err := cfg.Get("backend.nope"); err == nil {
		t.Error("Get accepted unknown key")
	}
	if err := cfg.Set("nope.nope", "x"); err == nil {
		t.Error("Set accepted unknown key")
	}
}

func TestGetAllKeys_Resolvable(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%q) failed: %v", key, err)
		}
	}
}

// =============================================================================
// REDACTION
// =============================================================================

func TestString_RedactsPassword(t *testing.T) {
	cfg := Default()
	cfg.Auth.PortalPassword = "super-secret"

	s := cfg.String()
	if strings.Contains(s, "super-secret") {
		t.Error("String() leaked portal password")
	}
	if !strings.Contains(s, "[REDACTED]") {
		t.Error("String() missing redaction marker")
	}
	// Original untouched
	if cfg.Auth.PortalPassword != "super-secret" {
		t.Error("String() mutated the config")
	}
}
