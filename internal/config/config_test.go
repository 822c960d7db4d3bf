package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ServerURL != DefaultServerURL {
		t.Errorf("expected default server_url %q, got %q", DefaultServerURL, cfg.ServerURL)
	}
	if cfg.ThemeKey != "studyTheme" {
		t.Errorf("expected default theme_key %q, got %q", "studyTheme", cfg.ThemeKey)
	}
	if cfg.DefaultTheme != "purple" {
		t.Errorf("expected default theme %q, got %q", "purple", cfg.DefaultTheme)
	}
	if cfg.RequestTimeout != 0 {
		t.Errorf("expected no request timeout by default, got %s", cfg.RequestTimeout)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.studymate.yml")

	original := DefaultConfig()
	original.ServerURL = "https://study.example.com"
	original.DataDir = filepath.Join(dir, "data")
	original.DefaultTheme = "midnight"
	original.RequestTimeout = 15 * time.Second

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.ServerURL != original.ServerURL {
		t.Errorf("server_url: got %q, want %q", loaded.ServerURL, original.ServerURL)
	}
	if loaded.DataDir != original.DataDir {
		t.Errorf("data_dir: got %q, want %q", loaded.DataDir, original.DataDir)
	}
	if loaded.DefaultTheme != original.DefaultTheme {
		t.Errorf("default_theme: got %q, want %q", loaded.DefaultTheme, original.DefaultTheme)
	}
	if loaded.RequestTimeout != original.RequestTimeout {
		t.Errorf("request_timeout: got %s, want %s", loaded.RequestTimeout, original.RequestTimeout)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.ServerURL != DefaultServerURL {
		t.Errorf("expected default server_url, got %q", cfg.ServerURL)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("STUDYMATE_SERVER_URL", "http://localhost:8080")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.ServerURL != "http://localhost:8080" {
		t.Errorf("env override failed: got %q", loaded.ServerURL)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".studymate.yml")

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("STUDYMATE_DEFAULT_THEME=soft\n"), 0644); err != nil {
		t.Fatalf("writing .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("STUDYMATE_DEFAULT_THEME") })

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DefaultTheme != "soft" {
		t.Errorf("expected theme from .env, got %q", loaded.DefaultTheme)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalidServerURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ServerURL = "not a url"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for invalid server_url")
	}
	if !strings.Contains(err.Error(), "server_url") {
		t.Errorf("error should name server_url, got: %v", err)
	}
}

func TestValidateEmptyServerURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ServerURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty server_url")
	}
}

func TestValidateInvalidTheme(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultTheme = "neon"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for invalid default_theme")
	}
	if !strings.Contains(err.Error(), "purple, midnight, soft") {
		t.Errorf("error should list themes, got: %v", err)
	}
}

func TestValidateNegativeTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RequestTimeout = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative request_timeout")
	}
}

func TestLogPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/tmp/sm"
	if got := cfg.LogPath(); got != filepath.Join("/tmp/sm", "studymate.log") {
		t.Errorf("LogPath() = %q", got)
	}
	cfg.LogFile = "/var/log/sm.log"
	if got := cfg.LogPath(); got != "/var/log/sm.log" {
		t.Errorf("LogPath() with log_file = %q", got)
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"http://127.0.0.1:5000", false},
		{"https://study.example.com", false},
		{"ftp://example.com", true},
		{"http://", true},
	}
	for _, tt := range tests {
		err := validateURL(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
