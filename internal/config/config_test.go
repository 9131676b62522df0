// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GitHub.APIEndpoint != "https://api.github.com" {
		t.Errorf("APIEndpoint = %s, want https://api.github.com", cfg.GitHub.APIEndpoint)
	}
	if cfg.GitHub.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %s, want 30s", cfg.GitHub.RequestTimeout)
	}
	if cfg.Search.ScrollThrottle != 200*time.Millisecond {
		t.Errorf("ScrollThrottle = %s, want 200ms", cfg.Search.ScrollThrottle)
	}
	if cfg.Search.MaxPages != 1 {
		t.Errorf("MaxPages = %d, want 1", cfg.Search.MaxPages)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %s, want info", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
github:
  api_endpoint: https://github.enterprise.com/api/v3
  request_timeout: 5s

search:
  scroll_throttle: 500ms
  max_pages: 4

log:
  level: debug
  file: /tmp/scout.log
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.GitHub.APIEndpoint != "https://github.enterprise.com/api/v3" {
		t.Errorf("APIEndpoint = %s, want https://github.enterprise.com/api/v3", cfg.GitHub.APIEndpoint)
	}
	if cfg.GitHub.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %s, want 5s", cfg.GitHub.RequestTimeout)
	}
	if cfg.Search.ScrollThrottle != 500*time.Millisecond {
		t.Errorf("ScrollThrottle = %s, want 500ms", cfg.Search.ScrollThrottle)
	}
	if cfg.Search.MaxPages != 4 {
		t.Errorf("MaxPages = %d, want 4", cfg.Search.MaxPages)
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "/tmp/scout.log" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoadConfigFile_Invalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(configPath, []byte("github: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("expected error for malformed YAML")
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvAPIEndpoint, "https://custom.api.com")
	t.Setenv(EnvRequestTimeout, "12s")
	t.Setenv(EnvScrollThrottle, "0s")
	t.Setenv(EnvMaxPages, "3")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvLogFile, "/var/log/scout.log")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.GitHub.APIEndpoint != "https://custom.api.com" {
		t.Errorf("APIEndpoint = %s, want https://custom.api.com", cfg.GitHub.APIEndpoint)
	}
	if cfg.GitHub.RequestTimeout != 12*time.Second {
		t.Errorf("RequestTimeout = %s, want 12s", cfg.GitHub.RequestTimeout)
	}
	if cfg.Search.ScrollThrottle != 0 {
		t.Errorf("ScrollThrottle = %s, want 0", cfg.Search.ScrollThrottle)
	}
	if cfg.Search.MaxPages != 3 {
		t.Errorf("MaxPages = %d, want 3", cfg.Search.MaxPages)
	}
	if cfg.Log.Level != "warn" || cfg.Log.File != "/var/log/scout.log" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestEnvironmentOverrides_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"timeout", EnvRequestTimeout, "soon"},
		{"throttle", EnvScrollThrottle, "fast"},
		{"max pages", EnvMaxPages, "-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig("")
			if err == nil || !strings.Contains(err.Error(), tt.key) {
				t.Errorf("LoadConfig() error = %v, want mention of %s", err, tt.key)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	const key = "SCOUT_DOTENV_CHECK"
	const preset = "SCOUT_DOTENV_PRESET"

	// Register restores, then unset so the .env value is visible.
	t.Setenv(key, "")
	os.Unsetenv(key)
	t.Setenv(preset, "from-env")

	envPath := filepath.Join(t.TempDir(), ".env")
	content := key + "=from-file\n" + preset + "=from-file\n"
	if err := os.WriteFile(envPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := LoadDotEnv(envPath); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}

	if got := os.Getenv(key); got != "from-file" {
		t.Errorf("%s = %q, want from-file", key, got)
	}
	if got := os.Getenv(preset); got != "from-env" {
		t.Errorf("%s = %q, real environment should win", preset, got)
	}

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config { return DefaultConfig() }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: "",
		},
		{
			name:    "empty API endpoint",
			mutate:  func(c *Config) { c.GitHub.APIEndpoint = "" },
			wantErr: "GitHub API endpoint cannot be empty",
		},
		{
			name:    "relative API endpoint",
			mutate:  func(c *Config) { c.GitHub.APIEndpoint = "api.github.com" },
			wantErr: "not an absolute URL",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.GitHub.RequestTimeout = 0 },
			wantErr: "request timeout must be positive",
		},
		{
			name:    "negative throttle",
			mutate:  func(c *Config) { c.Search.ScrollThrottle = -time.Second },
			wantErr: "scroll throttle cannot be negative",
		},
		{
			name:    "negative max pages",
			mutate:  func(c *Config) { c.Search.MaxPages = -1 },
			wantErr: "max pages cannot be negative",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "chatty" },
			wantErr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() error = nil, want %s", tt.wantErr)
				} else if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Validate() error = %v, want containing %s", err, tt.wantErr)
				}
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		got, err := LogConfig{Level: tt.input}.SlogLevel()
		if err != nil {
			t.Errorf("SlogLevel(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home := os.Getenv("HOME")
	if home == "" {
		home = os.Getenv("USERPROFILE")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		if got := expandPath(tt.input); got != tt.want {
			t.Errorf("expandPath(%s) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"50", 50, false},
		{"1", 1, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parsePositiveInt(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePositiveInt(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePositiveInt(%s) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
