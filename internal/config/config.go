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

// Package config provides configuration management for sirseer-scout with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Variables from a .env file (never overriding real ones)
//  4. Configuration file
//  5. Built-in defaults
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by applyEnvOverrides.
const (
	EnvAPIEndpoint    = "GITHUB_API_ENDPOINT"
	EnvRequestTimeout = "SCOUT_REQUEST_TIMEOUT"
	EnvScrollThrottle = "SCOUT_SCROLL_THROTTLE"
	EnvMaxPages       = "SCOUT_MAX_PAGES"
	EnvLogLevel       = "SCOUT_LOG_LEVEL"
	EnvLogFile        = "SCOUT_LOG_FILE"
)

// DotEnvFile is the .env file loaded from the working directory.
const DotEnvFile = ".env"

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .sirseer-scout.yaml (current directory)
//   - .sirseer-scout.yml (current directory)
//   - ~/.sirseer/scout.yaml
//   - ~/.sirseer/scout.yml
//
// A .env file in the current directory is loaded into the process
// environment before overrides are applied. Returns an error if the
// specified config file cannot be loaded, but will succeed with defaults
// if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		for _, path := range defaultPaths() {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	if err := LoadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Log.File = expandPath(cfg.Log.File)

	return cfg, nil
}

func defaultPaths() []string {
	home := homeDir()
	return []string{
		".sirseer-scout.yaml",
		".sirseer-scout.yml",
		filepath.Join(home, ".sirseer", "scout.yaml"),
		filepath.Join(home, ".sirseer", "scout.yml"),
	}
}

// LoadDotEnv loads variables from path into the process environment.
// Variables already set are left alone. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config.
// Malformed values are reported rather than ignored.
func applyEnvOverrides(cfg *Config) error {
	if endpoint := os.Getenv(EnvAPIEndpoint); endpoint != "" {
		cfg.GitHub.APIEndpoint = endpoint
	}

	if raw := os.Getenv(EnvRequestTimeout); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvRequestTimeout, raw, err)
		}
		cfg.GitHub.RequestTimeout = timeout
	}

	if raw := os.Getenv(EnvScrollThrottle); raw != "" {
		throttle, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvScrollThrottle, raw, err)
		}
		cfg.Search.ScrollThrottle = throttle
	}

	if raw := os.Getenv(EnvMaxPages); raw != "" {
		pages, err := parsePositiveInt(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMaxPages, err)
		}
		cfg.Search.MaxPages = pages
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Log.Level = level
	}
	if file := os.Getenv(EnvLogFile); file != "" {
		cfg.Log.File = file
	}

	return nil
}

func homeDir() string {
	home := os.Getenv("HOME")
	if home == "" {
		home = os.Getenv("USERPROFILE") // Windows
	}
	return home
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		path = filepath.Join(homeDir(), path[2:])
	}
	return os.ExpandEnv(path)
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// Validate checks if the configuration contains valid values. This should
// be called after loading configuration and applying flags to catch
// invalid settings early.
func (c *Config) Validate() error {
	if c.GitHub.APIEndpoint == "" {
		return fmt.Errorf("GitHub API endpoint cannot be empty")
	}
	endpoint, err := url.Parse(c.GitHub.APIEndpoint)
	if err != nil || endpoint.Scheme == "" || endpoint.Host == "" {
		return fmt.Errorf("GitHub API endpoint %q is not an absolute URL", c.GitHub.APIEndpoint)
	}
	if c.GitHub.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got: %s", c.GitHub.RequestTimeout)
	}
	if c.Search.ScrollThrottle < 0 {
		return fmt.Errorf("scroll throttle cannot be negative, got: %s", c.Search.ScrollThrottle)
	}
	if c.Search.MaxPages < 0 {
		return fmt.Errorf("max pages cannot be negative, got: %d", c.Search.MaxPages)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return nil
}
