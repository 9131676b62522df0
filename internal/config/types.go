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

// Package config types define the configuration structures used throughout
// sirseer-scout. These types represent settings that can be loaded from
// YAML configuration files, .env files, environment variables, or
// command-line flags.
package config

import (
	"log/slog"
	"strings"
	"time"
)

// Config represents the complete configuration for sirseer-scout.
type Config struct {
	GitHub GitHubConfig `yaml:"github"`
	Search SearchConfig `yaml:"search"`
	Log    LogConfig    `yaml:"log"`
}

// GitHubConfig contains the REST API endpoint and request limits. A custom
// endpoint points the tool at GitHub Enterprise or a test server.
type GitHubConfig struct {
	APIEndpoint    string        `yaml:"api_endpoint"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// SearchConfig controls pagination behavior.
type SearchConfig struct {
	// ScrollThrottle is the minimum spacing between scroll evaluations in
	// the browser. Zero disables throttling.
	ScrollThrottle time.Duration `yaml:"scroll_throttle"`

	// MaxPages caps the search command when --pages is not given. Zero
	// means one page.
	MaxPages int `yaml:"max_pages"`
}

// LogConfig selects the log level and, for the browser, the log file.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// SlogLevel parses Level into a slog.Level.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(strings.TrimSpace(c.Level)))
	return level, err
}

// DefaultConfig returns a Config with sensible defaults for public GitHub.com.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint:    "https://api.github.com",
			RequestTimeout: 30 * time.Second,
		},
		Search: SearchConfig{
			ScrollThrottle: 200 * time.Millisecond,
			MaxPages:       1,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
