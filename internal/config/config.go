// Package config loads tweetscrape settings from a YAML file, the
// environment, and built-in defaults.
package config

import (
	"log/slog"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Search   SearchConfig   `yaml:"search"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"TWEETSCRAPE_DATABASE" env-default:"ts.db"`
}

// SearchConfig holds remote search settings.
type SearchConfig struct {
	BaseURL     string        `yaml:"base_url"     env:"TWEETSCRAPE_SEARCH_URL"   env-default:"https://api.twitter.com"`
	BearerToken string        `yaml:"bearer_token" env:"TWEETSCRAPE_BEARER_TOKEN"`
	PageSize    int           `yaml:"page_size"    env:"TWEETSCRAPE_PAGE_SIZE"    env-default:"100"`
	ResultType  string        `yaml:"result_type"  env:"TWEETSCRAPE_RESULT_TYPE"  env-default:"recent"`
	Timeout     time.Duration `yaml:"timeout"      env:"TWEETSCRAPE_TIMEOUT"      env-default:"30s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" env:"TWEETSCRAPE_LOG_LEVEL" env-default:"info"`
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// SlogLevel returns the configured level. Unknown values map to Info;
// Validate rejects them before this is reached.
func (c LogConfig) SlogLevel() slog.Level {
	if lvl, ok := logLevels[c.Level]; ok {
		return lvl
	}
	return slog.LevelInfo
}
