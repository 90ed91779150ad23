// Package config provides configuration loading and validation for the screener.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/resume-screener/internal/types"
)

// Defaults
const (
	DefaultPort            = 8080
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultMaxUploadBytes  = 10 << 20 // 10 MiB
	DefaultRankConcurrency = 4
	DefaultStorePath       = "screener.db"
)

// Config represents the screener configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or environment variables.
type Config struct {
	Port            int    `json:"port,omitempty"`             // HTTP port
	DatabaseURL     string `json:"database_url,omitempty"`     // PostgreSQL connection URL
	StorePath       string `json:"store_path,omitempty"`       // SQLite file used when no database URL is set
	LogLevel        string `json:"log_level,omitempty"`        // logrus level name
	LogFormat       string `json:"log_format,omitempty"`       // "text" or "json"
	MaxUploadBytes  int64  `json:"max_upload_bytes,omitempty"` // largest accepted resume upload
	RankConcurrency int    `json:"rank_concurrency,omitempty"` // parallel scorers per ranking
	DefaultStrategy string `json:"default_strategy,omitempty"` // "weighted" or "coverage"
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:            DefaultPort,
		StorePath:       DefaultStorePath,
		LogLevel:        DefaultLogLevel,
		LogFormat:       DefaultLogFormat,
		MaxUploadBytes:  DefaultMaxUploadBytes,
		RankConcurrency: DefaultRankConcurrency,
		DefaultStrategy: string(types.StrategyWeighted),
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load builds the effective configuration: the optional JSON file, overlaid by
// environment variables, with remaining gaps filled from Defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// ApplyEnv overrides fields with the environment variables that are set:
// PORT, DATABASE_URL, STORE_PATH, LOG_LEVEL, LOG_FORMAT, MAX_UPLOAD_BYTES,
// RANK_CONCURRENCY and SCORING_STRATEGY.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("STORE_PATH"); v != "" {
		c.StorePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("SCORING_STRATEGY"); v != "" {
		c.DefaultStrategy = v
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT: %w", err)
		}
		c.Port = port
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MAX_UPLOAD_BYTES: %w", err)
		}
		c.MaxUploadBytes = n
	}
	if v := os.Getenv("RANK_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RANK_CONCURRENCY: %w", err)
		}
		c.RankConcurrency = n
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Zero values are allowed; they are filled by MergeWithDefaults.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	if c.RankConcurrency < 0 {
		return fmt.Errorf("config error: 'rank_concurrency' must be non-negative")
	}
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config error: 'log_level': %w", err)
		}
	}
	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("config error: 'log_format' must be \"text\" or \"json\"")
	}
	if c.DefaultStrategy != "" {
		if _, err := types.ParseStrategy(c.DefaultStrategy); err != nil {
			return fmt.Errorf("config error: 'default_strategy': %w", err)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.StorePath == "" {
		result.StorePath = defaults.StorePath
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.DefaultStrategy == "" {
		result.DefaultStrategy = defaults.DefaultStrategy
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.RankConcurrency == 0 {
		result.RankConcurrency = defaults.RankConcurrency
	}

	return result
}

// Strategy returns the configured default scoring strategy.
func (c *Config) Strategy() types.Strategy {
	s, err := types.ParseStrategy(c.DefaultStrategy)
	if err != nil {
		return types.StrategyWeighted
	}
	return s
}
