// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/poiesic/catalogrank/ingestion"
	"github.com/poiesic/catalogrank/ranking"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CATALOGRANK_"

// Default values.
const (
	DefaultDBPath         = "catalog.db"
	DefaultLogLevel       = "info"
	DefaultReportInterval = 100
)

// Configuration validation errors.
var (
	ErrMissingDBPath         = errors.New("db_path is required")
	ErrInvalidLogLevel       = errors.New("log_level must be one of debug, info, warn, error")
	ErrInvalidPoolSize       = errors.New("pool_size must be at least 1")
	ErrInvalidMaxResults     = errors.New("max_results must be at least 1")
	ErrInvalidBatchSize      = errors.New("batch_size must be at least 1")
	ErrInvalidReportInterval = errors.New("report_interval must be at least 1")
	ErrInvalidEnvironmentInt = errors.New("environment value must be a valid integer")
)

// Config holds the settings of the catalogrank commands.
type Config struct {
	// DBPath is the directory of the catalog store.
	DBPath string `koanf:"db_path"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `koanf:"log_level"`

	// PoolSize bounds concurrent work (file parsing, batched queries).
	PoolSize int `koanf:"pool_size"`

	// MaxResults is the result count used when a query does not set one.
	MaxResults int `koanf:"max_results"`

	// Category is the category filter used when a query does not set one.
	Category string `koanf:"category"`

	// BatchSize is the number of items stored per write during import.
	BatchSize int `koanf:"batch_size"`

	// ReportInterval is how many imported items pass between progress lines.
	ReportInterval int `koanf:"report_interval"`

	// MetricsFile, when set, receives query metrics in the Prometheus text
	// format after each command.
	MetricsFile string `koanf:"metrics_file"`
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithDBPath sets the catalog store directory.
func WithDBPath(path string) ConfigOption {
	return func(c *Config) {
		c.DBPath = path
	}
}

// WithLogLevel sets the log level name.
func WithLogLevel(level string) ConfigOption {
	return func(c *Config) {
		c.LogLevel = level
	}
}

// WithPoolSize sets the worker pool size.
func WithPoolSize(size int) ConfigOption {
	return func(c *Config) {
		c.PoolSize = size
	}
}

// WithMaxResults sets the default result count.
func WithMaxResults(n int) ConfigOption {
	return func(c *Config) {
		c.MaxResults = n
	}
}

// WithCategory sets the default category filter.
func WithCategory(category string) ConfigOption {
	return func(c *Config) {
		c.Category = category
	}
}

// WithBatchSize sets the import batch size.
func WithBatchSize(size int) ConfigOption {
	return func(c *Config) {
		c.BatchSize = size
	}
}

// WithReportInterval sets the import progress interval.
func WithReportInterval(n int) ConfigOption {
	return func(c *Config) {
		c.ReportInterval = n
	}
}

// WithMetricsFile sets the metrics textfile path.
func WithMetricsFile(path string) ConfigOption {
	return func(c *Config) {
		c.MetricsFile = path
	}
}

// DefaultConfig returns a Config with sensible defaults for a local catalog.
func DefaultConfig() *Config {
	return &Config{
		DBPath:         DefaultDBPath,
		LogLevel:       DefaultLogLevel,
		PoolSize:       max(runtime.NumCPU(), 1),
		MaxResults:     ranking.DefaultMaxResults,
		Category:       ranking.AllCategories,
		BatchSize:      ingestion.DefaultBatchSize,
		ReportInterval: DefaultReportInterval,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize trims string settings, lower-cases the log level and maps an
// empty category to ranking.AllCategories.
func (c *Config) Normalize() {
	c.DBPath = strings.TrimSpace(c.DBPath)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Category = strings.TrimSpace(c.Category)
	if c.Category == "" {
		c.Category = ranking.AllCategories
	}
	c.MetricsFile = strings.TrimSpace(c.MetricsFile)
}

// Validate normalizes the configuration and reports every invalid setting.
func (c *Config) Validate() error {
	c.Normalize()

	var errs []error
	if c.DBPath == "" {
		errs = append(errs, ErrMissingDBPath)
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.PoolSize < 1 {
		errs = append(errs, ErrInvalidPoolSize)
	}
	if c.MaxResults < 1 {
		errs = append(errs, ErrInvalidMaxResults)
	}
	if c.BatchSize < 1 {
		errs = append(errs, ErrInvalidBatchSize)
	}
	if c.ReportInterval < 1 {
		errs = append(errs, ErrInvalidReportInterval)
	}
	return errors.Join(errs...)
}

// SlogLevel converts LogLevel to a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	return ParseLevel(c.LogLevel)
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, name)
	}
}

// Load builds a Config from the defaults, the YAML file at path (skipped
// when path is empty) and CATALOGRANK_* environment variables, in that
// order of increasing precedence. The result is validated.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		if err := k.Unmarshal("", cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	var errs []error
	cfg.DBPath = envString("DB_PATH", cfg.DBPath)
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)
	cfg.Category = envString("CATEGORY", cfg.Category)
	cfg.MetricsFile = envString("METRICS_FILE", cfg.MetricsFile)
	for _, setting := range []struct {
		key   string
		value *int
	}{
		{"POOL_SIZE", &cfg.PoolSize},
		{"MAX_RESULTS", &cfg.MaxResults},
		{"BATCH_SIZE", &cfg.BatchSize},
		{"REPORT_INTERVAL", &cfg.ReportInterval},
	} {
		v, err := envInt(setting.key, *setting.value)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*setting.value = v
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envString returns the prefixed environment variable if set, otherwise fallback.
func envString(key, fallback string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return fallback
}

// envInt returns the prefixed environment variable as an int if set,
// otherwise fallback. A set but unparseable value is an error.
func envInt(key string, fallback int) (int, error) {
	val := os.Getenv(EnvPrefix + key)
	if val == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, fmt.Errorf("%s%s=%q: %w", EnvPrefix, key, val, ErrInvalidEnvironmentInt)
	}
	return i, nil
}
