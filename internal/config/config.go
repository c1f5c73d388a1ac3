// Package config loads guesslang CLI settings from files, environment
// variables and flags.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/ZaguanLabs/guesslang"
	"github.com/ZaguanLabs/guesslang/cache"
)

// Config is the complete CLI configuration.
type Config struct {
	LogLevel   string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	LogFormat  string `mapstructure:"log_format" yaml:"log_format" json:"log_format"`
	Verbose    bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`
	ModelsFile string `mapstructure:"models_file" yaml:"models_file" json:"models_file"`

	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache" json:"cache"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics" json:"metrics"`
	Batch   BatchConfig   `mapstructure:"batch" yaml:"batch" json:"batch"`
}

// CacheConfig selects the detection result cache.
type CacheConfig struct {
	Type       string `mapstructure:"type" yaml:"type" json:"type"` // none, memory, redis
	TTL        int    `mapstructure:"ttl" yaml:"ttl" json:"ttl"`    // seconds, 0 = never expire
	MaxEntries int    `mapstructure:"max_entries" yaml:"max_entries" json:"max_entries"`
	RedisURL   string `mapstructure:"redis_url" yaml:"redis_url" json:"redis_url"`
	KeyPrefix  string `mapstructure:"key_prefix" yaml:"key_prefix" json:"key_prefix"`
}

// MetricsConfig controls Prometheus collection.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
}

// BatchConfig controls multi-text detection.
type BatchConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Cache: CacheConfig{
			Type:       "none",
			TTL:        0,
			MaxEntries: 10000,
			KeyPrefix:  cache.DefaultKeyPrefix,
		},
		Batch: BatchConfig{
			Workers: 4,
		},
	}
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	validFormats := []string{"text", "json"}
	if !slices.Contains(validFormats, c.LogFormat) {
		return fmt.Errorf("invalid log format: %s (must be one of: %s)", c.LogFormat, strings.Join(validFormats, ", "))
	}

	validCaches := []string{"none", "memory", "redis"}
	if !slices.Contains(validCaches, c.Cache.Type) {
		return fmt.Errorf("invalid cache type: %s (must be one of: %s)", c.Cache.Type, strings.Join(validCaches, ", "))
	}
	if c.Cache.Type == "redis" && c.Cache.RedisURL == "" {
		return fmt.Errorf("cache.redis_url is required for the redis cache")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("invalid cache ttl: %d (must not be negative)", c.Cache.TTL)
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("invalid cache max entries: %d (must not be negative)", c.Cache.MaxEntries)
	}

	if c.Batch.Workers <= 0 {
		return fmt.Errorf("invalid batch workers: %d (must be positive)", c.Batch.Workers)
	}

	return nil
}

// SlogLevel returns the log level, with Verbose forcing debug.
func (c *Config) SlogLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a logger writing to w in the configured format.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ModelSource returns the bundled corpus models, overridden by the models
// file when one is configured.
func (c *Config) ModelSource() (guesslang.ModelSource, error) {
	if c.ModelsFile == "" {
		return guesslang.NewCorpusSource(), nil
	}

	f, err := os.Open(c.ModelsFile) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, fmt.Errorf("opening models file: %w", err)
	}
	defer f.Close()

	models, err := guesslang.LoadMapSource(f)
	if err != nil {
		return nil, fmt.Errorf("loading models file %s: %w", c.ModelsFile, err)
	}
	return guesslang.ChainSource{models, guesslang.NewCorpusSource()}, nil
}

// ResultCache creates the configured result cache. It returns nil when
// caching is disabled.
func (c *Config) ResultCache() (guesslang.ResultCache, error) {
	switch c.Cache.Type {
	case "memory":
		return cache.NewInMemoryCache(c.Cache.TTL, cache.WithMaxEntries(c.Cache.MaxEntries)), nil
	case "redis":
		rc, err := cache.NewRedisCache(cache.RedisConfig{
			URL:       c.Cache.RedisURL,
			TTL:       c.Cache.TTL,
			KeyPrefix: c.Cache.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("creating redis cache: %w", err)
		}
		return rc, nil
	default:
		return nil, nil
	}
}
