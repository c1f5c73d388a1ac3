package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZaguanLabs/guesslang"
	"github.com/ZaguanLabs/guesslang/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "none", cfg.Cache.Type)
	assert.Equal(t, cache.DefaultKeyPrefix, cfg.Cache.KeyPrefix)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "invalid log level"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "invalid log format"},
		{"bad cache type", func(c *Config) { c.Cache.Type = "disk" }, "invalid cache type"},
		{"redis without url", func(c *Config) { c.Cache.Type = "redis" }, "redis_url"},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -1 }, "ttl"},
		{"negative max entries", func(c *Config) { c.Cache.MaxEntries = -5 }, "max entries"},
		{"zero workers", func(c *Config) { c.Batch.Workers = 0 }, "batch workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())

	cfg.LogLevel = "error"
	assert.Equal(t, slog.LevelError, cfg.SlogLevel())

	cfg.Verbose = true
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestNewLogger(t *testing.T) {
	var buf strings.Builder
	cfg := DefaultConfig()
	cfg.LogFormat = "json"

	cfg.NewLogger(&buf).Info("hello", "code", "en")
	assert.Contains(t, buf.String(), `"code":"en"`)

	buf.Reset()
	cfg.NewLogger(&buf).Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestModelSource(t *testing.T) {
	cfg := DefaultConfig()

	src, err := cfg.ModelSource()
	require.NoError(t, err)
	_, ok := src.Lookup("en")
	assert.True(t, ok, "bundled models should be available")

	path := filepath.Join(t.TempDir(), "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte("models:\n  en: \"abc\"\n  xx: \"xyz\"\n"), 0o600))
	cfg.ModelsFile = path

	src, err = cfg.ModelSource()
	require.NoError(t, err)
	flat, _ := src.Lookup("en")
	assert.Equal(t, "abc", flat, "file models should override bundled ones")
	flat, _ = src.Lookup("xx")
	assert.Equal(t, "xyz", flat)
	_, ok = src.Lookup("de")
	assert.True(t, ok, "bundled models should remain as fallback")

	cfg.ModelsFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = cfg.ModelSource()
	assert.Error(t, err)
}

func TestResultCache(t *testing.T) {
	cfg := DefaultConfig()

	c, err := cfg.ResultCache()
	require.NoError(t, err)
	assert.Nil(t, c)

	cfg.Cache.Type = "memory"
	c, err = cfg.ResultCache()
	require.NoError(t, err)
	require.NotNil(t, c)
	require.NoError(t, c.Set(guesslang.CacheKey("h", "r"), "en"))
	got, ok := c.Get(guesslang.CacheKey("h", "r"))
	assert.True(t, ok)
	assert.Equal(t, "en", got)

	cfg.Cache.Type = "redis"
	cfg.Cache.RedisURL = "not-a-url"
	_, err = cfg.ResultCache()
	assert.Error(t, err)
}
