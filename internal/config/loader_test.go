package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to dir for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadWithNoConfigFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestLoadFromSearchPath(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	yml := `
log_level: debug
cache:
  type: memory
  ttl: 60
batch:
  workers: 8
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guesslang.yaml"), []byte(yml), 0o600))

	loader := NewLoader()
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, 60, cfg.Cache.TTL)
	assert.Equal(t, 8, cfg.Batch.Workers)
	assert.Equal(t, "text", cfg.LogFormat, "unset keys keep their defaults")
	assert.Contains(t, loader.GetConfigFileUsed(), "guesslang.yaml")
}

func TestLoadWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_format: json\nmetrics:\n  enabled: true\n"), 0o600))

	cfg, err := NewLoader().LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadWithMissingFile(t *testing.T) {
	_, err := NewLoader().LoadWithFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: [unclosed"), 0o600))

	_, err := NewLoader().LoadWithFile(path)
	assert.Error(t, err)
}

func TestLoadValidationFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  type: disk\n"), 0o600))

	_, err := NewLoader().LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GUESSLANG_LOG_LEVEL", "warn")
	t.Setenv("GUESSLANG_CACHE_TYPE", "memory")
	t.Setenv("GUESSLANG_BATCH_WORKERS", "2")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, 2, cfg.Batch.Workers)
}

func TestGetConfigSearchPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	paths := GetConfigSearchPaths()
	assert.Equal(t, []string{".", "/tmp/xdg/guesslang", "/etc/guesslang"}, paths)
}
