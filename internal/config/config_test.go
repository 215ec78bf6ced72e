package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ruminaider/coach-admin/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Run("full file", func(t *testing.T) {
		input := []byte(`api:
  base_url: https://api.example.com/v1
  token: secret
  timeout: 3s
selector:
  page_size: 25
  debounce: 300ms
cache:
  ttl: 1m
log:
  file: /tmp/coach.log
  level: debug
`)
		cfg, err := config.Parse(input)
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com/v1", cfg.API.BaseURL)
		assert.Equal(t, "secret", cfg.API.Token)
		assert.Equal(t, 3*time.Second, cfg.API.Timeout)
		assert.Equal(t, 25, cfg.Selector.PageSize)
		assert.Equal(t, 300*time.Millisecond, cfg.Selector.Debounce)
		assert.Equal(t, time.Minute, cfg.Cache.TTL)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		cfg, err := config.Parse([]byte("api:\n  base_url: http://x.test\n"))
		require.NoError(t, err)
		assert.Equal(t, "http://x.test", cfg.API.BaseURL)
		assert.Equal(t, 10, cfg.Selector.PageSize)
		assert.Equal(t, 500*time.Millisecond, cfg.Selector.Debounce)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := config.Parse([]byte(`{{{`))
		assert.Error(t, err)
	})
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.API.Token = "abc"

	data, err := config.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debounce: 500ms")

	parsed, err := config.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, parsed)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, config.Validate(config.Default()))

	cfg := config.Default()
	cfg.API.BaseURL = "not a url"
	cfg.Selector.PageSize = 0
	cfg.Log.Level = "verbose"
	err := config.Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BaseURL")
	assert.Contains(t, err.Error(), "PageSize")
	assert.Contains(t, err.Error(), "Level")
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvLogFile, "")
	dir := t.TempDir()

	cfg, err := config.Load(filepath.Join(dir, "config.yaml"), "")
	require.NoError(t, err)
	assert.Equal(t, config.Default().API.BaseURL, cfg.API.BaseURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, config.Save(path, config.Default()))

	t.Setenv(config.EnvAPIURL, "https://admin.example.com")
	t.Setenv(config.EnvToken, "tok")
	t.Setenv(config.EnvLogFile, "")

	cfg, err := config.Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "https://admin.example.com", cfg.API.BaseURL)
	assert.Equal(t, "tok", cfg.API.Token)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("COACH_ADMIN_LOG_FILE=/var/log/coach.log\n"), 0644))

	// godotenv never overrides variables that are already set.
	t.Setenv(config.EnvAPIURL, "")
	os.Unsetenv(config.EnvLogFile)
	t.Cleanup(func() { os.Unsetenv(config.EnvLogFile) })

	cfg, err := config.Load(filepath.Join(dir, "missing.yaml"), envFile)
	require.NoError(t, err)
	assert.Equal(t, "/var/log/coach.log", cfg.Log.File)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("selector:\n  page_size: 0\n"), 0644))
	t.Setenv(config.EnvAPIURL, "")

	_, err := config.Load(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PageSize")
}

func TestSave_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, config.Save(path, config.Default()))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}
