package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "storeapi.sqlite3", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "UTC", cfg.Validation.Timezone)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(`
server:
  addr: "127.0.0.1:9000"
  write_timeout: 10s
database:
  path: "/tmp/items.db"
log:
  level: debug
  development: true
validation:
  timezone: "Europe/Ljubljana"
`), 0o644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, "/tmp/items.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)

	loc, err := cfg.Validation.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Ljubljana", loc.String())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STOREAPI_SERVER_ADDR", ":7000")
	t.Setenv("STOREAPI_DATABASE_PATH", "env.db")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "env.db", cfg.Database.Path)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Run("log level", func(t *testing.T) {
		t.Setenv("STOREAPI_LOG_LEVEL", "verbose")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("timezone", func(t *testing.T) {
		t.Setenv("STOREAPI_VALIDATION_TIMEZONE", "Mars/Olympus")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
