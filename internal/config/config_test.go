package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults fill missing keys", func(t *testing.T) {
		// Given: a config file with only the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: loading it
		conf, err := Load(path)

		// Then: defaults are applied
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, InterfaceHTTP, conf.Interface)
		assert.False(t, conf.Redis.Enabled)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.False(t, conf.Game.ChooseSymbol)
		assert.Equal(t, "X", conf.Game.HumanMark)
		assert.Equal(t, "local", conf.Game.SessionID)
		assert.Equal(t, int64(20), conf.Game.HistorySize)
	})

	t.Run("Nested keys", func(t *testing.T) {
		path := writeConfig(t, `
interface: cli
redis:
  enabled: true
  host: redis
  port: "6380"
game:
  choose-symbol: true
  session-id: kitchen
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, InterfaceCLI, conf.Interface)
		assert.True(t, conf.Redis.Enabled)
		assert.Equal(t, "redis:6380", conf.Redis.GetRedisAddr())
		assert.True(t, conf.Game.ChooseSymbol)
		assert.Equal(t, "kitchen", conf.Game.SessionID)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.Error(t, err)
		assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "absent.yml")) })
	})
}
