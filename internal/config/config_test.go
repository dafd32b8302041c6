package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults apply when no file exists", func(t *testing.T) {
		conf, err := Load(filepath.Join(t.TempDir(), "config.yml"))

		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 20, conf.Redis.PoolSize)
		assert.Equal(t, 5*time.Second, conf.Room.TeardownDelay)
		assert.Equal(t, 16, conf.Room.SendBuffer)
		assert.Equal(t, []string{"*"}, conf.WebSocket.AllowedOrigins)
	})

	t.Run("File values are read and env wins over them", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "config.yml", `
log-level: debug
http-port: "9191"
storage: memory
room:
  teardown-delay: 2s
websocket:
  allowed-origins: ["example.com"]
`)
		t.Setenv("HTTP_PORT", "9292")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9292", conf.HTTPPort)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, 2*time.Second, conf.Room.TeardownDelay)
		assert.Equal(t, []string{"example.com"}, conf.WebSocket.AllowedOrigins)
	})

	t.Run("A .env beside the file is loaded", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ".env", "SOCKET_PORT=7070\n")
		t.Cleanup(func() {
			_ = os.Unsetenv("SOCKET_PORT")
		})

		conf, err := Load(filepath.Join(dir, "config.yml"))

		require.NoError(t, err)
		assert.Equal(t, "7070", conf.SocketPort)
	})

	t.Run("Invalid storage settings are rejected", func(t *testing.T) {
		dir := t.TempDir()

		_, err := Load(writeFile(t, dir, "config.yml", "storage: sqlite\n"))
		require.Error(t, err)

		_, err = Load(writeFile(t, dir, "config.yml", "storage: postgres\n"))
		require.Error(t, err)
	})
}
