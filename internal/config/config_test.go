// AngelaMos | 2026
// config_test.go

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
database:
  url: postgres://localhost:5432/contentai_test
redis:
  url: redis://localhost:6379/0
`

func TestLoadMinimalConfig(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	cfg, err := load(path)
	require.NoError(t, err)

	// Defaults fill everything the file leaves out.
	assert.Equal(t, "ContentAI", cfg.App.Name)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTokenExpire)
	assert.Equal(t, "gemini-pro", cfg.Generation.Model)
	assert.Equal(t, 2*time.Hour, cfg.Generation.ClientTTL)
	assert.Equal(t, "log", cfg.Mail.Driver)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	t.Setenv("GOOGLE_API_KEY", "env-api-key")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GENERATION_MODEL", "gemini-ultra")

	cfg, err := load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-api-key", cfg.Generation.APIKey)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "gemini-ultra", cfg.Generation.Model)
}

func TestLoadMissingDatabaseURL(t *testing.T) {
	path := writeConfigFile(t, `
redis:
  url: redis://localhost:6379/0
`)

	_, err := load(path)
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoadRejectsBadMailDriver(t *testing.T) {
	path := writeConfigFile(t, minimalConfig+`
mail:
  driver: carrier-pigeon
`)

	_, err := load(path)
	assert.ErrorContains(t, err, "mail.driver")
}

func TestLoadRejectsNonPositiveClientTTL(t *testing.T) {
	path := writeConfigFile(t, minimalConfig+`
generation:
  client_ttl: 0s
`)

	_, err := load(path)
	assert.ErrorContains(t, err, "client_ttl")
}

func TestLoadDefaultTimeoutsAllowFullGeneration(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	cfg, err := load(path)
	require.NoError(t, err)

	assert.Greater(t, cfg.Server.WriteTimeout, cfg.Generation.RequestTimeout)
}

func TestLoadRejectsWriteTimeoutShorterThanGeneration(t *testing.T) {
	path := writeConfigFile(t, minimalConfig+`
server:
  write_timeout: 30s
generation:
  request_timeout: 120s
`)

	_, err := load(path)
	assert.ErrorContains(t, err, "server.write_timeout")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
