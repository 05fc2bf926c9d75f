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

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 30*time.Second, cfg.ConnectTimeout)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TRACKER_ENV", "production")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("BOT_API_KEY", "secret")
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://tracker@localhost/tracker")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CONNECT_TIMEOUT", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://panela.example.com,")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "secret", cfg.BotAPIKey)
	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.Equal(t, "postgres://tracker@localhost/tracker", cfg.DatabaseURL)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "https://panela.example.com"}, cfg.CORSAllowedOrigins)
	assert.NoError(t, cfg.ValidateServe())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http_addr: ":7070"
redis_addr: "redis:6379"
cors_allowed_origins:
  - http://localhost:5173
`), 0o600))

	t.Setenv("REDIS_ADDR", "override:6379")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.HTTPAddr)
	assert.Equal(t, "override:6379", cfg.RedisAddr)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowedOrigins)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      Config
		expected error
	}{
		{"redis", Config{StoreBackend: BackendRedis, ConnectTimeout: time.Second}, nil},
		{"postgres without url", Config{StoreBackend: BackendPostgres, ConnectTimeout: time.Second}, ErrMissingDatabaseURL},
		{"unknown backend", Config{StoreBackend: "mongo", ConnectTimeout: time.Second}, ErrUnknownBackend},
		{"zero timeout", Config{StoreBackend: BackendRedis}, ErrInvalidTimeout},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestValidateServe(t *testing.T) {
	assert.ErrorIs(t, (&Config{}).ValidateServe(), ErrMissingAPIKey)
	assert.ErrorIs(t, (&Config{BotAPIKey: "k", DiscordToken: "t"}).ValidateServe(), ErrMissingDiscordAppID)
	assert.NoError(t, (&Config{BotAPIKey: "k", DiscordToken: "t", ApplicationID: "app"}).ValidateServe())
}
