package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "STORE_BACKEND", "MONGO_URL", "MONGO_DB", "POSTGRES_DSN",
	"REDIS_ADDR", "REDIS_PASSWORD", "TOKEN_CACHE_TTL", "BCRYPT_COST",
	"CORS_ALLOWED_ORIGINS", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendMongo, cfg.StoreBackend)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURL)
	assert.Equal(t, "backend", cfg.MongoDB)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, time.Minute, cfg.TokenCacheTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("POSTGRES_DSN", "postgres://u:p@localhost:5432/foods")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("TOKEN_CACHE_TTL", "30s")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com ,")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.Equal(t, "postgres://u:p@localhost:5432/foods", cfg.PostgresDSN)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 30*time.Second, cfg.TokenCacheTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown backend", env: map[string]string{"STORE_BACKEND": "sqlite"}},
		{name: "postgres without dsn", env: map[string]string{"STORE_BACKEND": "postgres"}},
		{name: "bad ttl", env: map[string]string{"TOKEN_CACHE_TTL": "soon"}},
		{name: "negative ttl", env: map[string]string{"TOKEN_CACHE_TTL": "-1m"}},
		{name: "bad cost", env: map[string]string{"BCRYPT_COST": "ten"}},
		{name: "cost too low", env: map[string]string{"BCRYPT_COST": "2"}},
		{name: "cost too high", env: map[string]string{"BCRYPT_COST": "40"}},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
