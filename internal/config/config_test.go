package config

import (
	"errors"
	"testing"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/users")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_SECRET", "secret")
}

func restore() {
	loadDotEnv = func() error { return godotenv.Load() }
	readEnv = cleanenv.ReadEnv
}

func TestLoadDefaults(t *testing.T) {
	t.Cleanup(restore)
	loadDotEnv = func() error { return errors.New("no .env") }
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 0, cfg.RedisDB)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.Equal(t, 1, cfg.WorkerCount)
	require.Equal(t, 5*time.Minute, cfg.UserCacheTTL)
	require.Equal(t, float64(10), cfg.WriteRateLimit)
	require.Equal(t, 20, cfg.WriteRateBurst)
	require.True(t, cfg.IsDevelopment())
}

func TestLoadOverrides(t *testing.T) {
	t.Cleanup(restore)
	setRequired(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("WORKER_COUNT", "4")

	cfg, err := Load()
	require.NoError(t, err)
	require.False(t, cfg.IsDevelopment())
	require.Equal(t, 2, cfg.RedisDB)
	require.Equal(t, 90*time.Minute, cfg.TokenTTL)
	require.Equal(t, 4, cfg.WorkerCount)
}

func TestLoadErrors(t *testing.T) {
	t.Cleanup(restore)
	loadDotEnv = func() error { return nil }

	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	require.Error(t, err)

	setRequired(t)
	t.Setenv("REDIS_DB", "bad")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("REDIS_DB", "0")
	t.Setenv("WORKER_COUNT", "0")
	_, err = Load()
	require.ErrorContains(t, err, "WORKER_COUNT")

	t.Setenv("WORKER_COUNT", "1")
	t.Setenv("WRITE_RATE_LIMIT", "-1")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("WRITE_RATE_LIMIT", "1")
	readEnv = func(any) error { return errors.New("read") }
	_, err = Load()
	require.ErrorContains(t, err, "read")
}
