package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/tmp/rentnest.db")
	t.Setenv("SESSION_SECRET", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5250", cfg.Port)
	assert.Equal(t, "/tmp/rentnest.db", cfg.DatabasePath)
	assert.Equal(t, 72, cfg.SessionTTLHours)
	assert.Equal(t, "storage", cfg.StorageRoot)
	assert.Equal(t, 60, cfg.LeaseScanInterval)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_TTL_HOURS", "24")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24, cfg.SessionTTLHours)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}
