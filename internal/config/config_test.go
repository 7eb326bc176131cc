package config_test

import (
	"testing"
	"time"

	"github.com/isaacjstriker/blockdrop/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"DATABASE_URL", "SERVER_PORT", "SERVER_HOST", "DEBUG", "SUBMIT_COOLDOWN", "API_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite3://blockdrop.db", cfg.DatabaseURL)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "localhost:8080", cfg.ListenAddr())
	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.SubmitCooldown)
	assert.False(t, cfg.Debug)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("DEBUG", "true")
	t.Setenv("SUBMIT_COOLDOWN", "2m")
	t.Setenv("RULES_SCRIPT", "custom.lua")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr())
	assert.True(t, cfg.Debug)
	assert.Equal(t, 2*time.Minute, cfg.SubmitCooldown)
	assert.Equal(t, "custom.lua", cfg.RulesScript)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", "eighty")
	t.Setenv("DEBUG", "maybe")
	t.Setenv("SUBMIT_COOLDOWN", "soon")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 10*time.Second, cfg.SubmitCooldown)
}

func TestLoadServerGeneratesSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "")

	_, err := config.LoadServer()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET was missing")

	t.Setenv("JWT_SECRET", "secret")
	cfg, err := config.LoadServer()
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.JWTSecret)
}
