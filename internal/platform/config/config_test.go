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
	cfg := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "dev", cfg.Environment)
	assert.NotEmpty(t, cfg.JWTSigningKey)
	assert.Greater(t, cfg.RateLimitRPS, 0.0)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"addr: \":9090\"\nenvironment: staging\ntokenTTL: 30m\nauditDBPath: /tmp/audit.db\nrateLimitRPS: 5\n",
	), 0o600))

	cfg := Load(path)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "/tmp/audit.db", cfg.AuditDBPath)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9090\"\n"), 0o600))

	t.Setenv("ALLOGRAFT_ADDR", ":7070")
	t.Setenv("TOKEN_TTL", "1h")

	cfg := Load(path)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "1h0m0s", cfg.TokenTTL.String())
}
