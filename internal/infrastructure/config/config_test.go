package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8090", cfg.Server.Port)
	assert.Equal(t, "./data", cfg.Workspace.Root)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.True(t, cfg.Backup.OverwriteDefault)
	assert.False(t, cfg.Backup.DeleteDefault)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("WORKSPACE_ROOT", "/tmp/fb")
	t.Setenv("BACKUP_ON_DELETE", "true")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "/tmp/fb", cfg.Workspace.Root)
	assert.True(t, cfg.Backup.DeleteDefault)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadDefaultsWhenEnvUnset(t *testing.T) {
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Server.Port, cfg.Server.Port)
}
