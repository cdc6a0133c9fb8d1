package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "titlematch.db", cfg.GetDBPath())
	assert.Equal(t, 256, cfg.GetCacheCapacity())
	assert.Equal(t, 15*time.Minute, cfg.GetCacheTTL())
	assert.Equal(t, 10*time.Second, cfg.GetProviderTimeout())
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
db_path: /var/lib/titlematch/catalog.db
datasets:
  steam: /var/lib/titlematch/steam.json
  switch: /var/lib/titlematch/switch.json
cache:
  capacity: 512
  ttl: 5m
timeouts:
  provider: 3s
  catalog: 2s
logging:
  format: json
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("TITLEMATCH_CONFIG", path)
	t.Setenv("TITLEMATCH_DB", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/titlematch/catalog.db", cfg.GetDBPath())
	assert.Equal(t, "/var/lib/titlematch/steam.json", cfg.Datasets["steam"])
	assert.Equal(t, 512, cfg.GetCacheCapacity())
	assert.Equal(t, 5*time.Minute, cfg.GetCacheTTL())
	assert.Equal(t, 3*time.Second, cfg.GetProviderTimeout())
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: from-file.db\n"), 0o644))
	t.Setenv("TITLEMATCH_CONFIG", path)
	t.Setenv("TITLEMATCH_DB", "from-env.db")
	t.Setenv("IGDB_CLIENT_ID", "client-123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env.db", cfg.GetDBPath())
	assert.Equal(t, "client-123", cfg.IGDB.ClientID)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("TITLEMATCH_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	assert.Error(t, err, "an explicitly configured path must exist")
}

func TestGettersApplyDefaults(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, "titlematch.db", cfg.GetDBPath())
	assert.Equal(t, 256, cfg.GetCacheCapacity())
	assert.Equal(t, 15*time.Minute, cfg.GetCacheTTL())
}

func TestDurationAcceptsSeconds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  ttl: 300\n"), 0o644))
	t.Setenv("TITLEMATCH_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.GetCacheTTL())
}
