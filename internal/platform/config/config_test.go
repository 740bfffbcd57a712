package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"TOONPASS_ADDR", "DATABASE_URL", "SQLITE_PATH", "REDIS_URL", "CATALOG_CACHE_TTL", "SEED_DEMO_DATA"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.SeedDemo)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, time.Minute, cfg.Catalog.CacheTTL)
	assert.Equal(t, 1024, cfg.Catalog.CacheSize)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("TOONPASS_ADDR", ":9999")
	t.Setenv("SEED_DEMO_DATA", "true")
	t.Setenv("CATALOG_CACHE_TTL", "30s")
	t.Setenv("CATALOG_CACHE_SIZE", "bogus")

	cfg := FromEnv()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.True(t, cfg.SeedDemo)
	assert.Equal(t, 30*time.Second, cfg.Catalog.CacheTTL)
	assert.Equal(t, 1024, cfg.Catalog.CacheSize, "unparseable values keep the default")
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("TOONPASS_TEST_A=fromfile\nTOONPASS_TEST_B=fromfile\n"), 0o600))
	t.Setenv("TOONPASS_TEST_A", "fromenv")
	t.Cleanup(func() { os.Unsetenv("TOONPASS_TEST_B") })

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "fromenv", os.Getenv("TOONPASS_TEST_A"))
	assert.Equal(t, "fromfile", os.Getenv("TOONPASS_TEST_B"))
}
