package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("CART_BACKEND", "")
	t.Setenv("HTTP_ADDR", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, BackendMemory, cfg.CartBackend)
	assert.Equal(t, 15*time.Second, cfg.ApperTimeout)
	assert.Equal(t, "5432", cfg.DB.Port)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STORE_BACKEND=postgres\nDB_HOST=db.internal\nREDIS_DB=2\nSEED_DEMO_DATA=false\n"), 0o600))

	for _, key := range []string{"STORE_BACKEND", "DB_HOST", "REDIS_DB", "SEED_DEMO_DATA"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.False(t, cfg.SeedDemoData)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("STORE_BACKEND", "apper")
	t.Setenv("APPER_URL", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "APPER_URL")

	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("CART_BACKEND", "memcached")
	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "CART_BACKEND")
}
