package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDBConfig_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_TX_ISOLATION", "")
	t.Setenv("DB_DSN", "")
	t.Setenv("DB_NAME", "")

	cfg, err := LoadDBConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Driver)
	assert.Equal(t, "serializable", cfg.TxIsolation)
	assert.Contains(t, cfg.PostgresDSN(), "dbname=store_db")
}

func TestLoadDBConfig_SQLiteDefaultDSN(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_DSN", "")

	cfg, err := LoadDBConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Driver)
	assert.Contains(t, cfg.DSN, "_foreign_keys=1")
}

func TestLoadDBConfig_Rejects(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	_, err := LoadDBConfig()
	require.Error(t, err)

	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_TX_ISOLATION", "chaos")
	_, err = LoadDBConfig()
	require.Error(t, err)
}

func TestLoadAppConfig(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", " Owner@Example.com, ,ops@example.com")
	t.Setenv("TENANT_CACHE_TTL", "30s")
	t.Setenv("RESERVED_TENANT_SLUG", "")
	t.Setenv("APP_ENV", "development")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"owner@example.com", "ops@example.com"}, cfg.AdminEmails)
	assert.Equal(t, 30*time.Second, cfg.TenantCacheTTL)
	// пустое значение = дефолт
	assert.Equal(t, "zo-system", cfg.ReservedTenantSlug)
	assert.False(t, cfg.TwilioEnabled())
}

func TestLoadAppConfig_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadAppConfig()
	require.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("STORE_TEST_FROM_FILE=hello\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("STORE_TEST_FROM_FILE") })

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "hello", os.Getenv("STORE_TEST_FROM_FILE"))

	// отсутствующий файл не ошибка
	require.NoError(t, LoadEnvFile(filepath.Join(dir, "missing.env")))
}
