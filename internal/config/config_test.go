package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("ACCESS_TOKEN", "s3cret")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("LISTING_BACKEND", "Postgres")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()

	assert.Equal(t, "s3cret", cfg.AccessToken)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, ListingBackendPostgres, cfg.Store.ListingBackend)
	assert.Equal(t, int64(1024), cfg.Upload.MaxFileBytes)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ACCESS_TOKEN", "PORT", "DATA_DIR", "DATA_FILE", "IMAGE_BACKEND", "MAX_UPLOAD_FILES"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "Teste", cfg.AccessToken)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ImageBackendLocal, cfg.Store.ImageBackend)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxFileBytes)
	assert.Equal(t, 5, cfg.Upload.MaxFiles)
	assert.Equal(t, filepath.Join("data", "properties.json"), cfg.Store.DataPath())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvInt64(t *testing.T) {
	key := "TEST_INT64_VAR"
	defer os.Unsetenv(key)

	os.Setenv(key, "6291456")
	assert.Equal(t, int64(6291456), getEnvInt64(key, 1))

	os.Setenv(key, "-5")
	assert.Equal(t, int64(1), getEnvInt64(key, 1))

	os.Setenv(key, "nope")
	assert.Equal(t, int64(1), getEnvInt64(key, 1))
}
