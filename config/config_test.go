package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDBConfigByEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("QC_DB_HOST", "db.internal")
	t.Setenv("QC_DB_USER", "spot")
	t.Setenv("QC_DB_PASSWORD", "secret")
	t.Setenv("QC_DB_NAME", "spotbook")
	t.Setenv("QC_DB_PORT", "5432")
	t.Setenv("DB_SSLMODE", "disable")

	dsn, err := getDBConfigByEnv("qc")
	require.NoError(t, err)
	assert.Equal(t, "host=db.internal user=spot password=secret dbname=spotbook port=5432 sslmode=disable TimeZone=UTC", dsn)

	_, err = getDBConfigByEnv("staging")
	assert.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost/spotbook")
	dsn, err = getDBConfigByEnv("staging")
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/spotbook", dsn)
}

func TestLoadSettings(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("PORT", "")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("JWT_EXPIRES_MINUTES", "30")
	t.Setenv("LOG_LEVEL", "debug")

	s := LoadSettings()
	assert.Equal(t, "8083", s.Port)
	assert.Equal(t, "memory", s.StoreDriver)
	assert.Equal(t, 30*time.Minute, s.TokenTTL)
	assert.True(t, s.SecureCookie)

	t.Setenv("JWT_EXPIRES_MINUTES", "soon")
	assert.Equal(t, 7*24*time.Hour, LoadSettings().TokenTTL)
}

func TestNewStoreMemory(t *testing.T) {
	st, err := NewStore(Settings{StoreDriver: "memory"})
	require.NoError(t, err)
	assert.NotNil(t, st)

	_, err = NewStore(Settings{StoreDriver: "mongo"})
	assert.Error(t, err)
}

func TestConnectCloudinaryOptional(t *testing.T) {
	t.Setenv("CLOUDINARY_CLOUD_NAME", "")
	cld, err := ConnectCloudinary()
	require.NoError(t, err)
	assert.Nil(t, cld)
}
