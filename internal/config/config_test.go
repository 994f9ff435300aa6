package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("THESIS_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "Thesis API", cfg.AppName)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, "*", cfg.CORSAllowOrigins)
	require.Equal(t, 25, cfg.DBMaxOpenConns)
	require.Equal(t, 5, cfg.DBMaxIdleConns)
	require.Equal(t, 30*time.Minute, cfg.DBConnMaxLifetime)
	require.Equal(t, 5*time.Minute, cfg.StatsCacheTTL)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	_, err := Load()
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("THESIS_JWT_SECRET", "test-secret")
	t.Setenv("THESIS_CORS_ALLOW_ORIGINS", "https://portal.uni.test")
	t.Setenv("THESIS_DATABASE_MAX_OPEN_CONNS", "10")
	t.Setenv("THESIS_DATABASE_CONN_MAX_LIFETIME", "15m")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://portal.uni.test", cfg.CORSAllowOrigins)
	require.Equal(t, 10, cfg.DBMaxOpenConns)
	require.Equal(t, 15*time.Minute, cfg.DBConnMaxLifetime)
}
