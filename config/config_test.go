package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.Nil(t, cfg)
	require.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "users.json", cfg.UsersFile)
	require.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	require.False(t, cfg.CookieSecure)
	require.Empty(t, cfg.RedisAddr)
}

func TestProductionForcesSecureCookies(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("COOKIE_SECURE", "false")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.CookieSecure)
}

func TestCORSOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: "http://localhost:3000, https://chefai.app ,"}
	require.Equal(t, []string{"http://localhost:3000", "https://chefai.app"}, cfg.CORSOrigins())

	empty := &Config{}
	require.Empty(t, empty.CORSOrigins())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{
		DBUser: "chef", DBPassword: "pw", DBHost: "db", DBPort: "5433",
		DBName: "chefai", DBSSLMode: "disable",
	}
	require.Equal(t, "postgres://chef:pw@db:5433/chefai?sslmode=disable", cfg.PostgresDSN())
}
