package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "STORE_BACKEND", "STATE_FILE", "REDIS_ADDR", "REDIS_DB", "MONGODB_URI",
		"SQLITE_PATH", "JWT_SECRET", "AUTH_PASSWORD_HASH", "ALLOWED_ORIGINS",
		"ROUTE_MISSING_COORDS", "NOMINATIM_SERVER", "SEARCH_CITY_SUFFIX",
		"SEARCH_CACHE_TTL", "SHARE_FRAGMENT", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := NewFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "memory", cfg.StoreBackend)
		assert.Equal(t, "drop", cfg.RouteMissingCoords)
		assert.Equal(t, 24*time.Hour, cfg.SearchCacheTTL)
		assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowedOrigins)
		assert.False(t, cfg.AuthEnabled())
	})

	t.Run("Redis", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORE_BACKEND", "Redis")
		t.Setenv("REDIS_ADDR", "localhost:6379")
		t.Setenv("REDIS_DB", "2")

		cfg, err := NewFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "redis", cfg.StoreBackend)
		assert.Equal(t, 2, cfg.RedisDB)
	})

	t.Run("MissingRedisAddr", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORE_BACKEND", "redis")

		_, err := NewFromEnv()
		require.EqualError(t, err, "REDIS_ADDR environment variable not set")
	})

	t.Run("MissingMongoURI", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORE_BACKEND", "mongo")

		_, err := NewFromEnv()
		require.EqualError(t, err, "MONGODB_URI environment variable not set")
	})

	t.Run("UnknownBackend", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORE_BACKEND", "etcd")

		_, err := NewFromEnv()
		require.Error(t, err)
	})

	t.Run("InvalidRoutePolicy", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ROUTE_MISSING_COORDS", "shuffle")

		_, err := NewFromEnv()
		require.Error(t, err)
	})

	t.Run("AuthNeedsSecret", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("AUTH_PASSWORD_HASH", "$2a$10$abc")

		_, err := NewFromEnv()
		require.EqualError(t, err, "JWT_SECRET environment variable not set")

		t.Setenv("JWT_SECRET", "secret")
		cfg, err := NewFromEnv()
		require.NoError(t, err)
		assert.True(t, cfg.AuthEnabled())
	})

	t.Run("ShareFragmentStripsHash", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SHARE_FRAGMENT", "#abc")
		t.Setenv("SEARCH_CACHE_TTL", "5m")

		cfg, err := NewFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "abc", cfg.ShareFragment)
		assert.Equal(t, 5*time.Minute, cfg.SearchCacheTTL)
	})
}
