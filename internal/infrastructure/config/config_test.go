package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "edipub-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "edipub", cfg.Database.DBName)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.NotZero(t, cfg.JWT.AccessTokenExpiration)
	assert.NotZero(t, cfg.HTTP.ReadTimeout)
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
	assert.NotEmpty(t, cfg.HTTP.CORSAllowMethods)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("EDIPUB_DATABASE_PASSWORD", "secret-from-env")
	t.Setenv("EDIPUB_DATABASE_HOST", "db.internal")
	t.Setenv("EDIPUB_APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret-from-env", cfg.Database.Password)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "9090", cfg.App.Port)
}

func TestLoad_ProductionValidation(t *testing.T) {
	t.Run("requires a jwt secret", func(t *testing.T) {
		t.Setenv("EDIPUB_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("rejects a short jwt secret", func(t *testing.T) {
		t.Setenv("EDIPUB_APP_ENV", "production")
		t.Setenv("EDIPUB_JWT_SECRET", "too-short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "32 characters")
	})

	t.Run("rejects disabled ssl", func(t *testing.T) {
		t.Setenv("EDIPUB_APP_ENV", "production")
		t.Setenv("EDIPUB_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("EDIPUB_DATABASE_PASSWORD", "secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})

	t.Run("accepts a complete production config", func(t *testing.T) {
		t.Setenv("EDIPUB_APP_ENV", "production")
		t.Setenv("EDIPUB_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("EDIPUB_DATABASE_PASSWORD", "secret")
		t.Setenv("EDIPUB_DATABASE_SSLMODE", "require")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "edipub",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%2Fword")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestRedisConfig_RedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.RedisAddr())
}
