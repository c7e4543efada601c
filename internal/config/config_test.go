package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "DB_DRIVER", "DB_SQLITE_PATH", "FLASH_STORE", "FLASH_TTL", "APP_PORT"} {
		// restored after the test
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "data/library.sqlite", cfg.Database.SQLitePath)
	assert.Equal(t, FlashStoreCookie, cfg.Flash.Store)
	assert.Equal(t, 5*time.Minute, cfg.Flash.TTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Postgres(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_MAX_CONN_LIFETIME", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	pg := cfg.PostgresConfig()
	assert.Equal(t, "db.internal", pg.Host)
	assert.Equal(t, 6543, pg.Port)
	assert.Equal(t, "pw", pg.Password)
	assert.Equal(t, 30*time.Minute, pg.MaxConnLifetime)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:      AppConfig{Environment: "development"},
			Database: DatabaseConfig{Driver: DriverSQLite, SQLitePath: "x.sqlite"},
			Flash:    FlashConfig{Store: FlashStoreCookie, Secret: defaultFlashSecret, TTL: time.Minute},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "DB_DRIVER"},
		{"empty sqlite path", func(c *Config) { c.Database.SQLitePath = "" }, "DB_SQLITE_PATH"},
		{"unknown flash store", func(c *Config) { c.Flash.Store = "memcached" }, "FLASH_STORE"},
		{"non-positive ttl", func(c *Config) { c.Flash.TTL = 0 }, "FLASH_TTL"},
		{"production default secret", func(c *Config) { c.App.Environment = "production" }, "FLASH_SECRET"},
		{"production postgres without password", func(c *Config) {
			c.App.Environment = "production"
			c.Flash.Secret = "real"
			c.Database.Driver = DriverPostgres
		}, "DB_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
