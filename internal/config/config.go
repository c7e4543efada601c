package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	FlashStoreCookie = "cookie"
	FlashStoreRedis  = "redis"

	defaultFlashSecret = "change-me-flash-secret"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Flash    FlashConfig
}

type AppConfig struct {
	Name        string `env:"APP_NAME" envDefault:"Library Catalog"`
	Environment string `env:"APP_ENV" envDefault:"development"` // development, production
	Port        string `env:"APP_PORT" envDefault:"8080"`
	Version     string `env:"APP_VERSION" envDefault:"1.0.0"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

type DatabaseConfig struct {
	Driver     string `env:"DB_DRIVER" envDefault:"sqlite"`
	SQLitePath string `env:"DB_SQLITE_PATH" envDefault:"data/library.sqlite"`

	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"library"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" envDefault:"library"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	MaxConns          int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	MinConns          int32         `env:"DB_MIN_CONNS" envDefault:"1"`
	MaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"5m"`
	MaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"1m"`
	HealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	MaxRetries        int           `env:"DB_MAX_RETRIES" envDefault:"5"`
	RetryDelay        time.Duration `env:"DB_RETRY_DELAY" envDefault:"1s"`
	ConnectTimeout    time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"10s"`
}

type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// FlashConfig điều khiển nơi lưu flash messages giữa hai request
type FlashConfig struct {
	Store        string        `env:"FLASH_STORE" envDefault:"cookie"` // cookie, redis
	Secret       string        `env:"FLASH_SECRET" envDefault:"change-me-flash-secret"`
	TTL          time.Duration `env:"FLASH_TTL" envDefault:"5m"`
	CookieName   string        `env:"FLASH_COOKIE_NAME" envDefault:"library_flash"`
	CookieSecure bool          `env:"FLASH_COOKIE_SECURE" envDefault:"false"`
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("DB_SQLITE_PATH must be set when DB_DRIVER=%s", DriverSQLite)
		}
	case DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	switch c.Flash.Store {
	case FlashStoreCookie, FlashStoreRedis:
	default:
		return fmt.Errorf("unsupported FLASH_STORE %q", c.Flash.Store)
	}

	if c.Flash.TTL <= 0 {
		return fmt.Errorf("FLASH_TTL must be positive")
	}

	if c.IsProduction() {
		if c.Flash.Secret == defaultFlashSecret {
			return fmt.Errorf("FLASH_SECRET must be set in production")
		}
		if c.Database.Driver == DriverPostgres && c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
