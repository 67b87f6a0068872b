package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

type ServerConfig struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// StoreConfig 決定活動資料來源；memory 模式從 SeedFile 載入
type StoreConfig struct {
	Backend           string        `env:"EVENT_STORE" envDefault:"memory"`
	SeedFile          string        `env:"SEED_FILE" envDefault:"data/seed.yaml"`
	VenueCacheEnabled bool          `env:"VENUE_CACHE_ENABLED" envDefault:"false"`
	VenueCacheTTL     time.Duration `env:"VENUE_CACHE_TTL" envDefault:"5m"`
}

type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName   string `env:"DB_NAME" envDefault:"postgres"`
	SSLMode  string `env:"DB_SSL_MODE" envDefault:"disable"`
}

type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreMemory:
		if c.Store.SeedFile == "" {
			return fmt.Errorf("SEED_FILE is required when EVENT_STORE=%s", StoreMemory)
		}
	case StorePostgres:
	default:
		return fmt.Errorf("unknown EVENT_STORE %q", c.Store.Backend)
	}
	if c.Store.VenueCacheEnabled && c.Store.VenueCacheTTL <= 0 {
		return fmt.Errorf("VENUE_CACHE_TTL must be positive, got %s", c.Store.VenueCacheTTL)
	}
	return nil
}

func LoadTestConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":0",
			LogLevel:        "debug",
			ShutdownTimeout: time.Second,
		},
		Store: StoreConfig{
			Backend:       StorePostgres,
			VenueCacheTTL: time.Minute,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5433", // 測試 DB 用 5433 port
			User:     "postgres",
			Password: "postgres",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Host:     "localhost",
			Port:     "6380", // 測試 Redis 用 6380 port
			Password: "",
			DB:       1,
		},
	}
}
