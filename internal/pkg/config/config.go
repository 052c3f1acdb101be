package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ServerAddr      string        `env:"SERVER_ADDR" envDefault:":8080"`
	AdminAddr       string        `env:"ADMIN_ADDR" envDefault:":9091"`
	PostgresURL     string        `env:"POSTGRES_URL,required"`
	RedisAddr       string        `env:"REDIS_ADDR,required"`
	TokenSecret     string        `env:"TOKEN_SECRET,required"`
	TokenExpiry     time.Duration `env:"TOKEN_EXPIRY" envDefault:"24h"`
	TenantCacheTTL  time.Duration `env:"TENANT_CACHE_TTL" envDefault:"1m"`
	OrderCacheTTL   time.Duration `env:"ORDER_CACHE_TTL" envDefault:"5m"`
	BaseDomain      string        `env:"BASE_DOMAIN"` // enables <slug>.<BaseDomain> tenant resolution
	OrderRatePerSec float64       `env:"ORDER_RATE_PER_SEC" envDefault:"20"`
	OrderRateBurst  int           `env:"ORDER_RATE_BURST" envDefault:"40"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
