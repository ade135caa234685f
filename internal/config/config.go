package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration. It is constructed once at
// startup and passed explicitly to whoever needs it.
type Config struct {
	ServerPort        int    `env:"PORT" envDefault:"6060"`
	DatabasePath      string `env:"DATABASE_PATH" envDefault:"./users.db"`
	JWTSecret         string `env:"JWT_SECRET"`
	ProtectUserRoutes bool   `env:"AUTH_PROTECT_USERS" envDefault:"false"`
}

// Load reads configuration from environment variables, loading a .env file
// first when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}
	return cfg, nil
}
