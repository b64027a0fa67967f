package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters, loaded from the
// environment.
type Config struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	ServerPort  string `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	JWTSecret          string `env:"JWT_SECRET_KEY"`
	JWTExpirationHours int64  `env:"JWT_EXPIRATION_HOURS" envDefault:"24"`

	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`

	InitialAdminEmail string `env:"INITIAL_ADMIN_EMAIL"`

	DB DBConfig `envPrefix:"DB_"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}
	return &cfg, nil
}

// IsProduction reports whether internal error detail must stay server-side.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
