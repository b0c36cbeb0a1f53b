package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envConfig defines the environment-variable mapping. Connection settings and
// the pepper are required; a missing variable is an error, never a silently
// unset value.
type envConfig struct {
	EndpointAddr     string `env:"ENDPOINT_ADDR"`
	DatabaseHost     string `env:"DATABASE_HOST,required"`
	DatabaseName     string `env:"DATABASE_NAME,required"`
	DatabaseUser     string `env:"DATABASE_USERNAME,required"`
	DatabasePassword string `env:"DATABASE_PASSWORD,required"`
	Pepper           string `env:"PASSWORD_PEPPER,required"`
}

// parseEnv populates the Config from environment variables.
func parseEnv(cfg *Config) error {
	c := envConfig{}
	if err := env.Parse(&c); err != nil {
		return fmt.Errorf("environment config: %w", err)
	}

	if c.EndpointAddr != "" {
		cfg.EndpointAddr = c.EndpointAddr
	}
	cfg.DatabaseHost = c.DatabaseHost
	cfg.DatabaseName = c.DatabaseName
	cfg.DatabaseUser = c.DatabaseUser
	cfg.DatabasePassword = c.DatabasePassword
	cfg.Pepper = c.Pepper

	return nil
}
