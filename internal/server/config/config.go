// Package config handles configuration for the server component.
//
// Settings come from one of two sources, selected by the
// USE_ENVIRONMENT_CONFIG variable: when it equals "TRUE" everything is read
// from environment variables, otherwise from a YAML file at a
// platform-specific path. On first run with no file present, a template
// (with a freshly generated pepper) is written and ErrConfigCreated is
// returned so the operator can edit it and restart.
package config

import (
	"fmt"
	"net/url"
	"os"
)

// envSwitch selects environment-variable configuration when set to "TRUE".
const envSwitch = "USE_ENVIRONMENT_CONFIG"

// Config holds runtime settings for the server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP endpoint.
//   - DatabaseHost / DatabaseName / DatabaseUser / DatabasePassword:
//     PostgreSQL connection settings.
//   - Pepper: server-wide secret mixed into every password digest. Must be
//     kept out of the database; compromise of the pepper defeats the extra
//     protection it provides.
type Config struct {
	EndpointAddr     string
	DatabaseHost     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string
	Pepper           string
}

// LoadDefaults populates Config with values that have sensible defaults.
// Connection settings and the pepper have no defaults; they must come from
// the environment or the config file.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
}

// DSN builds a PostgreSQL connection string from the loaded settings.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		url.QueryEscape(c.DatabaseUser),
		url.QueryEscape(c.DatabasePassword),
		c.DatabaseHost,
		c.DatabaseName,
	)
}

// LoadConfig builds a Config by applying defaults and then reading either
// environment variables or the platform config file, depending on the
// USE_ENVIRONMENT_CONFIG switch.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if os.Getenv(envSwitch) == "TRUE" {
		if err := parseEnv(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	path, err := DefaultFilePath()
	if err != nil {
		return nil, err
	}
	if err := parseFile(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}
