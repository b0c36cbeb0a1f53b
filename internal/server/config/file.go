package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/twinsight/dashboard-auth/internal/shared"
)

// ErrConfigCreated is returned when no config file existed and a template was
// written. The caller should print the path and exit cleanly so the operator
// can fill in the template and restart.
var ErrConfigCreated = errors.New("config template created")

// pepperLength is the size of the generated pepper in the template.
const pepperLength = 64

// fileConfig is the YAML shape of the config file. It is an intermediate DTO;
// after unmarshalling its fields are copied into the runtime Config.
type fileConfig struct {
	EndpointAddr     string `yaml:"endpoint_addr,omitempty"`
	DatabaseHost     string `yaml:"database_host"`
	DatabaseName     string `yaml:"database_name"`
	DatabaseUser     string `yaml:"database_username"`
	DatabasePassword string `yaml:"database_password"`
	Pepper           string `yaml:"password_pepper"`
}

// DefaultFilePath returns the platform-specific location of the config file.
//
// Windows:       C:\Program Files\TwinsightContentDashboard\config.yml
// Linux/FreeBSD: /etc/dashboard-auth/config.yml
// Other:         config.yml next to the executable.
func DefaultFilePath() (string, error) {
	switch runtime.GOOS {
	case "windows":
		return `C:\Program Files\TwinsightContentDashboard\config.yml`, nil
	case "linux", "freebsd":
		return "/etc/dashboard-auth/config.yml", nil
	default:
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("resolving executable path: %w", err)
		}
		return filepath.Join(filepath.Dir(exe), "config.yml"), nil
	}
}

// parseFile loads configuration from the YAML file at path. If the file does
// not exist, a template is written and ErrConfigCreated is returned.
func parseFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := writeTemplate(path); err != nil {
			return err
		}
		return fmt.Errorf("%w at %s, edit it and restart", ErrConfigCreated, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	c := fileConfig{}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := validateFileConfig(&c); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
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

// validateFileConfig rejects empty required fields instead of proceeding
// with unset values.
func validateFileConfig(c *fileConfig) error {
	required := map[string]string{
		"database_host":     c.DatabaseHost,
		"database_name":     c.DatabaseName,
		"database_username": c.DatabaseUser,
		"database_password": c.DatabasePassword,
		"password_pepper":   c.Pepper,
	}
	for field, value := range required {
		if value == "" {
			return fmt.Errorf("required field %q is not set", field)
		}
	}
	return nil
}

// writeTemplate creates the config directory and writes an example config
// with a freshly generated pepper.
func writeTemplate(path string) error {
	pepper, err := shared.MakeRandAlphanumericString(pepperLength)
	if err != nil {
		return fmt.Errorf("generating pepper: %w", err)
	}

	template := fileConfig{
		DatabaseHost:     "YOUR_DATABASE_HOST",
		DatabaseName:     "YOUR_DATABASE_NAME",
		DatabaseUser:     "YOUR_DATABASE_USERNAME",
		DatabasePassword: "YOUR_DATABASE_PASSWORD",
		Pepper:           pepper,
	}

	data, err := yaml.Marshal(&template)
	if err != nil {
		return fmt.Errorf("serializing config template: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}
