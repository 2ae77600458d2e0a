// Package config loads the broker's runtime configuration from the
// environment. All variables carry the QUIZHUB_ prefix; command-line flags
// on the server binary may override individual values after loading.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the externally configurable behavior of the broker: the
// listening socket, the static admin secret gating room creation, and the
// default player ceiling for new rooms.
type Config struct {
	Host            string `envconfig:"HOST" default:"localhost"`
	Port            int    `envconfig:"PORT" default:"8080"`
	AdminKey        string `envconfig:"ADMIN_KEY" default:"1453"`
	DefaultCapacity int    `envconfig:"DEFAULT_CAPACITY" default:"20"`
	Debug           bool   `envconfig:"DEBUG" default:"false"`
}

// Load reads configuration from QUIZHUB_-prefixed environment variables,
// applying defaults for anything unset.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("quizhub", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.DefaultCapacity < 1 {
		return nil, fmt.Errorf("invalid default capacity: %d", cfg.DefaultCapacity)
	}

	return &cfg, nil
}

// Addr returns the host:port address the HTTP server should bind to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
