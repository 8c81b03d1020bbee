// Package server exposes the simulation core over a small JSON HTTP API. The
// core stays unaware of the wire format; this layer only parses requests and
// serializes results.
package server

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address string        `mapstructure:"address"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// LoggingConfig holds logging options shared by the server and the CLI.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// DefaultAddress is used when no listen address is configured.
const DefaultAddress = ":8080"

// LoadConfig loads the server configuration from a YAML file via viper. A
// missing path returns defaults without error.
func LoadConfig(configPath string) (*Config, error) {
	cfg := &Config{Address: DefaultAddress}
	if configPath == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}
	return cfg, nil
}
