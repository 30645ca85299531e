// Package config loads CLI defaults from an optional config file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the examine CLI configuration.
type Config struct {
	Budget       int    `json:"budget" mapstructure:"budget"`
	DetectCycles bool   `json:"detect_cycles" mapstructure:"detect_cycles"`
	Color        string `json:"color" mapstructure:"color"`
	LogLevel     string `json:"log_level" mapstructure:"log_level"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Budget:   1000,
		Color:    ColorAuto,
		LogLevel: "info",
	}
}

// Load reads configuration. With an explicit path that file must exist;
// otherwise .examine.{yaml,json,toml} is looked up in the working directory
// and then $HOME, and a missing file means defaults. EXAMINE_* environment
// variables override file values.
func Load(path string) (*Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetDefault("budget", def.Budget)
	v.SetDefault("detect_cycles", def.DetectCycles)
	v.SetDefault("color", def.Color)
	v.SetDefault("log_level", def.LogLevel)

	v.SetEnvPrefix("EXAMINE")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".examine")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the CLI cannot act on.
func (c *Config) Validate() error {
	if c.Budget < 1 {
		return fmt.Errorf("budget must be at least 1, got %d", c.Budget)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be one of auto, always, never; got %q", c.Color)
	}
	return nil
}
