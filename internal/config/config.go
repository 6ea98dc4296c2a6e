// Package config loads server configuration from defaults, an optional TOML
// file, optional dotenv files and the environment, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Router names accepted by Config.Router.
const (
	RouterEcho = "echo"
	RouterChi  = "chi"
)

// Config is the server configuration.
type Config struct {
	Addr   string `toml:"addr" env:"CEREBRO_ADDR"`
	Router string `toml:"router" env:"CEREBRO_ROUTER"`

	// SecretKey seals gate props. Empty means a random per-process key.
	SecretKey string `toml:"secret_key" env:"CEREBRO_SECRET_KEY"`

	// PublishableKey is the payment provider's publishable key, handed to
	// the donation and subscription features as is.
	PublishableKey string `toml:"publishable_key" env:"PAYMENT_PUBLISHABLE_KEY"`

	LogLevel  string `toml:"log_level" env:"CEREBRO_LOG_LEVEL"`
	LogFormat string `toml:"log_format" env:"CEREBRO_LOG_FORMAT"`

	Metrics bool `toml:"metrics" env:"CEREBRO_METRICS"`

	ShutdownTimeout time.Duration `toml:"shutdown_timeout" env:"CEREBRO_SHUTDOWN_TIMEOUT"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:            ":8080",
		Router:          RouterEcho,
		LogLevel:        "info",
		LogFormat:       "json",
		Metrics:         true,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load builds a Config. A missing TOML file or dotenv file is not an error.
// Dotenv files never override variables already present in the environment.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("config: addr is required")
	}
	switch c.Router {
	case RouterEcho, RouterChi:
	default:
		return fmt.Errorf("config: unknown router %q (want %s or %s)", c.Router, RouterEcho, RouterChi)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("config: shutdown_timeout must be positive")
	}
	return nil
}
