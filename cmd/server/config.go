// Package main provides the LiveGuide server CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Auth      AuthConfig      `yaml:"auth"`
	Storage   StorageConfig   `yaml:"storage"`
	Templates TemplatesConfig `yaml:"templates"`
	Verbose   bool            `yaml:"-"` // set via CLI flag
}

// ServerConfig contains listener settings.
type ServerConfig struct {
	Address        string    `yaml:"address"`         // HTTP API listen address (default: :8080)
	MetricsAddress string    `yaml:"metrics_address"` // Prometheus listen address (default: :9090)
	TLS            TLSConfig `yaml:"tls"`
}

// TLSConfig contains TLS settings for the API server.
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// AuthConfig contains the operator account and token settings.
// Durations are Go duration strings ("15m", "24h").
type AuthConfig struct {
	Username         string `yaml:"username"`
	PasswordHash     string `yaml:"password_hash"` // bcrypt, produce with `guidectl hash`
	AccessTokenTTL   string `yaml:"access_token_ttl"`
	RefreshTokenTTL  string `yaml:"refresh_token_ttl"`
	RateLimitPerIP   int    `yaml:"rate_limit_per_ip"`
	RateLimitPerUser int    `yaml:"rate_limit_per_user"`
	LockoutThreshold int    `yaml:"lockout_threshold"`
	LockoutDuration  string `yaml:"lockout_duration"`
}

// StorageConfig contains persistence settings.
type StorageConfig struct {
	StatePath          string `yaml:"state_path"`           // local JSON state blob
	MirrorPath         string `yaml:"mirror_path"`          // optional SQLite mirror; empty disables
	MirrorSyncInterval string `yaml:"mirror_sync_interval"` // default: 5m
}

// TemplatesConfig controls the system template seeds.
type TemplatesConfig struct {
	Dir   string `yaml:"dir"`   // seed override directory; empty uses the built-ins
	Watch bool   `yaml:"watch"` // reload seeds when files under dir change
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// setDefaults sets default values for missing config fields.
func (c *Config) setDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Server.MetricsAddress == "" {
		c.Server.MetricsAddress = ":9090"
	}
	if c.Storage.StatePath == "" {
		c.Storage.StatePath = "data/state.json"
	}
	if c.Storage.MirrorSyncInterval == "" {
		c.Storage.MirrorSyncInterval = "5m"
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	if c.Server.TLS.Enabled {
		if c.Server.TLS.CertFile == "" {
			return fmt.Errorf("server.tls.cert_file is required when TLS is enabled")
		}
		if c.Server.TLS.KeyFile == "" {
			return fmt.Errorf("server.tls.key_file is required when TLS is enabled")
		}
	}
	for name, value := range map[string]string{
		"auth.access_token_ttl":        c.Auth.AccessTokenTTL,
		"auth.refresh_token_ttl":       c.Auth.RefreshTokenTTL,
		"auth.lockout_duration":        c.Auth.LockoutDuration,
		"storage.mirror_sync_interval": c.Storage.MirrorSyncInterval,
	} {
		if _, err := parseDuration(value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// parseDuration parses a duration string; empty means "use default"
// and yields zero.
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// mustDuration returns the parsed duration of an already validated
// config value.
func mustDuration(s string) time.Duration {
	d, err := parseDuration(s)
	if err != nil {
		panic(err)
	}
	return d
}
