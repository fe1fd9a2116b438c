// Package main provides the chatriver server CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Metrics MetricsConfig `yaml:"metrics"`
	Verbose bool          `yaml:"-"` // set via CLI flag
}

// ServerConfig contains server settings.
type ServerConfig struct {
	HTTPAddress       string `yaml:"http_address"`        // HTTP listen address (default: :8080)
	RateLimitPerIP    int    `yaml:"rate_limit_per_ip"`   // requests per minute per client IP
	StreamMaxDuration string `yaml:"stream_max_duration"` // max lifetime for event streams, e.g. "30m"
	StreamKeepalive   string `yaml:"stream_keepalive"`    // keepalive interval for event streams, e.g. "15s"
}

// MetricsConfig contains the Prometheus listener settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // expose /metrics (default: true)
	Address string `yaml:"address"` // metrics listen address (default: :9090)
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
	cfg := &Config{Metrics: MetricsConfig{Enabled: true}}
	cfg.setDefaults()
	return cfg
}

// setDefaults sets default values for missing config fields.
func (c *Config) setDefaults() {
	if c.Server.HTTPAddress == "" {
		c.Server.HTTPAddress = ":8080"
	}
	if c.Server.RateLimitPerIP == 0 {
		c.Server.RateLimitPerIP = 120
	}
	if c.Server.StreamMaxDuration == "" {
		c.Server.StreamMaxDuration = "30m"
	}
	if c.Server.StreamKeepalive == "" {
		c.Server.StreamKeepalive = "15s"
	}
	if c.Metrics.Address == "" {
		c.Metrics.Address = ":9090"
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.HTTPAddress == "" {
		return fmt.Errorf("server.http_address is required")
	}
	if c.Server.RateLimitPerIP < 0 {
		return fmt.Errorf("server.rate_limit_per_ip must not be negative")
	}
	maxDur, err := time.ParseDuration(c.Server.StreamMaxDuration)
	if err != nil {
		return fmt.Errorf("server.stream_max_duration: %w", err)
	}
	keepalive, err := time.ParseDuration(c.Server.StreamKeepalive)
	if err != nil {
		return fmt.Errorf("server.stream_keepalive: %w", err)
	}
	if keepalive >= maxDur {
		return fmt.Errorf("server.stream_keepalive must be shorter than server.stream_max_duration")
	}
	if c.Metrics.Enabled && c.Metrics.Address == c.Server.HTTPAddress {
		return fmt.Errorf("metrics.address must differ from server.http_address")
	}
	return nil
}

// StreamMaxDurationValue returns the parsed stream lifetime bound.
// Validate must have accepted the config first.
func (c *Config) StreamMaxDurationValue() time.Duration {
	d, _ := time.ParseDuration(c.Server.StreamMaxDuration)
	return d
}

// StreamKeepaliveValue returns the parsed keepalive interval.
func (c *Config) StreamKeepaliveValue() time.Duration {
	d, _ := time.ParseDuration(c.Server.StreamKeepalive)
	return d
}
