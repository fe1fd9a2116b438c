package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.HTTPAddress != ":8080" {
		t.Errorf("http_address = %q, want :8080", cfg.Server.HTTPAddress)
	}
	if !cfg.Metrics.Enabled {
		t.Error("metrics should be enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config does not validate: %v", err)
	}
}

func TestConfigValidate_RejectsInvalidDuration(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.StreamMaxDuration = "not-a-duration"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for invalid server.stream_max_duration")
	}
}

func TestConfigValidate_RejectsKeepaliveLongerThanStream(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.StreamKeepalive = "1h"
	cfg.Server.StreamMaxDuration = "1m"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error when keepalive exceeds stream lifetime")
	}
}

func TestConfigValidate_RejectsSharedMetricsAddress(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Metrics.Address = cfg.Server.HTTPAddress

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error when metrics share the API address")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  http_address: ":9000"
  rate_limit_per_ip: 60
  stream_max_duration: 10m
metrics:
  enabled: true
  address: ":9100"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.HTTPAddress != ":9000" {
		t.Errorf("http_address = %q, want :9000", cfg.Server.HTTPAddress)
	}
	if cfg.Server.RateLimitPerIP != 60 {
		t.Errorf("rate_limit_per_ip = %d, want 60", cfg.Server.RateLimitPerIP)
	}
	if cfg.StreamMaxDurationValue() != 10*time.Minute {
		t.Errorf("stream_max_duration = %v, want 10m", cfg.StreamMaxDurationValue())
	}
	// Defaults still fill the gaps.
	if cfg.StreamKeepaliveValue() != 15*time.Second {
		t.Errorf("stream_keepalive = %v, want default 15s", cfg.StreamKeepaliveValue())
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
