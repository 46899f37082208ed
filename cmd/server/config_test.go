package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Address != ":8080" {
		t.Errorf("address = %q, want :8080", cfg.Server.Address)
	}
	if cfg.Storage.StatePath == "" {
		t.Error("state path default missing")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
server:
  address: ":9001"
auth:
  username: admin
  password_hash: "$2a$10$abcdefghijklmnopqrstuv"
  access_token_ttl: "30m"
storage:
  state_path: /tmp/guide/state.json
  mirror_path: /tmp/guide/mirror.db
templates:
  dir: /tmp/guide/templates
  watch: true
`
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.Address != ":9001" {
		t.Errorf("address = %q", cfg.Server.Address)
	}
	if cfg.Auth.AccessTokenTTL != "30m" {
		t.Errorf("access ttl = %q", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Storage.MirrorSyncInterval != "5m" {
		t.Errorf("sync interval default = %q", cfg.Storage.MirrorSyncInterval)
	}
	if !cfg.Templates.Watch {
		t.Error("watch flag lost")
	}
}

func TestConfigValidate_RejectsInvalidDurations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Auth.LockoutDuration = "not-a-duration"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for invalid auth.lockout_duration")
	}
}

func TestConfigValidate_RequiresTLSFiles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.TLS.Enabled = true

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error when TLS files are missing")
	}
}
