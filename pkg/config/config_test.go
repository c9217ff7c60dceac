package config

import (
	"testing"
	"time"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("CONNECT_JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when jwt secret is unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONNECT_JWT_SECRET", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port = %q, want 8080", cfg.Port)
	}
	if cfg.JWTAccessExpiry != 15*time.Minute {
		t.Fatalf("access expiry = %v, want 15m", cfg.JWTAccessExpiry)
	}
	if cfg.JWTRefreshExpiry != 168*time.Hour {
		t.Fatalf("refresh expiry = %v, want 168h", cfg.JWTRefreshExpiry)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("cache ttl = %v, want 5m", cfg.CacheTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CONNECT_JWT_SECRET", "test-key")
	t.Setenv("CONNECT_JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("CONNECT_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.JWTAccessExpiry != 30*time.Minute {
		t.Fatalf("access expiry = %v, want 30m", cfg.JWTAccessExpiry)
	}
	if cfg.Port != "9090" {
		t.Fatalf("port = %q, want 9090", cfg.Port)
	}
}
