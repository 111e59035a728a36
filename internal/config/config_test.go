package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q", cfg.Env)
	}
	if cfg.ProfileStore != "memory" {
		t.Errorf("ProfileStore = %q, want memory", cfg.ProfileStore)
	}
	if cfg.StoreTimeout != 5*time.Second {
		t.Errorf("StoreTimeout = %v", cfg.StoreTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("PROFILE_STORE", "Redis")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("PROFILE_STORE_TIMEOUT", "250ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.ro, https://admin.example.ro")

	cfg := Load()

	if cfg.Port != "9999" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.ProfileStore != "redis" {
		t.Errorf("ProfileStore = %q, want normalized redis", cfg.ProfileStore)
	}
	if !cfg.RedisTLS {
		t.Error("RedisTLS not parsed")
	}
	if cfg.StoreTimeout != 250*time.Millisecond {
		t.Errorf("StoreTimeout = %v", cfg.StoreTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://admin.example.ro" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("REDIS_TLS", "definitely")
	t.Setenv("PROFILE_STORE_TIMEOUT", "not-a-duration")

	cfg := Load()

	if cfg.RedisTLS {
		t.Error("malformed bool accepted")
	}
	if cfg.StoreTimeout != 5*time.Second {
		t.Errorf("malformed duration accepted: %v", cfg.StoreTimeout)
	}
}
