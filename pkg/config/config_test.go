package config

import (
	"os"
	"testing"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}

	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}

	if got := cfg.Cart.ShippingThreshold().String(); got != "100" {
		t.Fatalf("expected default threshold 100, got %s", got)
	}
	if got := cfg.Cart.ShippingFee().String(); got != "10" {
		t.Fatalf("expected default fee 10, got %s", got)
	}
	if cfg.Square.Environment() != "sandbox" {
		t.Fatalf("expected default square env sandbox, got %q", cfg.Square.Environment())
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
}
