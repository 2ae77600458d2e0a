package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Host != "localhost" {
		t.Errorf("Expected default host localhost, got %q", cfg.Host)
	}
	if cfg.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Port)
	}
	if cfg.AdminKey == "" {
		t.Error("Expected non-empty default admin key")
	}
	if cfg.DefaultCapacity != 20 {
		t.Errorf("Expected default capacity 20, got %d", cfg.DefaultCapacity)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("QUIZHUB_HOST", "0.0.0.0")
	t.Setenv("QUIZHUB_PORT", "9090")
	t.Setenv("QUIZHUB_ADMIN_KEY", "swordfish")
	t.Setenv("QUIZHUB_DEFAULT_CAPACITY", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Host != "0.0.0.0" {
		t.Errorf("Expected host 0.0.0.0, got %q", cfg.Host)
	}
	if cfg.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Port)
	}
	if cfg.AdminKey != "swordfish" {
		t.Errorf("Expected admin key swordfish, got %q", cfg.AdminKey)
	}
	if cfg.DefaultCapacity != 8 {
		t.Errorf("Expected capacity 8, got %d", cfg.DefaultCapacity)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("port out of range", func(t *testing.T) {
		t.Setenv("QUIZHUB_PORT", "70000")
		if _, err := Load(); err == nil {
			t.Error("Expected error for out-of-range port")
		}
	})

	t.Run("zero capacity", func(t *testing.T) {
		t.Setenv("QUIZHUB_DEFAULT_CAPACITY", "0")
		if _, err := Load(); err == nil {
			t.Error("Expected error for zero capacity")
		}
	})
}

func TestConfig_Addr(t *testing.T) {
	cfg := &Config{Host: "localhost", Port: 8080}
	if got := cfg.Addr(); got != "localhost:8080" {
		t.Errorf("Expected localhost:8080, got %q", got)
	}
}
