package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ADDR", "DATABASE_URL", "TOKEN_SECRET", "TOKEN_ALGORITHM", "TOKEN_TTL_MINUTES", "TIMEZONE"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.DatabaseURL != "planner.db" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.TokenSecret != "secret-key" || cfg.TokenAlgorithm != "HS256" {
		t.Errorf("token config = %q/%q", cfg.TokenSecret, cfg.TokenAlgorithm)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("TokenTTL = %v, want 30m", cfg.TokenTTL)
	}
	if cfg.Location == nil || cfg.Location.String() != "Asia/Novosibirsk" {
		t.Errorf("Location = %v, want Asia/Novosibirsk", cfg.Location)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADDR", ":9000")
	t.Setenv("TOKEN_TTL_MINUTES", "5")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.TokenTTL != 5*time.Minute {
		t.Errorf("TokenTTL = %v", cfg.TokenTTL)
	}
	if cfg.Location != time.UTC {
		t.Errorf("Location = %v", cfg.Location)
	}
}

func TestLoadRejectsBadTTL(t *testing.T) {
	clearEnv(t)
	for _, raw := range []string{"zero", "-5", "0"} {
		t.Setenv("TOKEN_TTL_MINUTES", raw)
		if _, err := Load(); err == nil {
			t.Errorf("TTL %q should be rejected", raw)
		}
	}
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	clearEnv(t)
	t.Setenv("TIMEZONE", "Mars/Olympus")
	if _, err := Load(); err == nil {
		t.Error("unknown timezone should be rejected")
	}
}
