package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "HTTP_ADDR", "CORS_ALLOW", "ROOM_TTL", "SWEEP_INTERVAL"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Env != "dev" {
		t.Fatalf("Env = %q, want dev", cfg.Env)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("Addr = %q, want :8080", cfg.Addr)
	}
	if len(cfg.CORSAllow) != 1 || cfg.CORSAllow[0] != "*" {
		t.Fatalf("CORSAllow = %v, want [*]", cfg.CORSAllow)
	}
	if cfg.RoomTTL != 30*time.Minute {
		t.Fatalf("RoomTTL = %v, want 30m", cfg.RoomTTL)
	}
	if cfg.SweepInterval != 5*time.Minute {
		t.Fatalf("SweepInterval = %v, want 5m", cfg.SweepInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("CORS_ALLOW", "https://a.example, https://b.example")
	t.Setenv("ROOM_TTL", "1h")
	t.Setenv("SWEEP_INTERVAL", "90s")

	cfg := Load()
	if cfg.Env != "prod" || cfg.Addr != ":9999" {
		t.Fatalf("env/addr not overridden: %+v", cfg)
	}
	if len(cfg.CORSAllow) != 2 || cfg.CORSAllow[1] != "https://b.example" {
		t.Fatalf("CORSAllow = %v", cfg.CORSAllow)
	}
	if cfg.RoomTTL != time.Hour || cfg.SweepInterval != 90*time.Second {
		t.Fatalf("durations not overridden: %+v", cfg)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("ROOM_TTL", "soon")
	t.Setenv("SWEEP_INTERVAL", "-5m")

	cfg := Load()
	if cfg.RoomTTL != 30*time.Minute {
		t.Fatalf("RoomTTL = %v, want default", cfg.RoomTTL)
	}
	if cfg.SweepInterval != 5*time.Minute {
		t.Fatalf("SweepInterval = %v, want default", cfg.SweepInterval)
	}
}
