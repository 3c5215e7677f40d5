package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("API_BASE_URL", "")
	t.Setenv("API_TIMEOUT", "")
	t.Setenv("SESSION_SECRET", "")

	cfg := Load()

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.Server.Addr)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Fatalf("expected default api timeout 15s, got %v", cfg.API.Timeout)
	}
	if cfg.Session.Secret == "" {
		t.Fatalf("expected a development session secret")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("API_BASE_URL", "http://api.local/v1")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("SESSION_SECURE", "true")
	t.Setenv("OTEL_ENABLED", "false")

	cfg := Load()

	if cfg.Server.Addr != ":9000" {
		t.Fatalf("expected :9000, got %q", cfg.Server.Addr)
	}
	if cfg.API.BaseURL != "http://api.local/v1" {
		t.Fatalf("unexpected base url %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Fatalf("expected 3s, got %v", cfg.API.Timeout)
	}
	if !cfg.Session.Secure {
		t.Fatalf("expected secure cookies")
	}
	if cfg.Tracing.Enabled {
		t.Fatalf("expected tracing disabled")
	}
}

func TestGetDuration_InvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_DURATION", "soon")
	if got := getDuration("SOME_DURATION", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback, got %v", got)
	}
}

func TestLoad_FakeBoutiqueAndIdleTimeout(t *testing.T) {
	t.Setenv("API_FAKE", "true")
	t.Setenv("SESSION_IDLE_TIMEOUT", "45m")

	cfg := Load()

	if !cfg.API.Fake {
		t.Fatalf("expected the fake boutique to be enabled")
	}
	if cfg.Session.IdleTimeout != 45*time.Minute {
		t.Fatalf("expected idle timeout 45m, got %v", cfg.Session.IdleTimeout)
	}
}
