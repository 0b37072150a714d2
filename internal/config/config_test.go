package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("VEGRUIT_ADDR", "")
	t.Setenv("VEGRUIT_SESSION_STORE", "")
	t.Setenv("VEGRUIT_DASHBOARD_REFRESH", "")
	t.Setenv("VEGRUIT_BACKEND_URL", "")

	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.Addr)
	}
	if cfg.SessionStore != StoreMemory {
		t.Fatalf("expected memory store by default, got %q", cfg.SessionStore)
	}
	if cfg.DashboardRefresh != 30*time.Second {
		t.Fatalf("expected 30s dashboard refresh, got %v", cfg.DashboardRefresh)
	}
	if cfg.TestimonialRefresh != 60*time.Second {
		t.Fatalf("expected 60s testimonial refresh, got %v", cfg.TestimonialRefresh)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("VEGRUIT_BACKEND_URL", "http://api.example.test/api/")
	t.Setenv("VEGRUIT_SESSION_STORE", "Redis")
	t.Setenv("VEGRUIT_DASHBOARD_REFRESH", "45")
	t.Setenv("VEGRUIT_REQUEST_TIMEOUT", "2s")
	t.Setenv("VEGRUIT_COOKIE_SECURE", "true")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := Load()
	if cfg.BackendURL != "http://api.example.test/api" {
		t.Fatalf("trailing slash should be trimmed, got %q", cfg.BackendURL)
	}
	if cfg.SessionStore != StoreRedis {
		t.Fatalf("expected redis store, got %q", cfg.SessionStore)
	}
	if cfg.DashboardRefresh != 45*time.Second {
		t.Fatalf("plain seconds should parse, got %v", cfg.DashboardRefresh)
	}
	if cfg.RequestTimeout != 2*time.Second {
		t.Fatalf("duration string should parse, got %v", cfg.RequestTimeout)
	}
	if !cfg.CookieSecure {
		t.Fatalf("expected secure cookies")
	}
	if cfg.RedisDB != 0 {
		t.Fatalf("invalid int should fall back to default, got %d", cfg.RedisDB)
	}
}

func TestLoad_NonPositiveDurationsUseDefault(t *testing.T) {
	t.Setenv("VEGRUIT_DASHBOARD_REFRESH", "0")
	t.Setenv("VEGRUIT_TESTIMONIAL_REFRESH", "-5s")
	t.Setenv("VEGRUIT_REQUEST_TIMEOUT", "0s")

	cfg := Load()
	if cfg.DashboardRefresh != 30*time.Second {
		t.Fatalf("zero refresh should fall back to 30s, got %v", cfg.DashboardRefresh)
	}
	if cfg.TestimonialRefresh != 60*time.Second {
		t.Fatalf("negative refresh should fall back to 60s, got %v", cfg.TestimonialRefresh)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("zero timeout should fall back to 15s, got %v", cfg.RequestTimeout)
	}
}
