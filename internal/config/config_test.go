package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.SheetsTimeout != 15*time.Second {
		t.Errorf("expected default sheets timeout 15s, got %s", cfg.SheetsTimeout)
	}
	if cfg.CalendarYear != 2026 {
		t.Errorf("expected default calendar year 2026, got %d", cfg.CalendarYear)
	}
	if cfg.SuggestionLimit != 10 {
		t.Errorf("expected default suggestion limit 10, got %d", cfg.SuggestionLimit)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SHEETS_WEBAPP_URL", " https://script.example.com/exec ")
	t.Setenv("SHEETS_TIMEOUT", "5s")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.SheetsWebAppURL != "https://script.example.com/exec" {
		t.Errorf("expected trimmed sheets URL, got %q", cfg.SheetsWebAppURL)
	}
	if cfg.SheetsTimeout != 5*time.Second {
		t.Errorf("expected sheets timeout 5s, got %s", cfg.SheetsTimeout)
	}
	if !cfg.RedisTLS {
		t.Error("expected redis TLS enabled")
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected 2 CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Errorf("expected trimmed origin, got %q", cfg.CORSAllowedOrigins[1])
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("CALENDAR_YEAR", "not-a-year")
	t.Setenv("SHEETS_TIMEOUT", "soon")

	cfg := Load()

	if cfg.CalendarYear != 2026 {
		t.Errorf("expected fallback calendar year 2026, got %d", cfg.CalendarYear)
	}
	if cfg.SheetsTimeout != 15*time.Second {
		t.Errorf("expected fallback timeout 15s, got %s", cfg.SheetsTimeout)
	}
}
