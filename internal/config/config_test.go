package config

import (
	"reflect"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	cfg := load(viper.New())

	if cfg.Backend.Timeout != 30*time.Second {
		t.Fatalf("expected 30s backend timeout, got %s", cfg.Backend.Timeout)
	}
	if cfg.Backend.LegacyVerbs {
		t.Fatalf("legacy verbs must be off by default")
	}
	if cfg.Session.Driver != "memory" || cfg.Session.TTL != 12*time.Hour {
		t.Fatalf("unexpected session config %+v", cfg.Session)
	}
	if cfg.Printer.Type != "none" || cfg.Printer.Width != "58mm" {
		t.Fatalf("unexpected printer config %+v", cfg.Printer)
	}
	if !cfg.App.IsDevelopment() {
		t.Fatalf("expected development env by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "https://pos.example.com/api/v1/")
	t.Setenv("BACKEND_LEGACY_VERBS", "true")
	t.Setenv("SESSION_DRIVER", "Redis")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("PRINTER_TYPE", "network")
	t.Setenv("PRINTER_ADDRESS", "10.0.0.9:9100")

	v := viper.New()
	v.AutomaticEnv()
	cfg := load(v)

	if cfg.Backend.BaseURL != "https://pos.example.com/api/v1" {
		t.Fatalf("trailing slash not trimmed: %q", cfg.Backend.BaseURL)
	}
	if !cfg.Backend.LegacyVerbs {
		t.Fatalf("expected legacy verbs from env")
	}
	if cfg.Session.Driver != "redis" {
		t.Fatalf("expected lowercased driver, got %q", cfg.Session.Driver)
	}
	if want := []string{"http://a.test", "http://b.test"}; !reflect.DeepEqual(cfg.CORS.AllowedOrigins, want) {
		t.Fatalf("expected %v, got %v", want, cfg.CORS.AllowedOrigins)
	}
	if cfg.Printer.Target() != "10.0.0.9:9100" {
		t.Fatalf("expected network target, got %q", cfg.Printer.Target())
	}
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "h", Port: "5432", Name: "n", User: "u", Password: "p", SSLMode: "disable", Timezone: "UTC"}
	want := "host=h user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC"
	if got := db.DSN(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
