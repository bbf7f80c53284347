package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "GIN_MODE", "GOOGLE_SHEETS_WEBHOOK_URL", "WEBHOOK_TIMEOUT", "IMAGES_DIR",
		"CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT", "COOKIE_SECURE", "CAROUSEL_INTERVAL",
		"TRUSTED_PROXIES",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	want := &Config{
		Port:               "8080",
		GinMode:            "release",
		WebhookTimeout:     10 * time.Second,
		ImagesDir:          "public/images",
		CORSAllowedOrigins: []string{"*"},
		LogLevel:           "info",
		LogFormat:          "text",
		CarouselInterval:   5 * time.Second,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GOOGLE_SHEETS_WEBHOOK_URL", "https://script.google.com/macros/s/abc/exec")
	t.Setenv("WEBHOOK_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://ggrmusic.com,https://www.ggrmusic.com")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.2")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("Expected port 9000, got %s", cfg.Port)
	}
	if cfg.WebhookURL != "https://script.google.com/macros/s/abc/exec" {
		t.Errorf("unexpected webhook URL %q", cfg.WebhookURL)
	}
	if cfg.WebhookTimeout != 3*time.Second {
		t.Errorf("Expected 3s timeout, got %s", cfg.WebhookTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Errorf("Expected 2 origins, got %v", cfg.CORSAllowedOrigins)
	}
	if !cfg.CookieSecure {
		t.Error("Expected secure cookies")
	}
	if diff := cmp.Diff([]string{"10.0.0.0/8", "192.168.1.2"}, cfg.TrustedProxies); diff != "" {
		t.Errorf("trusted proxies mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigRejectsBadTimeout(t *testing.T) {
	t.Setenv("WEBHOOK_TIMEOUT", "0s")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("Expected error for zero timeout")
	}
	t.Setenv("WEBHOOK_TIMEOUT", "soon")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("Expected error for unparsable timeout")
	}
}

func TestLoadConfigRejectsUnknownGinMode(t *testing.T) {
	t.Setenv("GIN_MODE", "production")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("Expected error for unknown gin mode")
	}
}

func TestLoadConfigRejectsOriginWithoutScheme(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "ggrmusic.com")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("Expected error for origin without scheme")
	}
}
