package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Theme is the only appearance the site ships with.
const Theme = "dark"

// Config holds all application configuration values
type Config struct {
	Port               string        `env:"PORT" envDefault:"8080"`
	GinMode            string        `env:"GIN_MODE" envDefault:"release"`
	WebhookURL         string        `env:"GOOGLE_SHEETS_WEBHOOK_URL"`
	WebhookTimeout     time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"10s"`
	ImagesDir          string        `env:"IMAGES_DIR" envDefault:"public/images"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	TrustedProxies     []string      `env:"TRUSTED_PROXIES" envSeparator:","`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat          string        `env:"LOG_FORMAT" envDefault:"text"`
	CookieSecure       bool          `env:"COOKIE_SECURE" envDefault:"false"`
	CarouselInterval   time.Duration `env:"CAROUSEL_INTERVAL" envDefault:"5s"`
}

// LoadConfig reads configuration from environment variables. A missing
// webhook URL is not an error here: submissions report it when they run.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.WebhookTimeout <= 0 {
		return nil, fmt.Errorf("WEBHOOK_TIMEOUT must be positive, got %s", cfg.WebhookTimeout)
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		return nil, fmt.Errorf("GIN_MODE must be debug, release or test, got %q", cfg.GinMode)
	}
	for _, origin := range cfg.CORSAllowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS entries must be * or start with http:// or https://, got %q", origin)
		}
	}
	if cfg.CarouselInterval <= 0 {
		return nil, fmt.Errorf("CAROUSEL_INTERVAL must be positive, got %s", cfg.CarouselInterval)
	}
	return cfg, nil
}
