// Package config handles application configuration via environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // zone database for minimal images
)

// Config holds all configurable values for the app.
type Config struct {
	Env         string
	Addr        string
	WebDir      string
	DatabaseURL string
	RedisURL    string

	// Location is the zone in which "today" is judged for due dates.
	Location *time.Location

	SessionTTL       time.Duration
	ReminderInterval time.Duration

	AuthRateRPS   float64
	AuthRateBurst int

	OIDC OIDCConfig
}

// OIDCConfig configures single sign-on. It is disabled when Issuer is empty.
type OIDCConfig struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether SSO is configured.
func (c OIDCConfig) Enabled() bool {
	return c.Issuer != "" && c.ClientID != ""
}

// Load reads environment variables and populates a Config struct.
func Load() (*Config, error) {
	loc, err := time.LoadLocation(env("TZ_NAME", "America/Sao_Paulo"))
	if err != nil {
		return nil, fmt.Errorf("invalid TZ_NAME: %w", err)
	}

	sessionTTL, err := time.ParseDuration(env("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	interval, err := time.ParseDuration(env("REMINDER_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_INTERVAL: %w", err)
	}

	rps, err := strconv.ParseFloat(env("AUTH_RATE_RPS", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_RPS: %w", err)
	}

	burst, err := strconv.Atoi(env("AUTH_RATE_BURST", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_BURST: %w", err)
	}

	return &Config{
		Env:              env("ENV", "development"),
		Addr:             env("ADDR", ":8080"),
		WebDir:           env("WEB_DIR", "web"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		Location:         loc,
		SessionTTL:       sessionTTL,
		ReminderInterval: interval,
		AuthRateRPS:      rps,
		AuthRateBurst:    burst,
		OIDC: OIDCConfig{
			Issuer:       os.Getenv("OIDC_ISSUER"),
			ClientID:     os.Getenv("OIDC_CLIENT_ID"),
			ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
		},
	}, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
