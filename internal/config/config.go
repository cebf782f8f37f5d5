package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all startup configuration. Secrets come from the
// environment; there are no embedded defaults for them.
type Config struct {
	DatabaseURL string
	Port        string

	// JWTSecret signs session tokens. Required: starting with a
	// hardcoded or generated key is not an option.
	JWTSecret string
	TokenTTL  time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// SMTPAddr enables real mail delivery when set; otherwise outbound
	// mail is logged only.
	SMTPAddr string
	SMTPFrom string

	FirmEmail string
	FirmName  string
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Port:          env("PORT", "8080"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTL:      60 * time.Minute,
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SMTPAddr:      os.Getenv("SMTP_ADDR"),
		SMTPFrom:      env("SMTP_FROM", "noreply@anderson-associates.example"),
		FirmEmail:     env("FIRM_EMAIL", "contact@anderson-associates.example"),
		FirmName:      env("FIRM_NAME", "Anderson & Associates"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		cfg.RedisDB = db
	}

	if v := os.Getenv("TOKEN_TTL_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL_MINUTES %q", v)
		}
		cfg.TokenTTL = time.Duration(minutes) * time.Minute
	}

	return cfg, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
