package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Environment struct {
	IsDevelopment bool
	Domain        string
	CookieSecure  bool
}

// Config is the process configuration, read from the environment.
type Config struct {
	Env Environment

	Port           string
	DatabaseURL    string
	JWTSecret      string
	AllowedOrigins []string

	// Empty AnalysisURL selects the in-process stub analyzer.
	AnalysisURL     string
	AnalysisTimeout time.Duration

	// Wizard sessions idle longer than SessionTTL are forgotten; at most
	// MaxSessions are kept, least recently used first out.
	SessionTTL  time.Duration
	MaxSessions int

	LogLevel string
}

func loadEnvironment() Environment {
	// Get domain from environment variable
	domain := os.Getenv("COOKIE_DOMAIN")

	// If no domain is set, we're in development
	isDev := domain == "" || os.Getenv("ENVIRONMENT") == "development"
	if domain == "" {
		domain = "localhost"
	}

	return Environment{
		IsDevelopment: isDev,
		Domain:        domain,
		CookieSecure:  !isDev,
	}
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:            loadEnvironment(),
		Port:           getenv("PORT", "8080"),
		DatabaseURL:    getenv("DB_URL", "coursemap.db"),
		JWTSecret:      os.Getenv("JWT_SECRET_KEY"),
		AllowedOrigins: splitList(getenv("ALLOWED_ORIGINS", "http://localhost:3000")),
		AnalysisURL:    os.Getenv("ANALYSIS_URL"),
		SessionTTL:     24 * time.Hour,
		MaxSessions:    10000,
		LogLevel:       getenv("LOG_LEVEL", "info"),
	}

	if raw := os.Getenv("ANALYSIS_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("config: ANALYSIS_TIMEOUT: %w", err)
		}
		cfg.AnalysisTimeout = d
	}

	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("config: SESSION_TTL: invalid duration %q", raw)
		}
		cfg.SessionTTL = d
	}

	if raw := os.Getenv("MAX_SESSIONS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("config: MAX_SESSIONS: invalid count %q", raw)
		}
		cfg.MaxSessions = n
	}

	if cfg.JWTSecret == "" {
		if !cfg.Env.IsDevelopment {
			return nil, fmt.Errorf("config: JWT_SECRET_KEY not set")
		}
		cfg.JWTSecret = "development-only-secret"
	}

	return cfg, nil
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
