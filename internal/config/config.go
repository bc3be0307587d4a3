package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	PlacesAPIKey     string
	MapsEmbedKey     string
	AnthropicAPIKey  string
	AdscrapeBaseURL  string
	DatabaseURL      string
	AdminJWTSecret   string
	Port             string
	RateLimitAnalyze RateLimitConfig
	DetailsCacheTTL  time.Duration
	ProbeTimeout     time.Duration
}

// Load reads configuration from environment variables and applies sane defaults.
// PLACES_API_KEY is the only hard requirement.
func Load() (*Config, error) {
	cfg := &Config{
		PlacesAPIKey:    os.Getenv("PLACES_API_KEY"),
		MapsEmbedKey:    os.Getenv("MAPS_EMBED_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AdscrapeBaseURL: os.Getenv("ADSCRAPE_BASE_URL"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		AdminJWTSecret:  getEnv("ADMIN_JWT_SECRET", "dev-secret"),
		Port:            getEnv("PORT", "8080"),
		DetailsCacheTTL: parseDuration(getEnv("DETAILS_CACHE_TTL", "3h"), 3*time.Hour),
		ProbeTimeout:    parseDuration(getEnv("PROBE_TIMEOUT", "4s"), 4*time.Second),
	}

	if cfg.PlacesAPIKey == "" {
		return nil, fmt.Errorf("PLACES_API_KEY is required")
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_ANALYZE", "10/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_ANALYZE value: %w", err)
	}
	cfg.RateLimitAnalyze = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return fallback
	}
	return d
}
