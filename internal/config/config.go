package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	// The default timezone must resolve even without a system tz database.
	_ "time/tzdata"
)

// Config keeps runtime settings for the server.
type Config struct {
	Addr           string
	DatabaseURL    string
	TokenSecret    string
	TokenAlgorithm string
	TokenTTL       time.Duration
	Location       *time.Location
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		Addr:           strings.TrimSpace(os.Getenv("ADDR")),
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		TokenSecret:    os.Getenv("TOKEN_SECRET"),
		TokenAlgorithm: strings.TrimSpace(os.Getenv("TOKEN_ALGORITHM")),
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "planner.db"
	}
	if cfg.TokenSecret == "" {
		cfg.TokenSecret = "secret-key"
	}
	if cfg.TokenAlgorithm == "" {
		cfg.TokenAlgorithm = "HS256"
	}

	ttl, err := parseTTLMinutes(strings.TrimSpace(os.Getenv("TOKEN_TTL_MINUTES")))
	if err != nil {
		return cfg, err
	}
	cfg.TokenTTL = ttl

	tz := strings.TrimSpace(os.Getenv("TIMEZONE"))
	if tz == "" {
		tz = "Asia/Novosibirsk"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return cfg, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	cfg.Location = loc

	return cfg, nil
}

func parseTTLMinutes(raw string) (time.Duration, error) {
	if raw == "" {
		return 30 * time.Minute, nil
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return 0, fmt.Errorf("TOKEN_TTL_MINUTES must be a positive integer, got %q", raw)
	}
	return time.Duration(minutes) * time.Minute, nil
}
