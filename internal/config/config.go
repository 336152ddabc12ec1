/**
 * @description
 * Configuration loader for the CourtEdge backend.
 * Reads environment variables, applies defaults, and validates the critical ones.
 *
 * @dependencies
 * - github.com/joho/godotenv: For loading .env files
 * - standard "os": For reading env vars
 * - standard "fmt": For error reporting
 *
 * @notes
 * - Fails fast if DATABASE_URL is missing.
 * - Stat-type exclusions and league baselines are configuration, not code.
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Redis      RedisConfig
	Feeds      FeedsConfig
	Projection ProjectionConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
	Env  string // "development" or "production"
}

// DBConfig holds PostgreSQL settings
type DBConfig struct {
	URL string
}

// RedisConfig holds Redis settings
type RedisConfig struct {
	URL string
}

// FeedsConfig holds upstream feed endpoints and credentials
type FeedsConfig struct {
	PrizePicksURL    string
	PrizePicksLeague int
	OddsAPIURL       string
	OddsAPIKey       string
	OddsCachePath    string // JSON side-cache file for sportsbook odds
	JobSecret        string // shared secret for the refresh trigger endpoints
}

// ProjectionConfig holds tunables for the prop pipeline
type ProjectionConfig struct {
	// ExcludedStatTypes are matched as case-insensitive substrings against
	// incoming stat types; matching props never reach storage or display.
	ExcludedStatTypes []string
}

// defaultExcludedStatTypes mirrors the prop categories the research site never shows.
var defaultExcludedStatTypes = []string{
	"1st 3 minutes",
	"first 3 minutes",
	"quarters with",
	"two pointers made",
	"2 pointers made",
	"two pointers attempted",
	"2 pointers attempted",
	"offensive rebounds",
	"offensive rebound",
	"defensive rebounds",
	"defensive rebound",
	"fantasy score",
	"fantasy points",
}

// Load reads .env file and populates the Config struct
func Load() (*Config, error) {
	// Attempt to load .env, but don't crash if it fails (prod might inject env vars directly)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("GO_ENV", "development"),
		},
		DB: DBConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Feeds: FeedsConfig{
			PrizePicksURL:    getEnv("PRIZEPICKS_API_URL", "https://api.prizepicks.com"),
			PrizePicksLeague: getEnvAsInt("PRIZEPICKS_LEAGUE_ID", 7), // NBA
			OddsAPIURL:       getEnv("ODDS_API_URL", "https://api.the-odds-api.com/v4"),
			OddsAPIKey:       sanitizeCredential(getEnv("ODDS_API_KEY", "")),
			OddsCachePath:    getEnv("ODDS_CACHE_PATH", "sportsbook_odds_cache.json"),
			JobSecret:        sanitizeCredential(getEnv("JOB_SECRET", "")),
		},
		Projection: ProjectionConfig{
			ExcludedStatTypes: getEnvAsList("EXCLUDED_STAT_TYPES", defaultExcludedStatTypes),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks for required variables
func validate(cfg *Config) error {
	if cfg.DB.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Feeds.OddsAPIKey == "" && cfg.Server.Env != "test" {
		// Sportsbook odds sync will be skipped without it; everything else works.
		fmt.Println("Warning: ODDS_API_KEY is missing. Sportsbook odds sync is disabled.")
	}
	return nil
}

// Helper to get env var with default
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func sanitizeCredential(value string) string {
	trimmed := strings.TrimSpace(value)
	return strings.Trim(trimmed, "\"")
}

// Helper to get env var as int
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// Helper to get a comma-separated env var as a list
func getEnvAsList(key string, fallback []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
