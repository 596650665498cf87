package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL     string
	Port            string
	IsProduction    bool
	EnableDBCheck   bool
	MigrationsPath  string
	JWTSecret       string
	JWTIssuer       string
	FrontendBaseURL string
	RateLimit       string // ulule/limiter formatted rate, e.g. "100-M"
	PostHogAPIKey   string
	LogLevel        string

	// Posting policy
	PostingRequireBalanced bool
	UnpostAllowedRoles     []int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "ledger-posting-app")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("POSTING_REQUIRE_BALANCED", true)
	v.SetDefault("UNPOST_ALLOWED_ROLES", "1,2")

	// Environment variables override .env values, which override the defaults above.
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:            v.GetString("PGSQL_URL"),
		Port:                   v.GetString("PORT"),
		IsProduction:           v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:          v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:         v.GetString("MIGRATIONS_PATH"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		JWTIssuer:              v.GetString("JWT_ISSUER"),
		FrontendBaseURL:        v.GetString("FRONTEND_BASE_URL"),
		RateLimit:              v.GetString("RATE_LIMIT"),
		PostHogAPIKey:          v.GetString("POSTHOG_API_KEY"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		PostingRequireBalanced: v.GetBool("POSTING_REQUIRE_BALANCED"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if !cfg.PostingRequireBalanced {
		log.Println("Warning: POSTING_REQUIRE_BALANCED is off. Unbalanced ledgers will be posted.")
	}

	roles, err := parseRoles(v.GetString("UNPOST_ALLOWED_ROLES"))
	if err != nil {
		return nil, fmt.Errorf("invalid UNPOST_ALLOWED_ROLES: %w", err)
	}
	cfg.UnpostAllowedRoles = roles

	return cfg, nil
}

// parseRoles reads a comma separated list of role ids.
func parseRoles(raw string) ([]int, error) {
	var roles []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("role id %q is not a number", part)
		}
		roles = append(roles, id)
	}
	return roles, nil
}
