package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the application configuration
type Config struct {
	// Database connection string (DSN)
	DatabaseURL string

	// Server bind address (host:port)
	ServerAddr string

	// Base URL clients use to reach this server
	ServerURL string

	// Maximum database connection pool size
	MaxDBConnections int

	// Session lifetime for bearer tokens
	SessionDuration time.Duration

	// Secret used to sign HS256 identity tokens
	IDTokenSecret string

	// Origins allowed by the CORS policy (comma-separated env value)
	AllowedOrigins []string

	// Enable debug logging
	Debug bool
}

// Load reads configuration from environment variables with fallback defaults
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:      getEnv("DATABASE_URL", "file:hhf.db"),
		ServerAddr:       getEnv("SERVER_ADDR", "localhost:8080"),
		ServerURL:        getEnv("SERVER_URL", "http://localhost:8080"),
		MaxDBConnections: getEnvInt("MAX_DB_CONNECTIONS", 25),
		SessionDuration:  getEnvDuration("SESSION_DURATION", 12*time.Hour),
		IDTokenSecret:    getEnv("ID_TOKEN_SECRET", ""),
		AllowedOrigins:   splitList(getEnv("ALLOWED_ORIGINS", "")),
		Debug:            getEnvBool("DEBUG", false),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("SERVER_URL is required")
	}
	if cfg.IDTokenSecret == "" {
		return nil, fmt.Errorf("ID_TOKEN_SECRET is required")
	}
	if cfg.SessionDuration <= 0 {
		return nil, fmt.Errorf("SESSION_DURATION must be positive")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
