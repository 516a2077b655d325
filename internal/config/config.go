// Package config loads CLI settings from the environment, with a .env file
// picked up automatically for local development.
package config

import (
	"os"
	"path/filepath"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	// APIBaseURL is the remote gateway root, e.g. http://localhost:8080/api.
	APIBaseURL string
	// HTTPTimeout bounds every gateway request so an unanswered call can
	// never hold an in-flight guard forever.
	HTTPTimeout time.Duration
	// StateDir holds the persisted session file.
	StateDir string
}

func Load() *Config {
	return &Config{
		APIBaseURL:  getEnv("CITYSAFE_API_URL", "http://localhost:8080/api"),
		HTTPTimeout: getDuration("CITYSAFE_HTTP_TIMEOUT", 15*time.Second),
		StateDir:    getEnv("CITYSAFE_STATE_DIR", defaultStateDir()),
	}
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "citysafe")
	}
	return ".citysafe"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
