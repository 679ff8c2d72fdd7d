package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	PGURL string
	Port  string
}

// Load reads configuration from the environment. A .env file in the
// working directory is read first; shell variables take precedence.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may be fully set by the shell.
	_ = godotenv.Load()

	pgURL := os.Getenv("PG_URL")
	if pgURL == "" {
		return nil, fmt.Errorf("PG_URL environment variable is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		PGURL: pgURL,
		Port:  port,
	}, nil
}
