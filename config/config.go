package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the process configuration, read from the environment
// with an optional .env file
type Config struct {
	Port         string
	HostPassword string
	Debug        bool
}

// Load reads the configuration. Missing variables fall back to the
// defaults the bundled client expects.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Port:         envOr("PORT", "5174"),
		HostPassword: envOr("HOST_PASSWORD", "host123"),
		Debug:        os.Getenv("DEBUG") != "",
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
