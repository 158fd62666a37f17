package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the service configuration, read from the environment with an
// optional .env file.
type Config struct {
	Port    string
	DataDir string
}

// Load reads configuration from a .env file (if present) and the process
// environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:    getEnv("PORT", "8080"),
		DataDir: getEnv("DATA_DIR", "./data"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
