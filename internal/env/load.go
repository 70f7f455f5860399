// Package env loads process configuration from a .env file when present and
// offers typed getters over environment variables.
package env

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv pulls a .env file into the environment if one exists. Deployments
// that inject variables directly just skip it.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set directly.")
	}
}

// MustGetEnv returns the variable or exits. Use it for configuration a
// binary cannot run without.
func MustGetEnv(key string) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		log.Fatalf("Environment variable %s not set", key)
	}
	return val
}

// GetEnv returns the variable or the fallback when unset or empty.
func GetEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// GetInt parses the variable as an integer. Unset or unparsable values fall
// back, with a log line for the latter.
func GetInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Environment variable %s=%q is not an integer, using %d", key, raw, fallback)
		return fallback
	}
	return val
}

// GetDuration parses the variable with time.ParseDuration. Unset or
// unparsable values fall back, with a log line for the latter.
func GetDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Environment variable %s=%q is not a duration, using %s", key, raw, fallback)
		return fallback
	}
	return val
}
