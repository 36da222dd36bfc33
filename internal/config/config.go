// Package config reads engine settings from the environment, with an
// optional .env file for local development.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries the runtime settings shared by the CLI and any embedding
// service.
type Config struct {
	Environment string
	LogLevel    string

	// Solver cache capacity in entries
	CacheSize int

	// Default allowable soil bearing where the job supplies none (psf)
	SoilBearingPSF float64

	// Optional JSON catalog overriding the built-in section tables
	CatalogFile string
}

// Load reads the environment and returns a Config struct. A missing .env
// file is not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Environment:    getEnv("SIGNCALC_ENV", "development"),
		LogLevel:       getEnv("SIGNCALC_LOG_LEVEL", "info"),
		CacheSize:      getEnvAsInt("SIGNCALC_CACHE_SIZE", 256),
		SoilBearingPSF: getEnvAsFloat("SIGNCALC_SOIL_BEARING_PSF", 3000),
		CatalogFile:    getEnv("SIGNCALC_CATALOG_FILE", ""),
	}
}

// Production reports whether the engine runs with production logging.
func (c *Config) Production() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("invalid int for %s, defaulting to %d\n", key, fallback)
		return fallback
	}
	return val
}

func getEnvAsFloat(key string, fallback float64) float64 {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		log.Printf("invalid float for %s, defaulting to %g\n", key, fallback)
		return fallback
	}
	return val
}
