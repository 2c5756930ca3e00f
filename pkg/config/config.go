// Package config loads process-level defaults from the environment and an
// optional .env file. Command-line flags override what is loaded here.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ja7ad/bouncy/pkg/bounce"
	"github.com/joho/godotenv"
)

type Config struct {
	// Model
	Gravity float64
	Samples int

	// Server
	Addr string

	// Logging
	LogLevel slog.Level
}

// Load reads the given .env files (default ".env"), if present, then the
// process environment. Variables already set in the environment win over the
// files. Invalid values fall back to defaults.
func Load(files ...string) *Config {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}

	return &Config{
		Gravity:  getEnvFloat("BOUNCY_GRAVITY", bounce.Gravity),
		Samples:  getEnvInt("BOUNCY_SAMPLES", bounce.SegmentSamples),
		Addr:     getEnv("BOUNCY_ADDR", ":8080"),
		LogLevel: ParseLevel(getEnv("BOUNCY_LOG_LEVEL", "info")),
	}
}

// ParseLevel maps debug, info, warn and error to slog levels; anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil && intVal >= 2 {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if v, err := bounce.ParseFloat(value); err == nil && v > 0 {
			return v
		}
	}
	return defaultValue
}
