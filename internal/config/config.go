// Package config loads nexport configuration from the environment.
package config

import (
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values.
type Config struct {
	// Notion credentials. TokenV2 authenticates API calls, FileToken
	// authenticates artifact downloads.
	TokenV2   string
	FileToken string

	// Export behavior
	ExportDir       string
	Workers         int
	PollInterval    time.Duration
	MaxPollAttempts int

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		TokenV2:   os.Getenv("NOTION_TOKEN_V2"),
		FileToken: os.Getenv("NOTION_FILE_TOKEN"),

		ExportDir:       getEnv("NEXPORT_DIR", ""),
		Workers:         getEnvInt("NEXPORT_WORKERS", runtime.NumCPU()),
		PollInterval:    getEnvDuration("NEXPORT_POLL_INTERVAL", time.Second),
		MaxPollAttempts: getEnvInt("NEXPORT_MAX_POLL_ATTEMPTS", 0),

		LogFile:  getEnv("NEXPORT_LOG_FILE", "/tmp/nexport.log"),
		LogLevel: parseLogLevel(getEnv("NEXPORT_LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
