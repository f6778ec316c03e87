package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	// Data
	DataDir        string
	ChallengesPath string
	Storage        string // local, sqlite

	// Executor
	ExecutorPoolSize  int
	ExecutorTimeoutMs int
	CacheThresholdMs  int

	// Server
	Port  int
	Debug bool
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		DataDir:           getEnv("CODEQUEST_DATA_DIR", defaultDataDir()),
		ChallengesPath:    getEnv("CODEQUEST_CHALLENGES_PATH", "./challenges"),
		Storage:           getEnv("CODEQUEST_STORAGE", "local"),
		ExecutorPoolSize:  getEnvInt("CODEQUEST_EXECUTOR_POOL_SIZE", 4),
		ExecutorTimeoutMs: getEnvInt("CODEQUEST_EXECUTOR_TIMEOUT_MS", 5000),
		CacheThresholdMs:  getEnvInt("CODEQUEST_CACHE_THRESHOLD_MS", 50),
		Port:              getEnvInt("CODEQUEST_PORT", 7433),
		Debug:             getEnvBool("CODEQUEST_DEBUG", false),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".codequest"
	}
	return filepath.Join(home, ".codequest")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
