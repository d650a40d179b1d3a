package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the client and the mock backend read from the
// environment.
type Config struct {
	// Client
	APIURL      string
	WebURL      string
	TokenFile   string
	HTTPTimeout time.Duration

	// Logging
	LogFile  string
	LogLevel string

	// Mock backend
	MockAddr   string
	MockSecret string
}

// Load reads an optional .env file from the working directory, then the
// environment.
func Load() Config {
	_ = godotenv.Load() //nolint:errcheck // .env is optional
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() Config {
	dir := stateDir()
	return Config{
		APIURL:      strings.TrimRight(getEnv("YOGAPATH_API_URL", "http://localhost:8080/api"), "/"),
		WebURL:      getEnv("YOGAPATH_WEB_URL", "http://localhost:3000"),
		TokenFile:   getEnv("YOGAPATH_TOKEN_FILE", filepath.Join(dir, "token")),
		HTTPTimeout: getEnvDuration("YOGAPATH_HTTP_TIMEOUT", 30*time.Second),

		LogFile:  getEnv("YOGAPATH_LOG_FILE", filepath.Join(dir, "yogapath.log")),
		LogLevel: strings.ToLower(getEnv("YOGAPATH_LOG_LEVEL", "info")),

		MockAddr:   getEnv("YOGAPATH_MOCK_ADDR", ":8080"),
		MockSecret: getEnv("YOGAPATH_MOCK_SECRET", "yogapath-dev-secret"),
	}
}

// stateDir returns ~/.yogapath, or .yogapath when the home dir is unknown.
func stateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".yogapath"
	}
	return filepath.Join(home, ".yogapath")
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}
