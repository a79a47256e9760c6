package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvAPIBaseURL    = "API_BASE_URL"
	EnvSessionDBPath = "SESSION_DB_PATH"
	EnvFrontendURL   = "FRONTEND_URL"
	EnvLogLevel      = "LOG_LEVEL"
)

// parseEnv overlays cfg with environment variables. Variables from the
// dotenv file are loaded first but never override ones already set in the
// process environment. A missing dotenv file is ignored.
//
// Panics when the dotenv file exists but cannot be parsed.
func parseEnv(cfg *Config, dotenv string) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(EnvSessionDBPath); v != "" {
		cfg.SessionDBPath = v
	}
	if v := os.Getenv(EnvFrontendURL); v != "" {
		cfg.FrontendURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}
