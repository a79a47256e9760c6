package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the session keeper CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API.
//   - SessionDBPath: SQLite file that keeps the session between runs.
//   - FrontendURL: when set, the credential is also mirrored into a cookie
//     jar scoped to this origin.
//   - RequestTimeout: upper bound for a single API call.
//   - PageSize: users per dashboard page.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL     string
	SessionDBPath  string
	FrontendURL    string
	RequestTimeout time.Duration
	PageSize       int
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.SessionDBPath = "session.db"
	c.FrontendURL = ""
	c.RequestTimeout = 15 * time.Second
	c.PageSize = 10
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, the optional config file, the
// environment (including a .env file) and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	return load(os.Args[1:], ".env")
}

func load(args []string, dotenv string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg, args)
	parseEnv(cfg, dotenv)
	parseFlags(cfg, args)
	return cfg
}
