package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/sessionkeeper/internal/flagx"
	"github.com/dmitrijs2005/sessionkeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for decoding config files.
// It relies on timex.Duration so the timeout can be written either as a
// string like "15s" or as integer nanoseconds.
type FileConfig struct {
	APIBaseURL     string         `json:"api_base_url" yaml:"api_base_url"`
	SessionDBPath  string         `json:"session_db_path" yaml:"session_db_path"`
	FrontendURL    string         `json:"frontend_url" yaml:"frontend_url"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	PageSize       int            `json:"page_size" yaml:"page_size"`
	LogLevel       string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c or -config. Files ending
// in .yaml or .yml are decoded as YAML, anything else as JSON. Only fields
// present in the file are applied.
//
// Panics on read or decode errors.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.SessionDBPath != "" {
		cfg.SessionDBPath = fc.SessionDBPath
	}
	if fc.FrontendURL != "" {
		cfg.FrontendURL = fc.FrontendURL
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.PageSize > 0 {
		cfg.PageSize = fc.PageSize
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
