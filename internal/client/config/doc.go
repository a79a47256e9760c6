// Package config loads runtime configuration for the session keeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via flags: -c or -config. JSON by
//     default, YAML when the file ends in .yaml or .yml.
//  3. Environment variables, after loading a .env file if one exists:
//     API_BASE_URL, SESSION_DB_PATH, FRONTEND_URL, LOG_LEVEL.
//  4. Command-line flags (see parseFlags), which override everything else.
//
// Supported flags
//
//	-a string   backend API base URL
//	-d string   session database file
//	-u string   frontend URL for the credential cookie mirror
//	-t int      request timeout (seconds)
//	-p int      dashboard page size
//	-l string   log level
//
// # File schema
//
//	{
//	  "api_base_url": "http://localhost:8080",
//	  "session_db_path": "session.db",
//	  "frontend_url": "http://localhost:3000",
//	  "request_timeout": "15s",
//	  "page_size": 10,
//	  "log_level": "info"
//	}
//
// The same keys are used in YAML files. request_timeout accepts a duration
// string or integer nanoseconds.
package config
