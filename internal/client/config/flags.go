package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/sessionkeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   backend API base URL
//	-d string   session database file
//	-u string   frontend URL for the credential cookie mirror
//	-t int      request timeout in seconds
//	-p int      dashboard page size
//	-l string   log level
//
// Only the flags listed here are passed to the flag set, so other
// components may define their own. RequestTimeout is only replaced when -t
// is given, so sub-second values from a file or the defaults survive.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-u", "-t", "-p", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend API base URL")
	fs.StringVar(&cfg.SessionDBPath, "d", cfg.SessionDBPath, "session database file")
	fs.StringVar(&cfg.FrontendURL, "u", cfg.FrontendURL, "frontend URL for the credential cookie")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "dashboard page size")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
