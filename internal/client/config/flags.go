package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/polygame/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   backend API base URL
//	-t int      request timeout in seconds
//	-s string   SQLite storage path
//	-m string   metrics listen address
//	-l string   log level
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-s", "-m", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "backend API base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StoragePath, "s", cfg.StoragePath, "path to the local SQLite database")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "address to serve Prometheus metrics on")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Only an explicit -t replaces the timeout, so sub-second values from
	// earlier sources are not truncated by the int default.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
