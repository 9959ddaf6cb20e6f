package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/billio/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   API base URL
//	-d string   data directory
//	-t int      request timeout (seconds)
//	-w int      idle warning time (minutes)
//	-l int      idle logout time (minutes)
//	-i int      idle check interval (seconds)
//	-v string   log level
//
// os.Args is filtered with flagx.FilterArgs first so flags owned by other
// components do not cause parse errors.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-w", "-l", "-i", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level (debug, info, warn, error)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	warningTime := fs.Int("w", int(cfg.WarningTime.Minutes()), "idle warning time (in minutes)")
	logoutTime := fs.Int("l", int(cfg.LogoutTime.Minutes()), "idle logout time (in minutes)")
	checkInterval := fs.Int("i", int(cfg.CheckInterval.Seconds()), "idle check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["t"] {
		cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	}
	if set["w"] {
		cfg.WarningTime = time.Duration(*warningTime) * time.Minute
	}
	if set["l"] {
		cfg.LogoutTime = time.Duration(*logoutTime) * time.Minute
	}
	if set["i"] {
		cfg.CheckInterval = time.Duration(*checkInterval) * time.Second
	}
}
