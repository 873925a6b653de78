package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/practicum/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   API base URL
//	-t int      request timeout (seconds)
//	-r int      refresh timeout (seconds)
//	-d string   SQLite database path
//	-l string   log level
//
// Only these flags are looked at; everything else in args is ignored.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-r", "-d", "-l"})

	fs := flag.NewFlagSet("examiner", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "exam API base URL")
	requestTimeout := fs.Int("t", 0, "request timeout (in seconds)")
	refreshTimeout := fs.Int("r", 0, "token refresh timeout (in seconds)")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "credential database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// timeouts from earlier layers may be sub-second; keep them unless the
	// flag was given
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		case "r":
			cfg.RefreshTimeout = time.Duration(*refreshTimeout) * time.Second
		}
	})
	return nil
}
