// Package config loads runtime configuration for the examiner CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c/-config or EXAMINER_CONFIG.
//  3. EXAMINER_* environment variables.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   exam API base URL
//	-t int      request timeout (seconds)
//	-r int      token refresh timeout (seconds)
//	-d string   credential database path
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "15s" or integer
// nanoseconds:
//
//	{
//	  "api_base_url": "https://exams.example.org/api",
//	  "refresh_timeout": "15s",
//	  "db_path": "examiner.db",
//	  "export_dir": "exports"
//	}
package config
