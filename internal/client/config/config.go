package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Config holds runtime settings for the examiner CLI.
//
// Fields:
//   - APIBaseURL: root of the exam API, e.g. https://exams.example.org/api.
//   - RequestTimeout: per-request HTTP timeout.
//   - RefreshTimeout: upper bound for one token refresh exchange.
//   - DBPath: SQLite file holding the credential slots; empty keeps them in memory.
//   - StorePassphrase: when set, stored token values are sealed with it.
//   - ExportDir, S3*: where grade exports go. A bucket selects S3.
type Config struct {
	APIBaseURL      string        `env:"EXAMINER_API_URL"`
	RequestTimeout  time.Duration `env:"EXAMINER_REQUEST_TIMEOUT"`
	RefreshTimeout  time.Duration `env:"EXAMINER_REFRESH_TIMEOUT"`
	DBPath          string        `env:"EXAMINER_DB_PATH"`
	StorePassphrase string        `env:"EXAMINER_STORE_PASSPHRASE"`

	LogLevel  string `env:"EXAMINER_LOG_LEVEL"`
	LogFormat string `env:"EXAMINER_LOG_FORMAT"`

	ExportDir   string `env:"EXAMINER_EXPORT_DIR"`
	S3Bucket    string `env:"EXAMINER_S3_BUCKET"`
	S3Prefix    string `env:"EXAMINER_S3_PREFIX"`
	S3Region    string `env:"EXAMINER_S3_REGION"`
	S3Endpoint  string `env:"EXAMINER_S3_ENDPOINT"`
	S3AccessKey string `env:"EXAMINER_S3_ACCESS_KEY"`
	S3SecretKey string `env:"EXAMINER_S3_SECRET_KEY"`
}

// ConfigEnv names the environment variable that may point at a JSON file.
const ConfigEnv = "EXAMINER_CONFIG"

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/api"
	c.RequestTimeout = 30 * time.Second
	c.RefreshTimeout = 15 * time.Second
	c.DBPath = "examiner.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.ExportDir = "exports"
}

// LoadConfig applies defaults, then a JSON file, then the environment, then
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ErrInvalidTimeout is returned when a timeout resolves to zero or less.
var ErrInvalidTimeout = errors.New("timeout must be positive")

func (c *Config) validate() error {
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout %s: %w", c.RequestTimeout, ErrInvalidTimeout)
	}
	if c.RefreshTimeout <= 0 {
		return fmt.Errorf("refresh timeout %s: %w", c.RefreshTimeout, ErrInvalidTimeout)
	}
	return nil
}
