package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/practicum/internal/flagx"
	"github.com/dmitrijs2005/practicum/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Durations may
// be strings like "15s" or integer nanoseconds. Absent keys leave the
// current value alone.
type JSONConfig struct {
	APIBaseURL      *string         `json:"api_base_url"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`
	RefreshTimeout  *timex.Duration `json:"refresh_timeout"`
	DBPath          *string         `json:"db_path"`
	StorePassphrase *string         `json:"store_passphrase"`
	LogLevel        *string         `json:"log_level"`
	LogFormat       *string         `json:"log_format"`
	ExportDir       *string         `json:"export_dir"`
	S3Bucket        *string         `json:"s3_bucket"`
	S3Prefix        *string         `json:"s3_prefix"`
	S3Region        *string         `json:"s3_region"`
	S3Endpoint      *string         `json:"s3_endpoint"`
}

// parseJSON overlays cfg with the file named by -c/-config or EXAMINER_CONFIG.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args, ConfigEnv)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.DBPath, jc.DBPath)
	setString(&cfg.StorePassphrase, jc.StorePassphrase)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.ExportDir, jc.ExportDir)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Prefix, jc.S3Prefix)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RefreshTimeout != nil {
		cfg.RefreshTimeout = jc.RefreshTimeout.Duration
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
