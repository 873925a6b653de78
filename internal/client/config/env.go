package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays cfg with EXAMINER_* variables. Unset variables keep the
// current value.
func parseEnv(cfg *Config) error {
	return cleanenv.ReadEnv(cfg)
}
