// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PKPD"

var (
	// ErrInvalid indicates a configuration that failed validation.
	ErrInvalid = errors.New("config: invalid configuration")

	// ErrRead indicates an unreadable or malformed configuration file.
	ErrRead = errors.New("config: cannot read configuration")
)

var validate = validator.New()

// Load reads .env (if present), the YAML file at path (skipped when path
// is empty) and PKPD_* variables, applies defaults and validates.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %w", ErrRead, err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct tags and cross-field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if n := len(c.Model.Volumes); n > 0 && n != c.Model.Compartments {
		return fmt.Errorf("%w: %d volumes for %d compartments", ErrInvalid, n, c.Model.Compartments)
	}
	if n := len(c.Model.Distribution); n > 0 && n != c.Model.Compartments-1 {
		return fmt.Errorf("%w: %d distribution pairs for %d compartments", ErrInvalid, n, c.Model.Compartments)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("model.compartments", 1)
	v.SetDefault("model.dose", 0.0)
	v.SetDefault("model.route.key", "iv-bolus")
	v.SetDefault("model.clearance", 0.5)

	v.SetDefault("simulation.start", 0.0)
	v.SetDefault("simulation.end", 24.0)
	v.SetDefault("simulation.points", 25)
	v.SetDefault("simulation.rtol", 1e-6)
	v.SetDefault("simulation.atol", 1e-9)
	v.SetDefault("simulation.max_steps", 100000)
	v.SetDefault("simulation.timeout", "30s")
	v.SetDefault("simulation.workers", 4)
	v.SetDefault("simulation.cache_size", 16)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
