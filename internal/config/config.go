// Package config loads CLI defaults from LUMETRIC_* environment variables.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/ukaji3/lumetric-go/pkg/lumetric"
	"github.com/ukaji3/lumetric-go/pkg/lumetric/normalize"
	"github.com/ukaji3/lumetric-go/pkg/lumetric/parser"
)

// Prefix is the environment variable prefix.
const Prefix = "LUMETRIC"

// Config holds settings shared by every command.
type Config struct {
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	LogFormat       string `envconfig:"LOG_FORMAT" default:"text" validate:"oneof=text json"`
	MaxFileSize     int64  `envconfig:"MAX_FILE_SIZE" default:"52428800" validate:"gte=-1"`
	HeaderScanLimit int    `envconfig:"HEADER_SCAN_LIMIT" default:"0" validate:"gte=0"`
	Duplicates      string `envconfig:"DUPLICATES" default:"last" validate:"oneof=last sum keep"`
	XLSXPassword    string `envconfig:"XLSX_PASSWORD"`
}

// Load reads the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Options converts the config into parse options.
func (c *Config) Options() (lumetric.Options, error) {
	policy, err := normalize.ParseDuplicatePolicy(c.Duplicates)
	if err != nil {
		return lumetric.Options{}, err
	}

	opts := lumetric.DefaultOptions()
	opts.MaxFileSize = c.MaxFileSize
	opts.Normalize.HeaderScanLimit = c.HeaderScanLimit
	opts.Normalize.Duplicates = policy
	if c.XLSXPassword != "" {
		opts.Codecs = parser.DefaultCodecsWithPassword(c.XLSXPassword)
	}
	return opts, nil
}
