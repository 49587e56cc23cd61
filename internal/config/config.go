// Package config loads the service settings from ROADSIGN_* environment
// variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every variable name.
const Prefix = "ROADSIGN_"

type Config struct {
	HTTPAddr          string        `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath            string        `env:"DB"`
	LogLevel          slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat         string        `env:"LOG_FORMAT" envDefault:"json"`
	CatalogPath       string        `env:"CATALOG"`
	GenerationTimeout time.Duration `env:"GENERATION_TIMEOUT" envDefault:"45s"`
	JobWorkers        int           `env:"JOB_WORKERS" envDefault:"2"`
	JobQueue          int           `env:"JOB_QUEUE" envDefault:"64"`
	JobTimeout        time.Duration `env:"JOB_TIMEOUT" envDefault:"10s"`
	CORSOrigins       []string      `env:"CORS_ORIGINS" envSeparator:","`
	MaxImageBytes     int64         `env:"MAX_IMAGE_BYTES" envDefault:"5242880"`
}

// Load reads the environment. Files in dotenv are loaded first and never
// override variables that are already set; missing files are skipped.
func Load(dotenv ...string) (*Config, error) {
	if err := LoadDotenv(dotenv...); err != nil {
		return nil, err
	}
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Prefix: Prefix})
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDotenv loads the given files, or ./.env when none are named.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Validate checks values the parser cannot.
func (c *Config) Validate() error {
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("%sLOG_FORMAT must be \"json\" or \"text\", got %q", Prefix, c.LogFormat)
	}
	if c.JobWorkers < 1 {
		return fmt.Errorf("%sJOB_WORKERS must be at least 1", Prefix)
	}
	if c.MaxImageBytes <= 0 {
		return fmt.Errorf("%sMAX_IMAGE_BYTES must be positive", Prefix)
	}
	return nil
}
