// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/softshop/pkg/db"
	"github.com/dmitrymomot/softshop/pkg/logger"
)

var (
	ErrLoadDotenv = errors.New("config: failed to load dotenv file")
	ErrParse      = errors.New("config: failed to parse environment")
)

// App configures the HTTP server.
type App struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	RequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"10s"`
}

// Jobs configures the background job manager.
type Jobs struct {
	// Five-field cron expression. Empty disables the periodic backfill.
	BackfillSchedule string        `env:"SLUG_BACKFILL_SCHEDULE"`
	StopTimeout      time.Duration `env:"JOBS_STOP_TIMEOUT" envDefault:"30s"`
	MaxWorkers       int           `env:"JOBS_MAX_WORKERS" envDefault:"10"`
}

// Catalog configures slug assignment.
type Catalog struct {
	SlugMaxAttempts int `env:"SLUG_MAX_ATTEMPTS" envDefault:"10000"`
}

// Config is the full process configuration.
type Config struct {
	Logger  logger.Config
	App     App
	Jobs    Jobs
	DB      db.Config
	Catalog Catalog
}

// Load reads dotenv files (".env" when none are given) and parses the
// environment into Config. Missing files are skipped; variables already set
// in the environment win over file values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Join(ErrLoadDotenv, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParse, err)
	}
	return cfg, nil
}
