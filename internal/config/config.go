// Package config reads the backend configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/kommunalcrm/treasury/internal/forecast"
)

var (
	ErrAPIURLMissing = errors.New("environment variable API_URL must be set")
	ErrLogFormat     = errors.New("LOG_FORMAT must be one of 'json' or 'human'")
	ErrGinMode       = errors.New("GIN_MODE must be one of 'release', 'debug' or 'test'")
)

// Forecast holds the defaults for forecasts that do not set them.
type Forecast struct {
	Horizon       int `env:"HORIZON" envDefault:"6"`
	HistoryMonths int `env:"HISTORY_MONTHS" envDefault:"6"`
}

// Config is the configuration of the backend.
type Config struct {
	Port             int      `env:"PORT" envDefault:"8080"`
	APIURL           url.URL  `env:"API_URL"`
	DBPath           string   `env:"DB_PATH" envDefault:"data/treasury.db"`
	LogFormat        string   `env:"LOG_FORMAT" envDefault:"json"`
	GinMode          string   `env:"GIN_MODE" envDefault:"release"`
	CORSAllowOrigins string   `env:"CORS_ALLOW_ORIGINS"` // Space separated
	EnablePprof      bool     `env:"ENABLE_PPROF" envDefault:"false"`
	Forecast         Forecast `envPrefix:"FORECAST_"`
}

// Parse reads the configuration from the environment.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("could not parse environment: %w", err)
	}

	if c.Forecast.Horizon < 0 || c.Forecast.Horizon > forecast.MaxHorizon {
		return Config{}, fmt.Errorf("FORECAST_HORIZON: %w, got %d", forecast.ErrInvalidHorizon, c.Forecast.Horizon)
	}

	if c.Forecast.HistoryMonths < 0 || c.Forecast.HistoryMonths > forecast.MaxHorizon {
		return Config{}, fmt.Errorf("FORECAST_HISTORY_MONTHS: %w, got %d", forecast.ErrInvalidHistory, c.Forecast.HistoryMonths)
	}

	switch c.LogFormat {
	case "json", "human":
	default:
		return Config{}, ErrLogFormat
	}

	switch c.GinMode {
	case "release", "debug", "test":
	default:
		return Config{}, ErrGinMode
	}

	return c, nil
}

// Load reads the files into the environment and parses it.
// Variables that are already set are not overwritten. Files that
// do not exist are skipped.
func Load(files ...string) (Config, error) {
	for _, file := range files {
		err := godotenv.Load(file)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("could not load %s: %w", file, err)
		}
	}

	return Parse()
}

// Validate checks the settings needed to serve the API.
func (c Config) Validate() error {
	if c.APIURL.String() == "" {
		return ErrAPIURLMissing
	}

	return nil
}
