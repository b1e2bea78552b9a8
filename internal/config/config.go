package config

import (
	"errors"

	"github.com/caarlos0/env/v11"

	"popup-ads/internal/config/configs"
)

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables using caarlos0/env; nested
// structs are parsed with their envPrefix. Use Load to construct a Config.
type Config struct {
	// Env names the deployment environment (e.g. prod, dev).
	Env string `env:"ENV" envDefault:"prod"`

	HTTP     configs.HTTP     `envPrefix:"HTTP_"`
	Log      configs.Logger   `envPrefix:"LOG_"`
	Psql     configs.Postgres `envPrefix:"PSQL_"`
	Storage  configs.Storage  `envPrefix:"STORAGE_"`
	Delivery configs.Delivery `envPrefix:"DELIVERY_"`
}

// Load reads configuration from environment variables into a Config and
// validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks every section.
func (c Config) Validate() error {
	return errors.Join(c.Storage.Validate(), c.Delivery.Validate())
}
